package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/playmatatu/pitchviz/internal/models"
	"github.com/playmatatu/pitchviz/internal/pitch"
)

const selectPitches = `SELECT id, team, pitcher, pitch_id, pitch_type, release_pos_x, release_pos_z, release_extension,
	vx0, vy0, vz0, ax, ay, az, created_at, updated_at
	FROM pitches ORDER BY team, pitcher, pitch_id`

const upsertPitch = `INSERT INTO pitches (team, pitcher, pitch_id, pitch_type, release_pos_x, release_pos_z, release_extension,
	vx0, vy0, vz0, ax, ay, az, created_at, updated_at)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,NOW(),NOW())
	ON CONFLICT (team, pitcher, pitch_id) DO UPDATE SET
		pitch_type = EXCLUDED.pitch_type,
		release_pos_x = EXCLUDED.release_pos_x,
		release_pos_z = EXCLUDED.release_pos_z,
		release_extension = EXCLUDED.release_extension,
		vx0 = EXCLUDED.vx0,
		vy0 = EXCLUDED.vy0,
		vz0 = EXCLUDED.vz0,
		ax = EXCLUDED.ax,
		ay = EXCLUDED.ay,
		az = EXCLUDED.az,
		updated_at = NOW()`

// PostgresSource loads the catalog from the pitches table.
type PostgresSource struct {
	db *sqlx.DB
}

func NewPostgresSource(db *sqlx.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

func (s *PostgresSource) Load(ctx context.Context) (*Catalog, error) {
	var rows []models.PitchRow
	if err := s.db.SelectContext(ctx, &rows, selectPitches); err != nil {
		return nil, fmt.Errorf("select pitches: %w", err)
	}

	entries := make([]Entry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, Entry{
			Team:    r.Team,
			Pitcher: r.Pitcher,
			PitchID: r.PitchID,
			Record:  rowToRecord(r),
		})
	}
	return FromEntries(entries), nil
}

func (s *PostgresSource) Name() string {
	return "postgres"
}

// Import upserts every pitch of c into the pitches table in one transaction.
func Import(ctx context.Context, db *sqlx.DB, c *Catalog) (int, error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	n := 0
	for _, e := range c.Entries() {
		r := e.Record
		if _, err := tx.ExecContext(ctx, upsertPitch,
			e.Team, e.Pitcher, e.PitchID, nullString(r.PitchType),
			r.ReleasePosX, r.ReleasePosZ, r.ReleaseExtension,
			r.VX0, r.VY0, r.VZ0, r.AX, r.AY, r.AZ,
		); err != nil {
			return 0, fmt.Errorf("upsert %s/%s/%s: %w", e.Team, e.Pitcher, e.PitchID, err)
		}
		n++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	return n, nil
}

func rowToRecord(r models.PitchRow) pitch.Record {
	return pitch.Record{
		PitchType:        r.PitchType.String,
		ReleasePosX:      r.ReleasePosX,
		ReleasePosZ:      r.ReleasePosZ,
		ReleaseExtension: r.ReleaseExtension,
		VX0:              r.VX0,
		VY0:              r.VY0,
		VZ0:              r.VZ0,
		AX:               r.AX,
		AY:               r.AY,
		AZ:               r.AZ,
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
