package models

import (
	"database/sql"
	"encoding/json"
	"time"
)

// PitchRow is one row of the pitches table.
type PitchRow struct {
	ID               int64          `db:"id" json:"id"`
	Team             string         `db:"team" json:"team"`
	Pitcher          string         `db:"pitcher" json:"pitcher"`
	PitchID          string         `db:"pitch_id" json:"pitch_id"`
	PitchType        sql.NullString `db:"pitch_type" json:"pitch_type,omitempty"`
	ReleasePosX      float64        `db:"release_pos_x" json:"release_pos_x"`
	ReleasePosZ      float64        `db:"release_pos_z" json:"release_pos_z"`
	ReleaseExtension float64        `db:"release_extension" json:"release_extension"`
	VX0              float64        `db:"vx0" json:"vx0"`
	VY0              float64        `db:"vy0" json:"vy0"`
	VZ0              float64        `db:"vz0" json:"vz0"`
	AX               float64        `db:"ax" json:"ax"`
	AY               float64        `db:"ay" json:"ay"`
	AZ               float64        `db:"az" json:"az"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at" json:"updated_at"`
}

// AdminAudit is one row of the admin_audit table.
type AdminAudit struct {
	ID        int64           `db:"id" json:"id"`
	IP        string          `db:"ip" json:"ip"`
	Route     string          `db:"route" json:"route"`
	Action    string          `db:"action" json:"action"`
	Details   json.RawMessage `db:"details" json:"details"`
	Success   bool            `db:"success" json:"success"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}
