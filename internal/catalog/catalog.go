// Package catalog holds the team → pitcher → pitch lookup the viewer is
// driven from, and the sources it can be loaded from.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/playmatatu/pitchviz/internal/pitch"
)

var (
	ErrTeamNotFound    = errors.New("team not found")
	ErrPitcherNotFound = errors.New("pitcher not found")
	ErrPitchNotFound   = errors.New("pitch not found")
	ErrNoPitches       = errors.New("pitcher has no pitches")
)

type pitchSet map[string]pitch.Record

// Catalog is an immutable nested mapping team → pitcher → pitch id → record.
type Catalog struct {
	teams map[string]map[string]pitchSet
}

// Entry is one flattened catalog row.
type Entry struct {
	Team    string       `json:"team"`
	Pitcher string       `json:"pitcher"`
	PitchID string       `json:"pitch_id"`
	Record  pitch.Record `json:"record"`
}

// Parse decodes the nested JSON shape { team: { pitcher: { id: record } } }.
// Any record missing a kinematic field fails the whole parse.
func Parse(data []byte) (*Catalog, error) {
	var teams map[string]map[string]pitchSet
	if err := json.Unmarshal(data, &teams); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if teams == nil {
		teams = make(map[string]map[string]pitchSet)
	}
	return &Catalog{teams: teams}, nil
}

// Decode reads and parses a catalog from r.
func Decode(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// LoadFile parses the catalog stored at path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// FromEntries builds a catalog from flat rows. Later duplicates win.
func FromEntries(entries []Entry) *Catalog {
	teams := make(map[string]map[string]pitchSet)
	for _, e := range entries {
		pitchers, ok := teams[e.Team]
		if !ok {
			pitchers = make(map[string]pitchSet)
			teams[e.Team] = pitchers
		}
		set, ok := pitchers[e.Pitcher]
		if !ok {
			set = make(pitchSet)
			pitchers[e.Pitcher] = set
		}
		set[e.PitchID] = e.Record
	}
	return &Catalog{teams: teams}
}

// Teams returns the team names in sorted order.
func (c *Catalog) Teams() []string {
	return sortedKeys(c.teams)
}

// Pitchers returns the pitchers of team in sorted order.
func (c *Catalog) Pitchers(team string) ([]string, error) {
	pitchers, ok := c.teams[team]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTeamNotFound, team)
	}
	return sortedKeys(pitchers), nil
}

// PitchIDs returns the pitch ids thrown by pitcher in sorted order.
func (c *Catalog) PitchIDs(team, pitcher string) ([]string, error) {
	set, err := c.pitches(team, pitcher)
	if err != nil {
		return nil, err
	}
	return sortedKeys(set), nil
}

// Pitch looks up a single record.
func (c *Catalog) Pitch(team, pitcher, id string) (pitch.Record, error) {
	set, err := c.pitches(team, pitcher)
	if err != nil {
		return pitch.Record{}, err
	}
	rec, ok := set[id]
	if !ok {
		return pitch.Record{}, fmt.Errorf("%w: %q/%q/%q", ErrPitchNotFound, team, pitcher, id)
	}
	return rec, nil
}

// FirstPitch returns the pitch with the lowest id for pitcher.
func (c *Catalog) FirstPitch(team, pitcher string) (string, pitch.Record, error) {
	ids, err := c.PitchIDs(team, pitcher)
	if err != nil {
		return "", pitch.Record{}, err
	}
	if len(ids) == 0 {
		return "", pitch.Record{}, fmt.Errorf("%w: %q/%q", ErrNoPitches, team, pitcher)
	}
	rec, err := c.Pitch(team, pitcher, ids[0])
	return ids[0], rec, err
}

// Entries flattens the catalog, sorted by team, pitcher and pitch id.
func (c *Catalog) Entries() []Entry {
	var out []Entry
	for _, team := range c.Teams() {
		pitchers := c.teams[team]
		for _, p := range sortedKeys(pitchers) {
			set := pitchers[p]
			for _, id := range sortedKeys(set) {
				out = append(out, Entry{Team: team, Pitcher: p, PitchID: id, Record: set[id]})
			}
		}
	}
	return out
}

// Len returns the total number of pitches.
func (c *Catalog) Len() int {
	n := 0
	for _, pitchers := range c.teams {
		for _, set := range pitchers {
			n += len(set)
		}
	}
	return n
}

// MarshalJSON writes the catalog back in its nested input shape.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.teams)
}

func (c *Catalog) pitches(team, pitcher string) (pitchSet, error) {
	pitchers, ok := c.teams[team]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTeamNotFound, team)
	}
	set, ok := pitchers[pitcher]
	if !ok {
		return nil, fmt.Errorf("%w: %q/%q", ErrPitcherNotFound, team, pitcher)
	}
	return set, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
