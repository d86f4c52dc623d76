package pitch

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMissingField is returned when a pitch record lacks one of the nine
// kinematic measurements.
var ErrMissingField = errors.New("missing kinematic field")

// Record is one pitch as measured at release.
type Record struct {
	PitchType        string  `json:"pitch_type"`
	ReleasePosX      float64 `json:"release_pos_x"`
	ReleasePosZ      float64 `json:"release_pos_z"`
	ReleaseExtension float64 `json:"release_extension"`
	VX0              float64 `json:"vx0"`
	VY0              float64 `json:"vy0"`
	VZ0              float64 `json:"vz0"`
	AX               float64 `json:"ax"`
	AY               float64 `json:"ay"`
	AZ               float64 `json:"az"`
}

// rawRecord mirrors Record with pointers so absent fields can be told apart
// from zero values.
type rawRecord struct {
	PitchType        string   `json:"pitch_type"`
	ReleasePosX      *float64 `json:"release_pos_x"`
	ReleasePosZ      *float64 `json:"release_pos_z"`
	ReleaseExtension *float64 `json:"release_extension"`
	VX0              *float64 `json:"vx0"`
	VY0              *float64 `json:"vy0"`
	VZ0              *float64 `json:"vz0"`
	AX               *float64 `json:"ax"`
	AY               *float64 `json:"ay"`
	AZ               *float64 `json:"az"`
}

// UnmarshalJSON decodes a record and rejects it if any kinematic field is
// absent or null. Non-numeric values fail in the json decoder itself.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw rawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	fields := []struct {
		name string
		src  *float64
		dst  *float64
	}{
		{"release_pos_x", raw.ReleasePosX, &r.ReleasePosX},
		{"release_pos_z", raw.ReleasePosZ, &r.ReleasePosZ},
		{"release_extension", raw.ReleaseExtension, &r.ReleaseExtension},
		{"vx0", raw.VX0, &r.VX0},
		{"vy0", raw.VY0, &r.VY0},
		{"vz0", raw.VZ0, &r.VZ0},
		{"ax", raw.AX, &r.AX},
		{"ay", raw.AY, &r.AY},
		{"az", raw.AZ, &r.AZ},
	}
	for _, f := range fields {
		if f.src == nil {
			return fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}
	for _, f := range fields {
		*f.dst = *f.src
	}
	r.PitchType = raw.PitchType
	return nil
}

// Color returns the display colour for the record's pitch type.
func (r Record) Color() uint32 {
	return ColorFor(r.PitchType)
}
