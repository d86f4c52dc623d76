package viewer

// EventType names a control notification from the UI.
type EventType string

const (
	TeamChange    EventType = "team_change"
	PitcherChange EventType = "pitcher_change"
	PitchChange   EventType = "pitch_change"
	TrailChange   EventType = "trail_change"
	Replay        EventType = "replay"
	Pause         EventType = "pause"
)

// Event is one control change. Value carries the selected option for the
// select controls; Checked carries the trail checkbox state.
type Event struct {
	Type    EventType `json:"type"`
	Value   string    `json:"value,omitempty"`
	Checked bool      `json:"checked,omitempty"`
}

// Controls is the UI the session drives: three option lists, a status
// line and an error line.
type Controls interface {
	SetTeamOptions(teams []string)
	SetPitcherOptions(pitchers []string)
	SetPitchOptions(options []PitchOption)
	ShowState(s Status)
	ShowError(err error)
}

// PitchOption is an entry of the pitch select control.
type PitchOption struct {
	ID        string `json:"id"`
	PitchType string `json:"pitch_type"`
	Label     string `json:"label"`
}

// Status is what the UI shows about the current flight.
type Status struct {
	State     string `json:"state"`
	Team      string `json:"team,omitempty"`
	Pitcher   string `json:"pitcher,omitempty"`
	PitchID   string `json:"pitch_id,omitempty"`
	PitchType string `json:"pitch_type,omitempty"`
	Paused    bool   `json:"paused"`
	Trail     bool   `json:"trail"`
}
