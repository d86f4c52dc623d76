// Package viewer wires UI control changes to catalog lookups and to the
// animation controller.
package viewer

import (
	"errors"
	"fmt"

	"github.com/playmatatu/pitchviz/internal/animation"
	"github.com/playmatatu/pitchviz/internal/catalog"
	"github.com/playmatatu/pitchviz/internal/pitch"
)

var (
	ErrNoCatalog      = errors.New("no catalog loaded")
	ErrNoTeamSelected = errors.New("no team selected")
	ErrNoPitcher      = errors.New("no pitcher selected")
	ErrUnknownEvent   = errors.New("unknown event")
)

type handler func(Event) error

// Session is one viewer: a catalog, the current selection and the
// controller animating it. Like the controller, it must be driven from a
// single goroutine.
type Session struct {
	controls Controls
	ctrl     *animation.Controller

	cat      *catalog.Catalog
	handlers map[EventType]handler

	team    string
	pitcher string
	pitchID string
	record  pitch.Record
}

func NewSession(controls Controls, ctrl *animation.Controller) *Session {
	s := &Session{controls: controls, ctrl: ctrl}
	ctrl.OnStateChange(func(animation.State) { s.publishState() })
	return s
}

// Load replaces the catalog wholesale. Selections are dropped, the team
// options are rebuilt from scratch and the event handlers are rebound, so
// loading again never leaves duplicate handlers behind.
func (s *Session) Load(cat *catalog.Catalog) {
	s.ctrl.Stop()
	s.cat = cat
	s.team, s.pitcher, s.pitchID = "", "", ""
	s.record = pitch.Record{}

	s.controls.SetTeamOptions(cat.Teams())
	s.controls.SetPitcherOptions(nil)
	s.controls.SetPitchOptions(nil)

	s.bind()
	s.publishState()
}

func (s *Session) bind() {
	s.handlers = map[EventType]handler{
		TeamChange:    func(e Event) error { return s.SelectTeam(e.Value) },
		PitcherChange: func(e Event) error { return s.SelectPitcher(e.Value) },
		PitchChange:   func(e Event) error { return s.SelectPitch(e.Value) },
		TrailChange: func(e Event) error {
			s.SetTrail(e.Checked)
			return nil
		},
		Replay: func(Event) error { return s.Replay() },
		Pause: func(Event) error {
			s.TogglePause()
			return nil
		},
	}
}

// Dispatch routes a UI event to its handler. Errors are also shown on the
// controls.
func (s *Session) Dispatch(e Event) error {
	if s.handlers == nil {
		return s.fail(ErrNoCatalog)
	}
	h, ok := s.handlers[e.Type]
	if !ok {
		return s.fail(fmt.Errorf("%w: %q", ErrUnknownEvent, e.Type))
	}
	if err := h(e); err != nil {
		return s.fail(err)
	}
	return nil
}

// SelectTeam repopulates the pitcher options for team only.
func (s *Session) SelectTeam(team string) error {
	if s.cat == nil {
		return ErrNoCatalog
	}
	pitchers, err := s.cat.Pitchers(team)
	if err != nil {
		return err
	}
	s.team = team
	s.pitcher, s.pitchID = "", ""
	s.record = pitch.Record{}
	s.controls.SetPitcherOptions(pitchers)
	s.controls.SetPitchOptions(nil)
	return nil
}

// SelectPitcher lists the pitcher's pitches and starts the first one.
func (s *Session) SelectPitcher(pitcher string) error {
	if s.cat == nil {
		return ErrNoCatalog
	}
	if s.team == "" {
		return ErrNoTeamSelected
	}
	ids, err := s.cat.PitchIDs(s.team, pitcher)
	if err != nil {
		return err
	}
	id, rec, err := s.cat.FirstPitch(s.team, pitcher)
	if err != nil {
		return err
	}

	options := make([]PitchOption, 0, len(ids))
	for _, pid := range ids {
		r, err := s.cat.Pitch(s.team, pitcher, pid)
		if err != nil {
			return err
		}
		options = append(options, PitchOption{
			ID:        pid,
			PitchType: r.PitchType,
			Label:     fmt.Sprintf("%s (%s)", pid, pitch.Name(r.PitchType)),
		})
	}

	s.pitcher = pitcher
	s.controls.SetPitchOptions(options)
	s.start(id, rec)
	return nil
}

// SelectPitch starts a specific pitch of the selected pitcher.
func (s *Session) SelectPitch(id string) error {
	if s.cat == nil {
		return ErrNoCatalog
	}
	if s.team == "" {
		return ErrNoTeamSelected
	}
	if s.pitcher == "" {
		return ErrNoPitcher
	}
	rec, err := s.cat.Pitch(s.team, s.pitcher, id)
	if err != nil {
		return err
	}
	s.start(id, rec)
	return nil
}

// Replay restarts the current pitch from its release point.
func (s *Session) Replay() error {
	if s.team == "" {
		return ErrNoTeamSelected
	}
	if s.pitcher == "" {
		return ErrNoPitcher
	}
	rec, err := s.cat.Pitch(s.team, s.pitcher, s.pitchID)
	if err != nil {
		return err
	}
	s.start(s.pitchID, rec)
	return nil
}

func (s *Session) SetTrail(on bool) {
	s.ctrl.SetTrail(on)
	s.publishState()
}

func (s *Session) TogglePause() bool {
	paused := s.ctrl.TogglePause()
	s.publishState()
	return paused
}

// Close stops any pending frame.
func (s *Session) Close() {
	s.ctrl.Stop()
}

// Status returns what the UI currently shows.
func (s *Session) Status() Status {
	return Status{
		State:     s.ctrl.State().String(),
		Team:      s.team,
		Pitcher:   s.pitcher,
		PitchID:   s.pitchID,
		PitchType: s.record.PitchType,
		Paused:    s.ctrl.Paused(),
		Trail:     s.ctrl.TrailEnabled(),
	}
}

func (s *Session) Controller() *animation.Controller {
	return s.ctrl
}

func (s *Session) start(id string, rec pitch.Record) {
	s.pitchID = id
	s.record = rec
	s.ctrl.Start(rec)
}

func (s *Session) publishState() {
	s.controls.ShowState(s.Status())
}

func (s *Session) fail(err error) error {
	s.controls.ShowError(err)
	return err
}
