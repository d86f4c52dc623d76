// Package animation drives one pitch flight frame by frame: it owns the
// elapsed clock, the pause and trail flags and the ball and trail nodes.
package animation

import (
	"github.com/playmatatu/pitchviz/internal/pitch"
	"github.com/playmatatu/pitchviz/internal/scene"
	"github.com/rs/zerolog/log"
)

type State int

const (
	Idle State = iota
	Running
	Paused
	Finished
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Finished:
		return "finished"
	}
	return "unknown"
}

// Options are the flight constants.
type Options struct {
	PlateY   float64
	Duration float64
}

func DefaultOptions() Options {
	return Options{PlateY: pitch.PlateY, Duration: pitch.PitchDuration}
}

// Controller animates one ball at a time on a stage. It is not safe for
// concurrent use; drive it from a single goroutine such as a Loop.
type Controller struct {
	stage    *scene.Stage
	sched    Scheduler
	clock    Clock
	renderer scene.Renderer
	opts     Options

	state     State
	paused    bool
	showTrail bool

	frame    FrameID
	hasFrame bool
	gen      uint64

	kin   pitch.Kinematics
	ball  *scene.Node
	trail []*scene.Node

	onState func(State)
}

func NewController(stage *scene.Stage, sched Scheduler, clock Clock, renderer scene.Renderer, opts Options) *Controller {
	return &Controller{
		stage:    stage,
		sched:    sched,
		clock:    clock,
		renderer: renderer,
		opts:     opts,
	}
}

// OnStateChange registers fn to be called on every state transition,
// replacing any previous callback.
func (c *Controller) OnStateChange(fn func(State)) {
	c.onState = fn
}

// Start resets everything from the previous flight and animates rec from
// its release point. Any frame still pending from an earlier flight is
// cancelled first.
func (c *Controller) Start(rec pitch.Record) {
	c.cancelFrame()
	c.gen++
	c.reset()

	c.kin = pitch.NewKinematics(rec, c.opts.PlateY)
	c.ball = scene.NewBall(rec.PitchType)
	c.ball.SetPosition(c.kin.Release)
	c.stage.PitchGroup.Add(c.ball)

	c.clock.Start()
	if c.paused {
		c.clock.Pause()
		c.setState(Paused)
		c.render()
	} else {
		c.setState(Running)
	}

	c.advance(c.gen)
}

// Stop cancels the pending frame and leaves the stage as it is.
func (c *Controller) Stop() {
	c.cancelFrame()
	c.gen++
}

// TogglePause flips the pause flag and returns the new value. The clock is
// frozen while paused so the flight resumes where it stopped.
func (c *Controller) TogglePause() bool {
	c.paused = !c.paused
	if c.paused {
		c.clock.Pause()
		if c.state == Running {
			c.setState(Paused)
		}
	} else {
		c.clock.Resume()
		if c.state == Paused {
			c.setState(Running)
		}
	}
	return c.paused
}

// SetTrail turns trail markers on or off for subsequent frames. Markers
// already placed stay.
func (c *Controller) SetTrail(on bool) {
	c.showTrail = on
}

func (c *Controller) State() State        { return c.state }
func (c *Controller) Paused() bool        { return c.paused }
func (c *Controller) TrailEnabled() bool  { return c.showTrail }
func (c *Controller) Elapsed() float64    { return c.clock.Elapsed() }
func (c *Controller) FramePending() bool  { return c.hasFrame }
func (c *Controller) Stage() *scene.Stage { return c.stage }

// BallPosition returns the ball's current position, if there is a ball.
func (c *Controller) BallPosition() (pitch.Vec3, bool) {
	if c.ball == nil {
		return pitch.Vec3{}, false
	}
	return c.ball.Position, true
}

// TrailPositions returns the trail marker positions in the order placed.
func (c *Controller) TrailPositions() []pitch.Vec3 {
	out := make([]pitch.Vec3, len(c.trail))
	for i, dot := range c.trail {
		out[i] = dot.Position
	}
	return out
}

func (c *Controller) advance(gen uint64) {
	if gen != c.gen {
		return
	}
	c.hasFrame = false

	if c.paused {
		c.schedule()
		return
	}

	t := c.clock.Elapsed()
	if pitch.Finished(t, c.opts.Duration) {
		c.setState(Finished)
		return
	}

	pos := c.kin.PositionAt(t)
	c.ball.SetPosition(pos)

	if c.showTrail {
		dot := scene.NewTrailMarker(pos)
		c.stage.Root.Add(dot)
		c.trail = append(c.trail, dot)
	}

	c.render()
	c.schedule()
}

func (c *Controller) schedule() {
	gen := c.gen
	c.frame = c.sched.RequestFrame(func() { c.advance(gen) })
	c.hasFrame = true
}

func (c *Controller) cancelFrame() {
	if c.hasFrame {
		c.sched.CancelFrame(c.frame)
		c.hasFrame = false
	}
}

func (c *Controller) reset() {
	c.stage.PitchGroup.Clear()
	for _, dot := range c.trail {
		c.stage.Root.Remove(dot)
	}
	c.trail = nil
	c.ball = nil
	c.setState(Idle)
}

func (c *Controller) render() {
	if c.renderer == nil {
		return
	}
	if err := c.renderer.Render(c.stage); err != nil {
		log.Warn().Str("component", "animation").Err(err).Msg("render failed")
	}
}

func (c *Controller) setState(s State) {
	if c.state == s {
		return
	}
	c.state = s
	if c.onState != nil {
		c.onState(s)
	}
}
