package animation

import "time"

// Clock measures elapsed flight time in seconds.
type Clock interface {
	Start()
	Pause()
	Resume()
	Elapsed() float64
}

// Stopwatch is a pausable wall clock. Time spent paused does not count.
type Stopwatch struct {
	now       func() time.Time
	started   bool
	start     time.Time
	paused    bool
	pausedAt  time.Time
	pausedFor time.Duration
}

func NewStopwatch(now func() time.Time) *Stopwatch {
	if now == nil {
		now = time.Now
	}
	return &Stopwatch{now: now}
}

// Start resets the stopwatch to zero and runs it.
func (s *Stopwatch) Start() {
	s.started = true
	s.start = s.now()
	s.paused = false
	s.pausedFor = 0
}

func (s *Stopwatch) Pause() {
	if !s.started || s.paused {
		return
	}
	s.paused = true
	s.pausedAt = s.now()
}

func (s *Stopwatch) Resume() {
	if !s.paused {
		return
	}
	s.pausedFor += s.now().Sub(s.pausedAt)
	s.paused = false
}

func (s *Stopwatch) Elapsed() float64 {
	if !s.started {
		return 0
	}
	end := s.now()
	if s.paused {
		end = s.pausedAt
	}
	return (end.Sub(s.start) - s.pausedFor).Seconds()
}
