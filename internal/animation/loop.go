package animation

import (
	"context"
	"fmt"
	"time"
)

// FrameID identifies a pending frame request. Zero is never issued.
type FrameID uint64

// Scheduler hands out per-frame callbacks, like a display's animation
// frame hook.
type Scheduler interface {
	RequestFrame(fn func()) FrameID
	CancelFrame(id FrameID)
}

const eventQueueSize = 64

// Loop is a single-goroutine host for one viewer. Posted events and frame
// callbacks all run on the goroutine executing Run, so the state they touch
// needs no locking. RequestFrame and CancelFrame must only be called from
// that goroutine; Post is safe from anywhere.
type Loop struct {
	interval time.Duration
	events   chan func()
	done     chan struct{}

	next    FrameID
	pending map[FrameID]func()
	order   []FrameID
	running map[FrameID]func()
}

// NewLoop returns a loop ticking hz times per second.
func NewLoop(hz int) (*Loop, error) {
	if hz <= 0 {
		return nil, fmt.Errorf("invalid frame rate: %d", hz)
	}
	return &Loop{
		interval: time.Second / time.Duration(hz),
		events:   make(chan func(), eventQueueSize),
		done:     make(chan struct{}),
		pending:  make(map[FrameID]func()),
	}, nil
}

// RequestFrame queues fn for the next tick.
func (l *Loop) RequestFrame(fn func()) FrameID {
	l.next++
	l.pending[l.next] = fn
	l.order = append(l.order, l.next)
	return l.next
}

// CancelFrame drops a queued callback, including one due later in the
// tick that is currently running.
func (l *Loop) CancelFrame(id FrameID) {
	delete(l.pending, id)
	if l.running != nil {
		delete(l.running, id)
	}
}

// Pending returns the number of callbacks waiting for the next tick.
func (l *Loop) Pending() int {
	return len(l.pending)
}

// Post queues fn to run on the loop goroutine. It returns false once the
// loop has stopped.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.events <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Run processes events and ticks until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)

	t := time.NewTicker(l.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.events:
			fn()
		case <-t.C:
			l.Tick()
		}
	}
}

// Tick runs every callback requested before this call, in request order.
// Callbacks requested while the tick runs wait for the next one.
func (l *Loop) Tick() {
	l.running = l.pending
	order := l.order
	l.pending = make(map[FrameID]func())
	l.order = nil

	for _, id := range order {
		fn, ok := l.running[id]
		if !ok {
			continue
		}
		delete(l.running, id)
		fn()
	}
	l.running = nil
}
