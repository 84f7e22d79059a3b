package debug

import (
	"log/slog"
	"sync"
	"time"
)

// Step is one measured section of a run.
type Step struct {
	Name    string
	Elapsed time.Duration
}

// Timings records how long each step of a run took. A step lasts from the
// previous Mark (or from NewTimings) to its own Mark.
type Timings struct {
	mu    sync.Mutex
	start time.Time
	last  time.Time
	steps []Step
	now   func() time.Time
}

// NewTimings starts the clock.
func NewTimings() *Timings {
	return newTimings(time.Now)
}

func newTimings(now func() time.Time) *Timings {
	t := now()
	return &Timings{start: t, last: t, now: now}
}

// Mark ends the current step under name and starts the next one.
func (t *Timings) Mark(name string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	t.steps = append(t.steps, Step{Name: name, Elapsed: now.Sub(t.last)})
	t.last = now
}

// Steps returns the marked steps in order.
func (t *Timings) Steps() []Step {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Step(nil), t.steps...)
}

// Total is the time from NewTimings to the last Mark.
func (t *Timings) Total() time.Duration {
	if t == nil {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last.Sub(t.start)
}

// LogValue renders the steps as a group, one duration per step name.
func (t *Timings) LogValue() slog.Value {
	steps := t.Steps()
	attrs := make([]slog.Attr, 0, len(steps))
	for _, s := range steps {
		attrs = append(attrs, slog.Duration(s.Name, s.Elapsed))
	}
	return slog.GroupValue(attrs...)
}
