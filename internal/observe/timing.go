package observe

// A timer measures. It never fails the caller.
// If the clock cannot be read, the reading is zero.

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/psantana5/es123/internal/console"
)

// Timer brackets an interval on a Clock.
// The zero start mark means "measure from the clock's zero".
type Timer struct {
	mu    sync.Mutex
	clock Clock
	start time.Duration
}

// NewTimer creates an unstarted timer. A nil clock selects ProcessClock.
func NewTimer(clock Clock) *Timer {
	if clock == nil {
		clock = NewProcessClock()
	}
	return &Timer{clock: clock}
}

// Start overwrites the start mark with the current clock reading
func (t *Timer) Start() {
	now := t.clock.Now()

	t.mu.Lock()
	t.start = now
	t.mu.Unlock()
}

// Elapsed returns clock reading minus the start mark
func (t *Timer) Elapsed() time.Duration {
	now := t.clock.Now()

	t.mu.Lock()
	defer t.mu.Unlock()
	return now - t.start
}

// ElapsedSeconds returns Elapsed as a real number of seconds
func (t *Timer) ElapsedSeconds() float64 {
	return t.Elapsed().Seconds()
}

// Report writes "elapsed time: <seconds> seconds" as one line
func (t *Timer) Report(w io.Writer) error {
	return WriteElapsed(w, t.ElapsedSeconds())
}

// WriteElapsed renders an elapsed value in report format
func WriteElapsed(w io.Writer, seconds float64) error {
	_, err := fmt.Fprintf(w, "elapsed time: %s seconds\n", console.FormatFloat(seconds))
	return err
}
