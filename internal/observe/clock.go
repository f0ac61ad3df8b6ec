package observe

// A timer measures. It never fails the caller.
// If the clock cannot be read, the reading is zero.

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// processStart anchors WallClock so an unstarted timer reports time since process start
var processStart = time.Now()

// Clock returns a reading in ticks of one nanosecond since the clock's zero
type Clock interface {
	Now() time.Duration
}

// ProcessClock reads the CPU time (user+system) consumed by this process.
// This is what a C clock() call measures. The per-process CPU clock is read
// first, /proc accounting through gopsutil (10ms ticks) only where it is missing.
type ProcessClock struct {
	once sync.Once
	proc *process.Process
}

// NewProcessClock creates a clock bound to the current PID
func NewProcessClock() *ProcessClock {
	return &ProcessClock{}
}

// Now returns CPU time consumed so far, or 0 if it cannot be read
func (c *ProcessClock) Now() time.Duration {
	if d, ok := processCPUTime(); ok {
		return d
	}

	return c.procfsTime()
}

// procfsTime reads user+system time from the OS process table via gopsutil
func (c *ProcessClock) procfsTime() time.Duration {
	c.once.Do(func() {
		p, err := process.NewProcess(int32(os.Getpid()))
		if err == nil {
			c.proc = p
		}
	})
	if c.proc == nil {
		return 0
	}

	times, err := c.proc.Times()
	if err != nil {
		return 0
	}
	return time.Duration((times.User + times.System) * float64(time.Second))
}

// WallClock reads monotonic wall time since process start
type WallClock struct{}

// Now returns time elapsed since process start
func (WallClock) Now() time.Duration {
	return time.Since(processStart)
}

// ManualClock only moves when told to
type ManualClock struct {
	mu  sync.Mutex
	now time.Duration
}

// Now returns the current manual reading
func (c *ManualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += d
}

// ParseClock maps a config value to a clock.
// "cpu" and "process" select ProcessClock, "wall" selects WallClock.
func ParseClock(name string) (Clock, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "cpu", "process":
		return NewProcessClock(), nil
	case "wall":
		return WallClock{}, nil
	default:
		return nil, fmt.Errorf("unknown clock %q (want cpu or wall)", name)
	}
}
