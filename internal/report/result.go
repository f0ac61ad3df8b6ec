package report

import (
	"time"

	"github.com/psantana5/es123/internal/logging"
)

// Result is the record of one timed child command. Set once, never change.
type Result struct {
	Label   string   `json:"label,omitempty" yaml:"label,omitempty"`
	Command []string `json:"command" yaml:"command"`
	PID     int      `json:"pid" yaml:"pid"`
	Clock   string   `json:"clock" yaml:"clock"`

	StartTime time.Time `json:"start_time" yaml:"start_time"`
	EndTime   time.Time `json:"end_time" yaml:"end_time"`

	// ElapsedSeconds is measured on Clock, the CPU fields on the child itself
	ElapsedSeconds   float64 `json:"elapsed_seconds" yaml:"elapsed_seconds"`
	UserCPUSeconds   float64 `json:"user_cpu_seconds" yaml:"user_cpu_seconds"`
	SystemCPUSeconds float64 `json:"system_cpu_seconds" yaml:"system_cpu_seconds"`

	ExitCode int `json:"exit_code" yaml:"exit_code"`
}

// NewResult creates a result for a finished command
func NewResult(label string, command []string, pid int, clock string, startTime, endTime time.Time, elapsed float64, exitCode int) *Result {
	return &Result{
		Label:          label,
		Command:        command,
		PID:            pid,
		Clock:          clock,
		StartTime:      startTime,
		EndTime:        endTime,
		ElapsedSeconds: elapsed,
		ExitCode:       exitCode,
	}
}

// SetChildCPU records CPU time consumed by the child
func (r *Result) SetChildCPU(user, system time.Duration) {
	r.UserCPUSeconds = user.Seconds()
	r.SystemCPUSeconds = system.Seconds()
}

// WallSeconds returns wall time between start and end
func (r *Result) WallSeconds() float64 {
	return r.EndTime.Sub(r.StartTime).Seconds()
}

// LogSummary emits a one-line summary at info level
func (r *Result) LogSummary(logger *logging.Logger) {
	logger.Info("command finished", map[string]interface{}{
		"label":       r.Label,
		"pid":         r.PID,
		"clock":       r.Clock,
		"elapsed_sec": r.ElapsedSeconds,
		"wall_sec":    r.WallSeconds(),
		"user_sec":    r.UserCPUSeconds,
		"sys_sec":     r.SystemCPUSeconds,
		"exit":        r.ExitCode,
	})
}
