//go:build !linux

package observe

import "time"

// processCPUTime is unavailable here, ProcessClock falls back to gopsutil
func processCPUTime() (time.Duration, bool) {
	return 0, false
}
