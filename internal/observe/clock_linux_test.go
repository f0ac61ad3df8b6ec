package observe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessClockResolvesShortCPUWork(t *testing.T) {
	_, ok := processCPUTime()
	require.True(t, ok, "CLOCK_PROCESS_CPUTIME_ID should be readable on linux")

	clock := NewProcessClock()
	before := clock.Now()
	spin(2 * time.Millisecond)
	delta := clock.Now() - before

	assert.Greater(t, delta, time.Duration(0))
	assert.Less(t, delta, 10*time.Millisecond)
}

func TestTimerAroundShortCPUWorkIsSubTick(t *testing.T) {
	timer := NewTimer(NewProcessClock())
	timer.Start()
	spin(3 * time.Millisecond)
	elapsed := timer.ElapsedSeconds()

	assert.Greater(t, elapsed, 0.0)
	assert.Less(t, elapsed, 0.01)
}
