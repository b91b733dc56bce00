package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickReportsRates(t *testing.T) {
	now := time.Unix(100, 0)
	p := NewProfiler(WithClock(func() time.Time { return now }), WithInterval(2*time.Second), WithQuiet())

	for i := 0; i < 10; i++ {
		now = now.Add(100 * time.Millisecond)
		_, ok := p.Tick(i%2 == 0)
		require.False(t, ok, "tick %d", i)
	}

	now = now.Add(time.Second)
	stats, ok := p.Tick(false)
	require.True(t, ok)
	assert.InDelta(t, 2.5, stats.Redraws, 1e-9)
	assert.InDelta(t, 5.5, stats.Wakeups, 1e-9)
	assert.Positive(t, stats.SysMB)
}

func TestTickResetsAfterInterval(t *testing.T) {
	now := time.Unix(100, 0)
	p := NewProfiler(WithClock(func() time.Time { return now }), WithQuiet())

	now = now.Add(time.Second)
	_, ok := p.Tick(true)
	require.True(t, ok)

	now = now.Add(500 * time.Millisecond)
	_, ok = p.Tick(true)
	assert.False(t, ok)

	now = now.Add(500 * time.Millisecond)
	stats, ok := p.Tick(false)
	require.True(t, ok)
	assert.InDelta(t, 1, stats.Redraws, 1e-9)
	assert.InDelta(t, 2, stats.Wakeups, 1e-9)
}

func TestIntervalIgnoresNonPositive(t *testing.T) {
	now := time.Unix(0, 0)
	p := NewProfiler(WithClock(func() time.Time { return now }), WithInterval(0), WithQuiet())

	now = now.Add(900 * time.Millisecond)
	_, ok := p.Tick(true)
	assert.False(t, ok)
}
