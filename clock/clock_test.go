package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoopFiresEveryInterval(t *testing.T) {
	c := New()
	n := 0
	c.Loop(100*time.Millisecond, func() { n++ })

	c.Advance(50 * time.Millisecond)
	assert.Equal(t, 0, n)
	c.Advance(50 * time.Millisecond)
	assert.Equal(t, 1, n)
	c.Advance(250 * time.Millisecond)
	assert.Equal(t, 3, n)
	assert.Equal(t, 350*time.Millisecond, c.Now())
}

func TestLoopStopFromInsideCallback(t *testing.T) {
	c := New()
	n := 0
	var timer *Timer
	timer = c.Loop(10*time.Millisecond, func() {
		n++
		if n == 2 {
			timer.Stop()
		}
	})

	c.Advance(time.Second)
	assert.Equal(t, 2, n)
	assert.True(t, timer.Stopped())
	assert.Equal(t, 0, c.Pending())
}

func TestAfterFiresOnce(t *testing.T) {
	c := New()
	n := 0
	timer := c.After(time.Second, func() { n++ })

	c.Advance(999 * time.Millisecond)
	assert.Equal(t, 0, n)
	c.Advance(time.Millisecond)
	assert.Equal(t, 1, n)
	c.Advance(5 * time.Second)
	assert.Equal(t, 1, n)
	assert.True(t, timer.Stopped())
}

func TestAfterProgress(t *testing.T) {
	c := New()
	timer := c.After(time.Second, func() {})

	assert.InDelta(t, 0, timer.Progress(), 1e-6)
	c.Advance(500 * time.Millisecond)
	assert.InDelta(t, 0.5, timer.Progress(), 1e-3)
	c.Advance(500 * time.Millisecond)
	assert.InDelta(t, 1, timer.Progress(), 1e-6)
}

func TestTimerCreatedDuringAdvanceStartsNextFrame(t *testing.T) {
	c := New()
	fired := false
	c.After(10*time.Millisecond, func() {
		c.After(10*time.Millisecond, func() { fired = true })
	})

	c.Advance(20 * time.Millisecond)
	assert.False(t, fired)
	c.Advance(10 * time.Millisecond)
	assert.True(t, fired)
}

func TestZeroDelay(t *testing.T) {
	c := New()
	timer := c.After(0, func() {})
	assert.Equal(t, float32(0), timer.Progress())
	c.Advance(0)
	assert.True(t, timer.Stopped())
	assert.Equal(t, float32(1), timer.Progress())
}
