// Package clock runs game time timers on the game loop. Nothing here starts a
// goroutine: time only moves when Advance is called.
package clock

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Timer is a loop or a one shot delay owned by a Clock.
type Timer struct {
	interval time.Duration
	elapsed  time.Duration
	loop     bool
	stopped  bool
	fn       func()
	progress *gween.Tween
}

// Stop prevents any further firing. Stopping twice is harmless.
func (t *Timer) Stop() {
	t.stopped = true
}

func (t *Timer) Stopped() bool {
	return t.stopped
}

// Progress runs from 0 to 1 over a one shot delay, for fades and countdowns.
func (t *Timer) Progress() float32 {
	if t.progress == nil {
		if t.stopped {
			return 1
		}
		return 0
	}
	v, _ := t.progress.Update(0)
	return v
}

// Clock is the single threaded game time source.
type Clock struct {
	now    time.Duration
	timers []*Timer
}

func New() *Clock {
	return &Clock{}
}

func (c *Clock) Now() time.Duration {
	return c.now
}

// Loop fires fn every interval of game time until stopped.
func (c *Clock) Loop(interval time.Duration, fn func()) *Timer {
	if interval <= 0 {
		panic("clock: loop interval must be positive")
	}
	t := &Timer{interval: interval, loop: true, fn: fn}
	c.timers = append(c.timers, t)
	return t
}

// After fires fn once, delay from now.
func (c *Clock) After(delay time.Duration, fn func()) *Timer {
	t := &Timer{interval: delay, fn: fn}
	if delay > 0 {
		t.progress = gween.New(0, 1, float32(delay.Seconds()), ease.Linear)
	}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves game time forward and fires due timers in the order they were
// created. A loop that is due several times within dt fires once per interval.
func (c *Clock) Advance(dt time.Duration) {
	c.now += dt
	due := c.timers
	for _, t := range due {
		if t.stopped {
			continue
		}
		t.elapsed += dt
		if t.progress != nil {
			t.progress.Update(float32(dt.Seconds()))
		}
		for !t.stopped && t.elapsed >= t.interval {
			if !t.loop {
				t.stopped = true
				t.fn()
				break
			}
			t.elapsed -= t.interval
			t.fn()
		}
	}
	c.compact()
}

// Pending counts timers that can still fire.
func (c *Clock) Pending() int {
	n := 0
	for _, t := range c.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

func (c *Clock) compact() {
	live := c.timers[:0]
	for _, t := range c.timers {
		if !t.stopped {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(c.timers); i++ {
		c.timers[i] = nil
	}
	c.timers = live
}
