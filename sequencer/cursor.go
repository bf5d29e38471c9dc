package sequencer

import (
	"context"
	"math"
	"sync/atomic"
	"time"
)

// NotPlaying is the value of a StepCursor before the first step is played.
const NotPlaying = -1

// DefaultWatchInterval polls the cursor at roughly 30 Hz.
const DefaultWatchInterval = time.Second / 30

// StepCursor is the step most recently started by the Player, relative to the
// start of the cycle. The Player publishes it at most once per block; the
// value is only advisory (e.g. for drawing a playhead).
type StepCursor struct {
	step atomic.Int32
}

func NewStepCursor() *StepCursor {
	c := &StepCursor{}
	c.step.Store(NotPlaying)
	return c
}

// Load returns the current step, or NotPlaying.
func (c *StepCursor) Load() int {
	return int(c.step.Load())
}

func (c *StepCursor) publish(step int) {
	c.step.Store(int32(step))
}

// Watch polls the cursor every interval and calls changed with the new value
// whenever it differs from the value seen on the previous poll. The first poll
// always calls changed. Watch blocks until ctx is done.
func Watch(ctx context.Context, c *StepCursor, interval time.Duration, changed func(step int)) {
	if interval <= 0 {
		interval = DefaultWatchInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	last := math.MinInt
	for {
		if step := c.Load(); step != last {
			last = step
			changed(step)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
