package sequencer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepCursorStartsNotPlaying(t *testing.T) {
	c := NewStepCursor()
	assert.Equal(t, NotPlaying, c.Load())
	c.publish(12)
	assert.Equal(t, 12, c.Load())
}

func TestWatchReportsOnlyChanges(t *testing.T) {
	c := NewStepCursor()
	ctx, cancel := context.WithCancel(context.Background())
	seen := make(chan int, 16)
	done := make(chan struct{})
	go func() {
		Watch(ctx, c, time.Millisecond, func(step int) { seen <- step })
		close(done)
	}()
	receive := func() int {
		select {
		case v := <-seen:
			return v
		case <-time.After(2 * time.Second):
			require.FailNow(t, "watch did not report a change")
		}
		return 0
	}
	assert.Equal(t, NotPlaying, receive(), "the first poll should always report")
	c.publish(5)
	assert.Equal(t, 5, receive())
	time.Sleep(10 * time.Millisecond)
	c.publish(6)
	assert.Equal(t, 6, receive(), "an unchanged cursor should not be reported")
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not return after the context was cancelled")
	}
}
