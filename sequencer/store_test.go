package sequencer_test

import (
	"sync"
	"testing"

	"github.com/grooveseq/grooveseq"
	"github.com/grooveseq/grooveseq/sequencer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternStoreCells(t *testing.T) {
	s := sequencer.NewPatternStore(grooveseq.Pattern{})
	assert.False(t, s.Step(3, 7))
	s.SetStep(3, 7, true)
	assert.True(t, s.Step(3, 7))
	assert.False(t, s.Toggle(3, 7))
	assert.False(t, s.Step(3, 7))
	assert.True(t, s.Toggle(15, 31))

	// out of range accesses are ignored
	s.SetStep(-1, 0, true)
	s.SetStep(0, grooveseq.StepCount, true)
	s.SetStep(grooveseq.PadCount, 0, true)
	assert.False(t, s.Step(-1, 0))
	assert.False(t, s.Toggle(0, -1))
	p := s.Pattern()
	assert.Equal(t, 1, p.Count())
}

func TestPatternStoreReturnsCopies(t *testing.T) {
	var initial grooveseq.Pattern
	initial[0][0] = true
	s := sequencer.NewPatternStore(initial)
	p := s.Pattern()
	p[0][0] = false
	p[1][1] = true
	assert.True(t, s.Step(0, 0))
	assert.False(t, s.Step(1, 1))

	var snap grooveseq.Pattern
	s.Snapshot(&snap)
	assert.Equal(t, initial, snap)
}

func TestPatternStoreSnapshotIsNeverTorn(t *testing.T) {
	var full grooveseq.Pattern
	for pad := range full {
		for step := range full[pad] {
			full[pad][step] = true
		}
	}
	s := sequencer.NewPatternStore(grooveseq.Pattern{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 2000; i++ {
			if i%2 == 0 {
				s.Replace(full)
			} else {
				s.Replace(grooveseq.Pattern{})
			}
		}
	}()
	var snap grooveseq.Pattern
	for i := 0; i < 2000; i++ {
		s.Snapshot(&snap)
		n := snap.Count()
		require.True(t, n == 0 || n == grooveseq.PadCount*grooveseq.StepCount, "torn snapshot with %d hits", n)
	}
	wg.Wait()
}

func TestPatternStoreSnapshotDoesNotAllocate(t *testing.T) {
	s := sequencer.NewPatternStore(grooveseq.Pattern{})
	var snap grooveseq.Pattern
	allocs := testing.AllocsPerRun(100, func() { s.Snapshot(&snap) })
	assert.Zero(t, allocs)
}
