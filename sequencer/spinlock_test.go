package sequencer_test

import (
	"sync"
	"testing"

	"github.com/grooveseq/grooveseq/sequencer"
	"github.com/stretchr/testify/assert"
)

func TestSpinLockMutualExclusion(t *testing.T) {
	var (
		lock    sequencer.SpinLock
		counter int
		wg      sync.WaitGroup
	)
	const workers, rounds = 8, 2000
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				lock.Lock()
				counter++
				lock.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, workers*rounds, counter)
}

func TestSpinLockTryLock(t *testing.T) {
	var lock sequencer.SpinLock
	assert.True(t, lock.TryLock())
	assert.False(t, lock.TryLock(), "a held lock should not be acquired again")
	lock.Unlock()
	assert.True(t, lock.TryLock())
}
