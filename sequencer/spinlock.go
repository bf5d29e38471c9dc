package sequencer

import (
	"runtime"
	"sync/atomic"
)

// SpinLock is a mutual exclusion lock for very short critical sections that
// are shared with the audio thread. Unlike sync.Mutex, a contended Lock never
// parks the goroutine; it spins and yields the processor until the lock is
// free. The zero value is an unlocked SpinLock.
type SpinLock struct {
	locked atomic.Bool
}

const spinsBeforeYield = 64

func (l *SpinLock) Lock() {
	for spins := 0; !l.locked.CompareAndSwap(false, true); spins++ {
		if spins >= spinsBeforeYield {
			runtime.Gosched()
			spins = 0
		}
	}
}

// TryLock acquires the lock if it is free and reports whether it did.
func (l *SpinLock) TryLock() bool {
	return l.locked.CompareAndSwap(false, true)
}

func (l *SpinLock) Unlock() {
	l.locked.Store(false)
}
