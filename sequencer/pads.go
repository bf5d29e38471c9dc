package sequencer

import (
	"sync"
	"sync/atomic"

	"github.com/grooveseq/grooveseq"
)

// PadTable tells which pads have something to play, as published by whoever
// manages the sounds (a sampler, a MIDI output mapping...). The sequencer
// never sees the sounds themselves; only an armed flag and a display name per
// pad.
type PadTable struct {
	armed [grooveseq.PadCount]atomic.Bool
	mu    sync.Mutex
	names [grooveseq.PadCount]string
}

// Arm marks pad as playable, with a display name. Pads out of range are
// ignored.
func (t *PadTable) Arm(pad int, name string) {
	if pad < 0 || pad >= grooveseq.PadCount {
		return
	}
	t.mu.Lock()
	t.names[pad] = name
	t.mu.Unlock()
	t.armed[pad].Store(true)
}

func (t *PadTable) Disarm(pad int) {
	if pad < 0 || pad >= grooveseq.PadCount {
		return
	}
	t.armed[pad].Store(false)
	t.mu.Lock()
	t.names[pad] = ""
	t.mu.Unlock()
}

// Armed returns false for pads out of range.
func (t *PadTable) Armed(pad int) bool {
	return pad >= 0 && pad < grooveseq.PadCount && t.armed[pad].Load()
}

// Name returns "" for pads out of range or not armed.
func (t *PadTable) Name(pad int) string {
	if pad < 0 || pad >= grooveseq.PadCount {
		return ""
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.names[pad]
}

// Mask returns the armed pads.
func (t *PadTable) Mask() grooveseq.PadMask {
	var m grooveseq.PadMask
	for i := range m {
		m[i] = t.armed[i].Load()
	}
	return m
}
