package sequencer

import "github.com/grooveseq/grooveseq"

const previewCapacity = 64

// PreviewQueue holds pad triggers requested by the control surface. The
// Player drains the queue at the start of every block, emitting the triggers
// at the first frame; a trigger is delivered at most once and the queue never
// carries anything over to the next block.
type PreviewQueue struct {
	lock SpinLock
	pads [previewCapacity]int8
	n    int
}

// Push queues a trigger of pad and reports whether it was accepted. Pads out
// of range, and pushes to a full queue, are dropped.
func (q *PreviewQueue) Push(pad int) bool {
	if pad < 0 || pad >= grooveseq.PadCount {
		return false
	}
	q.lock.Lock()
	defer q.lock.Unlock()
	if q.n >= len(q.pads) {
		return false
	}
	q.pads[q.n] = int8(pad)
	q.n++
	return true
}

// Len returns the number of queued triggers.
func (q *PreviewQueue) Len() int {
	q.lock.Lock()
	defer q.lock.Unlock()
	return q.n
}

// drain appends the queued triggers to events as note-ons at frame 0 and
// empties the queue.
func (q *PreviewQueue) drain(events []grooveseq.NoteEvent) []grooveseq.NoteEvent {
	q.lock.Lock()
	for _, pad := range q.pads[:q.n] {
		events = append(events, grooveseq.NoteEvent{
			Frame:    0,
			Pad:      int(pad),
			Note:     grooveseq.PadNote(int(pad)),
			Velocity: grooveseq.PreviewVelocity,
		})
	}
	q.n = 0
	q.lock.Unlock()
	return events
}
