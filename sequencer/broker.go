package sequencer

import (
	"sync"
	"time"

	"github.com/grooveseq/grooveseq"
)

type (
	// Broker carries the messages that are not shared through the stores:
	// player notifications to the Model, and the events of each block to the
	// MIDI output goroutine. All sends from the Player are non-blocking, so
	// that the audio thread cannot end up waiting for a slow consumer.
	//
	// For closing the output goroutine, the broker has CloseOutput and
	// FinishedOutput. CloseOutput has a capacity of 1, so you can always send
	// an empty struct to it without blocking; if it is already full, the
	// goroutine is already closing. FinishedOutput is closed when the
	// goroutine has finished, so you can wait for it, combined with a timeout:
	//    select {
	//      case <-FinishedOutput:
	//      case <-time.After(3 * time.Second):
	//    }
	Broker struct {
		ToModel  chan MsgToModel
		ToOutput chan MsgToOutput

		CloseOutput    chan struct{}
		FinishedOutput chan struct{}

		eventPool sync.Pool
	}

	// MsgToModel is a message from the Player to the Model. The fields are not
	// boxed, so sending one does not allocate.
	MsgToModel struct {
		HasPlaying bool
		Playing    bool

		HasAlert bool
		Alert    Alert
	}

	// MsgToOutput are the events of one block. Time is the wall clock time
	// when the block started rendering; the frames of the events are relative
	// to it. Events is borrowed from the broker and should be returned with
	// PutEventBuffer when done.
	MsgToOutput struct {
		Time       time.Time
		SampleRate float64
		Events     *[]grooveseq.NoteEvent
	}
)

func NewBroker() *Broker {
	return &Broker{
		ToModel:        make(chan MsgToModel, 1024),
		ToOutput:       make(chan MsgToOutput, 256),
		CloseOutput:    make(chan struct{}, 1),
		FinishedOutput: make(chan struct{}),
		eventPool: sync.Pool{New: func() any {
			buf := make([]grooveseq.NoteEvent, 0, 256)
			return &buf
		}},
	}
}

// GetEventBuffer returns an empty event buffer from the pool. After use, the
// buffer should be returned with PutEventBuffer.
func (b *Broker) GetEventBuffer() *[]grooveseq.NoteEvent {
	return b.eventPool.Get().(*[]grooveseq.NoteEvent)
}

// PutEventBuffer returns a buffer to the pool, resetting its length but
// keeping its capacity.
func (b *Broker) PutEventBuffer(buf *[]grooveseq.NoteEvent) {
	*buf = (*buf)[:0]
	b.eventPool.Put(buf)
}

// TrySend sends v to c if it is not full. It never blocks and reports
// whether the value was sent.
func TrySend[T any](c chan<- T, v T) bool {
	select {
	case c <- v:
	default:
		return false
	}
	return true
}

// TimeoutReceive blocks until a value is received from c, or t has passed. ok
// is false if the timeout occurred or c was closed.
func TimeoutReceive[T any](c <-chan T, t time.Duration) (v T, ok bool) {
	select {
	case v, ok = <-c:
		return v, ok
	case <-time.After(t):
		return v, false
	}
}
