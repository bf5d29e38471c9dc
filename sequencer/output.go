package sequencer

import (
	"time"

	"github.com/grooveseq/grooveseq"
)

// NoteSender is where RunOutput sends the note events, e.g. a MIDI output
// port.
type NoteSender interface {
	NoteOn(pad int, note, velocity byte) error
}

// RunOutput forwards the blocks the Player sends to broker.ToOutput to sender,
// sending each event latency after the wall clock time its frame corresponds
// to. RunOutput returns when something is sent to broker.CloseOutput, closing
// broker.FinishedOutput. Errors of the sender are reported to onError, which
// may be nil.
func RunOutput(broker *Broker, sender NoteSender, latency time.Duration, onError func(error)) {
	defer close(broker.FinishedOutput)
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	for {
		select {
		case <-broker.CloseOutput:
			return
		case msg := <-broker.ToOutput:
			if !sendBlock(broker, sender, latency, msg, timer, onError) {
				broker.PutEventBuffer(msg.Events)
				return
			}
			broker.PutEventBuffer(msg.Events)
		}
	}
}

// sendBlock returns false if closing was requested while waiting.
func sendBlock(broker *Broker, sender NoteSender, latency time.Duration, msg MsgToOutput, timer *time.Timer, onError func(error)) bool {
	sampleRate := msg.SampleRate
	if sampleRate <= 0 {
		sampleRate = grooveseq.DefaultSampleRate
	}
	for _, e := range *msg.Events {
		at := msg.Time.Add(latency + time.Duration(float64(e.Frame)/sampleRate*float64(time.Second)))
		if wait := time.Until(at); wait > 0 {
			timer.Reset(wait)
			select {
			case <-broker.CloseOutput:
				timer.Stop()
				return false
			case <-timer.C:
			}
		}
		if err := sender.NoteOn(e.Pad, e.Note, e.Velocity); err != nil && onError != nil {
			onError(err)
		}
	}
	return true
}
