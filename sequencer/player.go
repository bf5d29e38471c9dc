package sequencer

import (
	"time"

	"github.com/grooveseq/grooveseq"
)

type (
	// Player is the real-time half of the sequencer, run in the audio thread.
	// Every block, it reads the transport from the process context, takes a
	// snapshot of the pattern and schedules the note events of the block.
	// Process never blocks (beyond the very short snapshot and preview
	// critical sections) and, once the event buffer has grown to its working
	// size, does not allocate.
	Player struct {
		store     *PatternStore
		params    *Params
		cursor    *StepCursor
		preview   *PreviewQueue
		broker    *Broker
		scheduler *grooveseq.Scheduler

		snapshot grooveseq.Pattern
		state    playerState
		forward  bool // send the events of each block to broker.ToOutput
	}

	playerState int
)

const (
	playerIdle playerState = iota
	playerRunning
)

var outputOverrunAlert = Alert{
	Name:     "OutputOverrun",
	Priority: Warning,
	Message:  "MIDI output is not keeping up, events of a block were dropped",
	Duration: defaultAlertDuration,
}

// Process schedules the note events of a block of frames, appending them to
// events, and returns the extended slice. Pad previews come first, at frame
// 0, followed by the pattern events in ascending order of frame.
func (p *Player) Process(frames int, context PlayerProcessContext, events []grooveseq.NoteEvent) []grooveseq.NoteEvent {
	var blockStart time.Time
	if p.forward {
		blockStart = time.Now()
	}
	begin := len(events)
	events = p.preview.drain(events)
	transport, ok := context.Transport()
	p.setState(ok && transport.Playing)
	if p.state == playerRunning {
		tl := grooveseq.NewTimeline(transport, frames, context.SampleRate())
		p.store.Snapshot(&p.snapshot)
		var first int
		events, first = p.scheduler.Schedule(tl, &p.snapshot, p.params.Groove(), events)
		if first >= 0 {
			p.cursor.publish(first)
		}
	}
	if p.forward && len(events) > begin {
		p.sendToOutput(blockStart, context.SampleRate(), events[begin:])
	}
	context.FinishBlock(frames)
	return events
}

// Trigger queues a trigger of the pad for the next block, like a preview from
// the Model but from the audio thread, e.g. for notes received from the host.
// Unlike previews, triggers do not check whether the pad is armed.
func (p *Player) Trigger(pad int) bool {
	return p.preview.Push(pad)
}

// Running reports whether the last processed block had the transport playing.
func (p *Player) Running() bool {
	return p.state == playerRunning
}

// SetForwarding controls whether the events of each block are also sent to
// the MIDI output goroutine. It should be called before the audio thread is
// started.
func (p *Player) SetForwarding(forward bool) {
	p.forward = forward
}

func (p *Player) setState(playing bool) {
	newState := playerIdle
	if playing {
		newState = playerRunning
	}
	if newState == p.state {
		return
	}
	p.state = newState
	TrySend(p.broker.ToModel, MsgToModel{HasPlaying: true, Playing: playing})
}

func (p *Player) sendToOutput(blockStart time.Time, sampleRate float64, events []grooveseq.NoteEvent) {
	buf := p.broker.GetEventBuffer()
	*buf = append(*buf, events...)
	if !TrySend(p.broker.ToOutput, MsgToOutput{Time: blockStart, SampleRate: sampleRate, Events: buf}) {
		p.broker.PutEventBuffer(buf)
		TrySend(p.broker.ToModel, MsgToModel{HasAlert: true, Alert: outputOverrunAlert})
	}
}
