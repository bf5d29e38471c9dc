// Package gomidi connects the sequencer to MIDI using gitlab.com/gomidi/midi:
// real-time output ports (with cgo) and Standard MIDI File export.
package gomidi

import (
	"cmp"
	"fmt"
	"io"
	"slices"

	"github.com/grooveseq/grooveseq"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	TicksPerQuarter = 960
	ticksPerStep    = TicksPerQuarter / 4
)

// SMFOptions control how a pattern is rendered to a MIDI file.
type SMFOptions struct {
	BPM          float64 // non-positive values mean grooveseq.DefaultBPM
	Channel      uint8
	Cycles       int     // how many times the two bar cycle is repeated, at least 1
	SwingPercent float32 // 0..100
	Velocity     byte    // 0 means the velocity of an unvaried hit
}

// WriteSMF writes the pattern as a single track, format 0 MIDI file. Each hit
// is a note-on of PadNote(pad), released half a step later.
func WriteSMF(w io.Writer, p *grooveseq.Pattern, opts SMFOptions) error {
	if opts.BPM <= 0 {
		opts.BPM = grooveseq.DefaultBPM
	}
	opts.Cycles = max(opts.Cycles, 1)
	if opts.Velocity == 0 {
		opts.Velocity = grooveseq.VelocityToMIDI(grooveseq.BaseVelocity)
	}
	opts.Velocity = min(opts.Velocity, 127)
	ch := opts.Channel & 0x0f
	swing := uint32(float32(ticksPerStep) * min(max(opts.SwingPercent, 0), 100) / 100 * 0.5)

	type note struct {
		tick uint32
		msg  midi.Message
	}
	var notes []note
	for cycle := 0; cycle < opts.Cycles; cycle++ {
		for step := 0; step < grooveseq.StepCount; step++ {
			tick := uint32((cycle*grooveseq.StepCount + step) * ticksPerStep)
			if step%2 == 1 {
				tick += swing
			}
			for pad := 0; pad < grooveseq.PadCount; pad++ {
				if !p[pad][step] {
					continue
				}
				key := grooveseq.PadNote(pad)
				notes = append(notes,
					note{tick, midi.NoteOn(ch, key, opts.Velocity)},
					note{tick + ticksPerStep/2, midi.NoteOff(ch, key)})
			}
		}
	}
	// note-offs of a step can come after the note-ons of the next swung step
	slices.SortStableFunc(notes, func(a, b note) int { return cmp.Compare(a.tick, b.tick) })

	var track smf.Track
	track.Add(0, smf.MetaTrackSequenceName("grooveseq"))
	track.Add(0, smf.MetaMeter(4, 4))
	track.Add(0, smf.MetaTempo(opts.BPM))
	var last uint32
	for _, n := range notes {
		track.Add(n.tick-last, n.msg)
		last = n.tick
	}
	end := uint32(opts.Cycles * grooveseq.StepCount * ticksPerStep)
	track.Close(end - min(last, end))

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(TicksPerQuarter)
	if err := s.Add(track); err != nil {
		return fmt.Errorf("adding the track failed: %w", err)
	}
	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("writing the MIDI file failed: %w", err)
	}
	return nil
}
