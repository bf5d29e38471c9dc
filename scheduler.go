package grooveseq

import (
	"math"
	"math/rand/v2"
)

const (
	BaseVelocity = 0.78
	MinVelocity  = 0.05
)

type (
	// Groove holds the timing and dynamics parameters read every block.
	Groove struct {
		SwingPercent   float32 // 0..100, delay of the odd steps as percentage of half a step
		HumanizeMs     float32 // maximum random timing offset of each note, in milliseconds
		VelocityRandom float32 // 0..1, amount of random velocity variation
	}

	// Scheduler turns the step boundaries of a block into note events. The
	// random source used for humanization and velocity variation is owned by
	// the Scheduler, so the Scheduler should be used by only one goroutine:
	// the audio thread.
	Scheduler struct {
		rng *rand.Rand
	}
)

// NewScheduler creates a Scheduler with its own random source.
func NewScheduler(seed1, seed2 uint64) *Scheduler {
	return &Scheduler{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

// Schedule appends the note events of the block to events and returns the
// extended slice. The events are in ascending order of Frame. first is the
// in-cycle index of the earliest step boundary of the block, or -1 if no step
// starts within the block. Schedule does not allocate as long as events has
// enough capacity.
func (s *Scheduler) Schedule(tl Timeline, pat *Pattern, g Groove, events []NoteEvent) (ret []NoteEvent, first int) {
	first = -1
	if !tl.Playing {
		return events, first
	}
	begin := len(events)
	stepSamples := tl.StepSamples()
	swingSamples := stepSamples * (float64(g.SwingPercent) / 100) * 0.5
	humanizeSamples := float64(g.HumanizeMs) / 1000 * tl.SampleRate
	firstStep, lastStep := tl.StepRange()
	for step := firstStep; step <= lastStep; step++ {
		b, ok := tl.Boundary(step)
		if !ok {
			continue
		}
		if first < 0 {
			first = b.InCycle
		}
		offset := b.Offset
		if b.InCycle%2 == 1 {
			offset += swingSamples
		}
		for pad := 0; pad < PadCount; pad++ {
			if !pat[pad][b.InCycle] {
				continue
			}
			eventOffset := offset
			if humanizeSamples > 0 {
				eventOffset += (s.rng.Float64()*2 - 1) * humanizeSamples
			}
			frame := min(max(int(math.Round(eventOffset)), 0), tl.Frames-1)
			events = append(events, NoteEvent{
				Frame:    frame,
				Pad:      pad,
				Note:     PadNote(pad),
				Velocity: s.velocity(g.VelocityRandom),
			})
		}
	}
	sortByFrame(events[begin:])
	return events, first
}

func (s *Scheduler) velocity(random float32) byte {
	v := BaseVelocity + (s.rng.Float32()*2-1)*float32(random*0.5)
	v = min(max(v, MinVelocity), 1)
	return VelocityToMIDI(v)
}

// VelocityToMIDI converts a velocity in [0,1] to a 7-bit MIDI velocity, never
// returning 0 (which would be a note-off).
func VelocityToMIDI(v float32) byte {
	return byte(min(max(int(math.Round(float64(v*127))), 1), 127))
}

// sortByFrame is a stable insertion sort; humanization only swaps nearby
// events so this is usually a single pass.
func sortByFrame(events []NoteEvent) {
	for i := 1; i < len(events); i++ {
		for j := i; j > 0 && events[j].Frame < events[j-1].Frame; j-- {
			events[j], events[j-1] = events[j-1], events[j]
		}
	}
}
