package grooveseq

import (
	"iter"
	"math"
)

const (
	DefaultBPM        = 120.0
	DefaultSampleRate = 44100.0
	DefaultBarLength  = 4.0  // in quarter notes
	StepPPQ           = 0.25 // one step is a 16th note
)

type (
	// Transport is the host reported musical position for the current block.
	// It is read once per block and never stored.
	Transport struct {
		BPM                float64 // tempo; non-positive values mean DefaultBPM
		PPQ                float64 // position in quarter notes at the first frame of the block
		Playing            bool
		TimeSigNumerator   int
		TimeSigDenominator int // non-positive values mean a bar of DefaultBarLength
	}

	// Timeline maps the musical time of one block to frames.
	Timeline struct {
		Frames            int
		SampleRate        float64
		Playing           bool
		SamplesPerQuarter float64
		BarLength         float64 // in quarter notes
		CycleLength       float64 // two bars, in quarter notes
		StartPPQ          float64
		EndPPQ            float64
		CycleStartPPQ     float64
	}

	// StepBoundary is a step that starts within the block.
	StepBoundary struct {
		Index   int     // absolute step index, floor(PPQ / StepPPQ)
		InCycle int     // step index relative to the start of the cycle
		PPQ     float64 // musical time of the step
		Offset  float64 // frames from the start of the block, [-0.5, Frames-0.5)
	}
)

// NewTimeline computes the timeline of a block of frames at the given sample
// rate.
func NewTimeline(tr Transport, frames int, sampleRate float64) Timeline {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	if frames < 0 {
		frames = 0
	}
	bpm := tr.BPM
	if bpm <= 0 {
		bpm = DefaultBPM
	}
	barLength := DefaultBarLength
	if tr.TimeSigDenominator > 0 {
		barLength = float64(tr.TimeSigNumerator) * 4 / float64(tr.TimeSigDenominator)
	}
	if barLength <= 0 {
		barLength = DefaultBarLength
	}
	t := Timeline{
		Frames:            frames,
		SampleRate:        sampleRate,
		Playing:           tr.Playing,
		SamplesPerQuarter: sampleRate * 60 / bpm,
		BarLength:         barLength,
		CycleLength:       barLength * 2,
		StartPPQ:          tr.PPQ,
	}
	t.EndPPQ = t.StartPPQ + float64(frames)/t.SamplesPerQuarter
	t.CycleStartPPQ = math.Floor(t.StartPPQ/t.CycleLength) * t.CycleLength
	return t
}

// StepSamples returns the duration of one step in frames.
func (t Timeline) StepSamples() float64 {
	return t.SamplesPerQuarter * StepPPQ
}

// StepRange returns the absolute indices of the first and last step that can
// start within the block. Use Boundary to check each of them.
func (t Timeline) StepRange() (first, last int) {
	return int(math.Floor(t.StartPPQ / StepPPQ)), int(math.Floor(t.EndPPQ / StepPPQ))
}

// Boundary returns the boundary of the absolute step index, with ok false if
// the step does not start within the block or the transport is not playing.
func (t Timeline) Boundary(step int) (b StepBoundary, ok bool) {
	if !t.Playing || t.Frames == 0 {
		return StepBoundary{}, false
	}
	ppq := float64(step) * StepPPQ
	offset := (ppq - t.StartPPQ) * t.SamplesPerQuarter
	// membership is decided on the nearest frame, so that a step landing on
	// the edge of two blocks belongs to exactly one of them even when the
	// host position carries rounding noise
	if frame := math.Floor(offset + 0.5); frame < 0 || frame >= float64(t.Frames) {
		return StepBoundary{}, false
	}
	inCycle := int(math.Floor((ppq-t.CycleStartPPQ)/StepPPQ)) % StepCount
	if inCycle < 0 { // floating point noise right before the cycle start
		return StepBoundary{}, false
	}
	return StepBoundary{Index: step, InCycle: inCycle, PPQ: ppq, Offset: offset}, true
}

// Steps iterates over the step boundaries of the block in ascending order.
// Nothing is yielded if the transport is not playing. The audio thread uses
// StepRange and Boundary directly.
func (t Timeline) Steps() iter.Seq[StepBoundary] {
	return func(yield func(StepBoundary) bool) {
		first, last := t.StepRange()
		for step := first; step <= last; step++ {
			if b, ok := t.Boundary(step); ok && !yield(b) {
				return
			}
		}
	}
}
