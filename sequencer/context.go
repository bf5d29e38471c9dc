package sequencer

import (
	"math"
	"sync/atomic"

	"github.com/grooveseq/grooveseq"
)

type (
	// PlayerProcessContext is the context given to the Player when processing
	// a block. It tells where the host transport is at the start of the block.
	PlayerProcessContext interface {
		Transport() (transport grooveseq.Transport, ok bool)
		SampleRate() float64
		// FinishBlock is called after the Player has processed frames.
		FinishBlock(frames int)
	}

	// NullPlayerProcessContext has no transport; a Player given this context
	// only plays pad previews.
	NullPlayerProcessContext struct{}

	// FreeRunContext is a transport of its own, for running without a host.
	// Its position advances by the processed frames while playing. Play, Stop
	// and SetBPM can be called from any goroutine; everything else belongs to
	// the audio thread.
	FreeRunContext struct {
		sampleRate float64
		playing    atomic.Bool
		rewind     atomic.Bool
		bpm        atomic.Uint64
		ppq        float64
	}
)

func (NullPlayerProcessContext) Transport() (grooveseq.Transport, bool) {
	return grooveseq.Transport{}, false
}
func (NullPlayerProcessContext) SampleRate() float64 { return grooveseq.DefaultSampleRate }
func (NullPlayerProcessContext) FinishBlock(int)     {}

func NewFreeRunContext(sampleRate, bpm float64) *FreeRunContext {
	if sampleRate <= 0 {
		sampleRate = grooveseq.DefaultSampleRate
	}
	c := &FreeRunContext{sampleRate: sampleRate}
	c.SetBPM(bpm)
	return c
}

// Play starts the transport; if rewind is true, from the beginning.
func (c *FreeRunContext) Play(rewind bool) {
	if rewind {
		c.rewind.Store(true)
	}
	c.playing.Store(true)
}

func (c *FreeRunContext) Stop() { c.playing.Store(false) }

func (c *FreeRunContext) Playing() bool { return c.playing.Load() }

// SetBPM sets the tempo; non-positive values mean grooveseq.DefaultBPM.
func (c *FreeRunContext) SetBPM(bpm float64) {
	if bpm <= 0 {
		bpm = grooveseq.DefaultBPM
	}
	c.bpm.Store(math.Float64bits(bpm))
}

func (c *FreeRunContext) BPM() float64 { return math.Float64frombits(c.bpm.Load()) }

func (c *FreeRunContext) SampleRate() float64 { return c.sampleRate }

func (c *FreeRunContext) Transport() (grooveseq.Transport, bool) {
	if c.rewind.Swap(false) {
		c.ppq = 0
	}
	return grooveseq.Transport{
		BPM:                c.BPM(),
		PPQ:                c.ppq,
		Playing:            c.playing.Load(),
		TimeSigNumerator:   4,
		TimeSigDenominator: 4,
	}, true
}

func (c *FreeRunContext) FinishBlock(frames int) {
	if !c.playing.Load() {
		return
	}
	c.ppq += float64(frames) / (c.sampleRate * 60 / c.BPM())
}
