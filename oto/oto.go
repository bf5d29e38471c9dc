// Package oto runs the sequencer from the audio clock of the system, using
// github.com/ebitengine/oto: the Player is processed every time oto asks for
// the next buffer.
package oto

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/grooveseq/grooveseq"
)

var _ grooveseq.AudioContext = (*OtoContext)(nil)

type (
	OtoContext struct {
		context    *oto.Context
		sampleRate int
	}

	otoReader struct {
		process func(buf grooveseq.AudioBuffer) error
		buf     grooveseq.AudioBuffer
		err     error
	}

	otoCloser struct {
		once   sync.Once
		player *oto.Player
		reader *otoReader
	}
)

const (
	frameSize         = 2 * 4 // stereo float32
	DefaultBufferSize = 20 * time.Millisecond
)

// NewContext creates the oto context and waits until it is ready. Only one
// context can exist per process.
func NewContext(sampleRate int, bufferSize time.Duration) (*OtoContext, error) {
	if sampleRate <= 0 {
		sampleRate = int(grooveseq.DefaultSampleRate)
	}
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	context, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   bufferSize,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	<-ready
	return &OtoContext{context: context, sampleRate: sampleRate}, nil
}

func (c *OtoContext) SampleRate() int { return c.sampleRate }

// Play starts pulling audio from process, in the audio thread of oto, until
// the returned io.Closer is closed. If process fails, the playback stops and
// the error is returned by Close.
func (c *OtoContext) Play(process func(buf grooveseq.AudioBuffer) error) io.Closer {
	r := &otoReader{process: process}
	p := c.context.NewPlayer(r)
	p.Play()
	return &otoCloser{player: p, reader: r}
}

func (c *OtoContext) Close() error {
	if err := c.context.Suspend(); err != nil {
		return fmt.Errorf("cannot suspend oto context: %w", err)
	}
	return nil
}

func (r *otoReader) Read(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	frames := len(p) / frameSize
	if cap(r.buf) < frames {
		r.buf = make(grooveseq.AudioBuffer, frames)
	}
	buf := r.buf[:frames]
	if err := r.process(buf); err != nil {
		r.err = fmt.Errorf("processing audio failed: %w", err)
		return 0, r.err
	}
	return writeFloat32LE(p, buf), nil
}

func (c *otoCloser) Close() (err error) {
	c.once.Do(func() {
		c.player.Pause()
		if c.reader.err != nil {
			err = c.reader.err
		}
	})
	return err
}
