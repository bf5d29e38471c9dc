package grooveseq

import "io"

type (
	// AudioBuffer is a buffer of stereo frames.
	AudioBuffer [][2]float32

	// AudioContext pulls audio from process, one buffer at a time, until the
	// returned io.Closer is closed. The length of each buffer is the block
	// size the sequencer schedules.
	AudioContext interface {
		Play(process func(buf AudioBuffer) error) io.Closer
		Close() error
	}
)

// Clear zeroes the buffer.
func (b AudioBuffer) Clear() {
	for i := range b {
		b[i] = [2]float32{}
	}
}
