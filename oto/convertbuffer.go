package oto

import (
	"encoding/binary"
	"math"

	"github.com/grooveseq/grooveseq"
)

// writeFloat32LE encodes buf as interleaved little-endian float32 samples into
// dst, clipping to [-1, 1], and returns the number of bytes written. dst
// should have room for len(buf) frames; the frames that do not fit are
// dropped.
func writeFloat32LE(dst []byte, buf grooveseq.AudioBuffer) int {
	n := 0
	for _, frame := range buf {
		if n+frameSize > len(dst) {
			break
		}
		for _, v := range frame {
			v = min(max(v, -1), 1)
			binary.LittleEndian.PutUint32(dst[n:], math.Float32bits(v))
			n += 4
		}
	}
	return n
}
