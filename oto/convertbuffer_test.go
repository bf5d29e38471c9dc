package oto

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/grooveseq/grooveseq"
)

func TestWriteFloat32LE(t *testing.T) {
	buf := grooveseq.AudioBuffer{{0, 0.5}, {-2, 2}}
	dst := make([]byte, 16)
	if n := writeFloat32LE(dst, buf); n != 16 {
		t.Fatalf("wrote %d bytes, want 16", n)
	}
	want := []float32{0, 0.5, -1, 1}
	for i, w := range want {
		got := math.Float32frombits(binary.LittleEndian.Uint32(dst[i*4:]))
		if got != w {
			t.Errorf("sample %d: got %v, want %v", i, got, w)
		}
	}
}

func TestWriteFloat32LEShortDestination(t *testing.T) {
	buf := make(grooveseq.AudioBuffer, 4)
	if n := writeFloat32LE(make([]byte, 12), buf); n != 8 {
		t.Errorf("wrote %d bytes, want 8", n)
	}
}

func TestReaderProcessesWholeFrames(t *testing.T) {
	calls := 0
	r := &otoReader{process: func(buf grooveseq.AudioBuffer) error {
		calls++
		if len(buf) != 3 {
			t.Errorf("got a buffer of %d frames, want 3", len(buf))
		}
		for i := range buf {
			buf[i] = [2]float32{0.25, -0.25}
		}
		return nil
	}}
	n, err := r.Read(make([]byte, 3*frameSize+5))
	if err != nil || n != 3*frameSize {
		t.Fatalf("got n %d err %v, want %d <nil>", n, err, 3*frameSize)
	}
	if calls != 1 {
		t.Errorf("process called %d times, want 1", calls)
	}
}
