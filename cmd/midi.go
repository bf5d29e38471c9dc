// Package cmd has the helpers shared by the grooveseq commands.
package cmd

import (
	"errors"

	"github.com/grooveseq/grooveseq"
	"github.com/grooveseq/grooveseq/sequencer"
	"github.com/grooveseq/grooveseq/sequencer/gomidi"
)

// MIDIOutput is an open MIDI output port.
type MIDIOutput interface {
	sequencer.NoteSender
	Name() string
	Close() error
}

var ErrNoMIDI = errors.New("MIDI output is not available in builds without cgo")

// ArmGMDrums arms every pad, naming it after the General MIDI percussion key
// it plays.
func ArmGMDrums(pads *sequencer.PadsModel) {
	for pad := 0; pad < grooveseq.PadCount; pad++ {
		pads.Arm(pad, gomidi.GMDrumName(grooveseq.PadNote(pad)))
	}
}

// GMDrumNames returns the General MIDI names of the pads.
func GMDrumNames() (names [grooveseq.PadCount]string) {
	for pad := range names {
		names[pad] = gomidi.GMDrumName(grooveseq.PadNote(pad))
	}
	return names
}
