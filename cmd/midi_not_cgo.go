//go:build !cgo

package cmd

// with no cgo, we cannot use MIDI ports, so opening and listing them always
// fails

func OpenMIDIOutput(prefix string, channel uint8) (MIDIOutput, error) {
	return nil, ErrNoMIDI
}

func MIDIOutputNames() ([]string, error) {
	return nil, ErrNoMIDI
}
