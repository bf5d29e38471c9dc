//go:build cgo

package cmd

import (
	"github.com/grooveseq/grooveseq/sequencer/gomidi"
)

// OpenMIDIOutput opens the first MIDI output port whose name starts with
// prefix. Closing the output also closes the driver.
func OpenMIDIOutput(prefix string, channel uint8) (MIDIOutput, error) {
	context := gomidi.NewContext()
	out, err := context.Open(prefix, channel)
	if err != nil {
		context.Close()
		return nil, err
	}
	return &rtmidiOutput{Output: out, context: context}, nil
}

// MIDIOutputNames lists the MIDI output ports of the system.
func MIDIOutputNames() ([]string, error) {
	context := gomidi.NewContext()
	defer context.Close()
	return context.OutputNames()
}

type rtmidiOutput struct {
	*gomidi.Output
	context *gomidi.RTMIDIContext
}

func (o *rtmidiOutput) Close() error {
	err := o.Output.Close()
	o.context.Close()
	return err
}
