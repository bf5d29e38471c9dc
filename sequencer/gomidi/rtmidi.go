//go:build cgo

package gomidi

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/grooveseq/grooveseq"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

type (
	// RTMIDIContext lists and opens the MIDI output ports of the system.
	RTMIDIContext struct {
		driver *rtmididrv.Driver
	}

	// Output sends the note events of the sequencer to a MIDI output port. A
	// pad that is retriggered while its note is still on first gets a
	// note-off; all the notes still on are released on Close.
	Output struct {
		mu       sync.Mutex
		out      drivers.Out
		send     func(midi.Message) error
		channel  uint8
		sounding [grooveseq.PadCount]byte // note+1 of the pad, 0 when off
	}
)

var ErrNoDriver = errors.New("no MIDI driver available")

// NewContext opens the driver. If that fails, the context has no ports.
func NewContext() *RTMIDIContext {
	c := RTMIDIContext{}
	// there's not much we can do if this fails, so just use c.driver = nil to
	// indicate no driver available
	c.driver, _ = rtmididrv.New()
	return &c
}

// OutputNames returns the names of the output ports.
func (c *RTMIDIContext) OutputNames() ([]string, error) {
	if c.driver == nil {
		return nil, ErrNoDriver
	}
	outs, err := c.driver.Outs()
	if err != nil {
		return nil, fmt.Errorf("listing MIDI outputs failed: %w", err)
	}
	names := make([]string, len(outs))
	for i, out := range outs {
		names[i] = out.String()
	}
	return names, nil
}

// Open opens the first output port whose name starts with namePrefix; an
// empty prefix takes the first port. Notes are sent on channel (0..15).
func (c *RTMIDIContext) Open(namePrefix string, channel uint8) (*Output, error) {
	if c.driver == nil {
		return nil, ErrNoDriver
	}
	outs, err := c.driver.Outs()
	if err != nil {
		return nil, fmt.Errorf("listing MIDI outputs failed: %w", err)
	}
	for _, out := range outs {
		if !strings.HasPrefix(out.String(), namePrefix) {
			continue
		}
		send, err := midi.SendTo(out)
		if err != nil {
			return nil, fmt.Errorf("opening MIDI output %q failed: %w", out.String(), err)
		}
		return &Output{out: out, send: send, channel: channel & 0x0f}, nil
	}
	return nil, fmt.Errorf("no MIDI output found with prefix %q", namePrefix)
}

func (c *RTMIDIContext) Close() {
	if c.driver == nil {
		return
	}
	c.driver.Close()
}

// Name returns the name of the port.
func (o *Output) Name() string {
	return o.out.String()
}

func (o *Output) NoteOn(pad int, note, velocity byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if pad >= 0 && pad < len(o.sounding) {
		if prev := o.sounding[pad]; prev != 0 {
			if err := o.send(midi.NoteOff(o.channel, prev-1)); err != nil {
				return fmt.Errorf("sending note-off failed: %w", err)
			}
		}
		o.sounding[pad] = note + 1
	}
	if err := o.send(midi.NoteOn(o.channel, note, velocity)); err != nil {
		return fmt.Errorf("sending note-on failed: %w", err)
	}
	return nil
}

// Close releases the notes that are still on and closes the port.
func (o *Output) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	var errs []error
	for pad, n := range o.sounding {
		if n != 0 {
			errs = append(errs, o.send(midi.NoteOff(o.channel, n-1)))
			o.sounding[pad] = 0
		}
	}
	errs = append(errs, o.send(midi.ControlChange(o.channel, 123, 0))) // all notes off
	errs = append(errs, o.out.Close())
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("closing MIDI output failed: %w", err)
	}
	return nil
}
