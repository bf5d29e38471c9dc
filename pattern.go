package grooveseq

import (
	"errors"
	"fmt"
	"strings"
)

const (
	PadCount  = 16 // number of independent trigger lanes
	StepCount = 32 // two bars of 16th notes
)

type (
	// Pattern is the step grid: one row of StepCount activations for each of
	// the PadCount pads. Any combination of cells is legal. The zero value is
	// an empty pattern. Pattern is a plain array so that copying it (e.g. for
	// a snapshot in the audio thread) never allocates.
	Pattern [PadCount][StepCount]bool

	// PadMask tells which pads take part in e.g. pattern generation.
	PadMask [PadCount]bool
)

var ErrInvalidPatternRow = errors.New("pattern row must consist of 'x' and '.' characters")

// AllPads returns a PadMask with every pad set.
func AllPads() PadMask {
	var m PadMask
	for i := range m {
		m[i] = true
	}
	return m
}

// Any reports whether at least one pad is set in the mask.
func (m PadMask) Any() bool {
	for _, v := range m {
		if v {
			return true
		}
	}
	return false
}

// Has reports whether pad is in the mask. Pads out of range are never in it.
func (m PadMask) Has(pad int) bool {
	return pad >= 0 && pad < PadCount && m[pad]
}

// Step returns the value at (pad, step); or false if either index is out of
// range.
func (p Pattern) Step(pad, step int) bool {
	if !inRange(pad, step) {
		return false
	}
	return p[pad][step]
}

// SetStep sets the value at (pad, step). Indices out of range are ignored.
func (p *Pattern) SetStep(pad, step int, active bool) {
	if !inRange(pad, step) {
		return
	}
	p[pad][step] = active
}

// Toggle flips the value at (pad, step) and returns the new value.
func (p *Pattern) Toggle(pad, step int) bool {
	if !inRange(pad, step) {
		return false
	}
	p[pad][step] = !p[pad][step]
	return p[pad][step]
}

// Clear turns every step of every pad off.
func (p *Pattern) Clear() {
	*p = Pattern{}
}

// Hits returns the steps of pad that are active, in ascending order.
func (p Pattern) Hits(pad int) []int {
	if pad < 0 || pad >= PadCount {
		return nil
	}
	ret := make([]int, 0, StepCount)
	for step, v := range p[pad] {
		if v {
			ret = append(ret, step)
		}
	}
	return ret
}

// Count returns the total number of active cells.
func (p Pattern) Count() int {
	n := 0
	for pad := range p {
		for _, v := range p[pad] {
			if v {
				n++
			}
		}
	}
	return n
}

// Row returns the pad row as a string of 'x' (hit) and '.' (rest).
func (p Pattern) Row(pad int) string {
	if pad < 0 || pad >= PadCount {
		return ""
	}
	var b strings.Builder
	b.Grow(StepCount)
	for _, v := range p[pad] {
		if v {
			b.WriteByte('x')
		} else {
			b.WriteByte('.')
		}
	}
	return b.String()
}

// Rows returns all the pad rows, see Row.
func (p Pattern) Rows() []string {
	ret := make([]string, PadCount)
	for pad := range ret {
		ret[pad] = p.Row(pad)
	}
	return ret
}

// SetRows parses rows in the format returned by Rows. Missing rows and
// columns are left empty; extra rows and columns are an error.
func (p *Pattern) SetRows(rows []string) error {
	if len(rows) > PadCount {
		return fmt.Errorf("pattern has %d rows, at most %d allowed", len(rows), PadCount)
	}
	var ret Pattern
	for pad, row := range rows {
		if len(row) > StepCount {
			return fmt.Errorf("row %d has %d steps, at most %d allowed", pad, len(row), StepCount)
		}
		for step, c := range row {
			switch c {
			case 'x', 'X':
				ret[pad][step] = true
			case '.', '-':
			default:
				return fmt.Errorf("row %d, step %d: %w", pad, step, ErrInvalidPatternRow)
			}
		}
	}
	*p = ret
	return nil
}

func (p Pattern) String() string {
	return strings.Join(p.Rows(), "\n")
}

// MarshalYAML encodes the pattern as a list of rows, see Rows.
func (p Pattern) MarshalYAML() (any, error) {
	return p.Rows(), nil
}

// UnmarshalYAML decodes the pattern from a list of rows, see SetRows.
func (p *Pattern) UnmarshalYAML(unmarshal func(any) error) error {
	var rows []string
	if err := unmarshal(&rows); err != nil {
		return err
	}
	return p.SetRows(rows)
}

func inRange(pad, step int) bool {
	return pad >= 0 && pad < PadCount && step >= 0 && step < StepCount
}
