package sequencer

import "github.com/grooveseq/grooveseq"

// PatternStore owns the pattern shared by the control surface and the audio
// thread. Callers never get a reference to the internal grid, only copies.
type PatternStore struct {
	lock    SpinLock
	pattern grooveseq.Pattern
}

func NewPatternStore(initial grooveseq.Pattern) *PatternStore {
	return &PatternStore{pattern: initial}
}

// Step returns false for indices out of range.
func (s *PatternStore) Step(pad, step int) bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.pattern.Step(pad, step)
}

// SetStep ignores indices out of range.
func (s *PatternStore) SetStep(pad, step int, active bool) {
	s.lock.Lock()
	s.pattern.SetStep(pad, step, active)
	s.lock.Unlock()
}

// Toggle flips a cell and returns its new value.
func (s *PatternStore) Toggle(pad, step int) bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.pattern.Toggle(pad, step)
}

// Replace swaps in a whole new pattern, e.g. after regeneration.
func (s *PatternStore) Replace(p grooveseq.Pattern) {
	s.lock.Lock()
	s.pattern = p
	s.lock.Unlock()
}

// Pattern returns a copy of the current pattern.
func (s *PatternStore) Pattern() grooveseq.Pattern {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.pattern
}

// Snapshot copies the current pattern into dst. It is the only method the
// audio thread calls and it does not allocate.
func (s *PatternStore) Snapshot(dst *grooveseq.Pattern) {
	s.lock.Lock()
	*dst = s.pattern
	s.lock.Unlock()
}
