package grooveseq

const (
	BaseNote        = 36 // note of pad 0; pad i plays BaseNote+i
	PreviewVelocity = 114
)

// NoteEvent is a note-on produced for the current block. Frame is relative
// to the start of the block. No note-offs are ever produced: the synth owns
// the release of its voices.
type NoteEvent struct {
	Frame    int
	Pad      int
	Note     byte
	Velocity byte // 1..127
}

// PadNote returns the MIDI note bound to pad.
func PadNote(pad int) byte {
	return byte(BaseNote + pad)
}

// PadForNote is the inverse of PadNote; ok is false if the note is not bound
// to any pad.
func PadForNote(note byte) (pad int, ok bool) {
	pad = int(note) - BaseNote
	return pad, pad >= 0 && pad < PadCount
}
