package gomidi

// GMDrumEntry is a percussion key of the General MIDI drum map.
type GMDrumEntry struct {
	Note byte
	Name string
}

// GMDrumEntries are the General MIDI percussion keys that the pads play with
// the default note mapping, i.e. notes 36..51.
var GMDrumEntries = []GMDrumEntry{
	{36, "Bass Drum 1"},
	{37, "Side Stick"},
	{38, "Acoustic Snare"},
	{39, "Hand Clap"},
	{40, "Electric Snare"},
	{41, "Low Floor Tom"},
	{42, "Closed Hi-Hat"},
	{43, "High Floor Tom"},
	{44, "Pedal Hi-Hat"},
	{45, "Low Tom"},
	{46, "Open Hi-Hat"},
	{47, "Low-Mid Tom"},
	{48, "Hi-Mid Tom"},
	{49, "Crash Cymbal 1"},
	{50, "High Tom"},
	{51, "Ride Cymbal 1"},
}

// GMDrumName returns the General MIDI name of a percussion note, or "" if the
// note is not in GMDrumEntries.
func GMDrumName(note byte) string {
	for _, e := range GMDrumEntries {
		if e.Note == note {
			return e.Name
		}
	}
	return ""
}
