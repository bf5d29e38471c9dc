// Package grooveseq contains the real-time independent core of the groove
// sequencer: the 16 pad by 32 step Pattern, the deterministic pattern
// generator, the mapping of host musical time to steps (Timeline) and the
// Scheduler that turns the steps of an audio block into note events.
package grooveseq
