/*
Package sequencer contains the two halves of the groove sequencer: the Model,
owned by the control surface (UI) goroutine, and the Player, owned by the
audio thread.

The halves never share unguarded state. The pattern lives in a PatternStore
that the control surface mutates and the Player copies once per block; the
lead step of each block is published in a StepCursor that any number of
observers poll (see Watch); pad previews go through a PreviewQueue that the
Player drains every block; parameters are read from an atomic Params store.
Everything else the Player has to say, e.g. that the transport started or that
the MIDI output is not keeping up, is sent to the Model through the Broker with
non-blocking sends.

Model methods are grouped by what they touch: model.Pattern() manipulates the
step grid, model.Pads() the pads and model.Params() the parameters. For
example, model.Pattern().Toggle(0, 4) toggles the kick on the fifth step and
model.Pattern().Regenerate() generates a new pattern from the current
parameters.
*/
package sequencer
