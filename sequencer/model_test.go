package sequencer_test

import (
	"testing"

	"github.com/grooveseq/grooveseq"
	"github.com/grooveseq/grooveseq/sequencer"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nullLogger() logrus.FieldLogger {
	logger, _ := test.NewNullLogger()
	return logger
}

func TestModelStartsWithGeneratedPattern(t *testing.T) {
	model, _, _ := newTestModelPlayer(t)
	p := model.Pattern().Get()
	assert.Equal(t, []int{0, 8, 16, 24}, p.Hits(grooveseq.PadKick))
	assert.Equal(t, []int{4, 12, 20, 28}, p.Hits(grooveseq.PadSnare))
	want := grooveseq.Generate(grooveseq.GenerateParams{
		Density:    0.6,
		Fills:      0.15,
		Seed:       model.Pattern().LastSeed(),
		ActivePads: grooveseq.AllPads(),
	})
	assert.Equal(t, want, p)
}

func TestModelSeedIsReproducible(t *testing.T) {
	a, _, _ := newTestModelPlayer(t)
	b, _, _ := newTestModelPlayer(t)
	for i := 0; i < 5; i++ {
		require.Equal(t, a.Pattern().LastSeed(), b.Pattern().LastSeed())
		require.Equal(t, a.Pattern().Get(), b.Pattern().Get())
		a.Pattern().Regenerate()
		b.Pattern().Regenerate()
	}
}

func TestModelRegenerateUsesArmedPads(t *testing.T) {
	model, _, _ := newTestModelPlayer(t)
	assert.Equal(t, grooveseq.AllPads(), model.Pads().Active(), "no armed pads should mean all pads")
	model.Pads().Arm(grooveseq.PadClosedHat, "hat")
	model.Pads().Arm(6, "shaker")
	model.Params().Float(sequencer.DensityParam).Set(1)
	model.Pattern().Regenerate()
	p := model.Pattern().Get()
	for pad := 0; pad < grooveseq.PadCount; pad++ {
		if pad == grooveseq.PadClosedHat || pad == 6 {
			continue
		}
		assert.Empty(t, p.Hits(pad), "pad %d is not armed", pad)
	}
	assert.NotEmpty(t, p.Hits(grooveseq.PadClosedHat))
	assert.Equal(t, "shaker", model.Pads().Name(6))

	model.Pads().Disarm(6)
	assert.False(t, model.Pads().Armed(6))
	assert.Equal(t, "", model.Pads().Name(6))
}

func TestModelRegenerateWith(t *testing.T) {
	model, _, _ := newTestModelPlayer(t)
	params := grooveseq.GenerateParams{Density: 0.3, Fills: 0.5, Seed: 1234, ActivePads: grooveseq.AllPads()}
	model.Pattern().RegenerateWith(params)
	assert.Equal(t, uint32(1234), model.Pattern().LastSeed())
	assert.Equal(t, grooveseq.Generate(params), model.Pattern().Get())
}

func TestModelPatternEditing(t *testing.T) {
	model, _, _ := newTestModelPlayer(t)
	model.Pattern().Clear()
	assert.Zero(t, model.Pattern().Get().Count())
	model.Pattern().SetStep(4, 9, true)
	assert.True(t, model.Pattern().Step(4, 9))
	assert.False(t, model.Pattern().Toggle(4, 9))
	assert.True(t, model.Pattern().Toggle(4, 10))
	assert.Equal(t, 1, model.Pattern().Get().Count())
}

func TestModelParamFloats(t *testing.T) {
	model, _, _ := newTestModelPlayer(t)
	swing := model.Params().Float(sequencer.SwingParam)
	assert.Equal(t, sequencer.FloatRange{Min: 0, Max: 100}, swing.Range())
	assert.True(t, swing.Set(60))
	assert.False(t, swing.Set(60), "setting the same value should report no change")
	assert.True(t, swing.Add(70))
	assert.Equal(t, float32(100), swing.Value())
	assert.False(t, swing.Add(1))
	assert.Equal(t, float32(1), swing.Fraction())
	assert.Equal(t, float32(100), model.Params().Groove().SwingPercent)
	model.Params().Reset()
	assert.Zero(t, swing.Value())
}

func TestModelAlerts(t *testing.T) {
	logger, hook := test.NewNullLogger()
	broker := sequencer.NewBroker()
	model, _ := sequencer.NewModelPlayer(broker, sequencer.WithLogger(logger))

	model.ProcessPlayerMessage(sequencer.MsgToModel{HasPlaying: true, Playing: true})
	assert.True(t, model.Playing())
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "transport started", hook.LastEntry().Message)

	alert := sequencer.Alert{Name: "OutputOverrun", Priority: sequencer.Warning, Message: "dropped"}
	model.ProcessPlayerMessage(sequencer.MsgToModel{HasAlert: true, Alert: alert})
	model.ProcessPlayerMessage(sequencer.MsgToModel{HasAlert: true, Alert: alert})
	require.Len(t, model.Alerts(), 1, "alerts with the same name should replace each other")
	assert.NotZero(t, model.Alerts()[0].Duration)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)

	for i := 0; i < 20; i++ {
		model.ProcessPlayerMessage(sequencer.MsgToModel{HasAlert: true, Alert: sequencer.Alert{Message: "anonymous"}})
	}
	assert.Len(t, model.Alerts(), 8)
}

func TestModelPreviewQueueFull(t *testing.T) {
	model, _, _ := newTestModelPlayer(t)
	model.Pads().Arm(1, "snare")
	for i := 0; i < 64; i++ {
		require.True(t, model.Pads().Preview(1))
	}
	assert.False(t, model.Pads().Preview(1))
	require.NotEmpty(t, model.Alerts())
	assert.Equal(t, "PreviewFull", model.Alerts()[len(model.Alerts())-1].Name)
}
