package sequencer_test

import (
	"math"
	"testing"

	"github.com/grooveseq/grooveseq"
	"github.com/grooveseq/grooveseq/sequencer"
	"github.com/stretchr/testify/assert"
)

func TestParamDefaults(t *testing.T) {
	p := sequencer.NewParams()
	for _, tc := range []struct {
		id   sequencer.ParamID
		want float32
	}{
		{sequencer.SwingParam, 0},
		{sequencer.HumanizeParam, 8},
		{sequencer.FillsParam, 0.15},
		{sequencer.DensityParam, 0.6},
		{sequencer.VelocityRandomParam, 0.2},
	} {
		assert.Equal(t, tc.want, p.Get(tc.id), tc.id.Info().Name)
		assert.Equal(t, tc.want, tc.id.Info().Default, tc.id.Info().Name)
	}
	assert.Equal(t, grooveseq.Groove{SwingPercent: 0, HumanizeMs: 8, VelocityRandom: 0.2}, p.Groove())
}

func TestParamSetClamps(t *testing.T) {
	p := sequencer.NewParams()
	p.Set(sequencer.SwingParam, 150)
	assert.Equal(t, float32(100), p.Get(sequencer.SwingParam))
	p.Set(sequencer.HumanizeParam, -3)
	assert.Equal(t, float32(0), p.Get(sequencer.HumanizeParam))
	p.Set(sequencer.HumanizeParam, 51)
	assert.Equal(t, float32(50), p.Get(sequencer.HumanizeParam))
	p.Set(sequencer.DensityParam, 0.25)
	assert.Equal(t, float32(0.25), p.Get(sequencer.DensityParam))
	p.Set(sequencer.DensityParam, float32(math.NaN()))
	assert.Equal(t, float32(0.25), p.Get(sequencer.DensityParam), "NaN should be ignored")
	p.Set(sequencer.NumParams, 1)
	assert.Zero(t, p.Get(sequencer.NumParams))
	assert.Zero(t, p.Get(-1))
}

func TestParamByKey(t *testing.T) {
	for id := sequencer.ParamID(0); id < sequencer.NumParams; id++ {
		got, ok := sequencer.ParamByKey(id.Info().Key)
		assert.True(t, ok)
		assert.Equal(t, id, got)
	}
	_, ok := sequencer.ParamByKey("tempo")
	assert.False(t, ok)
}
