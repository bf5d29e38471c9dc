package sequencer

import (
	"math"
	"sync/atomic"

	"github.com/grooveseq/grooveseq"
)

type (
	// ParamID identifies one of the sequencer parameters.
	ParamID int

	// ParamInfo describes the range and default of a parameter.
	ParamInfo struct {
		Key     string // stable identifier, used in preferences
		Name    string
		Unit    string
		Min     float32
		Max     float32
		Default float32
	}

	// Params is the parameter store. Values are stored as atomic bit patterns
	// so that the audio thread can read the current values every block while
	// the control surface changes them.
	Params struct {
		values [NumParams]atomic.Uint32
	}
)

const (
	SwingParam ParamID = iota
	HumanizeParam
	FillsParam
	DensityParam
	VelocityRandomParam
	NumParams
)

var paramInfos = [NumParams]ParamInfo{
	SwingParam:          {Key: "swing", Name: "Swing", Unit: "%", Min: 0, Max: 100, Default: 0},
	HumanizeParam:       {Key: "humanize", Name: "Humanize", Unit: "ms", Min: 0, Max: 50, Default: 8},
	FillsParam:          {Key: "fills", Name: "Fills", Min: 0, Max: 1, Default: 0.15},
	DensityParam:        {Key: "density", Name: "Density", Min: 0, Max: 1, Default: 0.6},
	VelocityRandomParam: {Key: "velocity", Name: "Velocity Random", Min: 0, Max: 1, Default: 0.2},
}

// Info returns the description of the parameter; the zero ParamInfo for
// unknown ids.
func (id ParamID) Info() ParamInfo {
	if id < 0 || id >= NumParams {
		return ParamInfo{}
	}
	return paramInfos[id]
}

// ParamByKey finds the parameter with the given ParamInfo.Key.
func ParamByKey(key string) (ParamID, bool) {
	for i, info := range paramInfos {
		if info.Key == key {
			return ParamID(i), true
		}
	}
	return 0, false
}

// NewParams returns a store with every parameter at its default.
func NewParams() *Params {
	p := &Params{}
	for i := range p.values {
		p.Set(ParamID(i), paramInfos[i].Default)
	}
	return p
}

// Get returns the current value, or 0 for unknown ids.
func (p *Params) Get(id ParamID) float32 {
	if id < 0 || id >= NumParams {
		return 0
	}
	return math.Float32frombits(p.values[id].Load())
}

// Set clamps value to the range of the parameter and stores it. NaNs and
// unknown ids are ignored.
func (p *Params) Set(id ParamID, value float32) {
	if id < 0 || id >= NumParams || value != value {
		return
	}
	info := paramInfos[id]
	value = min(max(value, info.Min), info.Max)
	p.values[id].Store(math.Float32bits(value))
}

// Groove returns the parameters read by the Player every block.
func (p *Params) Groove() grooveseq.Groove {
	return grooveseq.Groove{
		SwingPercent:   p.Get(SwingParam),
		HumanizeMs:     p.Get(HumanizeParam),
		VelocityRandom: p.Get(VelocityRandomParam),
	}
}
