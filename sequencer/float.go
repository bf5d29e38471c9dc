package sequencer

type (
	// Float is a bounded value that the control surface can set or adjust.
	Float struct {
		FloatData
	}

	FloatData interface {
		Value() float32
		Range() FloatRange

		setValue(float32)
	}

	FloatRange struct {
		Min, Max float32
	}

	paramFloat struct {
		params *Params
		id     ParamID
	}
)

// Set clamps value to the range and reports whether the value changed.
func (v Float) Set(value float32) (ok bool) {
	value = v.Range().Clamp(value)
	if value == v.Value() || value != value {
		return false
	}
	v.setValue(value)
	return true
}

// Add adjusts the value by delta, see Set.
func (v Float) Add(delta float32) (ok bool) {
	return v.Set(v.Value() + delta)
}

// Fraction returns the value mapped to 0..1 over the range.
func (v Float) Fraction() float32 {
	r := v.Range()
	if r.Max <= r.Min {
		return 0
	}
	return (v.Value() - r.Min) / (r.Max - r.Min)
}

func (r FloatRange) Clamp(value float32) float32 {
	return max(min(value, r.Max), r.Min)
}

func (p paramFloat) Value() float32 { return p.params.Get(p.id) }
func (p paramFloat) Range() FloatRange {
	info := p.id.Info()
	return FloatRange{Min: info.Min, Max: info.Max}
}
func (p paramFloat) setValue(value float32) { p.params.Set(p.id, value) }
