package grooveseq

// Pad roles used by Generate. The pads above PadPercussion are extra layers.
const (
	PadKick       = 0
	PadSnare      = 1
	PadClosedHat  = 2
	PadOpenHat    = 3
	PadPercussion = 4
)

const (
	FillStart = 28 // fills only ever touch steps FillStart..StepCount-1
)

// GenerateParams are the inputs of Generate. They are consumed once and not
// retained.
type GenerateParams struct {
	Density    float32 // 0..1, scales the probability of the random hits
	Fills      float32 // 0..1, probability of extra hits in the last four steps
	Seed       uint32
	ActivePads PadMask // if no pad is active, all pads are considered active
}

var (
	kickSteps  = [...]int{0, 8, 16, 24}
	snareSteps = [...]int{4, 12, 20, 28}
	openSteps  = [...]int{6, 22}
)

// Generate returns a new pattern. The output depends only on params: the
// random stream is consumed role by role, pad by pad and step by step in
// ascending order, and inactive pads consume no draws. A probability of 0 or
// less is always false and 1 or more always true; neither consumes a draw.
func Generate(params GenerateParams) Pattern {
	var p Pattern
	active := params.ActivePads
	if !active.Any() {
		active = AllPads()
	}
	rng := newMT19937(params.Seed)
	chance := func(prob float32) bool {
		if prob <= 0 {
			return false
		}
		if prob >= 1 {
			return true
		}
		return rng.Float32() < prob
	}
	d := params.Density
	// the explicit conversions round each product to float32 so that the
	// thresholds do not depend on fused multiply-adds
	hatProb := 0.25 + float32(0.65*d)
	openHatProb := 0.10 + float32(0.35*d)
	percProb := 0.05 + float32(0.20*d)
	layerProb := 0.08 + float32(0.5*d)

	if active[PadKick] {
		for _, s := range kickSteps {
			p[PadKick][s] = true
		}
	}
	if active[PadSnare] {
		for _, s := range snareSteps {
			p[PadSnare][s] = true
		}
	}
	if active[PadClosedHat] {
		for s := 2; s < StepCount; s += 4 {
			if chance(hatProb) {
				p[PadClosedHat][s] = true
			}
		}
	}
	if active[PadOpenHat] {
		for _, s := range openSteps {
			if chance(openHatProb) {
				p[PadOpenHat][s] = true
			}
		}
	}
	if active[PadPercussion] {
		for s := 1; s < StepCount; s++ {
			if chance(percProb) {
				p[PadPercussion][s] = true
			}
		}
	}
	// extra layers alternate between emphasising downbeats and offbeats
	layer := 0
	for pad := PadPercussion + 1; pad < PadCount; pad++ {
		if !active[pad] {
			continue
		}
		downbeats := layer%2 == 0
		layer++
		for s := 0; s < StepCount; s++ {
			prob := layerProb
			if downbeats && s%4 == 0 {
				prob += 0.2
			} else if !downbeats && s%4 == 2 {
				prob += 0.15
			}
			if chance(prob) {
				p[pad][s] = true
			}
		}
	}

	fill := func(pad int, weight float32) {
		if !active[pad] {
			return
		}
		for s := FillStart; s < StepCount; s++ {
			if chance(float32(params.Fills * weight)) {
				p[pad][s] = true
			}
		}
	}
	fill(PadClosedHat, 1.0)
	fill(PadPercussion, 0.6)
	for pad := PadPercussion + 1; pad < PadCount; pad++ {
		fill(pad, 0.4)
	}
	return p
}
