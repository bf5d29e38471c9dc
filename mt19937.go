package grooveseq

// mt19937 is the 32-bit Mersenne Twister. Generate depends on the exact
// sequence of its outputs for a given seed, so patterns generated from the
// same seed stay the same across platforms and releases.
type mt19937 struct {
	state [mtN]uint32
	index int
}

const (
	mtN         = 624
	mtM         = 397
	mtMatrixA   = 0x9908b0df
	mtUpperMask = 0x80000000
	mtLowerMask = 0x7fffffff
)

func newMT19937(seed uint32) *mt19937 {
	m := &mt19937{}
	m.seed(seed)
	return m
}

func (m *mt19937) seed(seed uint32) {
	m.state[0] = seed
	for i := 1; i < mtN; i++ {
		prev := m.state[i-1]
		m.state[i] = 1812433253*(prev^(prev>>30)) + uint32(i)
	}
	m.index = mtN
}

func (m *mt19937) twist() {
	for i := 0; i < mtN; i++ {
		y := (m.state[i] & mtUpperMask) | (m.state[(i+1)%mtN] & mtLowerMask)
		v := m.state[(i+mtM)%mtN] ^ (y >> 1)
		if y&1 != 0 {
			v ^= mtMatrixA
		}
		m.state[i] = v
	}
	m.index = 0
}

// Uint32 returns the next tempered output of the generator.
func (m *mt19937) Uint32() uint32 {
	if m.index >= mtN {
		m.twist()
	}
	y := m.state[m.index]
	m.index++
	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18
	return y
}

// Float32 returns a value in [0,1) using a single 32-bit draw. The output is
// rounded to float32 before scaling, so values very close to 1 are clamped to
// the largest float32 below 1.
func (m *mt19937) Float32() float32 {
	f := float32(m.Uint32()) / (1 << 32)
	if f >= 1 {
		f = 1 - 1.0/(1<<24)
	}
	return f
}
