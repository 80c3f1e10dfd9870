package core

import "math/rand"

// Sampler provides random sampling for rendering algorithms.
// Can be swapped out for deterministic testing or different sampling patterns.
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// PixelSampler is a counter-based pseudo-random stream: a TEA hash of
// (pixel index, frame index) seeds a linear-congruential generator. Streams
// are independent and reproducible across pixels and frames, so pixel tasks
// never share generator state.
type PixelSampler struct {
	state uint32
}

// NewPixelSampler creates the sampler for one pixel of one frame.
func NewPixelSampler(pixel, frame uint32) *PixelSampler {
	return &PixelSampler{state: teaHash(pixel, frame)}
}

// teaHash scrambles two 32-bit values into a well-mixed seed (TEA, 16 rounds).
func teaHash(val0, val1 uint32) uint32 {
	v0, v1 := val0, val1
	var sum uint32

	for i := 0; i < 16; i++ {
		sum += 0x9e3779b9
		v0 += ((v1 << 4) + 0xa341316c) ^ (v1 + sum) ^ ((v1 >> 5) + 0xc8013ea4)
		v1 += ((v0 << 4) + 0xad90777d) ^ (v0 + sum) ^ ((v0 >> 5) + 0x7e95761e)
	}

	return v0
}

// Get1D advances the LCG and returns a float64 in [0, 1)
func (p *PixelSampler) Get1D() float64 {
	p.state = p.state*1664525 + 1013904223
	return float64(p.state) / (1 << 32)
}

// Get2D returns two successive stream values
func (p *PixelSampler) Get2D() Vec2 {
	return NewVec2(p.Get1D(), p.Get1D())
}
