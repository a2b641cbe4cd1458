package ball

import (
	"math/rand/v2"
)

// Palette picks ball colors.
type Palette struct {
	rng *rand.Rand
}

// NewPalette creates a palette. The same seed yields the same colors.
func NewPalette(seed uint64) *Palette {
	return &Palette{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Next returns a random RGB color with 8-bit channel resolution.
func (p *Palette) Next() [3]float32 {
	return [3]float32{
		float32(p.rng.IntN(256)) / 255,
		float32(p.rng.IntN(256)) / 255,
		float32(p.rng.IntN(256)) / 255,
	}
}
