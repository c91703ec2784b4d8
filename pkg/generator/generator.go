// Package generator produces random arrays for runs started without explicit input.
package generator

import (
	"math/rand/v2"
	"time"

	"github.com/khshaikh19/sortviz/pkg/config"
)

// Generator draws arrays within configured size and value bounds.
type Generator struct {
	size   config.Bounds
	values config.ValueRange
	rng    *rand.Rand
}

// New returns a generator. A zero seed uses the current time.
func New(cfg config.Config, seed uint64) *Generator {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Generator{
		size:   cfg.Size,
		values: cfg.Values,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Array returns size values drawn uniformly from [Values.Min, Values.Max).
// size is clamped into the configured bounds.
func (g *Generator) Array(size int) []int {
	n := g.size.Clamp(size)
	span := g.values.Max - g.values.Min
	out := make([]int, n)
	for i := range out {
		out[i] = g.values.Min + g.rng.IntN(span)
	}
	return out
}

// Default returns an array of the configured default size.
func (g *Generator) Default() []int {
	return g.Array(g.size.Default)
}
