package engine

import "hash/fnv"

// RNG is a deterministic pseudo-random number generator (xorshift64).
// Each consumer owns its own instance; there is no package-level source.
type RNG struct {
	state uint64
}

// NewRNG creates a new RNG with the given seed.
func NewRNG(seed uint64) *RNG {
	if seed == 0 {
		seed = 88172645463325252
	}
	return &RNG{state: seed}
}

// NewStreamRNG derives an independent generator for one named stream of a
// textual seed. The state is FNV-1a-64 of seed + "/" + stream.
func NewStreamRNG(seed, stream string) *RNG {
	h := fnv.New64a()
	h.Write([]byte(seed))
	h.Write([]byte{'/'})
	h.Write([]byte(stream))
	return NewRNG(h.Sum64())
}

// Next returns the next random uint64.
func (r *RNG) Next() uint64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 7
	r.state ^= r.state << 17
	return r.state
}

// Intn returns a random int in [0, n).
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Color returns a random playable color.
func (r *RNG) Color() Color {
	return Colors[r.Intn(len(Colors))]
}
