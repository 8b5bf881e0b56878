package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Seed returns a fresh non-negative seed value suitable for a kernel reseed.
func (r *RNG) Seed() int {
	return int(r.r.Int32())
}

// Hash mixes a value with Thomas Wang's 32-bit integer hash. Kernels use it
// to derive per-cell randomness from the seed and cell address alone.
func Hash(h uint32) uint32 {
	h = (h ^ 61) ^ (h >> 16)
	h *= 9
	h ^= h >> 4
	h *= 0x27d4eb2d
	h ^= h >> 15
	return h
}

// HashCell combines a seed, a cell coordinate and a salt into one hash.
func HashCell(seed uint32, x, y int, salt uint32) uint32 {
	h := Hash(seed ^ 0x9e3779b9)
	h = Hash(h ^ uint32(x))
	h = Hash(h ^ uint32(y)*0x85ebca6b)
	return Hash(h ^ salt)
}

// Unit maps a hash to a float in [0, 1).
func Unit(h uint32) float32 {
	return float32(h>>8) / float32(1<<24)
}
