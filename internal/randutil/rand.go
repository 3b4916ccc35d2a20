package randutil

import rand "math/rand/v2"

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// All call sites derive the two PCG seeds the same way so a seed printed by
// the CLI or echoed by the server reproduces a run exactly.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Fork derives an independent generator from parent. The parent advances by
// two draws, so forking n children in order is deterministic.
func Fork(parent *rand.Rand) *rand.Rand {
	return rand.New(rand.NewPCG(mix(parent.Uint64()), mix(parent.Uint64()^goldenRatio64)))
}

// Seed returns seed unchanged when it is non-zero, otherwise a fresh random
// seed from the runtime source.
func Seed(seed int64) int64 {
	for seed == 0 {
		seed = rand.Int64()
	}
	return seed
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
