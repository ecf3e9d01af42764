package random

import (
	rand "math/rand/v2"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// Seeded is a deterministic source backed by a PCG generator. Each game
// session owns exactly one; its state can be snapshotted and restored so a
// session resumes the same sequence after being loaded from storage.
type Seeded struct {
	pcg *rand.PCG
	rng *rand.Rand
}

var _ Random = (*Seeded)(nil)

// NewSeeded returns a source whose sequence is fully determined by seed
func NewSeeded(seed uint64) *Seeded {
	pcg := rand.NewPCG(mix(seed), mix(seed+goldenRatio64))
	return &Seeded{pcg: pcg, rng: rand.New(pcg)}
}

// Restore rebuilds a source from a snapshot taken with MarshalBinary
func Restore(state []byte) (*Seeded, error) {
	pcg := rand.NewPCG(0, 0)
	if err := pcg.UnmarshalBinary(state); err != nil {
		return nil, err
	}
	return &Seeded{pcg: pcg, rng: rand.New(pcg)}, nil
}

// MarshalBinary snapshots the generator state
func (s *Seeded) MarshalBinary() ([]byte, error) {
	return s.pcg.MarshalBinary()
}

// Intn returns a deterministic int in [0, n)
func (s *Seeded) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return s.rng.IntN(n)
}

// Uint64 returns the next 64-bit value
func (s *Seeded) Uint64() uint64 {
	return s.rng.Uint64()
}

// Shuffle pseudo-randomly permutes n elements using swap
func (s *Seeded) Shuffle(n int, swap func(i, j int)) {
	s.rng.Shuffle(n, swap)
}

// String generates a deterministic string of the given length from the alphabet
func (s *Seeded) String(length int, alphabet string) string {
	return randomString(s, length, alphabet)
}

// mix spreads a single seed across the PCG state (splitmix64 finaliser)
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
