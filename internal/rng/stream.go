// Package rng provides the explicit, seedable random streams threaded through
// every generator. Nothing in this module draws from a global source.
package rng

import (
	"encoding/binary"
	"math/rand"
	"time"

	"golang.org/x/crypto/blake2b"
)

// Random is the source of randomness accepted by the generators
type Random interface {
	// Intn returns a value in [0, n). n must be positive.
	Intn(n int) int
	// RandRange returns a value in [min, max], inclusive on both ends.
	RandRange(min, max int) int
}

// Stream is a seeded Random backed by math/rand
type Stream struct {
	seed int64
	r    *rand.Rand
}

// New creates a stream for seed. A negative seed selects a time-based seed,
// which Seed reports so the run can be replayed.
func New(seed int64) *Stream {
	if seed < 0 {
		seed = time.Now().UnixNano() & (1<<63 - 1)
	}
	return &Stream{
		seed: seed,
		r:    rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed the stream was created with
func (s *Stream) Seed() int64 {
	return s.seed
}

func (s *Stream) Intn(n int) int {
	return s.r.Intn(n)
}

// RandRange returns a value in [min, max]. When max <= min it returns min
// without consuming randomness.
func (s *Stream) RandRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.r.Intn(max-min+1)
}

// Derive returns a non-negative seed for the index-th run labeled label
// under base. Different labels or indices give unrelated streams.
func Derive(base int64, label string, index int) int64 {
	h, _ := blake2b.New256(nil)
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(base))
	binary.LittleEndian.PutUint64(buf[8:], uint64(index))
	h.Write(buf[:])
	h.Write([]byte(label))
	sum := h.Sum(nil)
	return int64(binary.LittleEndian.Uint64(sum[:8]) & (1<<63 - 1))
}
