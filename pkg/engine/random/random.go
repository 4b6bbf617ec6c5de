// Package random derives the deterministic random source of a generation
// attempt. All shuffles of one attempt share a single *rand.Rand so that a
// seed string always reproduces the same results.
package random

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
	"strconv"
)

// SeedValue hashes a seed string into a 64-bit source seed
func SeedValue(seed string) int64 {
	sum := sha256.Sum256([]byte(seed))
	return int64(binary.BigEndian.Uint64(sum[:8]))
}

// New returns a generator seeded from seed
func New(seed string) *rand.Rand {
	return rand.New(rand.NewSource(SeedValue(seed)))
}

// ForAttempt returns the generator for a numbered generation attempt. Each
// retry gets its own stream so a failed attempt does not leak state into the
// next one.
func ForAttempt(seed string, attempt int) *rand.Rand {
	if attempt <= 1 {
		return New(seed)
	}
	return New(seed + "#" + strconv.Itoa(attempt))
}

// Shuffle reorders items in place
func Shuffle[T any](rng *rand.Rand, items []T) {
	rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}

// RandomSeed returns a fresh printable seed string for runs that do not
// specify one.
func RandomSeed() string {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, 10)
	for i := range b {
		b[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(b)
}
