package utils

import (
	"crypto/rand"
	"encoding/binary"
	"time"
)

// NewSeed returns a random non-zero seed for a per-request generator, falling
// back to the clock if the system source fails.
func NewSeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return time.Now().UnixNano()
	}
	seed := int64(binary.BigEndian.Uint64(buf[:]) >> 1)
	if seed == 0 {
		seed = 1
	}
	return seed
}

// SeedOrNew returns seed when it is set, otherwise a fresh one.
func SeedOrNew(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return NewSeed()
}
