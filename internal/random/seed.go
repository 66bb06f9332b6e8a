// Package random seeds the non-cryptographic generators used for draws.
//
// Draws only need uniform, unpredictable-enough numbers, so a math/rand
// generator is seeded once per draw from crypto/rand.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/louisbranch/luckydraw/internal/draw"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// NewSource returns a draw source seeded by NewSeed. When the system entropy
// pool cannot be read it falls back to the wall clock.
func NewSource() draw.Source {
	seed, err := NewSeed()
	if err != nil {
		seed = time.Now().UnixNano()
	}
	return draw.NewSource(seed)
}
