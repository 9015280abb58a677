// Package otp generates and matches numeric one-time codes.
//
// Codes are produced from crypto/rand with rejection sampling so every code in
// the range is equally likely. Matching is constant time.
package otp

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/binary"
	"fmt"
)

// DefaultDigits is the code length used when none is configured.
const DefaultDigits = 6

// Generator produces random numeric codes of a fixed length.
type Generator struct {
	digits int
	max    uint64
}

// NewGenerator creates a generator for codes of the given length (4-10).
func NewGenerator(digits int) (*Generator, error) {
	if digits < 4 || digits > 10 {
		return nil, fmt.Errorf("otp: digits must be between 4 and 10, got %d", digits)
	}

	max := uint64(1)
	for range digits {
		max *= 10
	}

	return &Generator{digits: digits, max: max}, nil
}

// Generate returns a zero-padded numeric code, e.g. "042917" for 6 digits.
func (g *Generator) Generate() (string, error) {
	// Rejection sampling: discard draws above the largest multiple of max so
	// the modulo does not bias low codes.
	limit := (^uint64(0) / g.max) * g.max

	var buf [8]byte
	for {
		if _, err := rand.Read(buf[:]); err != nil {
			return "", fmt.Errorf("otp: read random: %w", err)
		}

		n := binary.BigEndian.Uint64(buf[:])
		if n >= limit {
			continue
		}

		return fmt.Sprintf("%0*d", g.digits, n%g.max), nil
	}
}

// Match reports whether two codes are equal without leaking timing
// information. It works on plaintext codes and on their digests alike.
func Match(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
