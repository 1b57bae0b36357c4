package random

import (
	"crypto/rand"

	"github.com/google/uuid"
)

// Random provides identifier and key generation that can be mocked for testing
type Random interface {
	// UUID returns a new random (version 4) UUID
	UUID() uuid.UUID

	// Bytes returns n random bytes
	Bytes(n int) []byte
}

// CryptoRandom implements Random using crypto/rand
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// UUID returns a cryptographically random UUID
func (r *CryptoRandom) UUID() uuid.UUID {
	return uuid.New()
}

// Bytes returns n cryptographically random bytes
func (r *CryptoRandom) Bytes(n int) []byte {
	if n <= 0 {
		return nil
	}
	b := make([]byte, n)
	// crypto/rand.Read never returns an error on supported platforms
	_, _ = rand.Read(b)
	return b
}
