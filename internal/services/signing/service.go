// Package signing issues and checks the proofs that grant write access to
// tournaments, players and games.
package signing

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"golang.org/x/crypto/hkdf"

	"github.com/mcoot/pairings-web/internal/identity"
)

// MinSecretLength is the shortest secret New accepts.
const MinSecretLength = 16

const keyInfo = "pairings/proof-key/v1"

var ErrWeakSecret = errors.New("signing secret is too short")

// Config holds signing settings. An empty secret makes the backend generate
// one at start-up, so links stop working across restarts.
type Config struct {
	Secret string `env:"PAIRING_SECRET"`
}

// Service computes HMAC-SHA256 proofs over entity UUIDs.
type Service struct {
	key []byte
}

// New derives the proof key from secret with HKDF-SHA256.
func New(secret []byte) (*Service, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("%w: need at least %d bytes", ErrWeakSecret, MinSecretLength)
	}
	key := make([]byte, sha256.Size)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(keyInfo)), key); err != nil {
		return nil, fmt.Errorf("derive proof key: %w", err)
	}
	return &Service{key: key}, nil
}

func (s *Service) digest(id uuid.UUID) []byte {
	mac := hmac.New(sha256.New, s.key)
	mac.Write(id[:])
	return mac.Sum(nil)
}

// Sign returns the identity of id carrying its proof.
func (s *Service) Sign(id uuid.UUID) identity.Identity {
	signed, err := identity.Mint(id[:], identity.AlgorithmSHA256, s.digest(id))
	if err != nil {
		// sizes are fixed by sha256
		panic(err)
	}
	return signed
}

// Verify reports whether id carries a valid proof. The comparison is constant time.
func (s *Service) Verify(id identity.Identity) bool {
	proof, ok := id.Proof()
	if !ok || proof.Algorithm != identity.AlgorithmSHA256 {
		return false
	}
	return hmac.Equal(s.digest(id.UUID()), proof.Digest)
}
