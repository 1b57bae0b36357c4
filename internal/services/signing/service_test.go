package signing

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/pairings-web/internal/identity"
)

func newService(t *testing.T, secret string) *Service {
	t.Helper()
	s, err := New([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestSignedIdentitiesVerify(t *testing.T) {
	s := newService(t, "correct horse battery staple")
	id := uuid.New()

	signed := s.Sign(id)
	assert.Equal(t, id, signed.UUID())
	assert.True(t, signed.HasProof())
	assert.True(t, s.Verify(signed))

	again := s.Sign(id)
	assert.True(t, again.Equal(signed), "proofs are deterministic")
}

func TestVerifyRejectsForgedProofs(t *testing.T) {
	s := newService(t, "correct horse battery staple")
	id := uuid.New()
	signed := s.Sign(id)
	proof, _ := signed.Proof()

	t.Run("no proof", func(t *testing.T) {
		assert.False(t, s.Verify(signed.Anonymous()))
	})

	t.Run("tampered digest", func(t *testing.T) {
		digest := bytes.Clone(proof.Digest)
		digest[0] ^= 1
		forged, err := identity.Mint(id[:], identity.AlgorithmSHA256, digest)
		require.NoError(t, err)
		assert.False(t, s.Verify(forged))
	})

	t.Run("proof of another entity", func(t *testing.T) {
		other := uuid.New()
		forged, err := identity.Mint(other[:], identity.AlgorithmSHA256, proof.Digest)
		require.NoError(t, err)
		assert.False(t, s.Verify(forged))
	})

	t.Run("different secret", func(t *testing.T) {
		other := newService(t, "another secret of some length")
		assert.False(t, other.Verify(signed))
	})
}

func TestNewRejectsShortSecrets(t *testing.T) {
	_, err := New([]byte("short"))
	assert.ErrorIs(t, err, ErrWeakSecret)
}
