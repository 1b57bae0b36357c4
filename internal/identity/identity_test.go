package identity

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDigest(seed byte) []byte {
	return bytes.Repeat([]byte{seed}, 32)
}

func TestParseRoundTripsLinkFragment(t *testing.T) {
	for i := 0; i < 50; i++ {
		u := uuid.New()
		digest := testDigest(byte(i * 5))
		hexUUID := hex.EncodeToString(u[:])
		hexDigest := hex.EncodeToString(digest)

		id, err := Parse(hexUUID, hexDigest)
		require.NoError(t, err)

		assert.Equal(t, hexUUID+"/"+hexDigest, id.LinkFragment())
		assert.True(t, id.HasProof())
		assert.Equal(t, u, id.UUID())
	}
}

func TestParseWithoutProofOmitsDigestSegment(t *testing.T) {
	u := uuid.New()
	hexUUID := hex.EncodeToString(u[:])

	id, err := Parse(hexUUID, "")
	require.NoError(t, err)

	assert.False(t, id.HasProof())
	assert.Equal(t, hexUUID, id.LinkFragment())
	assert.NotContains(t, id.LinkFragment(), "/")
	_, ok := id.Proof()
	assert.False(t, ok)
}

func TestParseAcceptsUppercaseButRendersLowercase(t *testing.T) {
	u := uuid.New()
	digest := testDigest(0xab)
	upper := strings.ToUpper(hex.EncodeToString(u[:]))

	id, err := Parse(upper, strings.ToUpper(hex.EncodeToString(digest)))
	require.NoError(t, err)

	assert.Equal(t, hex.EncodeToString(u[:])+"/"+hex.EncodeToString(digest), id.LinkFragment())
}

func TestParseRejectsMalformedInput(t *testing.T) {
	validUUID := strings.Repeat("a", 32)
	validDigest := strings.Repeat("b", 64)

	tests := []struct {
		name  string
		uuid  string
		proof string
	}{
		{"empty uuid", "", ""},
		{"short uuid", validUUID[:30], ""},
		{"long uuid", validUUID + "00", ""},
		{"non-hex uuid", strings.Repeat("z", 32), ""},
		{"short proof", validUUID, validDigest[:62]},
		{"long proof", validUUID, validDigest + "00"},
		{"non-hex proof", validUUID, strings.Repeat("g", 64)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.uuid, tt.proof)
			assert.ErrorIs(t, err, ErrMalformedIdentity)
		})
	}
}

func TestParseFragmentInvertsLinkFragment(t *testing.T) {
	u := uuid.New()
	signed, err := Mint(u[:], AlgorithmSHA256, testDigest(7))
	require.NoError(t, err)

	parsed, err := ParseFragment(signed.LinkFragment())
	require.NoError(t, err)
	assert.True(t, parsed.Equal(signed))

	anon := signed.Anonymous()
	parsed, err = ParseFragment(anon.LinkFragment())
	require.NoError(t, err)
	assert.True(t, parsed.Equal(anon))
	assert.False(t, parsed.HasProof())
}

func TestMint(t *testing.T) {
	u := uuid.New()

	t.Run("without proof", func(t *testing.T) {
		id, err := Mint(u[:], "", nil)
		require.NoError(t, err)
		assert.False(t, id.HasProof())
		assert.Equal(t, u, id.UUID())
	})

	t.Run("with proof", func(t *testing.T) {
		digest := testDigest(1)
		id, err := Mint(u[:], AlgorithmSHA256, digest)
		require.NoError(t, err)

		proof, ok := id.Proof()
		require.True(t, ok)
		assert.Equal(t, AlgorithmSHA256, proof.Algorithm)
		assert.Equal(t, digest, proof.Digest)
	})

	t.Run("wrong uuid length", func(t *testing.T) {
		_, err := Mint(u[:15], "", nil)
		assert.Error(t, err)
	})

	t.Run("unsupported algorithm", func(t *testing.T) {
		_, err := Mint(u[:], "md5", testDigest(1)[:16])
		assert.Error(t, err)
	})

	t.Run("wrong digest length", func(t *testing.T) {
		_, err := Mint(u[:], AlgorithmSHA256, testDigest(1)[:31])
		assert.Error(t, err)
	})
}

func TestIdentityIsImmutable(t *testing.T) {
	u := uuid.New()
	digest := testDigest(9)
	id, err := Mint(u[:], AlgorithmSHA256, digest)
	require.NoError(t, err)

	digest[0] = 0
	proof, _ := id.Proof()
	assert.Equal(t, byte(9), proof.Digest[0])

	proof.Digest[1] = 0
	again, _ := id.Proof()
	assert.Equal(t, byte(9), again.Digest[1])
}

func TestStringHidesProof(t *testing.T) {
	u := uuid.New()
	id, err := Mint(u[:], AlgorithmSHA256, testDigest(0xcd))
	require.NoError(t, err)

	assert.NotContains(t, id.String(), hex.EncodeToString(testDigest(0xcd)))
	assert.Contains(t, id.String(), hex.EncodeToString(u[:]))
}

func TestParseFragmentRejectsEmptyProof(t *testing.T) {
	hexUUID := strings.Repeat("ab", 16)

	_, err := ParseFragment(hexUUID + "/")
	assert.ErrorIs(t, err, ErrMalformedIdentity)

	id, err := ParseFragment(hexUUID)
	require.NoError(t, err)
	assert.False(t, id.HasProof())
}
