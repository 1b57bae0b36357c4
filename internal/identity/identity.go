// Package identity implements the capability-bearing identifiers used to
// reference tournaments, players and games across the RPC boundary.
//
// An Identity is a UUID plus an optional proof of authorship. Presenting a
// valid proof for a UUID asserts the right to modify the referenced entity;
// an Identity without a proof only grants read access.
package identity

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// AlgorithmSHA256 is the only proof algorithm issued by the pairing service.
const AlgorithmSHA256 = "sha256"

// ErrMalformedIdentity is returned when caller-supplied identifiers cannot be decoded.
var ErrMalformedIdentity = errors.New("malformed identity")

// digestSizes maps each supported algorithm to its digest length in bytes
var digestSizes = map[string]int{
	AlgorithmSHA256: 32,
}

// Proof is an algorithm-tagged digest proving authorship of an entity.
type Proof struct {
	Algorithm string
	Digest    []byte
}

// Identity references an entity and optionally carries its proof.
// The zero value is not a valid identity.
type Identity struct {
	uuid     uuid.UUID
	hasProof bool
	alg      string
	digest   string // kept as string so Identity stays comparable and immutable
}

// Parse decodes hex-encoded identifiers supplied by an external caller.
// An empty hexProof yields an identity without a proof. Proofs supplied this
// way are always tagged with AlgorithmSHA256.
func Parse(hexUUID, hexProof string) (Identity, error) {
	if len(hexUUID) != 2*len(uuid.UUID{}) {
		return Identity{}, fmt.Errorf("%w: uuid must be %d hex characters", ErrMalformedIdentity, 2*len(uuid.UUID{}))
	}
	raw, err := hex.DecodeString(hexUUID)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: uuid: %v", ErrMalformedIdentity, err)
	}
	id := Identity{}
	copy(id.uuid[:], raw)

	if hexProof == "" {
		return id, nil
	}

	size := digestSizes[AlgorithmSHA256]
	if len(hexProof) != 2*size {
		return Identity{}, fmt.Errorf("%w: proof must be %d hex characters", ErrMalformedIdentity, 2*size)
	}
	digest, err := hex.DecodeString(hexProof)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: proof: %v", ErrMalformedIdentity, err)
	}
	id.hasProof = true
	id.alg = AlgorithmSHA256
	id.digest = string(digest)
	return id, nil
}

// ParseFragment is the inverse of LinkFragment. A separator followed by an
// empty proof is rejected rather than read as an unsigned identity.
func ParseFragment(fragment string) (Identity, error) {
	hexUUID, hexProof, found := strings.Cut(fragment, "/")
	if found && hexProof == "" {
		return Identity{}, fmt.Errorf("%w: empty proof after %q", ErrMalformedIdentity, hexUUID)
	}
	return Parse(hexUUID, hexProof)
}

// Mint wraps binary values returned by the pairing service. A nil digest
// yields an identity without a proof.
func Mint(rawUUID []byte, algorithm string, digest []byte) (Identity, error) {
	u, err := uuid.FromBytes(rawUUID)
	if err != nil {
		return Identity{}, fmt.Errorf("mint identity: %w", err)
	}
	id := Identity{uuid: u}
	if digest == nil {
		return id, nil
	}

	size, ok := digestSizes[algorithm]
	if !ok {
		return Identity{}, fmt.Errorf("mint identity: unsupported proof algorithm %q", algorithm)
	}
	if len(digest) != size {
		return Identity{}, fmt.Errorf("mint identity: %s digest is %d bytes, want %d", algorithm, len(digest), size)
	}
	id.hasProof = true
	id.alg = algorithm
	id.digest = string(digest)
	return id, nil
}

// New returns an identity for u without a proof.
func New(u uuid.UUID) Identity {
	return Identity{uuid: u}
}

// UUID returns the referenced entity's UUID.
func (id Identity) UUID() uuid.UUID {
	return id.uuid
}

// HasProof reports whether the identity carries a proof.
func (id Identity) HasProof() bool {
	return id.hasProof
}

// Proof returns a copy of the proof, or false if there is none.
func (id Identity) Proof() (Proof, bool) {
	if !id.hasProof {
		return Proof{}, false
	}
	return Proof{Algorithm: id.alg, Digest: []byte(id.digest)}, true
}

// Anonymous returns the identity with its proof removed.
func (id Identity) Anonymous() Identity {
	return Identity{uuid: id.uuid}
}

// Equal reports whether both identities reference the same entity with the same proof.
func (id Identity) Equal(other Identity) bool {
	return id == other
}

// LinkFragment renders the identity as "<hex uuid>" or "<hex uuid>/<hex digest>".
func (id Identity) LinkFragment() string {
	s := hex.EncodeToString(id.uuid[:])
	if id.hasProof {
		s += "/" + hex.EncodeToString([]byte(id.digest))
	}
	return s
}

// String implements fmt.Stringer without revealing the proof.
func (id Identity) String() string {
	if id.hasProof {
		return hex.EncodeToString(id.uuid[:]) + " (signed)"
	}
	return hex.EncodeToString(id.uuid[:])
}
