package model

import (
	"fmt"

	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/mcoot/pairings-web/internal/identity"
	"github.com/mcoot/pairings-web/internal/wire"
)

// Hmac wraps a proof record.
type Hmac struct {
	Object
}

func (h *Hmac) Algorithm() string { return h.str(wire.FieldAlgorithm) }
func (h *Hmac) Digest() []byte    { return h.raw(wire.FieldDigest) }

// Identification wraps an identity record.
type Identification struct {
	Object
}

// UUID returns the raw uuid bytes.
func (i *Identification) UUID() []byte { return i.raw(wire.FieldUUID) }

// Hmac returns the attached proof, or nil.
func (i *Identification) Hmac() *Hmac {
	rec := i.nested(wire.FieldHmac)
	if rec == nil {
		return nil
	}
	return mustWrapAs[*Hmac](rec, i.conn)
}

// IDPair returns the uuid and the proof digest, which is nil without a proof.
func (i *Identification) IDPair() (uuid, digest []byte) {
	if h := i.Hmac(); h != nil {
		return i.UUID(), h.Digest()
	}
	return i.UUID(), nil
}

// Identity converts the record into an Identity. Records reaching the model
// have been validated by the connection, so a malformed one panics.
func (i *Identification) Identity() identity.Identity {
	id, err := wire.IdentityOf(i.record)
	if err != nil {
		panic(fmt.Errorf("%w: %v", ErrInvalidFieldValue, err))
	}
	return id
}

func (i *Identification) LinkFragment() string {
	return i.Identity().LinkFragment()
}

// entity is the behaviour shared by tournaments, players and games.
type entity struct {
	Object
	kind string
}

// ID returns the entity's identification, or nil if it has none yet.
func (e entity) ID() *Identification {
	rec := e.nested(wire.FieldID)
	if rec == nil {
		return nil
	}
	return mustWrapAs[*Identification](rec, e.conn)
}

// Identity returns the entity's identity and whether it has one.
func (e entity) Identity() (identity.Identity, bool) {
	id := e.ID()
	if id == nil {
		return identity.Identity{}, false
	}
	return id.Identity(), true
}

// Signed reports whether the entity's identity carries a proof.
func (e entity) Signed() bool {
	id, ok := e.Identity()
	return ok && id.HasProof()
}

// Link returns the entity's page path, e.g. "/game/<uuid>/<digest>/".
func (e entity) Link() string {
	id, ok := e.Identity()
	if !ok {
		return ""
	}
	return "/" + e.kind + "/" + id.LinkFragment() + "/"
}

// SetID replaces the entity's identification.
func (e entity) SetID(id identity.Identity) {
	e.set(wire.FieldID, protoreflect.ValueOfMessage(wire.NewIdentification(id)))
}

func (e entity) requireIdentity() (identity.Identity, error) {
	if e.conn == nil {
		return identity.Identity{}, errUnbound
	}
	id, ok := e.Identity()
	if !ok {
		return identity.Identity{}, fmt.Errorf("%w: %s has no id", ErrInvalidFieldValue, e.Variant())
	}
	return id, nil
}
