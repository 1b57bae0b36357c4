package wire

import (
	"fmt"

	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/mcoot/pairings-web/internal/identity"
)

// GameResult mirrors the Result enum of the schema.
type GameResult int32

const (
	ResultNone         GameResult = 0
	ResultDraw         GameResult = 1
	ResultWhiteWin     GameResult = 2
	ResultBlackWin     GameResult = 3
	ResultWhiteForfeit GameResult = 4
	ResultBlackForfeit GameResult = 5
)

var resultOrder = []GameResult{
	ResultNone, ResultDraw, ResultWhiteWin, ResultBlackWin, ResultWhiteForfeit, ResultBlackForfeit,
}

var resultNames = map[GameResult]string{
	ResultNone:         "NONE",
	ResultDraw:         "DRAW",
	ResultWhiteWin:     "WHITE_WIN",
	ResultBlackWin:     "BLACK_WIN",
	ResultWhiteForfeit: "WHITE_FORFEIT",
	ResultBlackForfeit: "BLACK_FORFEIT",
}

// String returns the schema name of the result.
func (r GameResult) String() string {
	if name, ok := resultNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Result(%d)", int32(r))
}

// Valid reports whether r is declared by the schema.
func (r GameResult) Valid() bool {
	_, ok := resultNames[r]
	return ok
}

// ParseResult looks a result up by its schema name.
func ParseResult(name string) (GameResult, bool) {
	for r, n := range resultNames {
		if n == name {
			return r, true
		}
	}
	return ResultNone, false
}

// Results lists every result in declaration order.
func Results() []GameResult {
	return append([]GameResult(nil), resultOrder...)
}

// New returns an empty record of the given variant.
func New(md protoreflect.MessageDescriptor) *dynamicpb.Message {
	return dynamicpb.NewMessage(md)
}

// FieldOf returns the named field of md. It panics if the schema does not
// declare it: callers inside this module only name fields of the fixed schema.
func FieldOf(md protoreflect.MessageDescriptor, name protoreflect.Name) protoreflect.FieldDescriptor {
	fd := md.Fields().ByName(name)
	if fd == nil {
		panic(fmt.Sprintf("wire: %s has no field %q", md.FullName(), name))
	}
	return fd
}

// Has reports whether the named field is explicitly set.
func Has(m protoreflect.Message, name protoreflect.Name) bool {
	return m.Has(FieldOf(m.Descriptor(), name))
}

// String returns a string field.
func String(m protoreflect.Message, name protoreflect.Name) string {
	return m.Get(FieldOf(m.Descriptor(), name)).String()
}

// Uint32 returns a uint32 field.
func Uint32(m protoreflect.Message, name protoreflect.Name) uint32 {
	return uint32(m.Get(FieldOf(m.Descriptor(), name)).Uint())
}

// Bool returns a bool field.
func Bool(m protoreflect.Message, name protoreflect.Name) bool {
	return m.Get(FieldOf(m.Descriptor(), name)).Bool()
}

// Bytes returns a bytes field.
func Bytes(m protoreflect.Message, name protoreflect.Name) []byte {
	return m.Get(FieldOf(m.Descriptor(), name)).Bytes()
}

// Enum returns the result stored in an enum field.
func Enum(m protoreflect.Message, name protoreflect.Name) GameResult {
	return GameResult(m.Get(FieldOf(m.Descriptor(), name)).Enum())
}

// Message returns a nested record and whether it is set.
func Message(m protoreflect.Message, name protoreflect.Name) (protoreflect.Message, bool) {
	fd := FieldOf(m.Descriptor(), name)
	if !m.Has(fd) {
		return nil, false
	}
	return m.Get(fd).Message(), true
}

// Set assigns a scalar or record to the named field.
func Set(m protoreflect.Message, name protoreflect.Name, v any) {
	fd := FieldOf(m.Descriptor(), name)
	switch x := v.(type) {
	case protoreflect.ProtoMessage:
		m.Set(fd, protoreflect.ValueOfMessage(x.ProtoReflect()))
	case protoreflect.Message:
		m.Set(fd, protoreflect.ValueOfMessage(x))
	case GameResult:
		m.Set(fd, protoreflect.ValueOfEnum(protoreflect.EnumNumber(x)))
	default:
		m.Set(fd, protoreflect.ValueOf(v))
	}
}

// Append adds a record to a repeated message field.
func Append(m protoreflect.Message, name protoreflect.Name, item protoreflect.Message) {
	fd := FieldOf(m.Descriptor(), name)
	m.Mutable(fd).List().Append(protoreflect.ValueOfMessage(item))
}

// Items returns the records of a repeated message field in order.
func Items(m protoreflect.Message, name protoreflect.Name) []protoreflect.Message {
	list := m.Get(FieldOf(m.Descriptor(), name)).List()
	items := make([]protoreflect.Message, 0, list.Len())
	for i := 0; i < list.Len(); i++ {
		items = append(items, list.Get(i).Message())
	}
	return items
}

// NewIdentification builds an Identification record from id.
func NewIdentification(id identity.Identity) *dynamicpb.Message {
	m := New(Identification)
	u := id.UUID()
	Set(m, FieldUUID, u[:])
	if proof, ok := id.Proof(); ok {
		h := New(Hmac)
		Set(h, FieldAlgorithm, proof.Algorithm)
		Set(h, FieldDigest, proof.Digest)
		Set(m, FieldHmac, h)
	}
	return m
}

// IdentityOf converts an Identification record back into an Identity.
func IdentityOf(m protoreflect.Message) (identity.Identity, error) {
	if m.Descriptor().FullName() != IdentificationName {
		return identity.Identity{}, fmt.Errorf("wire: %s is not an identification", m.Descriptor().FullName())
	}
	raw := Bytes(m, FieldUUID)
	h, ok := Message(m, FieldHmac)
	if !ok {
		return identity.Mint(raw, "", nil)
	}
	digest := Bytes(h, FieldDigest)
	if digest == nil {
		digest = []byte{}
	}
	return identity.Mint(raw, String(h, FieldAlgorithm), digest)
}
