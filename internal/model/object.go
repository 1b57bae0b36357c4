package model

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/mcoot/pairings-web/internal/wire"
)

// Object is the generic view over a record. It borrows the record and holds
// a non-owning reference to the connection it came from.
type Object struct {
	record protoreflect.Message
	conn   Conn
}

// Record returns the wrapped record.
func (o Object) Record() protoreflect.Message { return o.record }

// Variant returns the record's variant tag.
func (o Object) Variant() protoreflect.FullName { return o.record.Descriptor().FullName() }

// Conn returns the connection the object is bound to. It may be nil for
// records built locally and not yet sent.
func (o Object) Conn() Conn { return o.conn }

func (o Object) lookup(name string) (protoreflect.FieldDescriptor, error) {
	fd := o.record.Descriptor().Fields().ByName(protoreflect.Name(name))
	if fd == nil {
		return nil, fmt.Errorf("%w: %s has no field %q", ErrUnknownField, o.Variant(), name)
	}
	return fd, nil
}

// HasField reports whether the named field is explicitly set, which is
// distinct from it holding its zero value.
func (o Object) HasField(name string) (bool, error) {
	fd, err := o.lookup(name)
	if err != nil {
		return false, err
	}
	return o.record.Has(fd), nil
}

// Field reads the named field. Scalars are returned as-is, enums as their
// number, nested records wrapped with the same connection and repeated
// records as a []Wrapper. An unset nested record reads as nil.
func (o Object) Field(name string) (any, error) {
	fd, err := o.lookup(name)
	if err != nil {
		return nil, err
	}

	switch {
	case fd.IsList() && fd.Message() != nil:
		list := o.record.Get(fd).List()
		out := make([]Wrapper, 0, list.Len())
		for i := 0; i < list.Len(); i++ {
			w, err := Wrap(list.Get(i).Message(), o.conn)
			if err != nil {
				return nil, err
			}
			out = append(out, w)
		}
		return out, nil
	case fd.Message() != nil:
		if !o.record.Has(fd) {
			return nil, nil
		}
		return Wrap(o.record.Get(fd).Message(), o.conn)
	case fd.Enum() != nil:
		return o.record.Get(fd).Enum(), nil
	default:
		return o.record.Get(fd).Interface(), nil
	}
}

// SetField writes the named field. A Wrapper substitutes its record, nil
// clears the field and anything else must match the field's scalar kind.
func (o Object) SetField(name string, value any) error {
	fd, err := o.lookup(name)
	if err != nil {
		return err
	}
	if fd.IsList() {
		return fmt.Errorf("%w: %s.%s is repeated", ErrInvalidFieldValue, o.Variant(), name)
	}

	if value == nil {
		o.record.Clear(fd)
		return nil
	}

	if w, ok := value.(Wrapper); ok {
		if fd.Message() == nil || w.Variant() != fd.Message().FullName() {
			return fmt.Errorf("%w: cannot store %s in %s.%s", ErrInvalidFieldValue, w.Variant(), o.Variant(), name)
		}
		o.record.Set(fd, protoreflect.ValueOfMessage(w.Record()))
		return nil
	}

	v, ok := scalarValue(fd, value)
	if !ok {
		return fmt.Errorf("%w: cannot store %T in %s.%s", ErrInvalidFieldValue, value, o.Variant(), name)
	}
	o.record.Set(fd, v)
	return nil
}

func scalarValue(fd protoreflect.FieldDescriptor, value any) (protoreflect.Value, bool) {
	switch fd.Kind() {
	case protoreflect.StringKind:
		if s, ok := value.(string); ok {
			return protoreflect.ValueOfString(s), true
		}
	case protoreflect.BytesKind:
		if b, ok := value.([]byte); ok {
			return protoreflect.ValueOfBytes(b), true
		}
	case protoreflect.BoolKind:
		if b, ok := value.(bool); ok {
			return protoreflect.ValueOfBool(b), true
		}
	case protoreflect.Uint32Kind:
		switch n := value.(type) {
		case uint32:
			return protoreflect.ValueOfUint32(n), true
		case int:
			if n >= 0 && n <= math.MaxUint32 {
				return protoreflect.ValueOfUint32(uint32(n)), true
			}
		}
	case protoreflect.EnumKind:
		var num protoreflect.EnumNumber
		switch n := value.(type) {
		case wire.GameResult:
			num = protoreflect.EnumNumber(n)
		case protoreflect.EnumNumber:
			num = n
		default:
			return protoreflect.Value{}, false
		}
		if fd.Enum().Values().ByNumber(num) == nil {
			return protoreflect.Value{}, false
		}
		return protoreflect.ValueOfEnum(num), true
	}
	return protoreflect.Value{}, false
}

// The accessors below back the typed wrappers. The schema is fixed, so a
// missing field is a contract violation and panics.

func (o Object) must(name protoreflect.Name) protoreflect.FieldDescriptor {
	fd, err := o.lookup(string(name))
	if err != nil {
		panic(err)
	}
	return fd
}

func (o Object) has(name protoreflect.Name) bool {
	return o.record.Has(o.must(name))
}

func (o Object) str(name protoreflect.Name) string {
	return o.record.Get(o.must(name)).String()
}

func (o Object) num(name protoreflect.Name) uint32 {
	return uint32(o.record.Get(o.must(name)).Uint())
}

func (o Object) flag(name protoreflect.Name) bool {
	return o.record.Get(o.must(name)).Bool()
}

func (o Object) raw(name protoreflect.Name) []byte {
	return o.record.Get(o.must(name)).Bytes()
}

func (o Object) set(name protoreflect.Name, v protoreflect.Value) {
	o.record.Set(o.must(name), v)
}

// nested returns the set record stored in name, or nil.
func (o Object) nested(name protoreflect.Name) protoreflect.Message {
	fd := o.must(name)
	if !o.record.Has(fd) {
		return nil
	}
	return o.record.Get(fd).Message()
}

func (o Object) setNested(name protoreflect.Name, w Wrapper) {
	if err := o.SetField(string(name), w); err != nil {
		panic(err)
	}
}
