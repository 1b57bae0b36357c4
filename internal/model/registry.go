// Package model wraps records returned by the pairing service into domain
// objects bound to the connection that produced them. Nested records are
// wrapped on read, so navigating to a related entity never escapes the
// model as a raw record.
package model

import (
	"context"
	"fmt"
	"slices"

	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/mcoot/pairings-web/internal/identity"
	"github.com/mcoot/pairings-web/internal/wire"
)

// Conn is the subset of the pairing service connection that domain objects
// call back into when navigating to related records.
type Conn interface {
	TournamentGames(ctx context.Context, id identity.Identity) ([]*Game, error)
	TournamentPlayers(ctx context.Context, id identity.Identity) ([]*Player, error)
	PlayerGames(ctx context.Context, id identity.Identity) ([]*Game, error)
}

// Wrapper is implemented by every domain object.
type Wrapper interface {
	Record() protoreflect.Message
	Variant() protoreflect.FullName
	Conn() Conn
}

type constructor func(Object) Wrapper

// registry is written once during package initialisation
var registry = map[protoreflect.FullName]constructor{}

func register(name protoreflect.FullName, c constructor) {
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("model: %s registered twice", name))
	}
	registry[name] = c
}

func init() {
	register(wire.HmacName, func(o Object) Wrapper { return &Hmac{Object: o} })
	register(wire.IdentificationName, func(o Object) Wrapper { return &Identification{Object: o} })
	register(wire.TournamentName, func(o Object) Wrapper { return &Tournament{entity{Object: o, kind: "tournament"}} })
	register(wire.PlayerName, func(o Object) Wrapper { return &Player{entity{Object: o, kind: "player"}} })
	register(wire.GameName, func(o Object) Wrapper { return &Game{entity{Object: o, kind: "game"}} })
}

// Registered lists the variants Wrap accepts, sorted by name.
func Registered() []protoreflect.FullName {
	names := make([]protoreflect.FullName, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Wrap binds record to conn, dispatching on the record's variant.
func Wrap(record protoreflect.Message, conn Conn) (Wrapper, error) {
	if record == nil {
		return nil, fmt.Errorf("%w: nil record", ErrUnknownRecordVariant)
	}
	name := record.Descriptor().FullName()
	c, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRecordVariant, name)
	}
	return c(Object{record: record, conn: conn}), nil
}

// WrapAs wraps record and asserts the resulting domain object type.
func WrapAs[T Wrapper](record protoreflect.Message, conn Conn) (T, error) {
	var zero T
	w, err := Wrap(record, conn)
	if err != nil {
		return zero, err
	}
	t, ok := w.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s does not wrap as %T", ErrUnknownRecordVariant, w.Variant(), zero)
	}
	return t, nil
}

func mustWrapAs[T Wrapper](record protoreflect.Message, conn Conn) T {
	t, err := WrapAs[T](record, conn)
	if err != nil {
		panic(err)
	}
	return t
}
