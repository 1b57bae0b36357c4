package model

import (
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/mcoot/pairings-web/internal/wire"
)

// ByePlaceholder stands in for the missing black player of a bye.
const ByePlaceholder = "Noone"

// Game wraps a game record. A game without a black player is a bye.
type Game struct {
	entity
}

func (g *Game) Round() uint32 { return g.num(wire.FieldRound) }

func (g *Game) Result() wire.GameResult {
	return wire.GameResult(g.record.Get(g.must(wire.FieldResult)).Enum())
}

func (g *Game) HasResult() bool { return g.has(wire.FieldResult) }

func (g *Game) SetResult(r wire.GameResult) {
	g.set(wire.FieldResult, protoreflect.ValueOfEnum(protoreflect.EnumNumber(r)))
}

// Tournament returns the tournament the game belongs to, or nil.
func (g *Game) Tournament() *Tournament {
	rec := g.nested(wire.FieldTournament)
	if rec == nil {
		return nil
	}
	return mustWrapAs[*Tournament](rec, g.conn)
}

func (g *Game) White() *Player { return g.player(wire.FieldWhite) }

// Black returns the black player, or nil for a bye.
func (g *Game) Black() *Player { return g.player(wire.FieldBlack) }

// HasBlack reports whether the game has a black player.
func (g *Game) HasBlack() bool { return g.has(wire.FieldBlack) }

func (g *Game) player(name protoreflect.Name) *Player {
	rec := g.nested(name)
	if rec == nil {
		return nil
	}
	return mustWrapAs[*Player](rec, g.conn)
}

// Description renders "<white> vs. <black>".
func (g *Game) Description() string {
	return describe(g.White()) + " vs. " + describe(g.Black())
}

func describe(p *Player) string {
	if p == nil {
		return ByePlaceholder
	}
	return p.Description()
}

// SortRating is the higher of both players' ratings, or 0 for a bye.
func (g *Game) SortRating() uint32 {
	white, black := g.White(), g.Black()
	if white == nil || black == nil {
		return 0
	}
	return max(white.Rating(), black.Rating())
}
