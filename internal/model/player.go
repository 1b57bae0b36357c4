package model

import (
	"context"
	"fmt"

	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/mcoot/pairings-web/internal/wire"
)

// Player wraps a player record.
type Player struct {
	entity
}

// NewPlayer builds a sign-up record for t that has not been sent yet.
func NewPlayer(conn Conn, name string, rating uint32, t *Tournament) *Player {
	p := mustWrapAs[*Player](wire.New(wire.Player), conn)
	p.SetName(name)
	p.SetRating(rating)
	p.SetTournament(t)
	return p
}

func (p *Player) Name() string         { return p.str(wire.FieldName) }
func (p *Player) SetName(name string)  { p.set(wire.FieldName, protoreflect.ValueOfString(name)) }
func (p *Player) Rating() uint32       { return p.num(wire.FieldRating) }
func (p *Player) SetRating(r uint32)   { p.set(wire.FieldRating, protoreflect.ValueOfUint32(r)) }
func (p *Player) Withdrawn() bool      { return p.flag(wire.FieldWithdrawn) }
func (p *Player) SetWithdrawn(v bool)  { p.set(wire.FieldWithdrawn, protoreflect.ValueOfBool(v)) }
func (p *Player) Expelled() bool       { return p.flag(wire.FieldExpelled) }
func (p *Player) SetExpelled(v bool)   { p.set(wire.FieldExpelled, protoreflect.ValueOfBool(v)) }
func (p *Player) Active() bool         { return !p.Withdrawn() && !p.Expelled() }

// Tournament returns the tournament the player signed up to, or nil.
func (p *Player) Tournament() *Tournament {
	rec := p.nested(wire.FieldTournament)
	if rec == nil {
		return nil
	}
	return mustWrapAs[*Tournament](rec, p.conn)
}

// SetTournament stores t's record in the player; nil clears it.
func (p *Player) SetTournament(t *Tournament) {
	if t == nil {
		p.record.Clear(p.must(wire.FieldTournament))
		return
	}
	p.setNested(wire.FieldTournament, t)
}

// Description renders "<name> (<rating>)".
func (p *Player) Description() string {
	return fmt.Sprintf("%s (%d)", p.Name(), p.Rating())
}

// Games fetches the player's games in the order the service returns them.
func (p *Player) Games(ctx context.Context) ([]*Game, error) {
	id, err := p.requireIdentity()
	if err != nil {
		return nil, err
	}
	return p.conn.PlayerGames(ctx, id)
}
