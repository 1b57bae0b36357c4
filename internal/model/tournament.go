package model

import (
	"context"

	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/mcoot/pairings-web/internal/wire"
)

// Tournament wraps a tournament record.
type Tournament struct {
	entity
}

// NewTournament builds a tournament record that has not been sent yet.
func NewTournament(conn Conn, name string, rounds uint32) *Tournament {
	t := mustWrapAs[*Tournament](wire.New(wire.Tournament), conn)
	t.SetName(name)
	t.SetRounds(rounds)
	return t
}

func (t *Tournament) Name() string        { return t.str(wire.FieldName) }
func (t *Tournament) SetName(name string) { t.set(wire.FieldName, protoreflect.ValueOfString(name)) }
func (t *Tournament) Rounds() uint32      { return t.num(wire.FieldRounds) }
func (t *Tournament) SetRounds(n uint32)  { t.set(wire.FieldRounds, protoreflect.ValueOfUint32(n)) }

// Reference returns a new tournament record carrying only this tournament's
// public id, for embedding in player records. Callers acting with the
// tournament's authority set the signed id on it themselves.
func (t *Tournament) Reference() *Tournament {
	ref := mustWrapAs[*Tournament](wire.New(wire.Tournament), t.conn)
	if id, ok := t.Identity(); ok {
		ref.SetID(id.Anonymous())
	}
	return ref
}

// Games fetches the tournament's games in the order the service returns them.
func (t *Tournament) Games(ctx context.Context) ([]*Game, error) {
	id, err := t.requireIdentity()
	if err != nil {
		return nil, err
	}
	return t.conn.TournamentGames(ctx, id)
}

// Players fetches the tournament's players in the order the service returns them.
func (t *Tournament) Players(ctx context.Context) ([]*Player, error) {
	id, err := t.requireIdentity()
	if err != nil {
		return nil, err
	}
	return t.conn.TournamentPlayers(ctx, id)
}

// GamesByRound fetches the tournament's games and groups them with GroupByRound.
func (t *Tournament) GamesByRound(ctx context.Context) ([]RoundGroup, error) {
	games, err := t.Games(ctx)
	if err != nil {
		return nil, err
	}
	return GroupByRound(games), nil
}
