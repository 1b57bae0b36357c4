package rpc

import (
	"fmt"

	"github.com/google/uuid"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/mcoot/pairings-web/internal/identity"
	"github.com/mcoot/pairings-web/internal/services/tournament"
	"github.com/mcoot/pairings-web/internal/storage"
	"github.com/mcoot/pairings-web/internal/wire"
)

// Requests

func incomplete(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{tournament.ErrIncomplete}, args...)...)
}

// identityOf reads an Identification record sent by a caller.
func identityOf(m protoreflect.Message) (identity.Identity, error) {
	id, err := wire.IdentityOf(m)
	if err != nil {
		return identity.Identity{}, incomplete("%v", err)
	}
	return id, nil
}

// entityID reads the id field of a tournament, player or game record.
func entityID(m protoreflect.Message) (identity.Identity, error) {
	rec, ok := wire.Message(m, wire.FieldID)
	if !ok {
		return identity.Identity{}, incomplete("%s has no id", m.Descriptor().Name())
	}
	return identityOf(rec)
}

// tournamentRef reads the id of the tournament nested in m. The zero
// Identity is returned when there is none.
func tournamentRef(m protoreflect.Message) (identity.Identity, bool, error) {
	t, ok := wire.Message(m, wire.FieldTournament)
	if !ok || !wire.Has(t, wire.FieldID) {
		return identity.Identity{}, false, nil
	}
	id, err := entityID(t)
	if err != nil {
		return identity.Identity{}, false, err
	}
	return id, true, nil
}

func require(m protoreflect.Message, names ...protoreflect.Name) error {
	for _, name := range names {
		if !wire.Has(m, name) {
			return incomplete("%s has no %s", m.Descriptor().Name(), name)
		}
	}
	return nil
}

func optionalString(m protoreflect.Message, name protoreflect.Name) *string {
	if !wire.Has(m, name) {
		return nil
	}
	v := wire.String(m, name)
	return &v
}

func optionalUint32(m protoreflect.Message, name protoreflect.Name) *uint32 {
	if !wire.Has(m, name) {
		return nil
	}
	v := wire.Uint32(m, name)
	return &v
}

func optionalBool(m protoreflect.Message, name protoreflect.Name) *bool {
	if !wire.Has(m, name) {
		return nil
	}
	v := wire.Bool(m, name)
	return &v
}

// Replies. Only the top-level entity of a reply carries a proof; nested
// references are always anonymous.

func (s *Service) identification(id uuid.UUID, signed bool) *dynamicpb.Message {
	return wire.NewIdentification(s.controller.Identity(id, signed))
}

func (s *Service) tournamentRecord(t *storage.Tournament, signed bool) *dynamicpb.Message {
	m := wire.New(wire.Tournament)
	wire.Set(m, wire.FieldID, s.identification(t.ID, signed))
	wire.Set(m, wire.FieldName, t.Name)
	wire.Set(m, wire.FieldRounds, t.Rounds)
	return m
}

func (s *Service) playerRecord(p *storage.Player, t *storage.Tournament, signed bool) *dynamicpb.Message {
	m := wire.New(wire.Player)
	wire.Set(m, wire.FieldID, s.identification(p.ID, signed))
	if t != nil {
		wire.Set(m, wire.FieldTournament, s.tournamentRecord(t, false))
	}
	wire.Set(m, wire.FieldName, p.Name)
	wire.Set(m, wire.FieldRating, p.Rating)
	wire.Set(m, wire.FieldWithdrawn, p.Withdrawn)
	wire.Set(m, wire.FieldExpelled, p.Expelled)
	return m
}

func (s *Service) gameRecord(g *tournament.Game) *dynamicpb.Message {
	m := wire.New(wire.Game)
	wire.Set(m, wire.FieldID, s.identification(g.ID, g.Signed))
	wire.Set(m, wire.FieldTournament, s.tournamentRecord(g.Tournament, false))
	wire.Set(m, wire.FieldRound, g.Round)
	wire.Set(m, wire.FieldWhite, s.playerRecord(g.White, g.Tournament, false))
	if g.Black != nil {
		wire.Set(m, wire.FieldBlack, s.playerRecord(g.Black, g.Tournament, false))
	}
	if g.Result != wire.ResultNone {
		wire.Set(m, wire.FieldResult, g.Result)
	}
	return m
}

func (s *Service) gameList(games []*tournament.Game) *dynamicpb.Message {
	m := wire.New(wire.GameList)
	for _, g := range games {
		wire.Append(m, wire.FieldGames, s.gameRecord(g))
	}
	return m
}

func (s *Service) playerList(players []*tournament.Player) *dynamicpb.Message {
	m := wire.New(wire.PlayerList)
	for _, p := range players {
		wire.Append(m, wire.FieldPlayers, s.playerRecord(p.Player, p.Tournament, p.Signed))
	}
	return m
}
