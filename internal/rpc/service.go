// Package rpc serves the tournament controller as the pairings.PairingServer
// gRPC service. Records are dynamic messages of the wire schema.
package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/mcoot/pairings-web/internal/services/tournament"
	"github.com/mcoot/pairings-web/internal/wire"
)

// PairingServer is the server API of the pairing service.
type PairingServer interface {
	CreateTournament(ctx context.Context, in protoreflect.Message) (protoreflect.Message, error)
	GetTournament(ctx context.Context, in protoreflect.Message) (protoreflect.Message, error)
	UpdateTournament(ctx context.Context, in protoreflect.Message) (protoreflect.Message, error)
	GetGames(ctx context.Context, in protoreflect.Message) (protoreflect.Message, error)
	AdvancePairing(ctx context.Context, in protoreflect.Message) (protoreflect.Message, error)
	CreatePlayer(ctx context.Context, in protoreflect.Message) (protoreflect.Message, error)
	GetPlayer(ctx context.Context, in protoreflect.Message) (protoreflect.Message, error)
	UpdatePlayer(ctx context.Context, in protoreflect.Message) (protoreflect.Message, error)
	GetPlayers(ctx context.Context, in protoreflect.Message) (protoreflect.Message, error)
	GetPlayerGames(ctx context.Context, in protoreflect.Message) (protoreflect.Message, error)
	GetGame(ctx context.Context, in protoreflect.Message) (protoreflect.Message, error)
	RegisterResult(ctx context.Context, in protoreflect.Message) (protoreflect.Message, error)
}

// ServiceDesc describes pairings.PairingServer for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: string(wire.ServiceName),
	HandlerType: (*PairingServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(wire.MethodCreateTournament, PairingServer.CreateTournament),
		unary(wire.MethodGetTournament, PairingServer.GetTournament),
		unary(wire.MethodUpdateTournament, PairingServer.UpdateTournament),
		unary(wire.MethodGetGames, PairingServer.GetGames),
		unary(wire.MethodAdvancePairing, PairingServer.AdvancePairing),
		unary(wire.MethodCreatePlayer, PairingServer.CreatePlayer),
		unary(wire.MethodGetPlayer, PairingServer.GetPlayer),
		unary(wire.MethodUpdatePlayer, PairingServer.UpdatePlayer),
		unary(wire.MethodGetPlayers, PairingServer.GetPlayers),
		unary(wire.MethodGetPlayerGames, PairingServer.GetPlayerGames),
		unary(wire.MethodGetGame, PairingServer.GetGame),
		unary(wire.MethodRegisterResult, PairingServer.RegisterResult),
	},
	Metadata: wire.File.Path(),
}

type unaryCall func(PairingServer, context.Context, protoreflect.Message) (protoreflect.Message, error)

// unary builds the method handler for fullMethod. The request is decoded
// into a record of the method's input type.
func unary(fullMethod string, call unaryCall) grpc.MethodDesc {
	in, _, ok := wire.Signature(fullMethod)
	if !ok {
		panic("rpc: unknown method " + fullMethod)
	}
	return grpc.MethodDesc{
		MethodName: wire.MethodName(fullMethod),
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			req := wire.New(in)
			if err := dec(req); err != nil {
				return nil, err
			}
			handler := func(ctx context.Context, req any) (any, error) {
				out, err := call(srv.(PairingServer), ctx, req.(protoreflect.ProtoMessage).ProtoReflect())
				if err != nil {
					return nil, toStatus(fullMethod, err)
				}
				return out.Interface(), nil
			}
			if interceptor == nil {
				return handler(ctx, req)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			return interceptor(ctx, req, info, handler)
		},
	}
}

// Service implements PairingServer on top of a tournament.Controller.
type Service struct {
	controller *tournament.Controller
}

var _ PairingServer = (*Service)(nil)

// NewService creates a new Service
func NewService(controller *tournament.Controller) *Service {
	return &Service{controller: controller}
}

// Tournaments

func (s *Service) CreateTournament(ctx context.Context, in protoreflect.Message) (protoreflect.Message, error) {
	if err := require(in, wire.FieldName, wire.FieldRounds); err != nil {
		return nil, err
	}
	t, err := s.controller.CreateTournament(ctx, wire.String(in, wire.FieldName), wire.Uint32(in, wire.FieldRounds))
	if err != nil {
		return nil, err
	}
	return s.identification(t.ID, true), nil
}

func (s *Service) GetTournament(ctx context.Context, in protoreflect.Message) (protoreflect.Message, error) {
	id, err := identityOf(in)
	if err != nil {
		return nil, err
	}
	t, err := s.controller.GetTournament(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.tournamentRecord(t.Tournament, t.Signed), nil
}

func (s *Service) UpdateTournament(ctx context.Context, in protoreflect.Message) (protoreflect.Message, error) {
	id, err := entityID(in)
	if err != nil {
		return nil, err
	}
	t, err := s.controller.UpdateTournament(ctx, id, tournament.TournamentUpdate{
		Name:   optionalString(in, wire.FieldName),
		Rounds: optionalUint32(in, wire.FieldRounds),
	})
	if err != nil {
		return nil, err
	}
	return s.tournamentRecord(t.Tournament, t.Signed), nil
}

func (s *Service) GetGames(ctx context.Context, in protoreflect.Message) (protoreflect.Message, error) {
	id, err := identityOf(in)
	if err != nil {
		return nil, err
	}
	games, err := s.controller.Games(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.gameList(games), nil
}

func (s *Service) AdvancePairing(ctx context.Context, in protoreflect.Message) (protoreflect.Message, error) {
	id, err := identityOf(in)
	if err != nil {
		return nil, err
	}
	games, err := s.controller.AdvancePairing(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.gameList(games), nil
}

// Players

func (s *Service) CreatePlayer(ctx context.Context, in protoreflect.Message) (protoreflect.Message, error) {
	if err := require(in, wire.FieldName, wire.FieldRating); err != nil {
		return nil, err
	}
	tid, ok, err := tournamentRef(in)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, incomplete("player has no tournament")
	}
	p, err := s.controller.SignUp(ctx, tid, wire.String(in, wire.FieldName), wire.Uint32(in, wire.FieldRating))
	if err != nil {
		return nil, err
	}
	return s.identification(p.ID, true), nil
}

func (s *Service) GetPlayer(ctx context.Context, in protoreflect.Message) (protoreflect.Message, error) {
	id, err := identityOf(in)
	if err != nil {
		return nil, err
	}
	p, err := s.controller.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.playerRecord(p.Player, p.Tournament, p.Signed), nil
}

func (s *Service) UpdatePlayer(ctx context.Context, in protoreflect.Message) (protoreflect.Message, error) {
	id, err := entityID(in)
	if err != nil {
		return nil, err
	}
	tid, _, err := tournamentRef(in)
	if err != nil {
		return nil, err
	}
	p, err := s.controller.UpdatePlayer(ctx, id, tid, tournament.PlayerUpdate{
		Name:      optionalString(in, wire.FieldName),
		Rating:    optionalUint32(in, wire.FieldRating),
		Withdrawn: optionalBool(in, wire.FieldWithdrawn),
		Expelled:  optionalBool(in, wire.FieldExpelled),
	})
	if err != nil {
		return nil, err
	}
	return s.playerRecord(p.Player, p.Tournament, p.Signed), nil
}

func (s *Service) GetPlayers(ctx context.Context, in protoreflect.Message) (protoreflect.Message, error) {
	id, err := identityOf(in)
	if err != nil {
		return nil, err
	}
	players, err := s.controller.Players(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.playerList(players), nil
}

func (s *Service) GetPlayerGames(ctx context.Context, in protoreflect.Message) (protoreflect.Message, error) {
	id, err := identityOf(in)
	if err != nil {
		return nil, err
	}
	games, err := s.controller.PlayerGames(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.gameList(games), nil
}

// Games

func (s *Service) GetGame(ctx context.Context, in protoreflect.Message) (protoreflect.Message, error) {
	id, err := identityOf(in)
	if err != nil {
		return nil, err
	}
	g, err := s.controller.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.gameRecord(g), nil
}

func (s *Service) RegisterResult(ctx context.Context, in protoreflect.Message) (protoreflect.Message, error) {
	id, err := entityID(in)
	if err != nil {
		return nil, err
	}
	if err := require(in, wire.FieldResult); err != nil {
		return nil, err
	}
	tid, _, err := tournamentRef(in)
	if err != nil {
		return nil, err
	}
	g, err := s.controller.RegisterResult(ctx, id, tid, wire.Enum(in, wire.FieldResult))
	if err != nil {
		return nil, err
	}
	return s.gameRecord(g), nil
}
