// Package connection is the client side of the pairing service. Every reply
// is validated and wrapped into model objects bound back to the Connection
// before it is returned.
package connection

import (
	"context"
	"fmt"
	"io"

	"google.golang.org/grpc"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/mcoot/pairings-web/internal/identity"
	"github.com/mcoot/pairings-web/internal/model"
	"github.com/mcoot/pairings-web/internal/wire"
)

// Connection issues calls to the pairing service over a shared channel.
// It is safe for concurrent use; each call builds its own messages.
type Connection struct {
	cc     grpc.ClientConnInterface
	health grpc_health_v1.HealthClient
}

var _ model.Conn = (*Connection)(nil)

// New returns a Connection over cc.
func New(cc grpc.ClientConnInterface) *Connection {
	return &Connection{
		cc:     cc,
		health: grpc_health_v1.NewHealthClient(cc),
	}
}

// Close closes the underlying channel if it can be closed.
func (c *Connection) Close() error {
	if closer, ok := c.cc.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Ping checks that the pairing service reports itself as serving.
func (c *Connection) Ping(ctx context.Context) error {
	resp, err := c.health.Check(ctx, &grpc_health_v1.HealthCheckRequest{})
	if err != nil {
		return callError(grpc_health_v1.Health_Check_FullMethodName, err)
	}
	if resp.GetStatus() != grpc_health_v1.HealthCheckResponse_SERVING {
		return &CallError{
			Method: grpc_health_v1.Health_Check_FullMethodName,
			Kind:   model.ErrTransportFailure,
			Cause:  fmt.Errorf("service is %s", resp.GetStatus()),
		}
	}
	return nil
}

func (c *Connection) invoke(ctx context.Context, method string, in protoreflect.Message) (protoreflect.Message, error) {
	_, outDesc, ok := wire.Signature(method)
	if !ok {
		return nil, fmt.Errorf("%w: no method %s", model.ErrUnknownRecordVariant, method)
	}
	out := wire.New(outDesc)
	if err := c.cc.Invoke(ctx, method, in.Interface(), out); err != nil {
		return nil, callError(method, err)
	}
	if err := validate(out); err != nil {
		return nil, &CallError{Method: method, Kind: model.ErrTransportFailure, Cause: err}
	}
	return out, nil
}

// validate checks every identification in a reply so the model can mint
// identities from them without failing.
func validate(m protoreflect.Message) error {
	if m.Descriptor().FullName() == wire.IdentificationName {
		_, err := wire.IdentityOf(m)
		return err
	}
	var err error
	m.Range(func(fd protoreflect.FieldDescriptor, v protoreflect.Value) bool {
		switch {
		case fd.IsList() && fd.Message() != nil:
			list := v.List()
			for i := 0; i < list.Len() && err == nil; i++ {
				err = validate(list.Get(i).Message())
			}
		case fd.Message() != nil:
			err = validate(v.Message())
		}
		return err == nil
	})
	return err
}

func fetch[T model.Wrapper](ctx context.Context, c *Connection, method string, in protoreflect.Message) (T, error) {
	var zero T
	out, err := c.invoke(ctx, method, in)
	if err != nil {
		return zero, err
	}
	return model.WrapAs[T](out, c)
}

func fetchList[T model.Wrapper](ctx context.Context, c *Connection, method string, in protoreflect.Message, field protoreflect.Name) ([]T, error) {
	out, err := c.invoke(ctx, method, in)
	if err != nil {
		return nil, err
	}
	items := wire.Items(out, field)
	wrapped := make([]T, 0, len(items))
	for _, item := range items {
		w, err := model.WrapAs[T](item, c)
		if err != nil {
			return nil, err
		}
		wrapped = append(wrapped, w)
	}
	return wrapped, nil
}

// create sends a locally built entity and returns the identity the service
// assigned to it.
func (c *Connection) create(ctx context.Context, method string, in protoreflect.Message) (identity.Identity, error) {
	out, err := c.invoke(ctx, method, in)
	if err != nil {
		return identity.Identity{}, err
	}
	return wire.IdentityOf(out)
}

// CreateTournament creates a tournament. The returned tournament carries the
// proof needed to administer it.
func (c *Connection) CreateTournament(ctx context.Context, name string, rounds uint32) (*model.Tournament, error) {
	t := model.NewTournament(c, name, rounds)
	id, err := c.create(ctx, wire.MethodCreateTournament, t.Record())
	if err != nil {
		return nil, err
	}
	t.SetID(id)
	return t, nil
}

func (c *Connection) Tournament(ctx context.Context, id identity.Identity) (*model.Tournament, error) {
	return fetch[*model.Tournament](ctx, c, wire.MethodGetTournament, wire.NewIdentification(id))
}

// UpdateTournament stores the tournament's name and rounds. It requires the
// tournament's proof.
func (c *Connection) UpdateTournament(ctx context.Context, t *model.Tournament) (*model.Tournament, error) {
	return fetch[*model.Tournament](ctx, c, wire.MethodUpdateTournament, t.Record())
}

func (c *Connection) TournamentGames(ctx context.Context, id identity.Identity) ([]*model.Game, error) {
	return fetchList[*model.Game](ctx, c, wire.MethodGetGames, wire.NewIdentification(id), wire.FieldGames)
}

// AdvancePairing pairs the tournament's next round and returns its games.
// It fails with model.ErrPairingUnavailable once every round is paired.
func (c *Connection) AdvancePairing(ctx context.Context, id identity.Identity) ([]*model.Game, error) {
	return fetchList[*model.Game](ctx, c, wire.MethodAdvancePairing, wire.NewIdentification(id), wire.FieldGames)
}

// CreatePlayer signs a player up to t. The returned player carries the
// proof needed to withdraw them.
func (c *Connection) CreatePlayer(ctx context.Context, name string, rating uint32, t *model.Tournament) (*model.Player, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: player needs a tournament", model.ErrInvalidFieldValue)
	}
	p := model.NewPlayer(c, name, rating, t.Reference())
	id, err := c.create(ctx, wire.MethodCreatePlayer, p.Record())
	if err != nil {
		return nil, err
	}
	p.SetID(id)
	return p, nil
}

func (c *Connection) Player(ctx context.Context, id identity.Identity) (*model.Player, error) {
	return fetch[*model.Player](ctx, c, wire.MethodGetPlayer, wire.NewIdentification(id))
}

// UpdatePlayer stores the player's mutable fields. Withdrawing needs the
// player's proof; expelling needs the tournament's proof on p.Tournament().
func (c *Connection) UpdatePlayer(ctx context.Context, p *model.Player) (*model.Player, error) {
	return fetch[*model.Player](ctx, c, wire.MethodUpdatePlayer, p.Record())
}

func (c *Connection) TournamentPlayers(ctx context.Context, id identity.Identity) ([]*model.Player, error) {
	return fetchList[*model.Player](ctx, c, wire.MethodGetPlayers, wire.NewIdentification(id), wire.FieldPlayers)
}

func (c *Connection) PlayerGames(ctx context.Context, id identity.Identity) ([]*model.Game, error) {
	return fetchList[*model.Game](ctx, c, wire.MethodGetPlayerGames, wire.NewIdentification(id), wire.FieldGames)
}

func (c *Connection) Game(ctx context.Context, id identity.Identity) (*model.Game, error) {
	return fetch[*model.Game](ctx, c, wire.MethodGetGame, wire.NewIdentification(id))
}

// RegisterResult stores the game's result. It requires the game's or the
// tournament's proof.
func (c *Connection) RegisterResult(ctx context.Context, g *model.Game) (*model.Game, error) {
	return fetch[*model.Game](ctx, c, wire.MethodRegisterResult, g.Record())
}
