package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mcoot/pairings-web/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Records are stored as JSON values; per-tournament and per-player orderings
// are kept in LIST indexes appended to when a record is first saved.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// save stores v under key. The id is appended to every index only the first
// time the key is written.
func (s *Storage) save(ctx context.Context, key string, id uuid.UUID, v any, indexes ...string) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	created, err := s.client.SetNX(ctx, key, data, s.cfg.TTL).Result()
	if err != nil {
		return err
	}
	if !created {
		return s.client.Set(ctx, key, data, s.cfg.TTL).Err()
	}
	if len(indexes) == 0 {
		return nil
	}

	pipe := s.client.Pipeline()
	for _, index := range indexes {
		pipe.RPush(ctx, index, id.String())
		if s.cfg.TTL > 0 {
			pipe.Expire(ctx, index, s.cfg.TTL)
		}
	}
	_, err = pipe.Exec(ctx)
	return err
}

func getOne[T any](ctx context.Context, client *redis.Client, key string, notFound error) (*T, error) {
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, notFound
		}
		return nil, err
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// getIndexed loads every record listed in index, in index order.
func getIndexed[T any](ctx context.Context, client *redis.Client, index string, keyOf func(uuid.UUID) string) ([]*T, error) {
	ids, err := client.LRange(ctx, index, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*T{}, nil
	}

	keys := make([]string, len(ids))
	for i, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("index %s: %w", index, err)
		}
		keys[i] = keyOf(id)
	}

	values, err := client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	records := make([]*T, 0, len(values))
	for i, val := range values {
		if val == nil {
			continue // Record may have expired
		}
		str, ok := val.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected value type %T at %s", val, keys[i])
		}
		var v T
		if err := json.Unmarshal([]byte(str), &v); err != nil {
			return nil, fmt.Errorf("decode %s: %w", keys[i], err)
		}
		records = append(records, &v)
	}
	return records, nil
}

// Tournament operations

func (s *Storage) SaveTournament(ctx context.Context, t *storage.Tournament) error {
	return s.save(ctx, tournamentKey(t.ID), t.ID, t)
}

func (s *Storage) GetTournament(ctx context.Context, id uuid.UUID) (*storage.Tournament, error) {
	return getOne[storage.Tournament](ctx, s.client, tournamentKey(id), storage.ErrTournamentNotFound)
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, p *storage.Player) error {
	return s.save(ctx, playerKey(p.ID), p.ID, p, tournamentPlayersKey(p.TournamentID))
}

func (s *Storage) GetPlayer(ctx context.Context, id uuid.UUID) (*storage.Player, error) {
	return getOne[storage.Player](ctx, s.client, playerKey(id), storage.ErrPlayerNotFound)
}

func (s *Storage) GetPlayersForTournament(ctx context.Context, tournamentID uuid.UUID) ([]*storage.Player, error) {
	return getIndexed[storage.Player](ctx, s.client, tournamentPlayersKey(tournamentID), playerKey)
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, g *storage.Game) error {
	indexes := []string{tournamentGamesKey(g.TournamentID), playerGamesKey(g.White)}
	if g.Black.Valid {
		indexes = append(indexes, playerGamesKey(g.Black.UUID))
	}
	return s.save(ctx, gameKey(g.ID), g.ID, g, indexes...)
}

func (s *Storage) GetGame(ctx context.Context, id uuid.UUID) (*storage.Game, error) {
	return getOne[storage.Game](ctx, s.client, gameKey(id), storage.ErrGameNotFound)
}

func (s *Storage) GetGamesForTournament(ctx context.Context, tournamentID uuid.UUID) ([]*storage.Game, error) {
	return getIndexed[storage.Game](ctx, s.client, tournamentGamesKey(tournamentID), gameKey)
}

func (s *Storage) GetGamesForPlayer(ctx context.Context, playerID uuid.UUID) ([]*storage.Game, error) {
	return getIndexed[storage.Game](ctx, s.client, playerGamesKey(playerID), gameKey)
}
