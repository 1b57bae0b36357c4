// Package sqlite provides a SQLite-backed pairing storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mcoot/pairings-web/internal/storage"
	"github.com/mcoot/pairings-web/internal/storage/sqlite/migrations"
	"github.com/mcoot/pairings-web/internal/wire"
)

// Config holds SQLite storage settings.
type Config struct {
	Path string `env:"SQLITE_PATH" envDefault:"pairings.db"`
}

// Store persists pairing state in SQLite. Players and games keep their
// insertion order through an autoincrement sequence column.
type Store struct {
	sqlDB *sql.DB
}

var _ storage.Storage = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite store at path and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(context.Background(), sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

// Tournament operations

func (s *Store) SaveTournament(ctx context.Context, t *storage.Tournament) error {
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO tournaments (id, name, rounds, paired_rounds, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   rounds = excluded.rounds,
		   paired_rounds = excluded.paired_rounds`,
		t.ID, t.Name, t.Rounds, t.PairedRounds, toMillis(t.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("save tournament: %w", err)
	}
	return nil
}

func (s *Store) GetTournament(ctx context.Context, id uuid.UUID) (*storage.Tournament, error) {
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, name, rounds, paired_rounds, created_at FROM tournaments WHERE id = ?`, id)

	var (
		t         storage.Tournament
		createdAt int64
	)
	if err := row.Scan(&t.ID, &t.Name, &t.Rounds, &t.PairedRounds, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrTournamentNotFound
		}
		return nil, fmt.Errorf("get tournament: %w", err)
	}
	t.CreatedAt = fromMillis(createdAt)
	return &t, nil
}

// Player operations

const playerColumns = `id, tournament_id, name, rating, withdrawn, expelled, created_at`

func scanPlayer(row scanner) (*storage.Player, error) {
	var (
		p         storage.Player
		createdAt int64
	)
	if err := row.Scan(&p.ID, &p.TournamentID, &p.Name, &p.Rating, &p.Withdrawn, &p.Expelled, &createdAt); err != nil {
		return nil, err
	}
	p.CreatedAt = fromMillis(createdAt)
	return &p, nil
}

func (s *Store) SavePlayer(ctx context.Context, p *storage.Player) error {
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO players (`+playerColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   rating = excluded.rating,
		   withdrawn = excluded.withdrawn,
		   expelled = excluded.expelled`,
		p.ID, p.TournamentID, p.Name, p.Rating, p.Withdrawn, p.Expelled, toMillis(p.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("save player: %w", err)
	}
	return nil
}

func (s *Store) GetPlayer(ctx context.Context, id uuid.UUID) (*storage.Player, error) {
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM players WHERE id = ?`, id)
	p, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("get player: %w", err)
	}
	return p, nil
}

func (s *Store) GetPlayersForTournament(ctx context.Context, tournamentID uuid.UUID) ([]*storage.Player, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT `+playerColumns+` FROM players WHERE tournament_id = ? ORDER BY seq`, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	players := []*storage.Player{}
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// Game operations

const gameColumns = `id, tournament_id, round, white, black, result, created_at`

func scanGame(row scanner) (*storage.Game, error) {
	var (
		g         storage.Game
		result    int32
		createdAt int64
	)
	if err := row.Scan(&g.ID, &g.TournamentID, &g.Round, &g.White, &g.Black, &result, &createdAt); err != nil {
		return nil, err
	}
	g.Result = wire.GameResult(result)
	g.CreatedAt = fromMillis(createdAt)
	return &g, nil
}

func (s *Store) SaveGame(ctx context.Context, g *storage.Game) error {
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO games (`+gameColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   result = excluded.result`,
		g.ID, g.TournamentID, g.Round, g.White, g.Black, int32(g.Result), toMillis(g.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("save game: %w", err)
	}
	return nil
}

func (s *Store) GetGame(ctx context.Context, id uuid.UUID) (*storage.Game, error) {
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+gameColumns+` FROM games WHERE id = ?`, id)
	g, err := scanGame(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrGameNotFound
		}
		return nil, fmt.Errorf("get game: %w", err)
	}
	return g, nil
}

func (s *Store) GetGamesForTournament(ctx context.Context, tournamentID uuid.UUID) ([]*storage.Game, error) {
	return s.queryGames(ctx,
		`SELECT `+gameColumns+` FROM games WHERE tournament_id = ? ORDER BY seq`, tournamentID)
}

func (s *Store) GetGamesForPlayer(ctx context.Context, playerID uuid.UUID) ([]*storage.Game, error) {
	return s.queryGames(ctx,
		`SELECT `+gameColumns+` FROM games WHERE white = ? OR black = ? ORDER BY seq`, playerID, playerID)
}

func (s *Store) queryGames(ctx context.Context, query string, args ...any) ([]*storage.Game, error) {
	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	games := []*storage.Game{}
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}
