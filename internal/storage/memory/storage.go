package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/mcoot/pairings-web/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	tournaments map[uuid.UUID]storage.Tournament
	players     map[uuid.UUID]storage.Player
	games       map[uuid.UUID]storage.Game

	// insertion-ordered indexes
	tournamentPlayers map[uuid.UUID][]uuid.UUID
	tournamentGames   map[uuid.UUID][]uuid.UUID
	playerGames       map[uuid.UUID][]uuid.UUID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		tournaments:       make(map[uuid.UUID]storage.Tournament),
		players:           make(map[uuid.UUID]storage.Player),
		games:             make(map[uuid.UUID]storage.Game),
		tournamentPlayers: make(map[uuid.UUID][]uuid.UUID),
		tournamentGames:   make(map[uuid.UUID][]uuid.UUID),
		playerGames:       make(map[uuid.UUID][]uuid.UUID),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) Close() error { return nil }

// Tournament operations

func (s *Storage) SaveTournament(ctx context.Context, t *storage.Tournament) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tournaments[t.ID] = *t
	return nil
}

func (s *Storage) GetTournament(ctx context.Context, id uuid.UUID) (*storage.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tournaments[id]
	if !ok {
		return nil, storage.ErrTournamentNotFound
	}
	return &t, nil
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, p *storage.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.players[p.ID]; !exists {
		s.tournamentPlayers[p.TournamentID] = append(s.tournamentPlayers[p.TournamentID], p.ID)
	}
	s.players[p.ID] = *p
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id uuid.UUID) (*storage.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.players[id]
	if !ok {
		return nil, storage.ErrPlayerNotFound
	}
	return &p, nil
}

func (s *Storage) GetPlayersForTournament(ctx context.Context, tournamentID uuid.UUID) ([]*storage.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.tournamentPlayers[tournamentID]
	players := make([]*storage.Player, 0, len(ids))
	for _, id := range ids {
		p := s.players[id]
		players = append(players, &p)
	}
	return players, nil
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, g *storage.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.games[g.ID]; !exists {
		s.tournamentGames[g.TournamentID] = append(s.tournamentGames[g.TournamentID], g.ID)
		s.playerGames[g.White] = append(s.playerGames[g.White], g.ID)
		if g.Black.Valid {
			s.playerGames[g.Black.UUID] = append(s.playerGames[g.Black.UUID], g.ID)
		}
	}
	s.games[g.ID] = *g
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id uuid.UUID) (*storage.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.games[id]
	if !ok {
		return nil, storage.ErrGameNotFound
	}
	return &g, nil
}

func (s *Storage) GetGamesForTournament(ctx context.Context, tournamentID uuid.UUID) ([]*storage.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gamesLocked(s.tournamentGames[tournamentID]), nil
}

func (s *Storage) GetGamesForPlayer(ctx context.Context, playerID uuid.UUID) ([]*storage.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gamesLocked(s.playerGames[playerID]), nil
}

func (s *Storage) gamesLocked(ids []uuid.UUID) []*storage.Game {
	games := make([]*storage.Game, 0, len(ids))
	for _, id := range ids {
		g := s.games[id]
		games = append(games, &g)
	}
	return games
}
