package tournament

import "github.com/mcoot/pairings-web/internal/storage"

// Tournament is a tournament as returned to a caller. Signed reports whether
// the caller proved authorship and receives the tournament's proof back.
type Tournament struct {
	*storage.Tournament
	Signed bool
}

// Player is a player with the tournament it signed up to.
type Player struct {
	*storage.Player
	Tournament *storage.Tournament
	Signed     bool
}

// Game is a game with its tournament and players resolved. Black is nil for a bye.
type Game struct {
	*storage.Game
	Tournament *storage.Tournament
	White      *storage.Player
	Black      *storage.Player
	Signed     bool
}

// TournamentUpdate lists the tournament fields to change; nil leaves a field as is.
type TournamentUpdate struct {
	Name   *string
	Rounds *uint32
}

// PlayerUpdate lists the player fields to change; nil leaves a field as is.
type PlayerUpdate struct {
	Name      *string
	Rating    *uint32
	Withdrawn *bool
	Expelled  *bool
}
