package redis

import (
	"fmt"

	"github.com/google/uuid"
)

// Key prefix for all pairing data
const keyPrefix = "pairings"

func tournamentKey(id uuid.UUID) string {
	return fmt.Sprintf("%s:tournament:%s", keyPrefix, id)
}

func playerKey(id uuid.UUID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

func gameKey(id uuid.UUID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// tournamentPlayersKey returns the key of the LIST of player ids of a tournament, in sign-up order
func tournamentPlayersKey(tournamentID uuid.UUID) string {
	return fmt.Sprintf("%s:idx:tournament_players:%s", keyPrefix, tournamentID)
}

// tournamentGamesKey returns the key of the LIST of game ids of a tournament, in pairing order
func tournamentGamesKey(tournamentID uuid.UUID) string {
	return fmt.Sprintf("%s:idx:tournament_games:%s", keyPrefix, tournamentID)
}

// playerGamesKey returns the key of the LIST of game ids a player plays in
func playerGamesKey(playerID uuid.UUID) string {
	return fmt.Sprintf("%s:idx:player_games:%s", keyPrefix, playerID)
}
