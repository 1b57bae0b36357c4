package model

import (
	"cmp"
	"slices"
)

// RoundGroup is the games of one round.
type RoundGroup struct {
	Round uint32
	Games []*Game
}

// GroupByRound groups games by ascending round. Within a round games are
// ordered by descending SortRating, so byes come last; ties keep the order
// the games were given in.
func GroupByRound(games []*Game) []RoundGroup {
	sorted := slices.Clone(games)
	slices.SortStableFunc(sorted, func(a, b *Game) int {
		if c := cmp.Compare(a.Round(), b.Round()); c != 0 {
			return c
		}
		return cmp.Compare(b.SortRating(), a.SortRating())
	})

	var groups []RoundGroup
	for _, g := range sorted {
		if n := len(groups); n > 0 && groups[n-1].Round == g.Round() {
			groups[n-1].Games = append(groups[n-1].Games, g)
			continue
		}
		groups = append(groups, RoundGroup{Round: g.Round(), Games: []*Game{g}})
	}
	return groups
}
