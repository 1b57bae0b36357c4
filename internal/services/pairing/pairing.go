// Package pairing computes the games of a tournament's next round.
//
// Players are ranked by score, then rating, then sign-up order, and paired
// top-down while avoiding rematches where possible. With an odd number of
// players the lowest-ranked player who has not had a bye sits out.
package pairing

import (
	"cmp"
	"errors"
	"slices"

	"github.com/google/uuid"

	"github.com/mcoot/pairings-web/internal/storage"
	"github.com/mcoot/pairings-web/internal/wire"
)

var ErrNotEnoughPlayers = errors.New("at least two active players are needed to pair a round")

// Points are counted in half points: a win is 2, a draw 1.
const (
	winPoints  = 2
	drawPoints = 1
)

// Pairing is one game of a round. A pairing without black is a bye.
type Pairing struct {
	White uuid.UUID
	Black uuid.NullUUID
}

// Standing is a player's position in the tournament.
type Standing struct {
	Player *storage.Player
	// Points in half points
	Points int
	Whites int
	HadBye bool
}

type record struct {
	points    int
	whites    int
	hadBye    bool
	opponents map[uuid.UUID]bool
}

func tally(games []*storage.Game) map[uuid.UUID]*record {
	records := make(map[uuid.UUID]*record)
	get := func(id uuid.UUID) *record {
		r, ok := records[id]
		if !ok {
			r = &record{opponents: make(map[uuid.UUID]bool)}
			records[id] = r
		}
		return r
	}

	for _, g := range games {
		white := get(g.White)
		if g.IsBye() {
			white.hadBye = true
			white.points += winPoints
			continue
		}
		black := get(g.Black.UUID)
		white.whites++
		white.opponents[g.Black.UUID] = true
		black.opponents[g.White] = true

		switch g.Result {
		case wire.ResultWhiteWin, wire.ResultBlackForfeit:
			white.points += winPoints
		case wire.ResultBlackWin, wire.ResultWhiteForfeit:
			black.points += winPoints
		case wire.ResultDraw:
			white.points += drawPoints
			black.points += drawPoints
		}
	}
	return records
}

// Standings ranks players by points, then rating. Ties keep the given order.
func Standings(players []*storage.Player, games []*storage.Game) []Standing {
	records := tally(games)
	standings := make([]Standing, 0, len(players))
	for _, p := range players {
		s := Standing{Player: p}
		if r, ok := records[p.ID]; ok {
			s.Points, s.Whites, s.HadBye = r.points, r.whites, r.hadBye
		}
		standings = append(standings, s)
	}
	slices.SortStableFunc(standings, func(a, b Standing) int {
		if c := cmp.Compare(b.Points, a.Points); c != 0 {
			return c
		}
		return cmp.Compare(b.Player.Rating, a.Player.Rating)
	})
	return standings
}

// Pair computes the next round for the active players given every game
// played so far.
func Pair(players []*storage.Player, history []*storage.Game) ([]Pairing, error) {
	active := slices.DeleteFunc(slices.Clone(players), func(p *storage.Player) bool { return !p.Active() })
	if len(active) < 2 {
		return nil, ErrNotEnoughPlayers
	}

	records := tally(history)
	ranked := Standings(active, history)

	var byes []Pairing
	if len(ranked)%2 == 1 {
		byeIdx := len(ranked) - 1
		for i := len(ranked) - 1; i >= 0; i-- {
			if !ranked[i].HadBye {
				byeIdx = i
				break
			}
		}
		byes = append(byes, Pairing{White: ranked[byeIdx].Player.ID})
		ranked = slices.Delete(ranked, byeIdx, byeIdx+1)
	}

	played := func(a, b uuid.UUID) bool {
		r, ok := records[a]
		return ok && r.opponents[b]
	}

	order, ok := pairAvoidingRematches(ranked, played)
	if !ok {
		// every arrangement repeats a game; fall back to adjacent ranks
		order = make([][2]int, 0, len(ranked)/2)
		for i := 0; i+1 < len(ranked); i += 2 {
			order = append(order, [2]int{i, i + 1})
		}
	}

	games := make([]Pairing, 0, len(order)+len(byes))
	for _, pair := range order {
		games = append(games, colour(ranked[pair[0]], ranked[pair[1]]))
	}
	return append(games, byes...), nil
}

// pairAvoidingRematches pairs the highest unpaired player with the next
// highest they have not played, backtracking when that leaves no solution.
func pairAvoidingRematches(ranked []Standing, played func(a, b uuid.UUID) bool) ([][2]int, bool) {
	paired := make([]bool, len(ranked))
	var out [][2]int

	var solve func() bool
	solve = func() bool {
		first := slices.Index(paired, false)
		if first < 0 {
			return true
		}
		paired[first] = true
		for j := first + 1; j < len(ranked); j++ {
			if paired[j] || played(ranked[first].Player.ID, ranked[j].Player.ID) {
				continue
			}
			paired[j] = true
			out = append(out, [2]int{first, j})
			if solve() {
				return true
			}
			out = out[:len(out)-1]
			paired[j] = false
		}
		paired[first] = false
		return false
	}

	if !solve() {
		return nil, false
	}
	return out, true
}

// colour gives white to whoever has had it less often, else to the higher ranked.
func colour(higher, lower Standing) Pairing {
	white, black := higher, lower
	if lower.Whites < higher.Whites {
		white, black = lower, higher
	}
	return Pairing{White: white.Player.ID, Black: uuid.NullUUID{UUID: black.Player.ID, Valid: true}}
}
