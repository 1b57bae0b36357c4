package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mcoot/pairings-web/internal/api/response"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == OutputJSON {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == OutputJSON {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintf(o.w, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == OutputJSON {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Tournament:
		o.printTournament(v)
	case response.Player:
		o.printPlayer(v)
	case response.Game:
		o.printGame(v)
	case response.GamesResponse:
		o.printRounds(v)
	case response.PlayersResponse:
		o.printPlayers(v)
	case response.Health:
		o.printHealth(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printRef(r response.EntityRef) {
	fmt.Fprintf(o.w, "Ref: %s\n", r.Ref)
	fmt.Fprintf(o.w, "Link: %s\n", r.Link)
}

func (o *Output) printTournament(t response.Tournament) {
	fmt.Fprintf(o.w, "Tournament: %s\n", t.Name)
	fmt.Fprintf(o.w, "Rounds: %d\n", t.Rounds)
	o.printRef(t.EntityRef)
	if t.Signed {
		fmt.Fprintln(o.w, "Keep this reference: it is needed to pair rounds and change the tournament.")
	}
}

func (o *Output) printPlayer(p response.Player) {
	fmt.Fprintf(o.w, "Player: %s\n", p.Description)
	fmt.Fprintf(o.w, "Status: %s\n", playerStatus(p.Withdrawn, p.Expelled))
	if p.Tournament != nil {
		fmt.Fprintf(o.w, "Tournament: %s (%s)\n", p.Tournament.Name, p.Tournament.Ref)
	}
	o.printRef(p.EntityRef)
}

func playerStatus(withdrawn, expelled bool) string {
	switch {
	case expelled:
		return "expelled"
	case withdrawn:
		return "withdrawn"
	default:
		return "active"
	}
}

func (o *Output) printGame(g response.Game) {
	fmt.Fprintf(o.w, "Game: %s\n", g.Description)
	fmt.Fprintf(o.w, "Round: %d\n", g.Round)
	fmt.Fprintf(o.w, "Result: %s\n", gameResult(g))
	o.printRef(g.EntityRef)
}

func gameResult(g response.Game) string {
	switch {
	case g.Bye:
		return "bye"
	case g.Result == "":
		return "not played"
	default:
		return g.Result
	}
}

func (o *Output) printRounds(games response.GamesResponse) {
	if len(games.Rounds) == 0 {
		fmt.Fprintln(o.w, "No games")
		return
	}
	for i, round := range games.Rounds {
		if i > 0 {
			fmt.Fprintln(o.w)
		}
		fmt.Fprintf(o.w, "Round %d:\n", round.Round)
		for _, g := range round.Games {
			fmt.Fprintf(o.w, "  %s [%s] %s\n", g.Description, gameResult(g), g.Ref)
		}
	}
}

func (o *Output) printPlayers(players response.PlayersResponse) {
	if len(players.Players) == 0 {
		fmt.Fprintln(o.w, "No players")
		return
	}
	for _, p := range players.Players {
		fmt.Fprintf(o.w, "  - %s [%s] %s\n", p.Description, playerStatus(p.Withdrawn, p.Expelled), p.Ref)
	}
}

func (o *Output) printHealth(h response.Health) {
	fmt.Fprintf(o.w, "Status: %s\n", h.Status)
	fmt.Fprintf(o.w, "Backend: %s\n", h.Backend)
}
