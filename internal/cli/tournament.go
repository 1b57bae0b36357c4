package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/pairings-web/internal/api/request"
	"github.com/mcoot/pairings-web/internal/api/response"
)

func newTournamentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tournament",
		Short: "Tournament commands",
	}

	cmd.AddCommand(newTournamentCreateCmd())
	cmd.AddCommand(newTournamentShowCmd())
	cmd.AddCommand(newTournamentUpdateCmd())
	cmd.AddCommand(newTournamentPairCmd())
	cmd.AddCommand(newTournamentGamesCmd())
	cmd.AddCommand(newTournamentPlayersCmd())

	return cmd
}

func newTournamentCreateCmd() *cobra.Command {
	var name string
	var rounds uint32

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a tournament",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("--name is required")
			}
			if rounds == 0 {
				return fmt.Errorf("--rounds must be positive")
			}

			req := request.CreateTournamentRequest{Name: name, Rounds: rounds}
			var result response.Tournament

			if err := client.Post(cmd.Context(), "/api/v1/tournaments", req, &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Tournament name (required)")
	cmd.Flags().Uint32Var(&rounds, "rounds", 0, "Number of rounds (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("rounds")

	return cmd
}

func newTournamentShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <ref>",
		Short: "Show a tournament",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resourcePath("tournament", args[0])
			if err != nil {
				return err
			}

			var result response.Tournament
			if err := client.Get(cmd.Context(), path, &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}
}

func newTournamentUpdateCmd() *cobra.Command {
	var name string
	var rounds uint32

	cmd := &cobra.Command{
		Use:   "update <ref>",
		Short: "Rename a tournament or change its number of rounds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRef("tournament", args[0])
			if err != nil {
				return err
			}
			if !id.HasProof() {
				return fmt.Errorf("update needs the tournament's proof: pass \"<uuid>/<proof>\"")
			}

			var req request.UpdateTournamentRequest
			if cmd.Flags().Changed("name") {
				req.Name = &name
			}
			if cmd.Flags().Changed("rounds") {
				req.Rounds = &rounds
			}
			if req.Name == nil && req.Rounds == nil {
				return fmt.Errorf("nothing to update: pass --name or --rounds")
			}

			var result response.Tournament
			if err := client.Patch(cmd.Context(), apiPath("tournament", id), req, &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New tournament name")
	cmd.Flags().Uint32Var(&rounds, "rounds", 0, "New number of rounds")

	return cmd
}

func newTournamentPairCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pair <ref>",
		Short: "Pair the next round (needs the tournament's proof)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := signedPath("tournament", args[0], "pair")
			if err != nil {
				return err
			}

			var result response.GamesResponse
			if err := client.Post(cmd.Context(), path, nil, &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}
}

func newTournamentGamesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "games <ref>",
		Short: "List the games of a tournament by round",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resourcePath("tournament", args[0])
			if err != nil {
				return err
			}

			var result response.GamesResponse
			if err := client.Get(cmd.Context(), path+"/games", &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}
}

func newTournamentPlayersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "players <ref>",
		Short: "List the players of a tournament",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resourcePath("tournament", args[0])
			if err != nil {
				return err
			}

			var result response.PlayersResponse
			if err := client.Get(cmd.Context(), path+"/players", &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}
}
