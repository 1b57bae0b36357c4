package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/pairings-web/internal/api/request"
	"github.com/mcoot/pairings-web/internal/api/response"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player commands",
	}

	cmd.AddCommand(newPlayerSignUpCmd())
	cmd.AddCommand(newPlayerShowCmd())
	cmd.AddCommand(newPlayerGamesCmd())
	cmd.AddCommand(newPlayerWithdrawCmd())
	cmd.AddCommand(newPlayerExpelCmd())

	return cmd
}

func newPlayerSignUpCmd() *cobra.Command {
	var name string
	var rating uint32

	cmd := &cobra.Command{
		Use:   "signup <tournament-ref>",
		Short: "Sign a player up to a tournament",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("--name is required")
			}

			// anyone holding the public link may sign up
			id, err := parseRef("tournament", args[0])
			if err != nil {
				return err
			}

			req := request.SignUpRequest{Name: name, Rating: rating}
			var result response.Player

			if err := client.Post(cmd.Context(), apiPath("tournament", id.Anonymous())+"/players", req, &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Player name (required)")
	cmd.Flags().Uint32Var(&rating, "rating", 0, "Player rating")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newPlayerShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <ref>",
		Short: "Show a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resourcePath("player", args[0])
			if err != nil {
				return err
			}

			var result response.Player
			if err := client.Get(cmd.Context(), path, &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}
}

func newPlayerGamesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "games <ref>",
		Short: "List the games of a player by round",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resourcePath("player", args[0])
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

func newPlayerWithdrawCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "withdraw <ref>",
		Short: "Withdraw a player from later rounds (needs the player's proof)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := signedPath("player", args[0], "withdraw")
			if err != nil {
				return err
			}

			var result response.Player
			if err := client.Post(cmd.Context(), path, nil, &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}
}

func newPlayerExpelCmd() *cobra.Command {
	var tournament string

	cmd := &cobra.Command{
		Use:   "expel <ref>",
		Short: "Expel a player (needs the tournament's proof)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			player, err := parseRef("player", args[0])
			if err != nil {
				return err
			}
			organizer, err := parseRef("tournament", tournament)
			if err != nil {
				return err
			}
			if !organizer.HasProof() {
				return fmt.Errorf("expel needs the tournament's proof: pass --tournament \"<uuid>/<proof>\"")
			}

			req := request.ExpelRequest{Tournament: organizer.LinkFragment()}
			var result response.Player

			if err := client.Post(cmd.Context(), apiPath("player", player.Anonymous())+"/expel", req, &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&tournament, "tournament", "", "Organizer's tournament reference (required)")
	_ = cmd.MarkFlagRequired("tournament")

	return cmd
}
