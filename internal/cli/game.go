package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/pairings-web/internal/api/request"
	"github.com/mcoot/pairings-web/internal/api/response"
	"github.com/mcoot/pairings-web/internal/wire"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameShowCmd())
	cmd.AddCommand(newGameResultCmd())

	return cmd
}

func newGameShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <ref>",
		Short: "Show a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resourcePath("game", args[0])
			if err != nil {
				return err
			}

			var result response.Game
			if err := client.Get(cmd.Context(), path, &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}
}

func newGameResultCmd() *cobra.Command {
	names := make([]string, 0, len(wire.Results()))
	for _, r := range wire.Results() {
		if r != wire.ResultNone {
			names = append(names, r.String())
		}
	}

	return &cobra.Command{
		Use:       "result <ref> <result>",
		Short:     "Record the result of a game (needs the game's proof)",
		Long:      "Record the result of a game. Result is one of " + strings.Join(names, ", ") + ".",
		Args:      cobra.ExactArgs(2),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			result := strings.ToUpper(args[1])
			if r, ok := wire.ParseResult(result); !ok || r == wire.ResultNone {
				return fmt.Errorf("invalid result %q: want one of %s", args[1], strings.Join(names, ", "))
			}

			path, err := signedPath("game", args[0], "result")
			if err != nil {
				return err
			}

			var game response.Game
			if err := client.Post(cmd.Context(), path, request.ResultRequest{Result: result}, &game); err != nil {
				return err
			}

			newOutput(cmd).Print(game)
			return nil
		},
	}
}
