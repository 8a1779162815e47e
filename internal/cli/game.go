package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game registration and query commands",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameJoinCmd())
	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameSquareCmd())

	return cmd
}

// resolveGameID returns the game id from the optional positional arg,
// falling back to saved credentials
func resolveGameID(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if cfg.GameID != "" {
		return cfg.GameID, nil
	}
	return "", fmt.Errorf("no game id given and none saved; pass <game-id> or create/join a game first")
}

// requireCredentials checks that a team id and key are available
func requireCredentials() error {
	if cfg.TeamID == "" || cfg.TeamKey == "" {
		return fmt.Errorf("no team credentials available; create/join a game first or pass --team-id and --team-key")
	}
	return nil
}

func newGameCreateCmd() *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "create <display-name>",
		Short: "Create a new game and register as its host team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{
				"display_name": args[0],
				"role":         role,
			}

			var result RegisterResult
			if err := client.Post("/api/v1/games", body, &result); err != nil {
				return err
			}

			if err := cfg.SaveCredentials(Credentials{
				GameID:  result.GameID,
				TeamID:  result.TeamID,
				TeamKey: result.TeamKey,
			}); err != nil {
				return fmt.Errorf("failed to save credentials: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", "Minelayer", "Team role: Minelayer, Spy or Cloaker")
	return cmd
}

func newGameJoinCmd() *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "join <game-id> <display-name>",
		Short: "Join an existing game",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{
				"display_name": args[1],
				"role":         role,
			}

			var result RegisterResult
			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/join", args[0]), body, &result); err != nil {
				return err
			}

			if err := cfg.SaveCredentials(Credentials{
				GameID:  result.GameID,
				TeamID:  result.TeamID,
				TeamKey: result.TeamKey,
			}); err != nil {
				return fmt.Errorf("failed to save credentials: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", "Minelayer", "Team role: Minelayer, Spy or Cloaker")
	return cmd
}

func newGameStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start [game-id]",
		Short: "Start the game (host only)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID, err := resolveGameID(args)
			if err != nil {
				return err
			}
			if err := requireCredentials(); err != nil {
				return err
			}

			body := map[string]string{
				"team_id":  cfg.TeamID,
				"team_key": cfg.TeamKey,
			}

			var result StartResult
			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/start", gameID), body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [game-id]",
		Short: "Get a full game snapshot",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID, err := resolveGameID(args)
			if err != nil {
				return err
			}

			var result Game
			if err := client.Get(fmt.Sprintf("/api/v1/games/%s", gameID), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameSquareCmd() *cobra.Command {
	var gameID string

	cmd := &cobra.Command{
		Use:   "square <row> <column>",
		Short: "Get a single grid square",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveGameID([]string{gameID})
			if err != nil {
				return err
			}

			row, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("row must be an integer")
			}
			column, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("column must be an integer")
			}

			var result GridSquare
			if err := client.Get(fmt.Sprintf("/api/v1/games/%s/squares/%d/%d", id, row, column), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&gameID, "game", "", "Game id (defaults to saved game)")
	return cmd
}
