package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// newSquareActionCmd builds a command that posts a square action
// (attack, defend or mine) to the given endpoint
func newSquareActionCmd(use, short, endpoint string, result func() any) *cobra.Command {
	var gameID string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveGameID([]string{gameID})
			if err != nil {
				return err
			}
			if err := requireCredentials(); err != nil {
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

			body := map[string]any{
				"team_id":  cfg.TeamID,
				"team_key": cfg.TeamKey,
				"row":      row,
				"column":   column,
			}

			res := result()
			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/%s", id, endpoint), body, res); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(res)
			return nil
		},
	}

	cmd.Flags().StringVar(&gameID, "game", "", "Game id (defaults to saved game)")
	return cmd
}

func newAttackCmd() *cobra.Command {
	return newSquareActionCmd(
		"attack <row> <column>",
		"Attack a grid square, conquering it at zero health",
		"attack",
		func() any { return &AttackResult{} },
	)
}

func newDefendCmd() *cobra.Command {
	return newSquareActionCmd(
		"defend <row> <column>",
		"Defend a grid square, restoring one health",
		"defend",
		func() any { return &DefendResult{} },
	)
}

func newMineCmd() *cobra.Command {
	return newSquareActionCmd(
		"mine <row> <column>",
		"Place a mine on a grid square (Minelayer only, once per game)",
		"mine",
		func() any { return &PlaceMineResult{} },
	)
}
