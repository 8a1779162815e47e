package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "conquer",
		Short: "CLI tool for the code-and-conquer game API",
		Long: `conquer is a CLI tool for interacting with the code-and-conquer JSON API.

It supports creating and joining games, starting a game as host, attacking
and defending grid squares, placing mines, and querying game state. The
team credentials returned by create/join are saved locally and reused by
subsequent commands.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load saved credentials if not provided via flags/env
			if err := cfg.LoadCredentials(); err != nil {
				return err
			}

			client = NewClient(cfg.ServerURL)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: CONQUER_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.TeamID, "team-id", cfg.TeamID, "Team id (env: CONQUER_TEAM_ID)")
	rootCmd.PersistentFlags().StringVar(&cfg.TeamKey, "team-key", cfg.TeamKey, "Team key (env: CONQUER_TEAM_KEY)")
	rootCmd.PersistentFlags().StringVar(&cfg.CredentialsFile, "credentials-file", cfg.CredentialsFile, "Credentials file path (env: CONQUER_CREDENTIALS_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")

	// Add subcommands
	rootCmd.AddCommand(newGameCmd())
	rootCmd.AddCommand(newAttackCmd())
	rootCmd.AddCommand(newDefendCmd())
	rootCmd.AddCommand(newMineCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
