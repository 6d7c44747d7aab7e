package cli

import (
	"log/slog"
	"os"

	"github.com/AdamBeresnev/club-ladder/internal/app"
	"github.com/AdamBeresnev/club-ladder/internal/config"
	"github.com/spf13/cobra"
)

type flags struct {
	db     string
	fields int
	seed    uint64
	output  string
	verbose bool
}

// env carries what every subcommand needs once the root has opened the store.
type env struct {
	app *app.App
	out *Output
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var f flags
	e := &env{}

	rootCmd := &cobra.Command{
		Use:   "ladder",
		Short: "Club ladder: ratings, sessions and results",
		Long: `ladder keeps a club's Elo ladder in a local SQLite file.

It drafts sessions onto a fixed number of fields, records the scores that come
back and moves ratings and tiers accordingly.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("db") {
				cfg.DBPath = f.db
			}
			if cmd.Flags().Changed("fields") {
				cfg.FieldCount = f.fields
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed = f.seed
			}
			// Service logs are noise on a terminal unless asked for
			if !f.verbose && cfg.LogLevel < slog.LevelWarn {
				cfg.LogLevel = slog.LevelWarn
			}

			a, err := app.New(cfg, cfg.Logger())
			if err != nil {
				return err
			}
			e.app = a
			e.out = NewOutput(f.output, cmd.OutOrStdout())
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if e.app == nil {
				return nil
			}
			return e.app.Close()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&f.db, "db", config.DefaultDBPath, "SQLite database path (env: LADDER_DB)")
	rootCmd.PersistentFlags().IntVar(&f.fields, "fields", config.DefaultFieldCount, "Number of fields per session (env: LADDER_FIELDS)")
	rootCmd.PersistentFlags().Uint64Var(&f.seed, "seed", 0, "Shuffle seed, 0 for random (env: LADDER_SEED)")
	rootCmd.PersistentFlags().StringVarP(&f.output, "output", "o", "text", "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&f.verbose, "verbose", "v", false, "Log service activity to stderr")

	rootCmd.AddCommand(newPlayerCmd(e))
	rootCmd.AddCommand(newSessionCmd(e))
	rootCmd.AddCommand(newMatchCmd(e))
	rootCmd.AddCommand(newReportCmd(e))

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
