package cli

import (
	"github.com/spf13/cobra"
)

func newReportCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Ladder reports",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "leaderboard",
		Short: "Players by rating",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := e.app.Reports.Leaderboard(cmd.Context())
			if err != nil {
				return err
			}
			e.out.Print(rows)
			return nil
		},
	})

	var limit int
	history := &cobra.Command{
		Use:   "history",
		Short: "Finished matches, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := e.app.Reports.MatchHistory(cmd.Context(), limit)
			if err != nil {
				return err
			}
			e.out.Print(rows)
			return nil
		},
	}
	history.Flags().IntVar(&limit, "limit", 20, "Number of matches, 0 for all")
	cmd.AddCommand(history)

	cmd.AddCommand(&cobra.Command{
		Use:   "performance",
		Short: "Wins and win rate per player",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := e.app.Reports.Performance(cmd.Context())
			if err != nil {
				return err
			}
			e.out.Print(rows)
			return nil
		},
	})

	return cmd
}
