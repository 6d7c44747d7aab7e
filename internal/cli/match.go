package cli

import (
	"github.com/AdamBeresnev/club-ladder/internal/service"
	"github.com/spf13/cobra"
)

func newMatchCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Matches played outside a session",
	}

	cmd.AddCommand(newMatchRecordCmd(e))
	return cmd
}

func newMatchRecordCmd(e *env) *cobra.Command {
	var winner string

	cmd := &cobra.Command{
		Use:   "record PLAYER_A PLAYER_B",
		Short: "Record and rate a singles result",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			outcome, err := service.ParseOutcome(winner, args[0], args[1])
			if err != nil {
				return err
			}

			result, err := e.app.Results.RecordManualMatch(cmd.Context(), args[0], args[1], outcome)
			if err != nil {
				return err
			}
			e.out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&winner, "winner", "", `Winner's name, "A", "B" or "draw" (required)`)
	_ = cmd.MarkFlagRequired("winner")

	return cmd
}
