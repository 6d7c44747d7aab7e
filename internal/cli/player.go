package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/AdamBeresnev/club-ladder/internal/club"
	"github.com/AdamBeresnev/club-ladder/internal/rating"
	"github.com/AdamBeresnev/club-ladder/internal/service"
	"github.com/AdamBeresnev/club-ladder/internal/utils"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newPlayerCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player directory commands",
	}

	cmd.AddCommand(newPlayerAddCmd(e))
	cmd.AddCommand(newPlayerListCmd(e))
	cmd.AddCommand(newPlayerRemoveCmd(e))
	cmd.AddCommand(newPlayerImportCmd(e))
	cmd.AddCommand(newPlayerEligibleCmd(e))

	return cmd
}

func newPlayerAddCmd(e *env) *cobra.Command {
	var tier, availability string
	var r float64

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := rating.ParseTier(tier)
			if err != nil {
				return err
			}
			days, err := club.ParseAvailability(availability)
			if err != nil {
				return err
			}

			input := service.PlayerInput{Name: args[0], Tier: t, Availability: days}
			if cmd.Flags().Changed("rating") {
				input.Rating = utils.Ptr(r)
			}

			player, err := e.app.Players.Create(cmd.Context(), input)
			if err != nil {
				return err
			}
			e.out.Print(player)
			return nil
		},
	}

	cmd.Flags().StringVar(&tier, "tier", "", "Beginner, Intermediate or Advanced (seeds the rating)")
	cmd.Flags().Float64Var(&r, "rating", 0, "Starting rating, overrides --tier")
	cmd.Flags().StringVar(&availability, "availability", "", `Weekdays the player can play, e.g. "Monday, Thursday"`)

	return cmd
}

func newPlayerListCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all players",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			players, err := e.app.Players.List(cmd.Context())
			if err != nil {
				return err
			}
			e.out.Print(players)
			return nil
		},
	}
}

func newPlayerRemoveCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "remove NAME...",
		Short: "Remove players; their match history is kept",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]uuid.UUID, 0, len(args))
			for _, name := range args {
				p, err := e.app.Players.Find(cmd.Context(), name)
				if err != nil {
					return err
				}
				ids = append(ids, p.ID)
			}

			removed, err := e.app.Players.Remove(cmd.Context(), ids...)
			if err != nil {
				return err
			}
			e.out.PrintMessage(fmt.Sprintf("Removed %d player(s)", removed))
			return nil
		},
	}
}

func newPlayerImportCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import players from a CSV roster (name, tier, availability)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()

			result, err := e.app.Imports.ImportCSV(cmd.Context(), file)
			if err != nil {
				return err
			}
			e.out.Print(result)
			return nil
		},
	}
}

func newPlayerEligibleCmd(e *env) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "eligible",
		Short: "List players available on a day (default today)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var day time.Time
			if date != "" {
				parsed, err := time.Parse(club.DateLayout, date)
				if err != nil {
					return fmt.Errorf("--date must be YYYY-MM-DD: %w", err)
				}
				day = parsed
			}

			players, err := e.app.Players.ListEligible(cmd.Context(), day)
			if err != nil {
				return err
			}
			e.out.Print(players)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to check, YYYY-MM-DD")
	return cmd
}
