package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/AdamBeresnev/club-ladder/internal/club"
	"github.com/AdamBeresnev/club-ladder/internal/service"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newSessionCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Session commands",
	}

	cmd.AddCommand(newSessionBuildCmd(e))
	cmd.AddCommand(newSessionShowCmd(e))
	cmd.AddCommand(newSessionScoreCmd(e))

	return cmd
}

func newSessionBuildCmd(e *env) *cobra.Command {
	var format string
	var names []string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Draft a new session from today's eligible players or the given ones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := club.ParseFormat(format)
			if err != nil {
				return err
			}

			req := service.BuildRequest{Format: f}
			for _, name := range names {
				p, err := e.app.Players.Find(cmd.Context(), name)
				if err != nil {
					return err
				}
				req.PlayerIDs = append(req.PlayerIDs, p.ID)
			}

			data, err := e.app.Sessions.Build(cmd.Context(), req)
			if err != nil {
				return err
			}
			e.out.Print(data)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "singles", "singles or doubles")
	cmd.Flags().StringArrayVar(&names, "player", nil, "Player to include (repeatable); default is everyone eligible today")

	return cmd
}

func newSessionShowCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "show [SESSION_ID]",
		Short: "Show a session, the latest one by default",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data *service.SessionData
			var err error
			if len(args) == 0 {
				data, err = e.app.Sessions.Latest(cmd.Context())
			} else {
				id, perr := uuid.Parse(args[0])
				if perr != nil {
					return fmt.Errorf("invalid session id %q: %w", args[0], perr)
				}
				data, err = e.app.Sessions.Get(cmd.Context(), id)
			}
			if err != nil {
				return err
			}
			e.out.Print(data)
			return nil
		},
	}
}

func newSessionScoreCmd(e *env) *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "score FIELD=A-B...",
		Short: "Submit scores for a session, the latest one by default",
		Long: `Submit scores as FIELD=A-B, for example "1=21-15 2=18-21".
A match id can stand in for the field number.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([]service.ScoreRow, 0, len(args))
			for _, arg := range args {
				row, err := parseScoreArg(arg)
				if err != nil {
					return err
				}
				rows = append(rows, row)
			}

			var id uuid.UUID
			if sessionID == "" {
				latest, err := e.app.Sessions.Latest(cmd.Context())
				if err != nil {
					return err
				}
				id = latest.Session.ID
			} else {
				parsed, err := uuid.Parse(sessionID)
				if err != nil {
					return fmt.Errorf("invalid session id %q: %w", sessionID, err)
				}
				id = parsed
			}

			result, err := e.app.Results.SubmitScores(cmd.Context(), id, rows)
			if err != nil {
				return err
			}
			e.out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session id (default latest)")
	return cmd
}

// parseScoreArg reads FIELD=A-B. The scores themselves are validated by the service.
func parseScoreArg(arg string) (service.ScoreRow, error) {
	key, score, ok := strings.Cut(arg, "=")
	if !ok {
		return service.ScoreRow{}, fmt.Errorf("score %q must look like FIELD=A-B", arg)
	}
	scoreA, scoreB, ok := strings.Cut(score, "-")
	if !ok {
		return service.ScoreRow{}, fmt.Errorf("score %q must look like FIELD=A-B", arg)
	}

	row := service.ScoreRow{ScoreA: scoreA, ScoreB: scoreB}
	if slot, err := strconv.Atoi(key); err == nil {
		row.FieldSlot = slot
	} else if id, err := uuid.Parse(key); err == nil {
		row.MatchID = id
	} else {
		return service.ScoreRow{}, fmt.Errorf("%q is neither a field number nor a match id", key)
	}
	return row, nil
}
