package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/AdamBeresnev/club-ladder/internal/club"
	"github.com/AdamBeresnev/club-ladder/internal/service"
	"github.com/AdamBeresnev/club-ladder/internal/store"
	"github.com/AdamBeresnev/club-ladder/internal/utils"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		o.printJSON(map[string]string{"message": msg})
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case *club.Player:
		o.printPlayers([]club.Player{*v})
	case []club.Player:
		o.printPlayers(v)
	case *service.SessionData:
		o.printSession(v)
	case *service.SubmitResult:
		o.printSubmitResult(v)
	case *service.ImportResult:
		o.printImportResult(v)
	case []store.LeaderboardRow:
		o.printLeaderboard(v)
	case []store.HistoryRow:
		o.printHistory(v)
	case []service.PerformanceEntry:
		o.printPerformance(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) table() *tabwriter.Writer {
	return tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
}

func (o *Output) printPlayers(players []club.Player) {
	if len(players) == 0 {
		fmt.Fprintln(o.w, "No players.")
		return
	}
	tw := o.table()
	fmt.Fprintln(tw, "NAME\tRATING\tTIER\tMATCHES\tAVAILABILITY")
	for _, p := range players {
		fmt.Fprintf(tw, "%s\t%.1f\t%s\t%d\t%s\n", p.Name, p.Rating, p.Tier, p.MatchesPlayed, p.Availability)
	}
	tw.Flush()
}

func (o *Output) printSession(d *service.SessionData) {
	fmt.Fprintf(o.w, "%s (%s, %d fields)\n", d.Session.Name, d.Session.Format, d.Session.FieldCount)
	fmt.Fprintf(o.w, "ID: %s\n", d.Session.ID)

	tw := o.table()
	fmt.Fprintln(tw, "FIELD\tSIDE A\tSIDE B\tSCORE\tSTATUS")
	for _, m := range d.Matches {
		score := "-"
		if m.IsFinished() {
			score = fmt.Sprintf("%d-%d", m.ScoreA, m.ScoreB)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			utils.OrZero(m.FieldSlot), d.SideLabel(m, club.SideA), d.SideLabel(m, club.SideB), score, m.Status)
	}
	tw.Flush()

	if len(d.Benched) > 0 {
		names := make([]string, len(d.Benched))
		for i, p := range d.Benched {
			names[i] = p.Name
		}
		fmt.Fprintf(o.w, "Benched: %s\n", strings.Join(names, ", "))
	}
}

func (o *Output) printSubmitResult(r *service.SubmitResult) {
	fmt.Fprintf(o.w, "Recorded %d match(es)\n", len(r.Matches))
	if len(r.Changes) == 0 {
		return
	}
	tw := o.table()
	fmt.Fprintln(tw, "PLAYER\tBEFORE\tAFTER\tCHANGE\tTIER")
	for _, c := range r.Changes {
		fmt.Fprintf(tw, "%s\t%.1f\t%.1f\t%+.1f\t%s\n", c.Name, c.Before, c.After, c.Delta, c.Tier)
	}
	tw.Flush()
}

func (o *Output) printImportResult(r *service.ImportResult) {
	fmt.Fprintf(o.w, "Imported %d player(s)\n", len(r.Created))
	for _, s := range r.Skipped {
		fmt.Fprintf(o.w, "  line %d skipped (%s): %s\n", s.Line, s.Name, s.Reason)
	}
}

func (o *Output) printLeaderboard(rows []store.LeaderboardRow) {
	tw := o.table()
	fmt.Fprintln(tw, "#\tNAME\tRATING\tTIER\tMATCHES")
	for i, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%.1f\t%s\t%d\n", i+1, r.Name, r.Rating, r.Tier, r.MatchesPlayed)
	}
	tw.Flush()
}

func (o *Output) printHistory(rows []store.HistoryRow) {
	if len(rows) == 0 {
		fmt.Fprintln(o.w, "No matches played yet.")
		return
	}
	tw := o.table()
	fmt.Fprintln(tw, "DATE\tSESSION\tSIDE A\tSIDE B\tSCORE\tWINNER")
	for _, r := range rows {
		session := utils.OrZero(r.SessionName)
		if session == "" {
			session = "manual"
		}
		winner := utils.OrZero(r.Winner)
		switch {
		case r.ScoreA == r.ScoreB:
			winner = "draw"
		case winner == "":
			winner = store.RemovedPlayerName
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d-%d\t%s\n", r.Date, session, r.SideA, r.SideB, r.ScoreA, r.ScoreB, winner)
	}
	tw.Flush()
}

func (o *Output) printPerformance(rows []service.PerformanceEntry) {
	tw := o.table()
	fmt.Fprintln(tw, "NAME\tRATING\tTIER\tMATCHES\tWINS\tWIN RATE")
	for _, r := range rows {
		rate := "-"
		if r.WinRate != nil {
			rate = fmt.Sprintf("%.0f%%", *r.WinRate*100)
		}
		fmt.Fprintf(tw, "%s\t%.1f\t%s\t%d\t%d\t%s\n", r.Name, r.Rating, r.Tier, r.MatchesPlayed, r.Wins, rate)
	}
	tw.Flush()
}
