package views

import (
	"context"
	"fmt"
	"io"

	"github.com/AdamBeresnev/club-ladder/internal/store"
	"github.com/a-h/templ"
)

func text(s string) string {
	return templ.EscapeString(s)
}

func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>%s</title></head><body><main>`, text(title)); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

// LeaderboardPage lists the ladder and links the latest session when there is one.
func LeaderboardPage(rows []store.LeaderboardRow, latest *SessionSheet) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Ladder</h1>`); err != nil {
			return err
		}
		if latest != nil {
			if _, err := fmt.Fprintf(w, `<p><a href="/sessions/%s">%s</a> (%d pending)</p>`,
				latest.Session.ID, text(latest.Session.Name), latest.Pending); err != nil {
				return err
			}
		}
		if len(rows) == 0 {
			_, err := io.WriteString(w, `<p>No players yet.</p>`)
			return err
		}

		if _, err := io.WriteString(w, `<table><thead><tr><th>#</th><th>Name</th><th>Rating</th><th>Tier</th><th>Matches</th></tr></thead><tbody>`); err != nil {
			return err
		}
		for i, row := range rows {
			if _, err := fmt.Fprintf(w, `<tr><td>%d</td><td>%s</td><td>%s</td><td class="%s">%s</td><td>%d</td></tr>`,
				i+1, text(row.Name), formatRating(row.Rating), tierClass(row.Tier), text(row.Tier.String()), row.MatchesPlayed); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table>`)
		return err
	})
	return Layout("Ladder", body)
}

// SessionPage is the score sheet for one session. Pending matches get score
// inputs keyed by match id.
func SessionPage(sheet SessionSheet) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<h1>%s</h1><p>%s, %d fields</p>`,
			text(sheet.Session.Name), text(string(sheet.Session.Format)), sheet.Session.FieldCount); err != nil {
			return err
		}
		if sheet.Pending > 0 {
			if _, err := fmt.Fprintf(w, `<form method="post" action="/sessions/%s/scores">`, sheet.Session.ID); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `<table><thead><tr><th>Field</th><th>Side A</th><th>Score</th><th>Side B</th><th>Result</th></tr></thead><tbody>`); err != nil {
			return err
		}
		for _, row := range sheet.Rows {
			score := fmt.Sprintf(`<input name="score_a_%[1]s" inputmode="numeric"> - <input name="score_b_%[1]s" inputmode="numeric">`, row.MatchID)
			result := "Pending"
			if row.Finished {
				score = fmt.Sprintf("%d - %d", row.ScoreA, row.ScoreB)
				result = text(row.Winner)
			}
			if _, err := fmt.Fprintf(w, `<tr><td>%d</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>`,
				row.FieldSlot, text(row.SideA), score, text(row.SideB), result); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</tbody></table>`); err != nil {
			return err
		}
		if sheet.Pending > 0 {
			_, err := io.WriteString(w, `<button type="submit">Submit scores</button></form>`)
			return err
		}
		return nil
	})
	return Layout(sheet.Session.Name, body)
}
