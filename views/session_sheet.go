package views

import (
	"sort"

	"github.com/AdamBeresnev/club-ladder/internal/club"
	"github.com/AdamBeresnev/club-ladder/internal/service"
	"github.com/AdamBeresnev/club-ladder/internal/utils"
	"github.com/google/uuid"
)

type SheetRow struct {
	FieldSlot int
	MatchID   uuid.UUID
	SideA     string
	SideB     string
	ScoreA    int
	ScoreB    int
	Finished  bool
	Winner    string
}

type SessionSheet struct {
	Session *club.Session
	Rows    []SheetRow
	Pending int
}

func PrepareSessionSheet(data *service.SessionData) SessionSheet {
	sheet := SessionSheet{Session: data.Session}

	for _, m := range data.Matches {
		row := SheetRow{
			FieldSlot: utils.OrZero(m.FieldSlot),
			MatchID:   m.ID,
			SideA:     data.SideLabel(m, club.SideA),
			SideB:     data.SideLabel(m, club.SideB),
			ScoreA:    m.ScoreA,
			ScoreB:    m.ScoreB,
			Finished:  m.IsFinished(),
		}

		switch {
		case !m.IsFinished():
			sheet.Pending++
		case m.IsDraw():
			row.Winner = "Draw"
		case m.ScoreA > m.ScoreB:
			row.Winner = row.SideA
		default:
			row.Winner = row.SideB
		}

		sheet.Rows = append(sheet.Rows, row)
	}

	sort.SliceStable(sheet.Rows, func(i, j int) bool {
		return sheet.Rows[i].FieldSlot < sheet.Rows[j].FieldSlot
	})

	return sheet
}
