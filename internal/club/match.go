package club

import (
	"time"

	"github.com/google/uuid"
)

type MatchStatus string

const (
	MatchPending  MatchStatus = "pending"
	MatchFinished MatchStatus = "finished"
)

type Side string

const (
	SideA Side = "A"
	SideB Side = "B"
)

type Match struct {
	ID uuid.UUID `db:"id" json:"id"`

	// Nil for matches recorded by hand outside a session
	SessionID *uuid.UUID `db:"session_id" json:"session_id"`
	Date      string     `db:"date" json:"date"`
	Format    Format     `db:"format" json:"format"`
	FieldSlot *int       `db:"field_slot" json:"field_slot"`

	// First-listed player of each side
	SideAID uuid.UUID `db:"side_a_id" json:"side_a_id"`
	SideBID uuid.UUID `db:"side_b_id" json:"side_b_id"`

	ScoreA   int         `db:"score_a" json:"score_a"`
	ScoreB   int         `db:"score_b" json:"score_b"`
	WinnerID *uuid.UUID  `db:"winner_id" json:"winner_id"`
	Status   MatchStatus `db:"status" json:"status"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`

	SideA []uuid.UUID `db:"-" json:"side_a"`
	SideB []uuid.UUID `db:"-" json:"side_b"`
}

// MatchPlayer is one participant row; doubles partnerships live here.
type MatchPlayer struct {
	MatchID  uuid.UUID `db:"match_id"`
	Side     Side      `db:"side"`
	Position int       `db:"position"`
	PlayerID uuid.UUID `db:"player_id"`
}

func (m *Match) IsFinished() bool {
	return m.Status == MatchFinished
}

func (m *Match) IsDraw() bool {
	return m.IsFinished() && m.WinnerID == nil
}

func (m *Match) Players(side Side) []uuid.UUID {
	if side == SideA {
		return m.SideA
	}
	return m.SideB
}

// Participants flattens a match into MatchPlayer rows, side A first.
func (m *Match) Participants() []MatchPlayer {
	rows := make([]MatchPlayer, 0, len(m.SideA)+len(m.SideB))
	for i, id := range m.SideA {
		rows = append(rows, MatchPlayer{MatchID: m.ID, Side: SideA, Position: i + 1, PlayerID: id})
	}
	for i, id := range m.SideB {
		rows = append(rows, MatchPlayer{MatchID: m.ID, Side: SideB, Position: i + 1, PlayerID: id})
	}
	return rows
}
