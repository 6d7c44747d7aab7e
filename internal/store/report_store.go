package store

import (
	"context"

	"github.com/AdamBeresnev/club-ladder/internal/rating"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type ReportStore struct {
	db *sqlx.DB
}

func NewReportStore(db *sqlx.DB) *ReportStore {
	return &ReportStore{db: db}
}

type LeaderboardRow struct {
	Name          string      `db:"name" json:"name"`
	Rating        float64     `db:"rating" json:"rating"`
	Tier          rating.Tier `db:"tier" json:"tier"`
	MatchesPlayed int         `db:"matches_played" json:"matches_played"`
}

type HistoryRow struct {
	MatchID     uuid.UUID `db:"id" json:"match_id"`
	Date        string    `db:"date" json:"date"`
	SessionName *string   `db:"session_name" json:"session_name"`
	SideA       string    `db:"side_a" json:"side_a"`
	SideB       string    `db:"side_b" json:"side_b"`
	ScoreA      int       `db:"score_a" json:"score_a"`
	ScoreB      int       `db:"score_b" json:"score_b"`
	Winner      *string   `db:"winner" json:"winner"`
	Format      string    `db:"format" json:"format"`
	FieldSlot   *int      `db:"field_slot" json:"field_slot"`
}

type PerformanceRow struct {
	Name          string      `db:"name" json:"name"`
	Rating        float64     `db:"rating" json:"rating"`
	MatchesPlayed int         `db:"matches_played" json:"matches_played"`
	Tier          rating.Tier `db:"tier" json:"tier"`
	Wins          int         `db:"wins" json:"wins"`
}

const (
	RemovedPlayerName = "(removed)"

	leaderboardQuery = `
		SELECT name, rating, tier, matches_played FROM players
		ORDER BY rating DESC, name ASC
	`
	historyQuery = `
		SELECT m.id, m.date, s.name AS session_name,
			COALESCE((SELECT GROUP_CONCAT(COALESCE(p.name, '(removed)'), ' & ')
				FROM match_players mp LEFT JOIN players p ON p.id = mp.player_id
				WHERE mp.match_id = m.id AND mp.side = 'A'), '') AS side_a,
			COALESCE((SELECT GROUP_CONCAT(COALESCE(p.name, '(removed)'), ' & ')
				FROM match_players mp LEFT JOIN players p ON p.id = mp.player_id
				WHERE mp.match_id = m.id AND mp.side = 'B'), '') AS side_b,
			m.score_a, m.score_b, w.name AS winner, m.format, m.field_slot
		FROM matches m
		LEFT JOIN sessions s ON s.id = m.session_id
		LEFT JOIN players w ON w.id = m.winner_id
		WHERE m.status = 'finished'
		ORDER BY m.created_at DESC, m.rowid DESC
		LIMIT ?
	`
	// A win is any finished match where the player's side outscored the other.
	performanceQuery = `
		SELECT p.name, p.rating, p.matches_played, p.tier,
			(SELECT COUNT(*) FROM match_players mp
				JOIN matches m ON m.id = mp.match_id
				WHERE mp.player_id = p.id AND m.status = 'finished'
				AND ((mp.side = 'A' AND m.score_a > m.score_b) OR (mp.side = 'B' AND m.score_b > m.score_a))
			) AS wins
		FROM players p
		ORDER BY p.rating DESC, p.name ASC
	`
)

func (s *ReportStore) Leaderboard(ctx context.Context) ([]LeaderboardRow, error) {
	var rows []LeaderboardRow
	if err := s.db.SelectContext(ctx, &rows, leaderboardQuery); err != nil {
		return nil, Wrap(err)
	}
	return rows, nil
}

// MatchHistory returns finished matches, newest first. limit <= 0 means all.
func (s *ReportStore) MatchHistory(ctx context.Context, limit int) ([]HistoryRow, error) {
	if limit <= 0 {
		limit = -1
	}
	var rows []HistoryRow
	if err := s.db.SelectContext(ctx, &rows, historyQuery, limit); err != nil {
		return nil, Wrap(err)
	}
	return rows, nil
}

func (s *ReportStore) Performance(ctx context.Context) ([]PerformanceRow, error) {
	var rows []PerformanceRow
	if err := s.db.SelectContext(ctx, &rows, performanceQuery); err != nil {
		return nil, Wrap(err)
	}
	return rows, nil
}
