package service

import (
	"context"

	"github.com/AdamBeresnev/club-ladder/internal/store"
)

type ReportService struct {
	store *store.ReportStore
}

func NewReportService(store *store.ReportStore) *ReportService {
	return &ReportService{store: store}
}

type PerformanceEntry struct {
	store.PerformanceRow
	// Nil until the player has a match
	WinRate *float64 `json:"win_rate"`
}

func (s *ReportService) Leaderboard(ctx context.Context) ([]store.LeaderboardRow, error) {
	return s.store.Leaderboard(ctx)
}

func (s *ReportService) MatchHistory(ctx context.Context, limit int) ([]store.HistoryRow, error) {
	return s.store.MatchHistory(ctx, limit)
}

func (s *ReportService) Performance(ctx context.Context) ([]PerformanceEntry, error) {
	rows, err := s.store.Performance(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]PerformanceEntry, len(rows))
	for i, row := range rows {
		entries[i].PerformanceRow = row
		if row.MatchesPlayed > 0 {
			rate := float64(row.Wins) / float64(row.MatchesPlayed)
			entries[i].WinRate = &rate
		}
	}
	return entries, nil
}
