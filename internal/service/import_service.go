package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/AdamBeresnev/club-ladder/internal/club"
	"github.com/AdamBeresnev/club-ladder/internal/rating"
	"github.com/AdamBeresnev/club-ladder/internal/store"
	"github.com/jmoiron/sqlx"
)

type ImportService struct {
	db          *sqlx.DB
	players     *PlayerService
	playerStore *store.PlayerStore
	logger      *slog.Logger
}

func NewImportService(db *sqlx.DB, players *PlayerService, playerStore *store.PlayerStore, logger *slog.Logger) *ImportService {
	return &ImportService{db: db, players: players, playerStore: playerStore, logger: logger}
}

type SkippedRow struct {
	Line   int    `json:"line"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

type ImportResult struct {
	Created []club.Player `json:"created"`
	Skipped []SkippedRow  `json:"skipped"`
}

type importColumns struct {
	name, tier, availability int
}

// ImportCSV adds every new player in a CSV roster. The header must have a
// name column; tier (or skill_level) and availability are optional. Rows
// that cannot be imported are reported back instead of failing the file.
func (s *ImportService) ImportCSV(ctx context.Context, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: missing header row", club.ErrInvalidImport)
	} else if err != nil {
		return nil, fmt.Errorf("%w: %w", club.ErrInvalidImport, err)
	}

	cols, err := parseHeader(header)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", club.ErrStoreUnavailable, err)
	}
	defer tx.Rollback()

	result := &ImportResult{}
	inFile := make(map[string]bool)

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, fmt.Errorf("%w: %w", club.ErrInvalidImport, err)
		}
		line, _ := reader.FieldPos(0)

		name := strings.TrimSpace(field(record, cols.name))
		skip := func(reason string) {
			result.Skipped = append(result.Skipped, SkippedRow{Line: line, Name: name, Reason: reason})
		}

		if name == "" {
			skip("empty name")
			continue
		}
		if inFile[name] {
			skip("duplicate name in file")
			continue
		}
		inFile[name] = true

		tier, err := rating.ParseTier(field(record, cols.tier))
		if err != nil {
			skip(err.Error())
			continue
		}
		availability, err := club.ParseAvailability(field(record, cols.availability))
		if err != nil {
			skip(err.Error())
			continue
		}

		_, err = s.playerStore.GetPlayerByNameTx(ctx, tx, name)
		if err == nil {
			skip("player already exists")
			continue
		} else if !errors.Is(err, club.ErrNotFound) {
			return nil, err
		}

		player, err := s.players.CreateTx(ctx, tx, PlayerInput{Name: name, Tier: tier, Availability: availability})
		if err != nil {
			return nil, err
		}
		result.Created = append(result.Created, *player)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: %w", club.ErrStoreUnavailable, err)
	}

	s.logger.Info("players imported", "created", len(result.Created), "skipped", len(result.Skipped))
	return result, nil
}

func parseHeader(header []string) (importColumns, error) {
	cols := importColumns{name: -1, tier: -1, availability: -1}
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))) {
		case "name":
			cols.name = i
		case "tier", "skill_level", "skill level":
			cols.tier = i
		case "availability":
			cols.availability = i
		}
	}
	if cols.name < 0 {
		return cols, fmt.Errorf("%w: header has no name column", club.ErrInvalidImport)
	}
	return cols, nil
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}
