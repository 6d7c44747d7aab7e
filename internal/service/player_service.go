package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/AdamBeresnev/club-ladder/internal/club"
	"github.com/AdamBeresnev/club-ladder/internal/dependencies/clock"
	"github.com/AdamBeresnev/club-ladder/internal/rating"
	"github.com/AdamBeresnev/club-ladder/internal/store"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type PlayerService struct {
	db     *sqlx.DB
	store  *store.PlayerStore
	clock  clock.Clock
	logger *slog.Logger
}

func NewPlayerService(db *sqlx.DB, store *store.PlayerStore, clk clock.Clock, logger *slog.Logger) *PlayerService {
	return &PlayerService{db: db, store: store, clock: clk, logger: logger}
}

type PlayerInput struct {
	Name string
	// Overrides the tier's seed rating when set
	Rating       *float64
	Tier         rating.Tier
	Availability club.Availability
}

func (s *PlayerService) Create(ctx context.Context, input PlayerInput) (*club.Player, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", club.ErrStoreUnavailable, err)
	}
	defer tx.Rollback()

	player, err := s.CreateTx(ctx, tx, input)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: %w", club.ErrStoreUnavailable, err)
	}

	s.logger.Info("player created", "player", player.Name, "rating", player.Rating, "tier", player.Tier)
	return player, nil
}

// CreateTx validates and inserts a player inside an existing transaction.
// The stored tier always follows the rating, whatever tier was asked for.
func (s *PlayerService) CreateTx(ctx context.Context, tx *sqlx.Tx, input PlayerInput) (*club.Player, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, club.ErrInvalidName
	}

	tier := input.Tier
	if tier == "" {
		tier = rating.Beginner
	}
	r := tier.SeedRating()
	if input.Rating != nil {
		r = *input.Rating
	}
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return nil, fmt.Errorf("%w: rating %v for %q", club.ErrInvalidScore, r, name)
	}

	player := &club.Player{
		ID:           uuid.New(),
		Name:         name,
		Rating:       r,
		Availability: input.Availability,
		CreatedAt:    s.clock.Now().UTC(),
	}
	if err := s.store.CreatePlayer(ctx, tx, player); err != nil {
		return nil, err
	}
	return player, nil
}

func (s *PlayerService) Find(ctx context.Context, name string) (*club.Player, error) {
	return s.store.GetPlayerByName(ctx, strings.TrimSpace(name))
}

func (s *PlayerService) Get(ctx context.Context, id uuid.UUID) (*club.Player, error) {
	return s.store.GetPlayer(ctx, id)
}

func (s *PlayerService) List(ctx context.Context) ([]club.Player, error) {
	return s.store.ListPlayers(ctx)
}

// ListEligible returns the players who can be drafted on today's weekday.
// A zero today means the clock's current day.
func (s *PlayerService) ListEligible(ctx context.Context, today time.Time) ([]club.Player, error) {
	if today.IsZero() {
		today = s.clock.Now()
	}

	players, err := s.store.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	eligible := make([]club.Player, 0, len(players))
	for _, p := range players {
		if p.Availability.Includes(today.Weekday()) {
			eligible = append(eligible, p)
		}
	}
	return eligible, nil
}

// Remove deletes the given players in one transaction. An unknown id rolls
// back the whole call. Match history keeps the removed ids.
func (s *PlayerService) Remove(ctx context.Context, ids ...uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", club.ErrStoreUnavailable, err)
	}
	defer tx.Rollback()

	removed := 0
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		if err := s.store.DeletePlayer(ctx, tx, id); err != nil {
			return 0, err
		}
		removed++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: %w", club.ErrStoreUnavailable, err)
	}

	s.logger.Info("players removed", "count", removed)
	return removed, nil
}

// ApplyRatingUpdate is the only path that writes a rating. The tier is
// rewritten by the same statement.
func (s *PlayerService) ApplyRatingUpdate(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, newRating float64, matchesPlayed int) error {
	return s.store.UpdateStanding(ctx, tx, id, rating.NewStanding(newRating, matchesPlayed))
}
