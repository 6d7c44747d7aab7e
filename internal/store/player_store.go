package store

import (
	"context"
	"fmt"

	"github.com/AdamBeresnev/club-ladder/internal/club"
	"github.com/AdamBeresnev/club-ladder/internal/rating"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type PlayerStore struct {
	db *sqlx.DB
}

const (
	createPlayerQuery = `
		INSERT INTO players (id, name, rating, matches_played, tier, availability, created_at)
		VALUES (:id, :name, :rating, :matches_played, :tier, :availability, :created_at)
	`
	getPlayerQuery       = "SELECT * FROM players WHERE id = ?"
	getPlayerByNameQuery = "SELECT * FROM players WHERE name = ?"
	listPlayersQuery     = "SELECT * FROM players ORDER BY name ASC"
	deletePlayerQuery    = "DELETE FROM players WHERE id = ?"
	// The tier column is always rewritten alongside the rating.
	updateStandingQuery = `
		UPDATE players SET
		rating = :rating,
		matches_played = :matches_played,
		tier = :tier
		WHERE id = :id
	`
)

func NewPlayerStore(db *sqlx.DB) *PlayerStore {
	return &PlayerStore{db: db}
}

func (s *PlayerStore) CreatePlayer(ctx context.Context, tx *sqlx.Tx, player *club.Player) error {
	player.Tier = rating.Classify(player.Rating)
	_, err := tx.NamedExecContext(ctx, createPlayerQuery, player)
	if err != nil {
		return fmt.Errorf("create player %q: %w", player.Name, Wrap(err))
	}
	return nil
}

func (s *PlayerStore) GetPlayer(ctx context.Context, id uuid.UUID) (*club.Player, error) {
	return getPlayer(ctx, s.db, getPlayerQuery, id)
}

func (s *PlayerStore) GetPlayerTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*club.Player, error) {
	return getPlayer(ctx, tx, getPlayerQuery, id)
}

func (s *PlayerStore) GetPlayerByName(ctx context.Context, name string) (*club.Player, error) {
	return getPlayer(ctx, s.db, getPlayerByNameQuery, name)
}

func (s *PlayerStore) GetPlayerByNameTx(ctx context.Context, tx *sqlx.Tx, name string) (*club.Player, error) {
	return getPlayer(ctx, tx, getPlayerByNameQuery, name)
}

func getPlayer(ctx context.Context, q sqlx.QueryerContext, query string, arg any) (*club.Player, error) {
	var player club.Player
	if err := sqlx.GetContext(ctx, q, &player, query, arg); err != nil {
		return nil, fmt.Errorf("player %v: %w", arg, Wrap(err))
	}
	return &player, nil
}

func (s *PlayerStore) ListPlayers(ctx context.Context) ([]club.Player, error) {
	var players []club.Player
	if err := s.db.SelectContext(ctx, &players, listPlayersQuery); err != nil {
		return nil, Wrap(err)
	}
	return players, nil
}

func (s *PlayerStore) GetPlayers(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]club.Player, error) {
	return getPlayers(ctx, s.db, ids)
}

// GetPlayersTx loads the given players keyed by id. Missing ids are simply absent.
func (s *PlayerStore) GetPlayersTx(ctx context.Context, tx *sqlx.Tx, ids []uuid.UUID) (map[uuid.UUID]club.Player, error) {
	return getPlayers(ctx, tx, ids)
}

func getPlayers(ctx context.Context, q sqlx.QueryerContext, ids []uuid.UUID) (map[uuid.UUID]club.Player, error) {
	found := make(map[uuid.UUID]club.Player, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	query, args, err := sqlx.In("SELECT * FROM players WHERE id IN (?)", ids)
	if err != nil {
		return nil, err
	}

	var players []club.Player
	if err := sqlx.SelectContext(ctx, q, &players, sqlx.Rebind(sqlx.QUESTION, query), args...); err != nil {
		return nil, Wrap(err)
	}
	for _, p := range players {
		found[p.ID] = p
	}
	return found, nil
}

func (s *PlayerStore) DeletePlayer(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) error {
	res, err := tx.ExecContext(ctx, deletePlayerQuery, id)
	if err != nil {
		return Wrap(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Wrap(err)
	}
	if n == 0 {
		return fmt.Errorf("player %s: %w", id, club.ErrNotFound)
	}
	return nil
}

func (s *PlayerStore) UpdateStanding(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, standing rating.Standing) error {
	args := map[string]any{
		"id":             id,
		"rating":         standing.Rating,
		"matches_played": standing.MatchesPlayed,
		"tier":           rating.Classify(standing.Rating),
	}
	res, err := tx.NamedExecContext(ctx, updateStandingQuery, args)
	if err != nil {
		return Wrap(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Wrap(err)
	}
	if n == 0 {
		return fmt.Errorf("player %s: %w", id, club.ErrNotFound)
	}
	return nil
}
