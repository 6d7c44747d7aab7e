package store

import (
	"context"
	"fmt"

	"github.com/AdamBeresnev/club-ladder/internal/club"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type SessionStore struct {
	db *sqlx.DB
}

const (
	createSessionQuery = `
		INSERT INTO sessions (id, name, format, date, field_count, created_at)
		VALUES (:id, :name, :format, :date, :field_count, :created_at)
	`
	createMatchesQuery = `
		INSERT INTO matches (id, date, session_id, side_a_id, side_b_id, score_a, score_b, winner_id, format, field_slot, status, created_at)
		VALUES (:id, :date, :session_id, :side_a_id, :side_b_id, :score_a, :score_b, :winner_id, :format, :field_slot, :status, :created_at)
	`
	createMatchPlayersQuery = `
		INSERT INTO match_players (match_id, side, position, player_id)
		VALUES (:match_id, :side, :position, :player_id)
	`
	// Only a pending match can take a result.
	recordResultQuery = `
		UPDATE matches SET
		score_a = :score_a,
		score_b = :score_b,
		winner_id = :winner_id,
		status = :status
		WHERE id = :id AND status = 'pending'
	`
	getSessionQuery       = "SELECT * FROM sessions WHERE id = ?"
	getLatestSessionQuery = "SELECT * FROM sessions ORDER BY created_at DESC, rowid DESC LIMIT 1"
	getSessionMatchesQuery = `
		SELECT * FROM matches WHERE session_id = ?
		ORDER BY field_slot ASC, created_at ASC, rowid ASC
	`
	getMatchQuery = "SELECT * FROM matches WHERE id = ?"
)

func NewSessionStore(db *sqlx.DB) *SessionStore {
	return &SessionStore{db: db}
}

func (s *SessionStore) CreateSession(ctx context.Context, tx *sqlx.Tx, session *club.Session) error {
	_, err := tx.NamedExecContext(ctx, createSessionQuery, session)
	return Wrap(err)
}

// CreateMatches inserts the match rows and their participant rows.
func (s *SessionStore) CreateMatches(ctx context.Context, tx *sqlx.Tx, matches []club.Match) error {
	if len(matches) == 0 {
		return nil
	}
	if _, err := tx.NamedExecContext(ctx, createMatchesQuery, matches); err != nil {
		return Wrap(err)
	}

	var participants []club.MatchPlayer
	for i := range matches {
		participants = append(participants, matches[i].Participants()...)
	}
	if len(participants) == 0 {
		return nil
	}
	_, err := tx.NamedExecContext(ctx, createMatchPlayersQuery, participants)
	return Wrap(err)
}

func (s *SessionStore) GetSession(ctx context.Context, id uuid.UUID) (*club.Session, error) {
	var session club.Session
	if err := s.db.GetContext(ctx, &session, getSessionQuery, id); err != nil {
		return nil, fmt.Errorf("session %s: %w", id, Wrap(err))
	}
	return &session, nil
}

func (s *SessionStore) GetSessionTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*club.Session, error) {
	var session club.Session
	if err := tx.GetContext(ctx, &session, getSessionQuery, id); err != nil {
		return nil, fmt.Errorf("session %s: %w", id, Wrap(err))
	}
	return &session, nil
}

func (s *SessionStore) GetLatestSession(ctx context.Context) (*club.Session, error) {
	var session club.Session
	if err := s.db.GetContext(ctx, &session, getLatestSessionQuery); err != nil {
		return nil, fmt.Errorf("latest session: %w", Wrap(err))
	}
	return &session, nil
}

func (s *SessionStore) GetSessionMatches(ctx context.Context, sessionID uuid.UUID) ([]club.Match, error) {
	return getMatches(ctx, s.db, getSessionMatchesQuery, sessionID)
}

func (s *SessionStore) GetSessionMatchesTx(ctx context.Context, tx *sqlx.Tx, sessionID uuid.UUID) ([]club.Match, error) {
	return getMatches(ctx, tx, getSessionMatchesQuery, sessionID)
}

func (s *SessionStore) GetMatch(ctx context.Context, id uuid.UUID) (*club.Match, error) {
	return getMatch(ctx, s.db, id)
}

func (s *SessionStore) GetMatchTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*club.Match, error) {
	return getMatch(ctx, tx, id)
}

func getMatch(ctx context.Context, q sqlx.QueryerContext, id uuid.UUID) (*club.Match, error) {
	matches, err := getMatches(ctx, q, getMatchQuery, id)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("match %s: %w", id, club.ErrNotFound)
	}
	return &matches[0], nil
}

func getMatches(ctx context.Context, q sqlx.QueryerContext, query string, args ...any) ([]club.Match, error) {
	var matches []club.Match
	if err := sqlx.SelectContext(ctx, q, &matches, query, args...); err != nil {
		return nil, Wrap(err)
	}
	if err := attachParticipants(ctx, q, matches); err != nil {
		return nil, err
	}
	return matches, nil
}

func attachParticipants(ctx context.Context, q sqlx.QueryerContext, matches []club.Match) error {
	if len(matches) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(matches))
	byID := make(map[uuid.UUID]*club.Match, len(matches))
	for i := range matches {
		ids[i] = matches[i].ID
		byID[matches[i].ID] = &matches[i]
	}

	query, args, err := sqlx.In("SELECT * FROM match_players WHERE match_id IN (?) ORDER BY side ASC, position ASC", ids)
	if err != nil {
		return err
	}

	var rows []club.MatchPlayer
	if err := sqlx.SelectContext(ctx, q, &rows, sqlx.Rebind(sqlx.QUESTION, query), args...); err != nil {
		return Wrap(err)
	}

	for _, row := range rows {
		m, ok := byID[row.MatchID]
		if !ok {
			continue
		}
		if row.Side == club.SideA {
			m.SideA = append(m.SideA, row.PlayerID)
		} else {
			m.SideB = append(m.SideB, row.PlayerID)
		}
	}
	return nil
}

// RecordResult stores the score of a pending match. A match that already
// has a result is left alone and reported as club.ErrAlreadyScored.
func (s *SessionStore) RecordResult(ctx context.Context, tx *sqlx.Tx, match *club.Match) error {
	res, err := tx.NamedExecContext(ctx, recordResultQuery, match)
	if err != nil {
		return Wrap(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Wrap(err)
	}
	if n == 0 {
		return fmt.Errorf("match %s: %w", match.ID, club.ErrAlreadyScored)
	}
	return nil
}
