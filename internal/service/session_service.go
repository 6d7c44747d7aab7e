package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/AdamBeresnev/club-ladder/internal/club"
	"github.com/AdamBeresnev/club-ladder/internal/dependencies/clock"
	"github.com/AdamBeresnev/club-ladder/internal/dependencies/random"
	"github.com/AdamBeresnev/club-ladder/internal/store"
	"github.com/AdamBeresnev/club-ladder/internal/utils"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const (
	DefaultFieldCount = 4

	// Joins doubles partners in side labels
	PartnerSeparator = " & "
)

type SessionService struct {
	db          *sqlx.DB
	store       *store.SessionStore
	players     *PlayerService
	playerStore *store.PlayerStore
	random      random.Random
	clock       clock.Clock
	fieldCount  int
	logger      *slog.Logger
}

func NewSessionService(
	db *sqlx.DB,
	sessionStore *store.SessionStore,
	players *PlayerService,
	playerStore *store.PlayerStore,
	rnd random.Random,
	clk clock.Clock,
	fieldCount int,
	logger *slog.Logger,
) *SessionService {
	if fieldCount < 1 {
		fieldCount = DefaultFieldCount
	}
	return &SessionService{
		db:          db,
		store:       sessionStore,
		players:     players,
		playerStore: playerStore,
		random:      rnd,
		clock:       clk,
		fieldCount:  fieldCount,
		logger:      logger,
	}
}

type BuildRequest struct {
	Format club.Format
	// Empty means everyone eligible today
	PlayerIDs []uuid.UUID
}

type SessionData struct {
	Session *club.Session        `json:"session"`
	Matches []club.Match         `json:"matches"`
	Names   map[uuid.UUID]string `json:"names"`
	// Only filled in by Build
	Benched []club.Player `json:"benched,omitempty"`
}

// Name returns the player's current name, or a marker for removed players.
func (d *SessionData) Name(id uuid.UUID) string {
	if name, ok := d.Names[id]; ok {
		return name
	}
	return store.RemovedPlayerName
}

func (d *SessionData) SideLabel(m club.Match, side club.Side) string {
	ids := m.Players(side)
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = d.Name(id)
	}
	return strings.Join(names, PartnerSeparator)
}

func (s *SessionService) FieldCount() int {
	return s.fieldCount
}

// Build drafts a new session and stores its pending matches. Every call makes
// a new session, even when the pool is the same.
func (s *SessionService) Build(ctx context.Context, req BuildRequest) (*SessionData, error) {
	if req.Format != club.Singles && req.Format != club.Doubles {
		return nil, fmt.Errorf("%w: %q", club.ErrInvalidFormat, req.Format)
	}

	now := s.clock.Now()

	var pool []club.Player
	if len(req.PlayerIDs) == 0 {
		eligible, err := s.players.ListEligible(ctx, now)
		if err != nil {
			return nil, fmt.Errorf("failed to list eligible players: %w", err)
		}
		// The directory lists by name, so mix before anyone gets benched
		s.random.Shuffle(len(eligible), func(i, j int) {
			eligible[i], eligible[j] = eligible[j], eligible[i]
		})
		pool = eligible
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", club.ErrStoreUnavailable, err)
	}
	defer tx.Rollback()

	if len(req.PlayerIDs) > 0 {
		found, err := s.playerStore.GetPlayersTx(ctx, tx, req.PlayerIDs)
		if err != nil {
			return nil, err
		}
		for _, id := range req.PlayerIDs {
			p, ok := found[id]
			if !ok {
				return nil, fmt.Errorf("player %s: %w", id, club.ErrNotFound)
			}
			pool = append(pool, p)
		}
	}

	lineup, err := PlanLineup(pool, req.Format, s.fieldCount, s.random)
	if err != nil {
		return nil, err
	}

	session := &club.Session{
		ID:         uuid.New(),
		Name:       club.SessionName(now),
		Format:     req.Format,
		Date:       now.Format(club.DateLayout),
		FieldCount: s.fieldCount,
		CreatedAt:  now.UTC(),
	}
	if err := s.store.CreateSession(ctx, tx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	names := make(map[uuid.UUID]string)
	matches := make([]club.Match, 0, len(lineup.Groups))
	for _, g := range lineup.Groups {
		m := club.Match{
			ID:        uuid.New(),
			SessionID: &session.ID,
			Date:      session.Date,
			Format:    req.Format,
			FieldSlot: utils.Ptr(g.FieldSlot),
			Status:    club.MatchPending,
			CreatedAt: session.CreatedAt,
		}
		for _, p := range g.SideA {
			m.SideA = append(m.SideA, p.ID)
			names[p.ID] = p.Name
		}
		for _, p := range g.SideB {
			m.SideB = append(m.SideB, p.ID)
			names[p.ID] = p.Name
		}
		m.SideAID = m.SideA[0]
		m.SideBID = m.SideB[0]
		matches = append(matches, m)
	}

	if err := s.store.CreateMatches(ctx, tx, matches); err != nil {
		return nil, fmt.Errorf("failed to create matches: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: %w", club.ErrStoreUnavailable, err)
	}

	s.logger.Info("session built",
		"session", session.ID,
		"format", session.Format,
		"matches", len(matches),
		"benched", len(lineup.Benched),
	)

	return &SessionData{
		Session: session,
		Matches: matches,
		Names:   names,
		Benched: lineup.Benched,
	}, nil
}

func (s *SessionService) Get(ctx context.Context, id uuid.UUID) (*SessionData, error) {
	session, err := s.store.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.load(ctx, session)
}

// Latest returns the most recently built session.
func (s *SessionService) Latest(ctx context.Context) (*SessionData, error) {
	session, err := s.store.GetLatestSession(ctx)
	if err != nil {
		return nil, err
	}
	return s.load(ctx, session)
}

func (s *SessionService) load(ctx context.Context, session *club.Session) (*SessionData, error) {
	matches, err := s.store.GetSessionMatches(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session matches: %w", err)
	}

	var ids []uuid.UUID
	for _, m := range matches {
		ids = append(ids, m.SideA...)
		ids = append(ids, m.SideB...)
	}
	players, err := s.playerStore.GetPlayers(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get session players: %w", err)
	}

	names := make(map[uuid.UUID]string, len(players))
	for id, p := range players {
		names[id] = p.Name
	}

	return &SessionData{Session: session, Matches: matches, Names: names}, nil
}
