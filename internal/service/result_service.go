package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/AdamBeresnev/club-ladder/internal/club"
	"github.com/AdamBeresnev/club-ladder/internal/dependencies/clock"
	"github.com/AdamBeresnev/club-ladder/internal/rating"
	"github.com/AdamBeresnev/club-ladder/internal/store"
	"github.com/AdamBeresnev/club-ladder/internal/utils"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type ResultService struct {
	db          *sqlx.DB
	store       *store.SessionStore
	players     *PlayerService
	playerStore *store.PlayerStore
	clock       clock.Clock
	logger      *slog.Logger
}

func NewResultService(
	db *sqlx.DB,
	sessionStore *store.SessionStore,
	players *PlayerService,
	playerStore *store.PlayerStore,
	clk clock.Clock,
	logger *slog.Logger,
) *ResultService {
	return &ResultService{
		db:          db,
		store:       sessionStore,
		players:     players,
		playerStore: playerStore,
		clock:       clk,
		logger:      logger,
	}
}

// ScoreRow is one line of a submitted score sheet. MatchID identifies the
// match; FieldSlot is only used when MatchID is unset. The side labels are
// optional and, when present, must name the scheduled players.
type ScoreRow struct {
	MatchID   uuid.UUID `json:"match_id"`
	FieldSlot int       `json:"field_slot"`
	SideA     string    `json:"side_a"`
	SideB     string    `json:"side_b"`
	ScoreA    string    `json:"score_a"`
	ScoreB    string    `json:"score_b"`
}

type MatchOutcome struct {
	MatchID   uuid.UUID      `json:"match_id"`
	FieldSlot *int           `json:"field_slot"`
	ScoreA    int            `json:"score_a"`
	ScoreB    int            `json:"score_b"`
	Outcome   rating.Outcome `json:"-"`
	Result    string         `json:"result"`
	WinnerID  *uuid.UUID     `json:"winner_id"`
}

type RatingChange struct {
	PlayerID uuid.UUID   `json:"player_id"`
	Name     string      `json:"name"`
	Before   float64     `json:"before"`
	After    float64     `json:"after"`
	Delta    float64     `json:"delta"`
	Tier     rating.Tier `json:"tier"`
}

type SubmitResult struct {
	Matches []MatchOutcome `json:"matches"`
	Changes []RatingChange `json:"changes"`
}

type parsedRow struct {
	ScoreRow
	scoreA, scoreB int
}

// SubmitScores records a batch of results for one session and rates every
// match it finishes. Nothing is written unless the whole batch is valid.
func (s *ResultService) SubmitScores(ctx context.Context, sessionID uuid.UUID, rows []ScoreRow) (*SubmitResult, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no score rows submitted", club.ErrInvalidScore)
	}

	parsed := make([]parsedRow, len(rows))
	for i, row := range rows {
		label := rowLabel(i, row)
		a, err := parseScore(label+" score A", row.ScoreA)
		if err != nil {
			return nil, err
		}
		b, err := parseScore(label+" score B", row.ScoreB)
		if err != nil {
			return nil, err
		}
		parsed[i] = parsedRow{ScoreRow: row, scoreA: a, scoreB: b}
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", club.ErrStoreUnavailable, err)
	}
	defer tx.Rollback()

	if _, err := s.store.GetSessionTx(ctx, tx, sessionID); err != nil {
		return nil, err
	}
	matches, err := s.store.GetSessionMatchesTx(ctx, tx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session matches: %w", err)
	}

	result := &SubmitResult{}
	scored := make([]*club.Match, 0, len(parsed))
	seen := make(map[uuid.UUID]bool, len(parsed))

	for i, row := range parsed {
		match, err := findMatch(matches, row.ScoreRow)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", rowLabel(i, row.ScoreRow), err)
		}
		if seen[match.ID] {
			return nil, fmt.Errorf("match %s submitted twice: %w", match.ID, club.ErrAlreadyScored)
		}
		seen[match.ID] = true

		if match.IsFinished() {
			return nil, fmt.Errorf("match %s: %w", match.ID, club.ErrAlreadyScored)
		}
		if err := s.checkSide(ctx, tx, match, club.SideA, row.SideA); err != nil {
			return nil, err
		}
		if err := s.checkSide(ctx, tx, match, club.SideB, row.SideB); err != nil {
			return nil, err
		}

		outcome := finish(match, row.scoreA, row.scoreB)
		if err := s.store.RecordResult(ctx, tx, match); err != nil {
			return nil, err
		}

		scored = append(scored, match)
		result.Matches = append(result.Matches, outcomeOf(match, outcome))
	}

	// Ratings move only once every row has been stored
	changes := newChangeLog()
	for _, match := range scored {
		if err := s.rateMatch(ctx, tx, match, changes); err != nil {
			return nil, err
		}
	}
	result.Changes = changes.list()

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: %w", club.ErrStoreUnavailable, err)
	}

	s.logger.Info("scores submitted",
		"session", sessionID,
		"matches", len(result.Matches),
		"players_rated", len(result.Changes),
	)
	return result, nil
}

// RecordManualMatch rates a singles game played outside any session.
func (s *ResultService) RecordManualMatch(ctx context.Context, nameA, nameB string, outcome rating.Outcome) (*SubmitResult, error) {
	nameA, nameB = strings.TrimSpace(nameA), strings.TrimSpace(nameB)
	if nameA == "" || nameB == "" {
		return nil, club.ErrInvalidName
	}
	if nameA == nameB {
		return nil, fmt.Errorf("%q: %w", nameA, club.ErrSamePlayer)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", club.ErrStoreUnavailable, err)
	}
	defer tx.Rollback()

	a, err := s.playerStore.GetPlayerByNameTx(ctx, tx, nameA)
	if err != nil {
		return nil, err
	}
	b, err := s.playerStore.GetPlayerByNameTx(ctx, tx, nameB)
	if err != nil {
		return nil, err
	}
	if a.ID == b.ID {
		return nil, fmt.Errorf("%q: %w", a.Name, club.ErrSamePlayer)
	}

	now := s.clock.Now()
	match := &club.Match{
		ID:        uuid.New(),
		Date:      now.Format(club.DateLayout),
		Format:    club.Singles,
		SideAID:   a.ID,
		SideBID:   b.ID,
		Status:    club.MatchPending,
		CreatedAt: now.UTC(),
		SideA:     []uuid.UUID{a.ID},
		SideB:     []uuid.UUID{b.ID},
	}

	// A manual result only says who won, so it is stored as 1-0
	var scoreA, scoreB int
	switch outcome {
	case rating.AWins:
		scoreA = 1
	case rating.BWins:
		scoreB = 1
	}
	finish(match, scoreA, scoreB)

	if err := s.store.CreateMatches(ctx, tx, []club.Match{*match}); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	changes := newChangeLog()
	if err := s.rateMatch(ctx, tx, match, changes); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: %w", club.ErrStoreUnavailable, err)
	}

	s.logger.Info("manual match recorded", "side_a", a.Name, "side_b", b.Name, "result", outcome)
	return &SubmitResult{
		Matches: []MatchOutcome{outcomeOf(match, outcome)},
		Changes: changes.list(),
	}, nil
}

// ParseOutcome reads a manual result: "A", "B", "draw" or one of the two player names.
func ParseOutcome(winner, nameA, nameB string) (rating.Outcome, error) {
	w := strings.TrimSpace(winner)
	switch {
	case strings.EqualFold(w, "draw"), strings.EqualFold(w, "tie"):
		return rating.Draw, nil
	case strings.EqualFold(w, "a"), w == strings.TrimSpace(nameA):
		return rating.AWins, nil
	case strings.EqualFold(w, "b"), w == strings.TrimSpace(nameB):
		return rating.BWins, nil
	}
	return rating.Draw, fmt.Errorf("%w: winner %q is neither side", club.ErrInvalidScore, winner)
}

func finish(match *club.Match, scoreA, scoreB int) rating.Outcome {
	outcome := rating.OutcomeFromScores(scoreA, scoreB)

	match.ScoreA = scoreA
	match.ScoreB = scoreB
	match.Status = club.MatchFinished
	match.WinnerID = nil
	switch outcome {
	case rating.AWins:
		match.WinnerID = utils.Ptr(match.SideA[0])
	case rating.BWins:
		match.WinnerID = utils.Ptr(match.SideB[0])
	}
	return outcome
}

func outcomeOf(match *club.Match, outcome rating.Outcome) MatchOutcome {
	return MatchOutcome{
		MatchID:   match.ID,
		FieldSlot: match.FieldSlot,
		ScoreA:    match.ScoreA,
		ScoreB:    match.ScoreB,
		Outcome:   outcome,
		Result:    outcome.String(),
		WinnerID:  match.WinnerID,
	}
}

// rateMatch pairs players by position across the net: A1 against B1 and,
// in doubles, A2 against B2. A pairing with a removed player is skipped.
func (s *ResultService) rateMatch(ctx context.Context, tx *sqlx.Tx, match *club.Match, changes *changeLog) error {
	outcome := rating.OutcomeFromScores(match.ScoreA, match.ScoreB)

	for i := range min(len(match.SideA), len(match.SideB)) {
		a, err := s.playerStore.GetPlayerTx(ctx, tx, match.SideA[i])
		if errors.Is(err, club.ErrNotFound) {
			continue
		} else if err != nil {
			return err
		}
		b, err := s.playerStore.GetPlayerTx(ctx, tx, match.SideB[i])
		if errors.Is(err, club.ErrNotFound) {
			continue
		} else if err != nil {
			return err
		}

		newA, newB := rating.Update(a.Standing(), b.Standing(), outcome)

		if err := s.players.ApplyRatingUpdate(ctx, tx, a.ID, newA.Rating, newA.MatchesPlayed); err != nil {
			return fmt.Errorf("failed to update %q: %w", a.Name, err)
		}
		if err := s.players.ApplyRatingUpdate(ctx, tx, b.ID, newB.Rating, newB.MatchesPlayed); err != nil {
			return fmt.Errorf("failed to update %q: %w", b.Name, err)
		}

		changes.record(a, newA)
		changes.record(b, newB)
	}
	return nil
}

// checkSide resolves a side label through the directory and compares it to
// the scheduled players. An empty label is accepted as is.
func (s *ResultService) checkSide(ctx context.Context, tx *sqlx.Tx, match *club.Match, side club.Side, label string) error {
	names := splitSideLabel(label)
	if len(names) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(names))
	for _, name := range names {
		p, err := s.playerStore.GetPlayerByNameTx(ctx, tx, name)
		if err != nil {
			return err
		}
		ids = append(ids, p.ID)
	}

	want := slices.Clone(match.Players(side))
	slices.SortFunc(ids, compareUUID)
	slices.SortFunc(want, compareUUID)
	if !slices.Equal(ids, want) {
		return fmt.Errorf("side %s %q of match %s: %w", side, label, match.ID, club.ErrSideMismatch)
	}
	return nil
}

// splitSideLabel turns "(Ann & Ben)" or "Ann & Ben" into its names.
func splitSideLabel(label string) []string {
	label = strings.TrimSpace(label)
	label = strings.TrimSuffix(strings.TrimPrefix(label, "("), ")")
	if strings.TrimSpace(label) == "" {
		return nil
	}

	var names []string
	for _, part := range strings.Split(label, PartnerSeparator) {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func findMatch(matches []club.Match, row ScoreRow) (*club.Match, error) {
	if row.MatchID != uuid.Nil {
		for i := range matches {
			if matches[i].ID == row.MatchID {
				return &matches[i], nil
			}
		}
		return nil, fmt.Errorf("match %s: %w", row.MatchID, club.ErrNotFound)
	}

	var found *club.Match
	for i := range matches {
		if utils.OrZero(matches[i].FieldSlot) != row.FieldSlot {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("field %d: %w", row.FieldSlot, club.ErrAmbiguousSlot)
		}
		found = &matches[i]
	}
	if found == nil {
		return nil, fmt.Errorf("field %d: %w", row.FieldSlot, club.ErrNotFound)
	}
	return found, nil
}

func parseScore(field, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		return 0, &club.InvalidScoreError{Field: field, Value: value}
	}
	return n, nil
}

func rowLabel(i int, row ScoreRow) string {
	if row.MatchID == uuid.Nil && row.FieldSlot > 0 {
		return fmt.Sprintf("field %d", row.FieldSlot)
	}
	return fmt.Sprintf("row %d", i+1)
}

func compareUUID(a, b uuid.UUID) int {
	return strings.Compare(a.String(), b.String())
}

// changeLog keeps each player's rating from before the call and after it.
type changeLog struct {
	order   []uuid.UUID
	changes map[uuid.UUID]*RatingChange
}

func newChangeLog() *changeLog {
	return &changeLog{changes: make(map[uuid.UUID]*RatingChange)}
}

func (c *changeLog) record(before *club.Player, after rating.Standing) {
	change, ok := c.changes[before.ID]
	if !ok {
		change = &RatingChange{PlayerID: before.ID, Name: before.Name, Before: before.Rating}
		c.changes[before.ID] = change
		c.order = append(c.order, before.ID)
	}
	change.After = after.Rating
	change.Delta = after.Rating - change.Before
	change.Tier = after.Tier
}

func (c *changeLog) list() []RatingChange {
	out := make([]RatingChange, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.changes[id])
	}
	return out
}
