package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/AdamBeresnev/club-ladder/internal/club"
	"github.com/AdamBeresnev/club-ladder/internal/db"
	"github.com/AdamBeresnev/club-ladder/internal/rating"
	"github.com/AdamBeresnev/club-ladder/internal/utils"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database and applies migrations
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.InitDB(db.MemoryPath)
	require.NoError(t, err, "Failed to connect to in-memory DB")

	require.NoError(t, db.RunMigrations(database.DB), "Failed to apply migrations")

	t.Cleanup(func() { database.Close() })
	return database
}

func inTx(t *testing.T, database *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	t.Helper()

	tx, err := database.BeginTxx(context.Background(), nil)
	require.NoError(t, err)
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func newPlayer(name string, r float64) *club.Player {
	return &club.Player{
		ID:        uuid.New(),
		Name:      name,
		Rating:    r,
		CreatedAt: time.Now().UTC(),
	}
}

func TestCreatePlayer(t *testing.T) {
	database := setupTestDB(t)
	store := NewPlayerStore(database)
	ctx := context.Background()

	player := newPlayer("Alice", 1700)
	player.Availability = club.Availability{time.Monday, time.Thursday}

	err := inTx(t, database, func(tx *sqlx.Tx) error {
		return store.CreatePlayer(ctx, tx, player)
	})
	require.NoError(t, err)

	fetched, err := store.GetPlayerByName(ctx, "Alice")
	require.NoError(t, err)

	assert.Equal(t, player.ID, fetched.ID)
	assert.Equal(t, 1700.0, fetched.Rating)
	assert.Equal(t, 0, fetched.MatchesPlayed)
	assert.Equal(t, rating.Advanced, fetched.Tier)
	assert.Equal(t, player.Availability, fetched.Availability)
	assert.WithinDuration(t, player.CreatedAt, fetched.CreatedAt, time.Second)
}

func TestCreatePlayer_DuplicateName(t *testing.T) {
	database := setupTestDB(t)
	store := NewPlayerStore(database)
	ctx := context.Background()

	require.NoError(t, inTx(t, database, func(tx *sqlx.Tx) error {
		return store.CreatePlayer(ctx, tx, newPlayer("Bob", 1500))
	}))

	err := inTx(t, database, func(tx *sqlx.Tx) error {
		return store.CreatePlayer(ctx, tx, newPlayer("Bob", 1300))
	})
	assert.ErrorIs(t, err, club.ErrDuplicateName)

	players, err := store.ListPlayers(ctx)
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, 1500.0, players[0].Rating)
}

func TestGetPlayer_NotFound(t *testing.T) {
	database := setupTestDB(t)
	store := NewPlayerStore(database)

	_, err := store.GetPlayerByName(context.Background(), "Nobody")
	assert.ErrorIs(t, err, club.ErrNotFound)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	_, err = store.GetPlayer(context.Background(), uuid.New())
	assert.ErrorIs(t, err, club.ErrNotFound)
}

func TestUpdateStanding_RewritesTier(t *testing.T) {
	database := setupTestDB(t)
	store := NewPlayerStore(database)
	ctx := context.Background()

	player := newPlayer("Carol", 1590)
	require.NoError(t, inTx(t, database, func(tx *sqlx.Tx) error {
		return store.CreatePlayer(ctx, tx, player)
	}))

	// A stale tier in the argument must not reach the row.
	standing := rating.Standing{Rating: 1612.5, MatchesPlayed: 1, Tier: rating.Beginner}
	require.NoError(t, inTx(t, database, func(tx *sqlx.Tx) error {
		return store.UpdateStanding(ctx, tx, player.ID, standing)
	}))

	fetched, err := store.GetPlayer(ctx, player.ID)
	require.NoError(t, err)
	assert.Equal(t, 1612.5, fetched.Rating)
	assert.Equal(t, 1, fetched.MatchesPlayed)
	assert.Equal(t, rating.Advanced, fetched.Tier)

	err = inTx(t, database, func(tx *sqlx.Tx) error {
		return store.UpdateStanding(ctx, tx, uuid.New(), standing)
	})
	assert.ErrorIs(t, err, club.ErrNotFound)
}

func seedSession(t *testing.T, database *sqlx.DB, format club.Format, sides ...[2][]uuid.UUID) (*club.Session, []club.Match) {
	t.Helper()
	ctx := context.Background()
	sessions := NewSessionStore(database)

	now := time.Now().UTC()
	session := &club.Session{
		ID:         uuid.New(),
		Name:       club.SessionName(now),
		Format:     format,
		Date:       now.Format(club.DateLayout),
		FieldCount: 4,
		CreatedAt:  now,
	}

	var matches []club.Match
	for i, s := range sides {
		matches = append(matches, club.Match{
			ID:        uuid.New(),
			SessionID: &session.ID,
			Date:      session.Date,
			Format:    format,
			FieldSlot: utils.Ptr(i%4 + 1),
			SideAID:   s[0][0],
			SideBID:   s[1][0],
			SideA:     s[0],
			SideB:     s[1],
			Status:    club.MatchPending,
			CreatedAt: now,
		})
	}

	require.NoError(t, inTx(t, database, func(tx *sqlx.Tx) error {
		if err := sessions.CreateSession(ctx, tx, session); err != nil {
			return err
		}
		return sessions.CreateMatches(ctx, tx, matches)
	}))
	return session, matches
}

func TestCreateMatches_LoadsParticipants(t *testing.T) {
	database := setupTestDB(t)
	sessions := NewSessionStore(database)
	ctx := context.Background()

	a1, a2, b1, b2 := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	session, created := seedSession(t, database, club.Doubles, [2][]uuid.UUID{{a1, a2}, {b1, b2}})

	matches, err := sessions.GetSessionMatches(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, matches, 1)

	m := matches[0]
	assert.Equal(t, created[0].ID, m.ID)
	assert.Equal(t, []uuid.UUID{a1, a2}, m.SideA)
	assert.Equal(t, []uuid.UUID{b1, b2}, m.SideB)
	assert.Equal(t, a1, m.SideAID)
	assert.Equal(t, b1, m.SideBID)
	assert.Equal(t, club.MatchPending, m.Status)
	assert.Nil(t, m.WinnerID)
	require.NotNil(t, m.FieldSlot)
	assert.Equal(t, 1, *m.FieldSlot)

	latest, err := sessions.GetLatestSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.ID, latest.ID)
}

func TestRecordResult_OnlyOnce(t *testing.T) {
	database := setupTestDB(t)
	sessions := NewSessionStore(database)
	ctx := context.Background()

	a, b := uuid.New(), uuid.New()
	_, created := seedSession(t, database, club.Singles, [2][]uuid.UUID{{a}, {b}})

	m := created[0]
	m.ScoreA, m.ScoreB = 21, 15
	m.WinnerID = &a
	m.Status = club.MatchFinished

	require.NoError(t, inTx(t, database, func(tx *sqlx.Tx) error {
		return sessions.RecordResult(ctx, tx, &m)
	}))

	m.ScoreA, m.ScoreB = 10, 21
	err := inTx(t, database, func(tx *sqlx.Tx) error {
		return sessions.RecordResult(ctx, tx, &m)
	})
	assert.ErrorIs(t, err, club.ErrAlreadyScored)

	stored, err := sessions.GetMatch(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 21, stored.ScoreA)
	assert.Equal(t, 15, stored.ScoreB)
	require.NotNil(t, stored.WinnerID)
	assert.Equal(t, a, *stored.WinnerID)
}

func TestDeletePlayer_KeepsHistory(t *testing.T) {
	database := setupTestDB(t)
	players := NewPlayerStore(database)
	sessions := NewSessionStore(database)
	reports := NewReportStore(database)
	ctx := context.Background()

	alice, bob := newPlayer("Alice", 1500), newPlayer("Bob", 1500)
	require.NoError(t, inTx(t, database, func(tx *sqlx.Tx) error {
		if err := players.CreatePlayer(ctx, tx, alice); err != nil {
			return err
		}
		return players.CreatePlayer(ctx, tx, bob)
	}))

	session, created := seedSession(t, database, club.Singles, [2][]uuid.UUID{{alice.ID}, {bob.ID}})
	m := created[0]
	m.ScoreA, m.ScoreB, m.WinnerID, m.Status = 21, 12, &alice.ID, club.MatchFinished
	require.NoError(t, inTx(t, database, func(tx *sqlx.Tx) error {
		return sessions.RecordResult(ctx, tx, &m)
	}))

	require.NoError(t, inTx(t, database, func(tx *sqlx.Tx) error {
		return players.DeletePlayer(ctx, tx, alice.ID)
	}))

	err := inTx(t, database, func(tx *sqlx.Tx) error {
		return players.DeletePlayer(ctx, tx, alice.ID)
	})
	assert.ErrorIs(t, err, club.ErrNotFound)

	matches, err := sessions.GetSessionMatches(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, alice.ID, matches[0].SideAID)
	assert.Equal(t, []uuid.UUID{alice.ID}, matches[0].SideA)

	history, err := reports.MatchHistory(ctx, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, RemovedPlayerName, history[0].SideA)
	assert.Equal(t, "Bob", history[0].SideB)
	assert.Nil(t, history[0].Winner)
	require.NotNil(t, history[0].SessionName)
	assert.Equal(t, session.Name, *history[0].SessionName)
}

func TestReports(t *testing.T) {
	database := setupTestDB(t)
	players := NewPlayerStore(database)
	sessions := NewSessionStore(database)
	reports := NewReportStore(database)
	ctx := context.Background()

	names := []string{"Ann", "Ben", "Cat", "Dan"}
	created := make([]*club.Player, len(names))
	require.NoError(t, inTx(t, database, func(tx *sqlx.Tx) error {
		for i, name := range names {
			created[i] = newPlayer(name, 1400+float64(i)*100)
			if err := players.CreatePlayer(ctx, tx, created[i]); err != nil {
				return err
			}
		}
		return nil
	}))

	_, matches := seedSession(t, database, club.Doubles,
		[2][]uuid.UUID{{created[0].ID, created[1].ID}, {created[2].ID, created[3].ID}})
	m := matches[0]
	m.ScoreA, m.ScoreB, m.WinnerID, m.Status = 21, 19, &created[0].ID, club.MatchFinished
	require.NoError(t, inTx(t, database, func(tx *sqlx.Tx) error {
		return sessions.RecordResult(ctx, tx, &m)
	}))

	board, err := reports.Leaderboard(ctx)
	require.NoError(t, err)
	require.Len(t, board, 4)
	assert.Equal(t, "Dan", board[0].Name)
	assert.Equal(t, "Ann", board[3].Name)

	perf, err := reports.Performance(ctx)
	require.NoError(t, err)
	wins := map[string]int{}
	for _, row := range perf {
		wins[row.Name] = row.Wins
	}
	assert.Equal(t, map[string]int{"Ann": 1, "Ben": 1, "Cat": 0, "Dan": 0}, wins)

	history, err := reports.MatchHistory(ctx, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Contains(t, history[0].SideA, "Ann")
	assert.Contains(t, history[0].SideA, "Ben")
	assert.Contains(t, history[0].SideA, " & ")
	require.NotNil(t, history[0].Winner)
	assert.Equal(t, "Ann", *history[0].Winner)
	assert.Equal(t, "doubles", history[0].Format)
}
