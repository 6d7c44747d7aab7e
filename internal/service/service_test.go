package service

import (
	"context"
	"testing"
	"time"

	"github.com/AdamBeresnev/club-ladder/internal/club"
	"github.com/AdamBeresnev/club-ladder/internal/db"
	"github.com/AdamBeresnev/club-ladder/internal/dependencies/mocks"
	"github.com/AdamBeresnev/club-ladder/internal/store"
	"github.com/AdamBeresnev/club-ladder/internal/testutil"
	"github.com/AdamBeresnev/club-ladder/internal/utils"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// A Monday evening
var clubNight = time.Date(2026, time.March, 2, 18, 30, 0, 0, time.UTC)

// setupTestDB creates an in-memory SQLite database and applies migrations
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.InitDB(db.MemoryPath)
	require.NoError(t, err, "Failed to connect to in-memory DB")

	require.NoError(t, db.RunMigrations(database.DB), "Failed to apply migrations")

	t.Cleanup(func() { database.Close() })
	return database
}

type fixture struct {
	db           *sqlx.DB
	clock        *mocks.MockClock
	random       *mocks.MockRandom
	playerStore  *store.PlayerStore
	sessionStore *store.SessionStore
	players      *PlayerService
	sessions     *SessionService
	results      *ResultService
	imports      *ImportService
	reports      *ReportService
}

func newFixture(t *testing.T, fieldCount int) *fixture {
	t.Helper()

	database := setupTestDB(t)
	logger := testutil.NopLogger()
	clk := mocks.NewMockClock(clubNight)
	rnd := mocks.NewMockRandom()

	playerStore := store.NewPlayerStore(database)
	sessionStore := store.NewSessionStore(database)
	players := NewPlayerService(database, playerStore, clk, logger)

	return &fixture{
		db:           database,
		clock:        clk,
		random:       rnd,
		playerStore:  playerStore,
		sessionStore: sessionStore,
		players:      players,
		sessions:     NewSessionService(database, sessionStore, players, playerStore, rnd, clk, fieldCount, logger),
		results:      NewResultService(database, sessionStore, players, playerStore, clk, logger),
		imports:      NewImportService(database, players, playerStore, logger),
		reports:      NewReportService(store.NewReportStore(database)),
	}
}

func (f *fixture) addPlayer(t *testing.T, name string, r float64) *club.Player {
	t.Helper()

	p, err := f.players.Create(context.Background(), PlayerInput{Name: name, Rating: utils.Ptr(r)})
	require.NoError(t, err)
	return p
}

func (f *fixture) player(t *testing.T, name string) *club.Player {
	t.Helper()

	p, err := f.players.Find(context.Background(), name)
	require.NoError(t, err)
	return p
}
