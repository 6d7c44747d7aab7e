package app

import (
	"io"
	"log/slog"

	"github.com/AdamBeresnev/club-ladder/internal/config"
	"github.com/AdamBeresnev/club-ladder/internal/db"
	"github.com/AdamBeresnev/club-ladder/internal/dependencies/clock"
	"github.com/AdamBeresnev/club-ladder/internal/dependencies/random"
	"github.com/AdamBeresnev/club-ladder/internal/service"
	"github.com/AdamBeresnev/club-ladder/internal/store"
	"github.com/jmoiron/sqlx"
)

// App contains all wired application components
type App struct {
	DB *sqlx.DB

	Clock  clock.Clock
	Random random.Random
	Logger *slog.Logger

	Players  *service.PlayerService
	Sessions *service.SessionService
	Results  *service.ResultService
	Imports  *service.ImportService
	Reports  *service.ReportService
}

// New opens and migrates the configured database and wires the services on top.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	return NewWithDependencies(database, clock.New(), random.New(cfg.Seed), cfg.FieldCount, logger), nil
}

// NewWithDependencies wires an App around an open database. Tests pass mocks here.
func NewWithDependencies(database *sqlx.DB, clk clock.Clock, rnd random.Random, fieldCount int, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	playerStore := store.NewPlayerStore(database)
	sessionStore := store.NewSessionStore(database)
	players := service.NewPlayerService(database, playerStore, clk, logger)

	return &App{
		DB:       database,
		Clock:    clk,
		Random:   rnd,
		Logger:   logger,
		Players:  players,
		Sessions: service.NewSessionService(database, sessionStore, players, playerStore, rnd, clk, fieldCount, logger),
		Results:  service.NewResultService(database, sessionStore, players, playerStore, clk, logger),
		Imports:  service.NewImportService(database, players, playerStore, logger),
		Reports:  service.NewReportService(store.NewReportStore(database)),
	}
}

func (a *App) Close() error {
	return a.DB.Close()
}
