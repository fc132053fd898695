package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AdamBeresnev/beach-volley/internal/config"
	"github.com/AdamBeresnev/beach-volley/internal/db"
	"github.com/AdamBeresnev/beach-volley/internal/engine"
	"github.com/AdamBeresnev/beach-volley/internal/live"
	"github.com/AdamBeresnev/beach-volley/internal/middleware"
	"github.com/AdamBeresnev/beach-volley/internal/service"
	"github.com/AdamBeresnev/beach-volley/internal/store"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/jmoiron/sqlx"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	database, err := db.InitDB(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := db.RunMigrations(database.DB, cfg.MigrationsDir); err != nil {
		return err
	}

	middleware.InitAuth(cfg)

	sessionManager := scs.New()
	sessionManager.Lifetime = cfg.SessionLifetime
	sessionManager.Store = sqlite3store.New(database.DB)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hub := live.NewHub()
	go hub.Run(ctx)

	app, err := newApplication(ctx, cfg, database, sessionManager, hub)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      newRouter(app),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(slog.Default().Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("starting server", "address", server.Addr, "store", cfg.StoreDriver)
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		slog.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			server.Close()
			return err
		}
	}
	slog.Info("server shutdown complete")
	return nil
}

type application struct {
	cfg         *config.Config
	sessions    *scs.SessionManager
	hub         *live.Hub
	organizers  *service.OrganizerService
	tournaments *service.TournamentService
	matches     *service.MatchService
	rankings    *service.RankingService
	scoreboards *service.ScoreboardService
	revenue     *service.RevenueService
	dashboard   *service.DashboardService
}

func newApplication(ctx context.Context, cfg *config.Config, database *sqlx.DB, sessions *scs.SessionManager, hub *live.Hub) (*application, error) {
	var snapshots store.SnapshotStore
	switch cfg.StoreDriver {
	case config.StoreFile:
		snapshots = store.NewFileSnapshotStore(cfg.DataFile)
	default:
		snapshots = store.NewSQLiteSnapshotStore(database)
	}

	state, err := service.NewStateManager(ctx, snapshots, hub)
	if err != nil {
		return nil, err
	}

	rng := engine.NewTimeSeededRand()
	tournaments := service.NewTournamentService(state, store.NewArchiveStore(database), rng)
	matches := service.NewMatchService(state, rng, hub)
	rankings := service.NewRankingService(state)
	revenue := service.NewRevenueService(database, store.NewRevenueStore(database), state, cfg.EntryFeeCents)

	return &application{
		cfg:         cfg,
		sessions:    sessions,
		hub:         hub,
		organizers:  service.NewOrganizerService(store.NewOrganizerStore(database)),
		tournaments: tournaments,
		matches:     matches,
		rankings:    rankings,
		scoreboards: service.NewScoreboardService(sessions, state, matches, hub),
		revenue:     revenue,
		dashboard:   service.NewDashboardService(tournaments, rankings, revenue),
	}, nil
}
