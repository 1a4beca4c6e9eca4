// Package app wires the dashboard's repositories, services, and background
// jobs from configuration. main() provides the database pools and logger;
// everything else is constructed here.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"

	"talentboard/internal/ats"
	"talentboard/internal/config"
	"talentboard/internal/db/repository"
	"talentboard/internal/query"
	"talentboard/internal/service"
	"talentboard/internal/session"
)

// Deps holds the external dependencies that main() must provide: config,
// the SQLite write/read pool pair, and the logger.
type Deps struct {
	Cfg     *config.Config
	WriteDB *sql.DB
	ReadDB  *sql.DB
	Logger  *slog.Logger
}

// Services groups the service pointers the UI and API handlers need.
type Services struct {
	Candidates *service.CandidateService
	Dashboard  *service.DashboardService
	Roster     *service.RosterService
	Feedback   *service.FeedbackService
}

// App holds the fully-wired application.
type App struct {
	Services Services
	Store    *session.Store
	Queries  *query.Registry
	ATS      *ats.Client

	cron   *cron.Cron
	logger *slog.Logger
}

// New wires repositories, the ATS client, the session store, the per-session
// query registry, and all services. It rehydrates persisted sessions and
// seeds the admin roster before returning.
func New(ctx context.Context, deps Deps) (*App, error) {
	cfg := deps.Cfg
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// Repositories. Writes go through the single-connection write pool;
	// read-mostly views get the read pool.
	sessionRepo := repository.NewSessionRepo(deps.WriteDB)
	rosterRepo := repository.NewRosterRepo(deps.WriteDB)
	feedbackRepo := repository.NewFeedbackRepo(deps.WriteDB)
	feedbackReadRepo := repository.NewFeedbackRepo(deps.ReadDB)

	atsClient := ats.NewClient(cfg.ATS.BaseURL,
		ats.WithHTTPClient(&http.Client{Timeout: cfg.ATS.Timeout}),
		ats.WithExpiresInMins(cfg.ATS.ExpiresInMins),
		ats.WithLogger(logger.With("component", "ats")),
	)

	store := session.NewStore(sessionRepo, atsClient, cfg.SessionTTL, logger.With("component", "session"))
	if err := store.Rehydrate(ctx); err != nil {
		return nil, fmt.Errorf("rehydrate sessions: %w", err)
	}

	queries := query.NewRegistry(func() *query.Controller {
		return query.NewController(atsClient, query.WithLogger(logger.With("component", "query")))
	}, query.DefaultIdleTTL)

	// A logout tears down that session's query controller with it.
	store.Subscribe(func(ev session.Event) {
		if ev.Kind == session.EventLogout {
			queries.Close(ev.SessionID)
		}
	})

	rosterSvc := service.NewRosterService(rosterRepo, logger.With("component", "roster"))
	if cfg.RosterSeedPath != "" {
		if err := rosterSvc.Seed(ctx, cfg.RosterSeedPath); err != nil {
			return nil, fmt.Errorf("seed roster: %w", err)
		}
	}

	app := &App{
		Services: Services{
			Candidates: service.NewCandidateService(atsClient, feedbackReadRepo, logger.With("component", "candidates")),
			Dashboard:  service.NewDashboardService(feedbackReadRepo),
			Roster:     rosterSvc,
			Feedback:   service.NewFeedbackService(feedbackRepo, logger.With("component", "feedback")),
		},
		Store:   store,
		Queries: queries,
		ATS:     atsClient,
		logger:  logger,
	}

	if err := app.scheduleJobs(cfg.KPIRefreshSpec); err != nil {
		return nil, err
	}

	return app, nil
}

// scheduleJobs registers the recurring maintenance jobs: KPI regeneration,
// expired-session pruning, and idle query-controller eviction.
func (a *App) scheduleJobs(kpiSpec string) error {
	c := cron.New()

	if _, err := c.AddFunc(kpiSpec, func() {
		a.Services.Dashboard.Refresh()
		a.logger.Debug("dashboard KPIs refreshed")
	}); err != nil {
		return fmt.Errorf("schedule KPI refresh %q: %w", kpiSpec, err)
	}

	if _, err := c.AddFunc("@every 5m", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		n, err := a.Store.PruneExpired(ctx)
		if err != nil {
			a.logger.Warn("prune expired sessions", "error", err)
			return
		}
		if n > 0 {
			a.logger.Info("pruned expired sessions", "count", n)
		}
	}); err != nil {
		return fmt.Errorf("schedule session pruning: %w", err)
	}

	if _, err := c.AddFunc("@every 10m", func() {
		if n := a.Queries.EvictIdle(); n > 0 {
			a.logger.Info("evicted idle query controllers", "count", n)
		}
	}); err != nil {
		return fmt.Errorf("schedule query-controller eviction: %w", err)
	}

	a.cron = c
	return nil
}

// Start launches the background jobs.
func (a *App) Start() {
	a.cron.Start()
}

// Stop halts the background jobs and waits for running ones to finish.
func (a *App) Stop(ctx context.Context) {
	stopped := a.cron.Stop()
	select {
	case <-stopped.Done():
	case <-ctx.Done():
		a.logger.Warn("timed out waiting for background jobs")
	}
}
