package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/mattn/go-sqlite3"

	"talentboard/internal/api"
	"talentboard/internal/app"
	"talentboard/internal/config"
	internaldb "talentboard/internal/db"
	"talentboard/internal/middleware"
	"talentboard/internal/ui"
)

func main() {
	ctx := context.Background()

	// Load .env file (if present)
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)
	for _, w := range cfg.Warnings {
		logger.Warn(w)
	}

	// Open the SQLite store with hardened connection settings.
	// writeDB: single-connection pool for serialized writes (WAL + txlock=immediate).
	// readDB:  4-connection pool for concurrent reads (WAL, no txlock).
	writeDB, readDB, err := internaldb.OpenSQLitePair(cfg.SessionDBPath, 4)
	if err != nil {
		log.Fatalf("open session store: %v", err)
	}
	defer writeDB.Close()
	defer readDB.Close()

	logger.Info("running migrations", "path", cfg.SessionDBPath)
	if err := internaldb.RunMigrations(writeDB); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	a, err := app.New(ctx, app.Deps{
		Cfg:     cfg,
		WriteDB: writeDB,
		ReadDB:  readDB,
		Logger:  logger,
	})
	if err != nil {
		log.Fatalf("wire application: %v", err)
	}
	a.Start()

	secret := []byte(cfg.SessionSecret)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.RateLimiter(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		Burst:             cfg.RateLimitBurst,
		TrustProxy:        cfg.RateLimitTrustProxy,
	}))

	// Web UI (cookie sessions)
	uiHandler := ui.NewHandler(
		a.Store, a.Queries,
		a.Services.Candidates, a.Services.Dashboard, a.Services.Roster, a.Services.Feedback,
		secret, cfg.SessionTTL, cfg.IsProduction(), logger.With("component", "ui"),
	)
	ui.MountRoutes(r, uiHandler, middleware.SessionAuth(a.Store, secret, cfg.IsProduction(), logger))

	// JSON API (bearer tokens) under /api/v1
	apiHandler := api.NewHandler(
		a.Store, a.Queries,
		a.Services.Candidates, a.Services.Dashboard, a.Services.Roster, a.Services.Feedback,
		secret, cfg.SessionTTL, logger.With("component", "api"),
	)
	r.Route("/api/v1", apiHandler.MountRoutes)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", cfg.ListenAddr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	<-stop.Done()

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
	a.Stop(shutdownCtx)
}
