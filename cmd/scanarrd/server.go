package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	v1 "github.com/vmunix/scanarr/internal/api/v1"
	"github.com/vmunix/scanarr/internal/config"
	"github.com/vmunix/scanarr/internal/emby"
	"github.com/vmunix/scanarr/internal/events"
	"github.com/vmunix/scanarr/internal/handlers"
	"github.com/vmunix/scanarr/internal/migrations"
	"github.com/vmunix/scanarr/internal/notify"
	"github.com/vmunix/scanarr/internal/refresh"
	"github.com/vmunix/scanarr/internal/schedule"
	"github.com/vmunix/scanarr/internal/server"
)

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 200 { // Only capture first WriteHeader call
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, status: 200}
		next.ServeHTTP(wrapped, r)
		log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func runServer(configPath string) error {
	// Load config
	if configPath == "" {
		discovered, err := config.Discover()
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		configPath = discovered
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return fmt.Errorf("config: %s", strings.Join(errs, "; "))
	}

	// Create logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	}))

	// Ensure database directory exists
	dbDir := filepath.Dir(cfg.Database.Path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}

	// Open database
	db, err := sql.Open("sqlite", cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer func() { _ = db.Close() }()

	// Run migrations
	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	// === Event bus (always created, persists to the event log) ===
	eventLog := events.NewEventLog(db)
	bus := events.NewBus(eventLog, logger.With("component", "bus"))
	defer func() { _ = bus.Close() }()

	// === Emby client (optional - nil if not configured) ===
	var api refresh.EmbyAPI
	var lister emby.Lister
	if cfg.Emby.Configured() {
		client := emby.NewClient(cfg.Emby.URL, cfg.Emby.APIKey, cfg.Emby.Timeout(), logger.With("component", "emby"))
		api = client
		lister = client
	}
	directory := emby.NewDirectory(lister, logger.With("component", "directory"))

	// === Refresh orchestrator ===
	orch := refresh.NewOrchestrator(cfg.Emby, api, directory, logger)
	orch.SetBus(bus)
	orch.SetNotifier(notify.New(cfg.Notify))

	// === Components ===
	runner := server.NewRunner(logger)
	runner.Add(handlers.NewRefreshHandler(bus, orch, logger))

	if days := cfg.Database.EventRetentionDays; days > 0 {
		runner.Add(events.NewPruner(eventLog, time.Duration(days)*24*time.Hour, logger))
	}

	if cron := cfg.Emby.Triggers.Cron; cron != "" {
		sched, err := schedule.NewScheduler(cron, orch, logger)
		if err != nil {
			return fmt.Errorf("schedule: %w", err)
		}
		runner.Add(sched)
	}

	// === HTTP Setup ===
	mux := http.NewServeMux()

	apiV1, err := v1.New(v1.ServerDeps{
		Orchestrator: orch,
		Libraries:    directory,
		Bus:          bus,
		EventLog:     eventLog,
	}, v1.Config{
		Version:        version,
		EmbyConfigured: cfg.Emby.Configured(),
	})
	if err != nil {
		return fmt.Errorf("api: %w", err)
	}
	apiV1.RegisterRoutes(mux)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting",
		"addr", addr,
		"database", cfg.Database.Path,
		"emby", cfg.Emby.Configured(),
		"cron", cfg.Emby.Triggers.Cron,
		"log_level", cfg.Server.LogLevel,
	)

	runner.SetHTTP(&http.Server{Addr: addr, Handler: logRequests(mux, logger)})

	// Wait for interrupt signal
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig.String())
		cancel()
	}()

	if err := runner.Run(ctx); err != nil {
		return err
	}

	logger.Info("server stopped")
	return nil
}
