// main is the entry point of the applicants API service.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file
//  2. Initialise the logger
//  3. Open the applicant store (in-memory by default, SQLite optionally)
//  4. Build the API router and, when configured, the ops listener
//  5. Start the HTTP servers in separate goroutines
//  6. Block until an OS signal (Ctrl+C / kill) arrives
//  7. Gracefully shut down: finish in-flight requests, then exit
//
// RUNNING THE SERVER:
//
//	go run ./cmd/applicants-api --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/applicants-api
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

	"github.com/aanand-mishra/orgconnect/internal/config"
	"github.com/aanand-mishra/orgconnect/internal/http/api"
	"github.com/aanand-mishra/orgconnect/internal/http/ops"
	"github.com/aanand-mishra/orgconnect/internal/storage"
	"github.com/aanand-mishra/orgconnect/internal/storage/memory"
	"github.com/aanand-mishra/orgconnect/internal/storage/sqlite"
	"github.com/aanand-mishra/orgconnect/internal/types"
	"github.com/aanand-mishra/orgconnect/internal/utils/logger"
)

const shutdownTimeout = 5 * time.Second

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	// MustLoad exits the process on a bad config, so everything below can
	// trust cfg.
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	// SetDefault makes the package-level slog.Info/slog.Error calls in
	// handlers and storage go through the same handler.
	log := logger.Setup(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting applicants-api",
		slog.String("env", cfg.Env),
		slog.String("storage", cfg.Storage),
	)

	// ── 3. Initialise Storage ─────────────────────────────────────────────
	store, err := openStorage(cfg)
	if err != nil {
		log.Error("failed to initialise storage", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// ── 4. Build the Servers ──────────────────────────────────────────────
	// Route table (see api.NewRouter):
	//   GET  /api/applicants   list every applicant
	//   POST /api/applicants   create an applicant
	//
	// /metrics and /healthz live on MetricsAddr, never on the API address.
	servers := []*http.Server{{
		Addr:    cfg.HTTPServer.Addr,
		Handler: api.NewRouter(store, cfg.CORS),

		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}}

	if cfg.HTTPServer.MetricsAddr != "" {
		servers = append(servers, &http.Server{
			Addr:              cfg.HTTPServer.MetricsAddr,
			Handler:           ops.NewRouter(),
			ReadHeaderTimeout: 5 * time.Second,
		})
	}

	// ── 5. Start Servers ──────────────────────────────────────────────────
	for _, server := range servers {
		go func(server *http.Server) {
			log.Info("server started", slog.String("address", server.Addr))

			// ListenAndServe returns http.ErrServerClosed after Shutdown.
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("server encountered an error",
					slog.String("address", server.Addr),
					slog.String("error", err.Error()))
				os.Exit(1)
			}
		}(server)
	}

	// ── 6. Wait for Shutdown Signal ───────────────────────────────────────
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	// ── 7. Graceful Shutdown ──────────────────────────────────────────────
	// Every server shares one deadline. The store is closed last, once no
	// handler can reach it.
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	failed := false
	for _, server := range servers {
		if err := server.Shutdown(ctx); err != nil {
			log.Error("failed to shutdown server gracefully",
				slog.String("address", server.Addr),
				slog.String("error", err.Error()))
			failed = true
		}
	}

	if s, ok := store.(*sqlite.SQLite); ok {
		if err := s.Db.Close(); err != nil {
			log.Error("failed to close storage", slog.String("error", err.Error()))
		}
	}

	if failed {
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// openStorage builds the backend named by cfg.Storage. The returned
// value is the storage.Storage interface, so nothing downstream knows
// which backend it got.
func openStorage(cfg *config.Config) (storage.Storage, error) {
	if cfg.Storage == config.StorageSQLite {
		s, err := sqlite.New(cfg)
		if err != nil {
			return nil, err
		}
		slog.Info("storage initialised", slog.String("path", cfg.StoragePath))
		return s, nil
	}

	var opts []memory.Option
	if cfg.Seed {
		opts = append(opts, memory.WithSeed(types.SeedApplicants()))
	}
	return memory.New(opts...), nil
}
