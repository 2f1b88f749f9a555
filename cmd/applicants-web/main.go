// main is the entry point of the web client: the home, registration and
// dashboard pages, rendered server-side and backed by the applicants API.
//
// STARTUP SEQUENCE:
//  1. Load configuration (the same file the API reads; only web: matters here)
//  2. Initialise the logger
//  3. Build the API client and the per-browser session store
//  4. Build the page router and, when configured, the ops listener
//  5. Serve until an OS signal arrives, then shut down and cancel every
//     session's pending redirect
//
// RUNNING THE CLIENT (with the API already up):
//
//	go run ./cmd/applicants-web --config=config/local.yaml
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

	"github.com/aanand-mishra/orgconnect/internal/client"
	"github.com/aanand-mishra/orgconnect/internal/config"
	"github.com/aanand-mishra/orgconnect/internal/http/handlers/page"
	"github.com/aanand-mishra/orgconnect/internal/http/ops"
	"github.com/aanand-mishra/orgconnect/internal/http/web"
	"github.com/aanand-mishra/orgconnect/internal/ui"
	"github.com/aanand-mishra/orgconnect/internal/utils/logger"
	"github.com/aanand-mishra/orgconnect/internal/validation"
)

const (
	shutdownTimeout = 5 * time.Second
	apiTimeout      = 10 * time.Second
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	// cache_policy is already validated by MustLoad.
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	log := logger.Setup(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting applicants-web",
		slog.String("env", cfg.Env),
		slog.String("api_url", cfg.Web.APIURL),
		slog.String("cache_policy", string(cfg.Web.CachePolicy)),
	)

	// ── 3. API Client and Sessions ────────────────────────────────────────
	// One client and one validator are shared by every session; each
	// browser only gets its own ui.App (page, form, timer, cached list).
	api := client.New(cfg.Web.APIURL, &http.Client{Timeout: apiTimeout})
	validate := validation.New()

	sessions := page.NewSessions(cfg.Web.SessionTTL, func() *ui.App {
		return ui.NewApp(api, ui.Options{
			RedirectDelay: cfg.Web.RedirectDelay,
			CachePolicy:   cfg.Web.CachePolicy,
			Scheduler:     ui.RealScheduler{},
			Validator:     validate,
		})
	})

	// ── 4. Build the Servers ──────────────────────────────────────────────
	// A page handler may wait on the API, so the write timeout leaves room
	// for a full API round trip.
	servers := []*http.Server{{
		Addr:    cfg.Web.Addr,
		Handler: web.NewRouter(sessions),

		ReadTimeout:  10 * time.Second,
		WriteTimeout: 2 * apiTimeout,
		IdleTimeout:  60 * time.Second,
	}}

	if cfg.Web.MetricsAddr != "" {
		servers = append(servers, &http.Server{
			Addr:              cfg.Web.MetricsAddr,
			Handler:           ops.NewRouter(),
			ReadHeaderTimeout: 5 * time.Second,
		})
	}

	for _, server := range servers {
		go func(server *http.Server) {
			log.Info("server started", slog.String("address", server.Addr))

			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("server encountered an error",
					slog.String("address", server.Addr),
					slog.String("error", err.Error()))
				os.Exit(1)
			}
		}(server)
	}

	// ── 5. Wait for Signal, then Shut Down ────────────────────────────────
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

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

	// No request is in flight any more; stop the redirect timers.
	sessions.Close()

	if failed {
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
