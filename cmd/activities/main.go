// cmd/activities is the interactive client: it keeps the school's activity
// roster on screen, synchronized with the remote service, and lets the user
// sign up for or withdraw from an activity.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mergington-hs/activities-client/internal/api"
	"github.com/mergington-hs/activities-client/internal/app"
	"github.com/mergington-hs/activities-client/internal/config"
	"github.com/mergington-hs/activities-client/internal/term"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// Diagnostics go to stderr so they never garble the interface.
	logger := log.New(os.Stderr, "", log.LstdFlags)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// ── 1. Optional metrics listener ─────────────────────────────────────
	if cfg.MetricsAddress != "" {
		r := chi.NewRouter()
		r.Handle("/metrics", promhttp.Handler())
		go func() {
			if err := http.ListenAndServe(cfg.MetricsAddress, r); err != nil {
				logger.Printf("metrics listener: %v", err)
			}
		}()
	}

	// ── 2. Wire the client, surface, and controller ──────────────────────
	client := api.NewClient(
		strings.TrimRight(cfg.ServiceURL, "/"),
		&http.Client{Timeout: cfg.RequestTimeout},
		logger,
	)

	terminal := term.New(os.Stdin, os.Stdout)
	ctrl := app.NewController(app.Deps{
		Fetcher: client,
		Gateway: client,
		Surface: terminal,
		Banner:  app.NewFeedbackBanner(terminal, cfg.BannerTTL),
		Confirm: terminal,
		Notify:  terminal,
		Logger:  logger,
	})

	// ── 3. Initial refresh, then hand control to the command loop ────────
	ctrl.Start(ctx)
	terminal.Run(ctx, ctrl)
}
