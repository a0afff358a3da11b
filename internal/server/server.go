// Package server assembles all HTTP handlers and starts the server.
package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gmorais/backoffice/internal/audit"
	"github.com/gmorais/backoffice/internal/config"
	"github.com/gmorais/backoffice/internal/events"
	"github.com/gmorais/backoffice/internal/store"
)

// Config holds server wiring.
type Config struct {
	Addr    string
	Backend store.Backend
	Catalog config.Catalog
	// Trail, when set, enables the GET /v1/audit endpoint.
	Trail *audit.Trail
}

// Router builds the full route tree: health check, versioned entity API and
// the websocket change feed. The feed route stays outside the logging
// middleware so the connection upgrade keeps its hijackable writer.
func Router(cfg Config, bus *events.Bus) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	eh := NewEntityHandler(cfg.Backend, bus, cfg.Catalog)
	r.Route("/v1", func(r chi.Router) {
		r.Use(Recovery, Logging)
		if cfg.Trail != nil {
			r.Get("/audit", auditHandler(cfg.Trail))
		}
		eh.Routes(r)
	})

	if bus != nil {
		r.Method(http.MethodGet, "/ws/changes", events.NewFeedHandler(bus))
	}
	return r
}

// Run starts the HTTP server and blocks until ctx is cancelled or the
// listener fails. The change bus runs for the lifetime of the server.
func Run(ctx context.Context, cfg Config) error {
	bus := events.NewBus(256)
	if cfg.Trail == nil {
		cfg.Trail = audit.NewTrail(1000)
	}
	bus.Subscribe("audit", cfg.Trail)
	bus.Start(ctx)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: Router(cfg, bus),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("starting server on %s", cfg.Addr)
	err := srv.ListenAndServe()
	if err == http.ErrServerClosed {
		err = nil
	}
	bus.Wait()
	return err
}
