package main

import (
	"context"
	"database/sql"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/gmorais/backoffice/internal/config"
	"github.com/gmorais/backoffice/internal/seed"
	"github.com/gmorais/backoffice/internal/server"
	"github.com/gmorais/backoffice/internal/store"
)

func serveCmd() *cobra.Command {
	var demo bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			backend, cleanup, err := openBackend(ctx, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			if demo {
				if err := seed.Demo(ctx, backend); err != nil {
					return err
				}
			}

			var catalog config.Catalog
			if cfg.CatalogDir != "" {
				catalog, err = config.LoadCatalog(cfg.CatalogDir)
				if err != nil {
					return err
				}
			}

			return server.Run(ctx, server.Config{
				Addr:    cfg.Addr,
				Backend: backend,
				Catalog: catalog,
			})
		},
	}
	cmd.Flags().BoolVar(&demo, "demo", false, "seed the store with demo records on startup")
	return cmd
}

// openBackend builds the configured store backend. The returned cleanup is
// always safe to call.
func openBackend(ctx context.Context, cfg *config.Config) (store.Backend, func(), error) {
	switch cfg.StoreDriver {
	case "memory":
		return store.NewMemory(), func() {}, nil

	case "sqlite":
		db, err := sql.Open("sqlite", cfg.StoreDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		s := store.NewSQLite(db)
		if err := s.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("migrate sqlite: %w", err)
		}
		return s, func() { db.Close() }, nil

	case "postgres":
		s, err := store.NewPostgres(ctx, cfg.StoreDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := s.Migrate(ctx); err != nil {
			s.Close()
			return nil, nil, fmt.Errorf("migrate postgres: %w", err)
		}
		return s, s.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
