// Command backoffice runs the generic admin backend: a schema-less CRUD API
// whose list and form presentation is inferred from the stored data itself.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/gmorais/backoffice/internal/config"
)

var v = config.NewViper()

var rootCmd = &cobra.Command{
	Use:   "backoffice",
	Short: "Generic admin backend with schema inference",
	Long: `backoffice serves a uniform CRUD API for arbitrary entities and infers
their presentation (columns, widths, labels, form inputs) from stored
records. Optional per-entity tuning comes from a CUE catalog.`,
	SilenceUsage: true,
}

func main() {
	// A local .env is a convenience for development, absence is fine.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("addr", ":8080", "HTTP listen address")
	pf.String("store-driver", "memory", "storage backend: memory, sqlite or postgres")
	pf.String("store-dsn", "", "data source name for sqlite/postgres")
	pf.String("catalog", "", "directory of the CUE presentation catalog")
	pf.Int("page-size", 20, "default list page size")

	_ = v.BindPFlag("addr", pf.Lookup("addr"))
	_ = v.BindPFlag("store_driver", pf.Lookup("store-driver"))
	_ = v.BindPFlag("store_dsn", pf.Lookup("store-dsn"))
	_ = v.BindPFlag("catalog_dir", pf.Lookup("catalog"))
	_ = v.BindPFlag("page_size", pf.Lookup("page-size"))

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(schemaCmd())
	rootCmd.AddCommand(catalogCmd())
}
