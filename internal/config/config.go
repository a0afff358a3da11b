// Package config loads runtime configuration and the per-entity
// presentation catalog.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the resolved runtime configuration. Sources, in ascending
// precedence: defaults, backoffice.yaml, BACKOFFICE_* environment variables,
// bound command-line flags.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `mapstructure:"addr"`
	// StoreDriver selects the backend: memory, sqlite or postgres.
	StoreDriver string `mapstructure:"store_driver"`
	// StoreDSN is the driver-specific data source name. Ignored by the
	// memory driver; a file path for sqlite; a connection URL for postgres.
	StoreDSN string `mapstructure:"store_dsn"`
	// CatalogDir points at the CUE presentation-catalog package. Empty
	// means no catalog, every entity renders from inference alone.
	CatalogDir string `mapstructure:"catalog_dir"`
	// PageSize is the default list page size.
	PageSize int `mapstructure:"page_size"`
}

// NewViper builds the configured viper instance so commands can bind flags
// onto it before Load.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("addr", ":8080")
	v.SetDefault("store_driver", "memory")
	v.SetDefault("store_dsn", "")
	v.SetDefault("catalog_dir", "")
	v.SetDefault("page_size", 20)

	v.SetEnvPrefix("BACKOFFICE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("backoffice")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	return v
}

// Load reads the config file (when present) and decodes the result.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	switch cfg.StoreDriver {
	case "memory", "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("config: unknown store driver %q", cfg.StoreDriver)
	}
	if cfg.StoreDriver != "memory" && cfg.StoreDSN == "" {
		return nil, fmt.Errorf("config: store driver %q requires store_dsn", cfg.StoreDriver)
	}
	return &cfg, nil
}
