package schema

import "github.com/gmorais/backoffice/internal/store"

// Compose picks between a fully manual column list and the inferred one.
// A non-empty ManualColumns wins verbatim — the escape hatch for screens
// with unusual display needs that still speak the same grid contract.
func Compose(samples []*store.Record, cfg ColumnConfig) []Column {
	if len(cfg.ManualColumns) > 0 {
		return cfg.ManualColumns
	}
	return BuildColumns(samples, cfg)
}
