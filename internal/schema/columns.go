// Package schema builds presentation descriptors — grid columns and form
// fields — from a sample record plus per-entity configuration. Automatic
// inference always runs first; manual configuration is applied afterwards as
// an explicit patch, never by reordering.
package schema

import (
	"strings"

	"github.com/gmorais/backoffice/internal/infer"
	"github.com/gmorais/backoffice/internal/store"
)

// RenderFunc formats a cell value for display. Renderers recover locally:
// a value that fails to parse falls back to its raw form, never panics.
type RenderFunc func(value any, rec *store.Record) string

// Column describes one field of a tabular listing.
type Column struct {
	Key      string          `json:"key"`
	Label    string          `json:"label"`
	Type     infer.FieldType `json:"type"`
	Sortable bool            `json:"sortable"`
	Width    int             `json:"width"`
	Required bool            `json:"required"`
	Render   RenderFunc      `json:"-"`
}

// ColumnPatch overrides attributes of one inferred column. Nil fields leave
// the inferred value in place; set fields replace it, including Render.
type ColumnPatch struct {
	Label    *string
	Sortable *bool
	Width    *int
	Required *bool
	Render   RenderFunc
}

// ColumnConfig configures column inference for one entity.
type ColumnConfig struct {
	// HiddenFields are excluded from the output entirely.
	HiddenFields []string
	// FieldOverrides patch individual inferred columns.
	FieldOverrides map[string]ColumnPatch
	// RequiredFields are marked required in addition to primary-key fields.
	RequiredFields []string
	// DefaultWidths override the width table per field.
	DefaultWidths map[string]int
	// ManualColumns, when non-empty, bypass inference (see Compose).
	ManualColumns []Column
}

// BuildColumns infers the column list from the first sample record. An empty
// sample list yields nil: callers must treat that as "not yet loaded", not as
// "entity has no fields". Field order follows the sample record, minus hidden
// fields; overrides mutate attributes but never reorder.
func BuildColumns(samples []*store.Record, cfg ColumnConfig) []Column {
	if len(samples) == 0 || samples[0] == nil || samples[0].Len() == 0 {
		return nil
	}
	sample := samples[0]

	hidden := toSet(cfg.HiddenFields)
	required := toSet(cfg.RequiredFields)
	for _, f := range store.PrimaryKeyFields(sample) {
		required[f] = true
	}

	var cols []Column
	for _, field := range sample.Keys() {
		if hidden[field] {
			continue
		}
		value, _ := sample.Get(field)
		ft := infer.Detect(value)

		col := Column{
			Key:      field,
			Label:    infer.Label(field),
			Type:     ft,
			Sortable: true,
			Width:    columnWidth(field, ft, cfg.DefaultWidths),
			Required: required[field],
		}
		if patch, ok := cfg.FieldOverrides[field]; ok {
			applyColumnPatch(&col, patch)
		}
		if col.Render == nil {
			col.Render = defaultRenderer(field, ft)
		}
		cols = append(cols, col)
	}
	return cols
}

func applyColumnPatch(col *Column, p ColumnPatch) {
	if p.Label != nil {
		col.Label = *p.Label
	}
	if p.Sortable != nil {
		col.Sortable = *p.Sortable
	}
	if p.Width != nil {
		col.Width = *p.Width
	}
	if p.Required != nil {
		col.Required = *p.Required
	}
	if p.Render != nil {
		col.Render = p.Render
	}
}

// columnWidth picks a width hint: explicit config wins, then named
// exceptions, then identifier fields, then the type table.
func columnWidth(field string, ft infer.FieldType, explicit map[string]int) int {
	if w, ok := explicit[field]; ok {
		return w
	}
	lower := strings.ToLower(field)
	switch {
	case strings.Contains(lower, "nome") || strings.Contains(lower, "razao"):
		return 250
	case strings.Contains(lower, "email"):
		return 200
	case strings.Contains(lower, "cidade"):
		return 150
	case strings.Contains(lower, "estado") || lower == "uf":
		return 80
	}
	if store.IsPrimaryKey(field) {
		return 100
	}
	switch ft {
	case infer.FieldBoolean:
		return 80
	case infer.FieldNumber, infer.FieldDecimal, infer.FieldDate, infer.FieldTime:
		return 120
	default:
		return 150
	}
}

func toSet(fields []string) map[string]bool {
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}
