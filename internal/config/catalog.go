package config

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"

	"github.com/gmorais/backoffice/internal/schema"
)

// OptionSpec is one select option in the catalog.
type OptionSpec struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// EntityConfig is the declarative presentation tuning for one entity. All of
// it is optional; an absent entity renders purely from inference.
type EntityConfig struct {
	Hidden   []string                `json:"hidden"`
	Required []string                `json:"required"`
	ReadOnly []string                `json:"readonly"`
	Labels   map[string]string       `json:"labels"`
	Widths   map[string]int          `json:"widths"`
	Options  map[string][]OptionSpec `json:"options"`
}

// Catalog maps entity name to its presentation config.
type Catalog map[string]EntityConfig

// catalogRoot is the top-level shape of the CUE package.
type catalogRoot struct {
	Entities map[string]EntityConfig `json:"entities"`
}

// LoadCatalog builds the CUE package at dir and decodes it into a Catalog.
func LoadCatalog(dir string) (Catalog, error) {
	insts := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(insts) == 0 {
		return nil, fmt.Errorf("config: no CUE instances in %s", dir)
	}
	if insts[0].Err != nil {
		return nil, fmt.Errorf("config: load catalog: %w", insts[0].Err)
	}

	val := cuecontext.New().BuildInstance(insts[0])
	if val.Err() != nil {
		return nil, fmt.Errorf("config: build catalog: %w", val.Err())
	}
	return decodeCatalog(val)
}

// ParseCatalog compiles a single CUE source string. Used by tests and by the
// catalog CLI for quick validation.
func ParseCatalog(src string) (Catalog, error) {
	val := cuecontext.New().CompileString(src)
	if val.Err() != nil {
		return nil, fmt.Errorf("config: compile catalog: %w", val.Err())
	}
	return decodeCatalog(val)
}

func decodeCatalog(val cue.Value) (Catalog, error) {
	if err := val.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate catalog: %w", err)
	}
	var root catalogRoot
	if err := val.Decode(&root); err != nil {
		return nil, fmt.Errorf("config: decode catalog: %w", err)
	}
	if root.Entities == nil {
		return Catalog{}, nil
	}
	return root.Entities, nil
}

// Entity returns the config for an entity, zero-valued when absent.
func (c Catalog) Entity(name string) EntityConfig {
	return c[name]
}

// ColumnConfig converts the declarative tuning into the column builder's
// config. Render overrides stay in code, the catalog only carries data.
func (e EntityConfig) ColumnConfig() schema.ColumnConfig {
	cfg := schema.ColumnConfig{
		HiddenFields:   e.Hidden,
		RequiredFields: e.Required,
		DefaultWidths:  e.Widths,
	}
	for name, label := range e.Labels {
		if cfg.FieldOverrides == nil {
			cfg.FieldOverrides = map[string]schema.ColumnPatch{}
		}
		l := label
		cfg.FieldOverrides[name] = schema.ColumnPatch{Label: &l}
	}
	return cfg
}

// FormConfig converts the declarative tuning into the form builder's config.
func (e EntityConfig) FormConfig() schema.FormConfig {
	cfg := schema.FormConfig{
		HiddenFields:   e.Hidden,
		ReadOnlyFields: e.ReadOnly,
	}
	for name, opts := range e.Options {
		if cfg.Options == nil {
			cfg.Options = schema.OptionCatalog{}
		}
		converted := make([]schema.Option, len(opts))
		for i, o := range opts {
			converted[i] = schema.Option{Value: o.Value, Label: o.Label}
		}
		cfg.Options[name] = converted
	}
	for name, label := range e.Labels {
		if cfg.FieldConfigs == nil {
			cfg.FieldConfigs = map[string]schema.FieldPatch{}
		}
		l := label
		cfg.FieldConfigs[name] = schema.FieldPatch{Label: &l}
	}
	return cfg
}
