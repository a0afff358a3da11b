package schema

import (
	"github.com/gmorais/backoffice/internal/infer"
	"github.com/gmorais/backoffice/internal/store"
)

// FormField describes one input of an editing form.
type FormField struct {
	Name     string          `json:"name"`
	Label    string          `json:"label"`
	Type     infer.InputKind `json:"type"`
	Required bool            `json:"required"`
	ReadOnly bool            `json:"read_only"`
	Default  any             `json:"default_value"`
	Options  []Option        `json:"options,omitempty"`
}

// FieldPatch overrides attributes of one inferred form field. Nil fields
// keep the inferred value. The patch is applied after primary-key handling,
// so an override can deliberately re-enable editing of a key field.
type FieldPatch struct {
	Label    *string
	Type     *infer.InputKind
	Required *bool
	ReadOnly *bool
	Default  any
	Options  []Option
}

// FormConfig configures form inference for one entity.
type FormConfig struct {
	HiddenFields   []string
	FieldConfigs   map[string]FieldPatch
	ReadOnlyFields []string
	// Options supplies enumeration lists for select fields; entries fall
	// back to the builtin catalog.
	Options OptionCatalog
}

// BuildForm infers form fields from a single sample record. Name heuristics
// take precedence over value shape (§ the detector's input path): sample
// values are unreliable before the first save. Primary-key fields come out
// required and read-only; overrides are merged afterwards. An empty sample
// yields nil.
func BuildForm(sample *store.Record, cfg FormConfig) []FormField {
	if sample == nil || sample.Len() == 0 {
		return nil
	}

	hidden := toSet(cfg.HiddenFields)
	readOnly := toSet(cfg.ReadOnlyFields)

	var fields []FormField
	for _, name := range sample.Keys() {
		if hidden[name] {
			continue
		}
		value, _ := sample.Get(name)
		kind := infer.DetectInput(name, value)
		isPK := store.IsPrimaryKey(name)

		ff := FormField{
			Name:     name,
			Label:    infer.Label(name),
			Type:     kind,
			Required: isPK,
			ReadOnly: readOnly[name] || isPK,
			Default:  defaultValue(value, kind),
		}
		if patch, ok := cfg.FieldConfigs[name]; ok {
			applyFieldPatch(&ff, patch)
		}
		if ff.Type == infer.InputSelect && ff.Options == nil {
			ff.Options = cfg.Options.Lookup(name)
		}
		fields = append(fields, ff)
	}
	return fields
}

func applyFieldPatch(ff *FormField, p FieldPatch) {
	if p.Label != nil {
		ff.Label = *p.Label
	}
	if p.Type != nil {
		ff.Type = *p.Type
	}
	if p.Required != nil {
		ff.Required = *p.Required
	}
	if p.ReadOnly != nil {
		ff.ReadOnly = *p.ReadOnly
	}
	if p.Default != nil {
		ff.Default = p.Default
	}
	if p.Options != nil {
		ff.Options = p.Options
	}
}

// defaultValue picks the form default: the sample value when present, else
// the type-appropriate empty value.
func defaultValue(sample any, kind infer.InputKind) any {
	if sample != nil {
		return sample
	}
	switch kind {
	case infer.InputNumber:
		return float64(0)
	case infer.InputCheckbox:
		return false
	default:
		return ""
	}
}
