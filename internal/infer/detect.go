// Package infer classifies raw record values into presentation field types
// and derives human-readable labels from field identifiers. It is the leaf of
// the schema pipeline: everything here is a pure function over plain data, so
// new entity shapes need no static schema or reflection.
package infer

import (
	"encoding/json"
	"regexp"
	"strings"
)

// FieldType classifies a raw value for grid rendering and width selection.
type FieldType int

const (
	FieldUnknown FieldType = iota
	FieldBoolean
	FieldNumber
	FieldDecimal
	FieldDate
	FieldTime
	FieldString
	FieldArray
	FieldObject
)

// String returns the wire-visible type name.
func (ft FieldType) String() string {
	switch ft {
	case FieldBoolean:
		return "boolean"
	case FieldNumber:
		return "number"
	case FieldDecimal:
		return "decimal"
	case FieldDate:
		return "date"
	case FieldTime:
		return "time"
	case FieldString:
		return "string"
	case FieldArray:
		return "array"
	case FieldObject:
		return "object"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the type as its wire name.
func (ft FieldType) MarshalJSON() ([]byte, error) {
	return json.Marshal(ft.String())
}

// InputKind classifies a field for form input selection. Unlike FieldType it
// is name-driven first: sample values are often empty strings before the
// first save, so field names carry the stronger signal in the form context.
type InputKind string

const (
	InputText     InputKind = "text"
	InputNumber   InputKind = "number"
	InputDate     InputKind = "date"
	InputTime     InputKind = "time"
	InputCheckbox InputKind = "checkbox"
	InputSelect   InputKind = "select"
	InputTextarea InputKind = "textarea"
	InputEmail    InputKind = "email"
	InputTel      InputKind = "tel"
)

var (
	datePattern    = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}`)
	timePattern    = regexp.MustCompile(`^\d{2}:\d{2}`)
	numericPattern = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
)

// nameKinds maps field-name substrings to input kinds. Order matters: the
// first matching rule wins, so more specific names come before generic ones.
var nameKinds = []struct {
	substrings []string
	kind       InputKind
}{
	{[]string{"email"}, InputEmail},
	{[]string{"telefone", "celular", "fixo"}, InputTel},
	{[]string{"cep"}, InputText},
	{[]string{"cpf", "cnpj"}, InputText},
	{[]string{"data", "date"}, InputDate},
	{[]string{"valor", "preco", "custo"}, InputNumber},
	{[]string{"observacao", "descricao"}, InputTextarea},
	{[]string{"tipo", "status", "estado"}, InputSelect},
}

// Detect classifies a raw value by shape alone. Used in the grid/column
// context where no name hint applies.
func Detect(value any) FieldType {
	switch v := value.(type) {
	case nil:
		return FieldUnknown
	case bool:
		return FieldBoolean
	case float64, float32, int, int32, int64:
		return FieldNumber
	case string:
		return detectString(v)
	case []any:
		return FieldArray
	case map[string]any:
		return FieldObject
	default:
		return FieldUnknown
	}
}

func detectString(s string) FieldType {
	switch {
	case datePattern.MatchString(s):
		return FieldDate
	case timePattern.MatchString(s):
		return FieldTime
	case numericPattern.MatchString(s) && len(s) > 10:
		// Long numeric strings are decimals serialized to avoid float loss.
		return FieldDecimal
	default:
		return FieldString
	}
}

// DetectInput classifies a field for form input, preferring name heuristics
// over value shape. A field named valor_total must render as a number input
// even when its sample value is an empty string or zero.
func DetectInput(name string, value any) InputKind {
	lower := strings.ToLower(name)
	for _, rule := range nameKinds {
		for _, sub := range rule.substrings {
			if strings.Contains(lower, sub) {
				return rule.kind
			}
		}
	}
	switch Detect(value) {
	case FieldBoolean:
		return InputCheckbox
	case FieldNumber, FieldDecimal:
		return InputNumber
	case FieldDate:
		return InputDate
	case FieldTime:
		return InputTime
	default:
		return InputText
	}
}
