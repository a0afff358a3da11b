package schema

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gmorais/backoffice/internal/infer"
	"github.com/gmorais/backoffice/internal/store"
)

// defaultRenderer attaches the display renderer for a column that received
// no override: booleans as Sim/Não, dates reformatted, monetary values as
// currency, everything else raw with "-" for missing values.
func defaultRenderer(field string, ft infer.FieldType) RenderFunc {
	switch {
	case ft == infer.FieldBoolean:
		return renderBool
	case ft == infer.FieldDate:
		return renderDate
	case ft == infer.FieldDecimal:
		return renderCurrency
	case ft == infer.FieldNumber && strings.Contains(strings.ToLower(field), "valor"):
		return renderCurrency
	default:
		return renderRaw
	}
}

func renderBool(value any, _ *store.Record) string {
	b, ok := value.(bool)
	if !ok {
		return renderRaw(value, nil)
	}
	if b {
		return "Sim"
	}
	return "Não"
}

// renderDate reparses DD/MM/YYYY strings (with optional time suffix) and
// falls back to "-" when the value does not parse.
func renderDate(value any, _ *store.Record) string {
	s, ok := value.(string)
	if !ok || len(s) < 10 {
		return "-"
	}
	t, err := time.Parse("02/01/2006", s[:10])
	if err != nil {
		return "-"
	}
	return t.Format("02/01/2006")
}

func renderCurrency(value any, _ *store.Record) string {
	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case int:
		f = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return renderRaw(value, nil)
		}
		f = parsed
	default:
		return renderRaw(value, nil)
	}
	return "R$ " + formatBRL(f)
}

// formatBRL renders 1234.5 as "1.234,50" — dot thousands, comma decimals.
func formatBRL(f float64) string {
	neg := f < 0
	if neg {
		f = -f
	}
	s := strconv.FormatFloat(f, 'f', 2, 64)
	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	b.WriteByte(',')
	b.WriteString(fracPart)
	return b.String()
}

func renderRaw(value any, _ *store.Record) string {
	if value == nil {
		return "-"
	}
	if f, ok := value.(float64); ok && f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return fmt.Sprintf("%v", value)
}
