package infer

import "strings"

// Label converts a raw field identifier (snake_case or camelCase) to a
// Title Case label. Pure and idempotent on its own output for digit-free
// inputs. Acronyms are not preserved ("cpf_cnpj" becomes "Cpf Cnpj") — a
// documented limitation of the heuristic, not something to silently fix.
func Label(identifier string) string {
	s := strings.ReplaceAll(identifier, "_", " ")

	// Insert spaces before internal capitals to split camelCase.
	var b strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			prev := s[i-1]
			if prev != ' ' {
				b.WriteByte(' ')
			}
		}
		b.WriteRune(r)
	}

	words := strings.Fields(b.String())
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
