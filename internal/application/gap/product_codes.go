package gap

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// ParseProductCodes convierte texto pegado por el usuario (Excel, correo, CSV) en una lista de PT codes.
// Separadores: coma, punto y coma, barra vertical, tabulador, salto de línea y espacio.
// Normaliza a NFKC y mayúsculas, quita comillas y elimina duplicados preservando el orden.
func ParseProductCodes(text string) []string {
	upper := cases.Upper(language.Und) // un Caser no se comparte entre goroutines
	text = norm.NFKC.String(text)
	fields := strings.FieldsFunc(text, func(r rune) bool {
		switch r {
		case ',', ';', '|', '\t', '\n', '\r', ' ':
			return true
		}
		return false
	})

	seen := make(map[string]struct{}, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		code := upper.String(strings.Trim(f, "\"'`"))
		if code == "" {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	return out
}
