// Package texto utilidades de normalización para búsqueda: los términos se
// comparan sin acentos y en minúsculas, de modo que "categoría" y "CATEGORIA"
// coincidan.
package texto

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// quitaDiacriticos descompone a NFD, elimina las marcas combinantes (Mn) y
// recompone a NFC.
var quitaDiacriticos = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalizar devuelve el término en minúsculas, sin acentos y sin espacios
// sobrantes. Si la transformación falla, devuelve el término en minúsculas.
func Normalizar(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	out, _, err := transform.String(quitaDiacriticos, s)
	if err != nil {
		return s
	}
	return out
}
