package inventory

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize pasa a minúsculas, quita tildes y colapsa espacios ("Cemento  Polpaico" -> "cemento polpaico").
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(strings.ToLower(out)), " ")
}

// SearchKey clave de búsqueda persistida: nombre y código normalizados.
func SearchKey(name, code string) string {
	if code == "" {
		return Normalize(name)
	}
	return Normalize(name + " " + code)
}
