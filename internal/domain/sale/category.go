package sale

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultCategories son las categorías habilitadas para la venta.
var DefaultCategories = []string{"electronica", "escolar"}

// CategorySet compara categorías sin distinguir mayúsculas ni tildes ("Electrónica" == "electronica").
type CategorySet struct {
	allowed map[string]struct{}
}

// NewCategorySet construye el conjunto. Entradas vacías se ignoran.
func NewCategorySet(categories ...string) CategorySet {
	set := CategorySet{allowed: make(map[string]struct{}, len(categories))}
	for _, c := range categories {
		if k := NormalizeCategory(c); k != "" {
			set.allowed[k] = struct{}{}
		}
	}
	return set
}

// Contains indica si category pertenece al conjunto.
func (s CategorySet) Contains(category string) bool {
	_, ok := s.allowed[NormalizeCategory(category)]
	return ok
}

// NormalizeCategory quita espacios y marcas diacríticas y aplica case folding.
func NormalizeCategory(c string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC, cases.Fold())
	out, _, err := transform.String(t, strings.TrimSpace(c))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(c))
	}
	return out
}
