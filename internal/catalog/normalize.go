package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// Normalize folds a string for comparison: accents removed, lowercased,
// whitespace runs collapsed and trimmed. Normalize(Normalize(s)) == Normalize(s).
// Örn: "  Bogotá   D.C. " -> "bogota d.c."
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	folded, _, err := transform.String(stripAccents, s)
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// NormalizeAny normalizes a sheet cell, which may come back as a number.
func NormalizeAny(v any) string {
	return Normalize(cellText(v))
}

func cellText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		// %v büyük sayıları üslü yazar (1.234567e+06)
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
