package assistant

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks lowercase-folds diacritics away: canonical decomposition, drop
// the combining marks, recompose. "¿Dónde?" and "donde" end up equal.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize prepares an utterance for rule matching. Rule keywords are
// stored pre-normalized, so matching is plain substring containment.
func Normalize(s string) string {
	lowered := strings.ToLower(strings.TrimSpace(s))
	out, _, err := transform.String(stripMarks, lowered)
	if err != nil {
		return lowered
	}
	return out
}
