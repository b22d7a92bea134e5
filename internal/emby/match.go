// internal/emby/match.go
package emby

import (
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// nameMatchThreshold is the minimum Jaro-Winkler score accepted when
// resolving a library by fuzzy name.
const nameMatchThreshold = 0.85

// normalizeName prepares a library name for comparison: lowercase, accents
// stripped, punctuation removed, whitespace collapsed.
func normalizeName(name string) string {
	s := strings.ToLower(name)
	s = removeAccents(s)

	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}

// bestNameMatch returns the index and Jaro-Winkler score of the candidate
// whose name is closest to the given one, or (-1, 0) when there are no
// candidates. Jaro-Winkler favors shared prefixes, which suits library
// names like "Movies" vs "Movies 4K".
func bestNameMatch(name string, candidates []MediaLibrary) (int, float64) {
	want := normalizeName(name)

	bestIdx := -1
	bestScore := 0.0
	for i, lib := range candidates {
		score := float64(edlib.JaroWinklerSimilarity(want, normalizeName(lib.Name)))
		if score > bestScore {
			bestIdx = i
			bestScore = score
		}
	}
	return bestIdx, bestScore
}
