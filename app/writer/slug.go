package writer

import (
	"cmp"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const untitled = "untitled"

var nonSlugChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// Slugify turns s into a filename-safe stem. With transliterate, accents are
// folded first so that "Café" becomes "Cafe" instead of "Caf".
func Slugify(s string, transliterate bool) string {
	s = strings.ReplaceAll(s, " ", "_")

	if transliterate {
		t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
		if folded, _, err := transform.String(t, s); err == nil {
			s = folded
		}
	}

	return nonSlugChars.ReplaceAllString(s, "")
}

// itemStem slugifies the slug, or the title when there is no slug. Stems that
// end up empty become "untitled".
func itemStem(slug, title string, transliterate bool) string {
	source := cmp.Or(slug, title, untitled)
	if stem := Slugify(source, transliterate); stem != "" {
		return stem
	}
	return untitled
}
