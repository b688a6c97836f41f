package text

import (
	"strings"
	"unicode"

	"github.com/muesli/reflow/truncate"
	"github.com/muesli/termenv"
	"github.com/sahilm/fuzzy"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize text to aid in the filtering process. In particular, we remove
// diacritics, "ö" becomes "o", and fold case. Note that Mn is the unicode key
// for nonspacing marks.
func Normalize(in string) (string, error) {
	transformer := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(transformer, in)
	return strings.ToLower(out), err
}

// StyleFilteredText underlines the runes of haystack that needle matched.
func StyleFilteredText(haystack, needle string, defaultStyle termenv.Style) string {
	matches := fuzzy.Find(needle, []string{haystack})
	if needle == "" || len(matches) == 0 {
		return defaultStyle.Styled(haystack)
	}

	matched := map[int]bool{}
	for _, mi := range matches[0].MatchedIndexes {
		matched[mi] = true
	}

	b := strings.Builder{}
	for i, r := range haystack {
		if matched[i] {
			b.WriteString(defaultStyle.Underline().Styled(string(r)))
		} else {
			b.WriteString(defaultStyle.Styled(string(r)))
		}
	}
	return b.String()
}

func TruncateWithTail(txt string, width uint, ellipsis string) string {
	return truncate.StringWithTail(txt, width, ellipsis)
}

// Truncate shortens txt to width cells using Ellipsis.
func Truncate(txt string, width int) string {
	if width <= 0 {
		return ""
	}
	return TruncateWithTail(txt, uint(width), Ellipsis)
}
