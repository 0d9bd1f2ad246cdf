package formatter

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	cjkThenLatin = regexp.MustCompile(`([\x{4e00}-\x{9fff}])([a-zA-Z0-9])`)
	latinThenCJK = regexp.MustCompile(`([a-zA-Z0-9])([\x{4e00}-\x{9fff}])`)
)

// ApplySubstitutions replaces every Substitutions entry, in table order, as a
// plain substring. No word boundaries are respected.
func ApplySubstitutions(text string) string {
	return applyPairs(text, Substitutions)
}

// RemoveFillers strips each filler when it opens the text and wherever it
// sits directly before or after a full-width comma. Fillers elsewhere in a
// sentence are left alone.
func RemoveFillers(text string) string {
	for _, filler := range Fillers {
		text = strings.TrimPrefix(text, filler)
		text = strings.ReplaceAll(text, filler+"，", "")
		text = strings.ReplaceAll(text, "，"+filler, "")
	}
	return text
}

// DisambiguatePronouns rewrites 他 and 她 to 它 throughout the text when it
// mentions an AI model. The whole text is rewritten, not only the pronouns
// that refer to the model.
func DisambiguatePronouns(text string) string {
	if !mentionsAI(text) {
		return text
	}
	for _, p := range genderedPronouns {
		text = strings.ReplaceAll(text, p, neuterPronoun)
	}
	return text
}

func mentionsAI(text string) bool {
	// cases.Caser is stateful, so build one per call
	upper := cases.Upper(language.Und).String(text)
	for _, marker := range AIMarkers {
		if strings.Contains(upper, marker) {
			return true
		}
	}
	return false
}

// InsertSpacing puts a single space at each boundary between a CJK ideograph
// and an ASCII letter or digit, in both directions.
func InsertSpacing(text string) string {
	text = cjkThenLatin.ReplaceAllString(text, "$1 $2")
	return latinThenCJK.ReplaceAllString(text, "$1 $2")
}

func applyPairs(text string, pairs []Pair) string {
	for _, p := range pairs {
		text = strings.ReplaceAll(text, p.Old, p.New)
	}
	return text
}
