package formatter

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// \p{Nd} so full-width digits, which the spacer leaves alone, still match
var ordinalCount = regexp.MustCompile(`(第\p{Nd}+個)`)

// NormalizePunctuation converts ASCII punctuation to full-width forms and
// drops a single trailing terminator. Steps run in a fixed order:
//
//  1. a comma is inserted after a leading trigger phrase
//  2. every 第<n>個 gets a comma after it
//  3. , . ? ! become ，。？！
//  4. one trailing ，。？！ is removed
func NormalizePunctuation(text string) string {
	text = insertTriggerCommas(text)
	text = ordinalCount.ReplaceAllString(text, "${1}，")
	text = applyPairs(text, ASCIIPunctuation)
	return trimTerminator(text)
}

// only a trigger at the very start counts; strings.Replace with n=1 hits
// that occurrence because it is the first one
func insertTriggerCommas(text string) string {
	for _, trigger := range Triggers {
		if strings.HasPrefix(text, trigger) && !strings.HasPrefix(text, trigger+"，") {
			text = strings.Replace(text, trigger, trigger+"，", 1)
		}
	}
	return text
}

func trimTerminator(text string) string {
	last, size := utf8.DecodeLastRuneInString(text)
	if size == 0 {
		return text
	}
	if strings.ContainsRune(terminators, last) {
		return text[:len(text)-size]
	}
	return text
}

// ToFullWidth applies the SRTPunctuation table to recognized segment text.
func ToFullWidth(text string) string {
	return applyPairs(text, SRTPunctuation)
}

// TrimTrailingPunctuation removes every trailing character that belongs to
// the extended full-width and ASCII punctuation set.
func TrimTrailingPunctuation(text string) string {
	return strings.TrimRight(text, trailingPunctuation)
}
