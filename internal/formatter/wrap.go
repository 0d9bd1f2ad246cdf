package formatter

import (
	"strings"
)

// minBreakIndex keeps the hard wrapper from cutting absurdly short first
// lines: a preferred break must sit past this rune index.
const minBreakIndex = 5

// LineWrapper turns one normalized string into subtitle lines.
type LineWrapper interface {
	Wrap(text string) []string
}

// HardWrapper caps every line at MaxLen runes, preferring to cut right after
// a full-width terminator or a space inside the window.
type HardWrapper struct {
	MaxLen int
}

// Wrap implements LineWrapper.
func (w HardWrapper) Wrap(text string) []string {
	limit := w.MaxLen
	if limit <= 0 {
		limit = DefaultMaxLineLength
	}

	rest := []rune(text)
	var lines []string
	for len(rest) > limit {
		cut := limit
		if idx := lastBreak(rest[:limit]); idx > minBreakIndex {
			cut = idx + 1
		}
		lines = append(lines, string(rest[:cut]))
		rest = []rune(strings.TrimSpace(string(rest[cut:])))
	}
	if len(rest) > 0 {
		lines = append(lines, string(rest))
	}
	return lines
}

// rune index of the rightmost preferred break, or -1
func lastBreak(window []rune) int {
	for i := len(window) - 1; i >= 0; i-- {
		if strings.ContainsRune(wrapBreaks, window[i]) {
			return i
		}
	}
	return -1
}

// DelimiterSplitter breaks text at every ，？。 and drops the delimiter. It
// does not enforce a length cap.
type DelimiterSplitter struct{}

// Wrap implements LineWrapper.
func (DelimiterSplitter) Wrap(text string) []string {
	text = strings.TrimSpace(text)

	var (
		lines []string
		buf   strings.Builder
	)
	flush := func() {
		if buf.Len() == 0 {
			return
		}
		if line := strings.TrimSpace(buf.String()); line != "" {
			lines = append(lines, line)
		}
		buf.Reset()
	}

	for _, r := range text {
		if strings.ContainsRune(splitDelimiters, r) {
			flush()
			continue
		}
		buf.WriteRune(r)
	}
	flush()

	if len(lines) == 0 && text != "" {
		lines = []string{text}
	}
	return lines
}
