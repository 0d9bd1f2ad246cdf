// Package formatter normalizes recognized Chinese speech into subtitle text.
//
// Everything here is a pure function over strings. The phrase, filler and
// punctuation tables are package-level constants that are never written at
// runtime, so a Formatter can be shared freely between goroutines.
package formatter

import "strings"

// Formatter runs the normalization pipelines. The zero value is ready to use
// and wraps post-processed text at DefaultMaxLineLength.
type Formatter struct {
	MaxLineLength int
}

// New returns a Formatter wrapping at maxLineLength characters. Values <= 0
// select DefaultMaxLineLength.
func New(maxLineLength int) *Formatter {
	if maxLineLength <= 0 {
		maxLineLength = DefaultMaxLineLength
	}
	return &Formatter{MaxLineLength: maxLineLength}
}

// Normalize runs substitution, filler removal, pronoun rewriting, spacing and
// punctuation normalization, returning a single line.
func (f *Formatter) Normalize(text string) string {
	text = ApplySubstitutions(text)
	text = RemoveFillers(text)
	text = DisambiguatePronouns(text)
	text = InsertSpacing(text)
	return NormalizePunctuation(text)
}

// PolishText is the post-processing pipeline for the text of an existing
// subtitle block: Normalize followed by the length-capped wrapper.
func (f *Formatter) PolishText(text string) []string {
	return f.hardWrapper().Wrap(f.Normalize(text))
}

// SegmentLines is the transcription pipeline for a freshly recognized
// segment. It returns the delimiter-split subtitle lines together with the
// clean single-line form used in plain-text transcripts.
func (f *Formatter) SegmentLines(text string) (lines []string, clean string) {
	full := strings.TrimSpace(ToFullWidth(text))
	return DelimiterSplitter{}.Wrap(full), TrimTrailingPunctuation(full)
}

// SubtitleText joins segment lines into the body of an SRT block.
func SubtitleText(lines []string) string {
	return TrimTrailingPunctuation(strings.TrimSpace(strings.Join(lines, "\n")))
}

func (f *Formatter) hardWrapper() HardWrapper {
	if f == nil {
		return HardWrapper{MaxLen: DefaultMaxLineLength}
	}
	return HardWrapper{MaxLen: f.MaxLineLength}
}
