package subtitle

import (
	"strings"

	"github.com/mgpai22/zhsub/internal/formatter"
)

// Generator turns recognized segments into subtitle blocks, one block per
// segment. Blocks are never merged and never split across segments.
type Generator struct {
	Formatter *formatter.Formatter
}

func NewGenerator(f *formatter.Formatter) *Generator {
	if f == nil {
		f = formatter.New(formatter.DefaultMaxLineLength)
	}
	return &Generator{Formatter: f}
}

// converts transcription segments to subtitle
func (g *Generator) Generate(segments []Segment) (*Subtitle, error) {
	sub := &Subtitle{
		Blocks:     make([]Block, 0, len(segments)),
		Transcript: make([]TranscriptLine, 0, len(segments)),
	}
	for i, seg := range segments {
		block, line := g.Segment(i+1, seg)
		sub.Blocks = append(sub.Blocks, block)
		sub.Transcript = append(sub.Transcript, line)
	}
	return sub, nil
}

// Segment formats a single segment as the block with the given 1-based index
// and its plain-text transcript line.
func (g *Generator) Segment(index int, seg Segment) (Block, TranscriptLine) {
	lines, clean := g.Formatter.SegmentLines(seg.Text)

	// the last line loses trailing punctuation the same way the joined SRT
	// body does
	var kept []string
	for _, line := range strings.Split(formatter.SubtitleText(lines), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}

	return Block{
			Index: index,
			Start: seg.Start,
			End:   seg.End,
			Lines: kept,
		}, TranscriptLine{
			Start: seg.Start,
			Text:  clean,
		}
}
