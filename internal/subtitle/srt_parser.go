package subtitle

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mgpai22/zhsub/internal/formatter"
)

// RawBlock is a blank-line delimited chunk of an SRT file kept as text. The
// index and timing lines are carried verbatim so rewriting a file never
// touches them.
type RawBlock struct {
	Index  string
	Timing string
	Text   []string

	raw       string
	malformed bool
}

// Malformed reports whether the block had fewer than three lines. Such
// blocks are written back exactly as read.
func (b RawBlock) Malformed() bool {
	return b.malformed
}

// String renders the block without a trailing newline.
func (b RawBlock) String() string {
	if b.Malformed() {
		return b.raw
	}
	lines := append([]string{b.Index, b.Timing}, b.Text...)
	if len(b.Text) == 0 {
		// keep the header's line break when every text line was removed
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// ParseBlocks splits SRT content into blocks on blank lines. Line endings
// are normalized to "\n" first.
func ParseBlocks(content string) []RawBlock {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimPrefix(content, "\ufeff")
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil
	}

	chunks := strings.Split(trimmed, "\n\n")
	blocks := make([]RawBlock, 0, len(chunks))
	for _, chunk := range chunks {
		lines := strings.Split(chunk, "\n")
		if len(lines) < 3 {
			blocks = append(blocks, RawBlock{raw: chunk, malformed: true})
			continue
		}
		blocks = append(blocks, RawBlock{
			Index:  lines[0],
			Timing: lines[1],
			Text:   lines[2:],
			raw:    chunk,
		})
	}
	return blocks
}

// ReformatStats reports what Reformat did.
type ReformatStats struct {
	Blocks    int
	Rewritten int
	Skipped   int
}

// Reformat rewrites the text of every well-formed block with the
// post-processing pipeline and returns the new file content. The text lines
// of a block are joined without a separator before processing.
func Reformat(content string, f *formatter.Formatter) (string, ReformatStats) {
	blocks := ParseBlocks(content)
	out := make([]string, 0, len(blocks))
	stats := ReformatStats{Blocks: len(blocks)}

	for _, block := range blocks {
		if block.Malformed() {
			stats.Skipped++
			out = append(out, block.String())
			continue
		}
		block.Text = f.PolishText(strings.Join(block.Text, ""))
		stats.Rewritten++
		out = append(out, block.String())
	}
	return strings.Join(out, "\n\n"), stats
}

// Decode converts raw blocks into timed blocks. Malformed blocks and blocks
// whose index or timing line cannot be parsed are reported as errors.
func Decode(raw []RawBlock) ([]Block, error) {
	blocks := make([]Block, 0, len(raw))
	for i, rb := range raw {
		if rb.Malformed() {
			return nil, fmt.Errorf("block %d: fewer than 3 lines", i+1)
		}
		index, err := strconv.Atoi(strings.TrimSpace(rb.Index))
		if err != nil {
			return nil, fmt.Errorf("block %d: invalid index %q", i+1, rb.Index)
		}
		start, end, err := ParseTiming(rb.Timing)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i+1, err)
		}
		blocks = append(blocks, Block{
			Index: index,
			Start: start,
			End:   end,
			Lines: append([]string(nil), rb.Text...),
		})
	}
	return blocks, nil
}

// Open reads and decodes an SRT file.
func Open(path string) ([]Block, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SRT file: %w", err)
	}
	return Decode(ParseBlocks(string(data)))
}

// ReformatFile runs Reformat over the file at inPath and writes the result
// atomically to outPath. A trailing newline is added to the output.
func ReformatFile(inPath, outPath string, f *formatter.Formatter) (ReformatStats, error) {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return ReformatStats{}, fmt.Errorf("failed to read subtitle file: %w", err)
	}
	content, stats := Reformat(string(data), f)
	if content != "" {
		content += "\n"
	}
	if err := WriteFile(outPath, content); err != nil {
		return stats, err
	}
	return stats, nil
}
