package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SubRip format
type SRTWriter struct{}

// plain-text transcript, one "[timestamp] text" line per segment
type TextWriter struct{}

// WebVTT format
type VTTWriter struct{}

func NewWriter(format Format) (Writer, error) {
	switch format {
	case FormatSRT:
		return &SRTWriter{}, nil
	case FormatTXT:
		return &TextWriter{}, nil
	case FormatVTT:
		return &VTTWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// writes the subtitle to an SRT file
func (w *SRTWriter) Write(sub *Subtitle, path string) error {
	return atomicWrite(path, []byte(RenderSRT(sub.Blocks)))
}

// RenderSRT renders blocks as SubRip text. Every block, including the last,
// is followed by a blank line.
func RenderSRT(blocks []Block) string {
	var sb strings.Builder
	for _, block := range blocks {
		fmt.Fprintf(&sb, "%d\n", block.Index)
		fmt.Fprintf(&sb, "%s --> %s\n",
			FormatTimestamp(block.Start),
			FormatTimestamp(block.End))
		sb.WriteString(strings.Join(block.Lines, "\n"))
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// writes the transcript lines to a text file
func (w *TextWriter) Write(sub *Subtitle, path string) error {
	var sb strings.Builder
	for _, line := range sub.Transcript {
		fmt.Fprintf(&sb, "[%s] %s\n", FormatTimestamp(line.Start), line.Text)
	}
	return atomicWrite(path, []byte(sb.String()))
}

// writes the subtitle to a VTT file
func (w *VTTWriter) Write(sub *Subtitle, path string) error {
	var sb strings.Builder

	// VTT header
	sb.WriteString("WEBVTT\n\n")

	for _, block := range sub.Blocks {
		// optional cue identifier
		fmt.Fprintf(&sb, "%d\n", block.Index)
		fmt.Fprintf(&sb, "%s --> %s\n",
			formatVTTTimestamp(block.Start),
			formatVTTTimestamp(block.End))
		sb.WriteString(strings.Join(block.Lines, "\n"))
		sb.WriteString("\n\n")
	}

	return atomicWrite(path, []byte(sb.String()))
}

// atomicWrite writes data next to path and renames it into place, so a
// reader never sees a partially written file.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmpFile, err := os.CreateTemp(dir, ".zhsub-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("syncing %s: %w", filepath.Base(path), err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", filepath.Base(path), err)
	}
	tmpFile = nil

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming %s: %w", filepath.Base(path), err)
	}
	return nil
}

// WriteFile writes content to path atomically.
func WriteFile(path, content string) error {
	return atomicWrite(path, []byte(content))
}

// file extension for a format
func GetExtensionForFormat(format Format) string {
	switch format {
	case FormatTXT:
		return ".txt"
	case FormatVTT:
		return ".vtt"
	default:
		return ".srt"
	}
}

// OutputPath derives the output file for mediaPath: the extension is dropped,
// suffix appended and the format extension added, e.g. talk.mp3 with suffix
// "_cht" becomes talk_cht.srt.
func OutputPath(mediaPath, suffix string, format Format) string {
	base := strings.TrimSuffix(mediaPath, filepath.Ext(mediaPath))
	return base + suffix + GetExtensionForFormat(format)
}

// FormattedPath names the post-processed copy of a subtitle file, e.g.
// talk_cht.srt becomes talk_cht_formatted.srt.
func FormattedPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + FormattedSuffix + ext
}

// FormattedSuffix marks files written by the post-processing pipeline.
const FormattedSuffix = "_formatted"
