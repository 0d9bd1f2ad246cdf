package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mgpai22/zhsub/internal/formatter"
	"github.com/mgpai22/zhsub/internal/subtitle"
)

var formatCmd = &cobra.Command{
	Use:   "format FILE",
	Short: "Reformat an existing SRT file",
	Long: `Rewrite the text of every subtitle block in an SRT file.

Each block's lines are joined, cleaned of filler words, given full-width
punctuation and re-split at punctuation marks and the maximum line length.
Index and timing lines are kept as they are. Blocks with fewer than three
lines are copied unchanged.

The result is written to <name>_formatted.srt unless --output is given.

Examples:
  zhsub format talk_cht.srt
  zhsub format talk_cht.srt -o talk.srt --max-line 16`,
	Args: cobra.ExactArgs(1),
	RunE: runFormat,
}

func init() {
	rootCmd.AddCommand(formatCmd)

	formatCmd.Flags().
		StringP("output", "o", "", "Output file path")
	formatCmd.Flags().
		Int("max-line", 0, "Maximum characters per subtitle line")
}

func runFormat(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	info, err := os.Stat(inputPath)
	if err != nil || info.IsDir() {
		return fmt.Errorf("subtitle file not found: %s", inputPath)
	}
	if ext := strings.ToLower(filepath.Ext(inputPath)); ext != ".srt" {
		return fmt.Errorf("unsupported subtitle format %q: only .srt can be reformatted", ext)
	}

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		outputPath = subtitle.FormattedPath(inputPath)
	}

	maxLine := cfg.Format.MaxLineLength
	if cmd.Flags().Changed("max-line") {
		maxLine, _ = cmd.Flags().GetInt("max-line")
		if maxLine <= 0 {
			return fmt.Errorf("--max-line must be positive, got %d", maxLine)
		}
	}

	stats, err := reformat(inputPath, outputPath, maxLine)
	if err != nil {
		return err
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Subtitles formatted successfully: %s\n", absOutput)
	fmt.Fprintf(cmd.OutOrStdout(), "  Blocks: %d (rewritten %d, skipped %d)\n",
		stats.Blocks, stats.Rewritten, stats.Skipped)
	return nil
}

// reformat is shared with watch mode.
func reformat(inputPath, outputPath string, maxLine int) (subtitle.ReformatStats, error) {
	logger.Infow("Reformatting subtitles",
		"input", inputPath,
		"output", outputPath,
		"max_line", maxLine,
	)
	// strict parsing only informs; irregular blocks are still copied through
	if blocks, err := subtitle.Open(inputPath); err != nil {
		logger.Warnw("Input is not strict SRT", "file", inputPath, "error", err)
	} else if n := len(blocks); n > 0 {
		logger.Debugw("Input parsed", "blocks", n, "ends_at", subtitle.FormatTimestamp(blocks[n-1].End))
	}

	stats, err := subtitle.ReformatFile(inputPath, outputPath, formatter.New(maxLine))
	if err != nil {
		return stats, fmt.Errorf("reformat failed: %w", err)
	}
	if stats.Skipped > 0 {
		logger.Warnw("Malformed blocks copied unchanged", "count", stats.Skipped)
	}
	return stats, nil
}
