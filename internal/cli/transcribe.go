package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe FILE...",
	Short: "Generate Traditional Chinese subtitles for audio or video files",
	Long: `Transcribe one or more audio or video files into subtitles.

Files are processed one at a time. For every file a <name>_cht.srt subtitle
and a <name>_cht.txt transcript are written next to the media once the whole
file has been processed. A missing or failing file is reported and the batch
continues. Ctrl+C stops after the current segment without writing output for
the interrupted file.

Examples:
  zhsub transcribe talk.mp4
  zhsub transcribe *.mp3 --model large-v3
  zhsub transcribe lecture.mkv -p openai -d 10 --concurrency 4
  zhsub transcribe meeting.m4a --convert none -f srt,vtt`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTranscribe,
}

func init() {
	rootCmd.AddCommand(transcribeCmd)
	addPipelineFlags(transcribeCmd)
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	if err := applyPipelineFlags(cmd, cfg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(contextOrBackground(cmd.Context()), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner, err := newRunner(ctx, cfg)
	if err != nil {
		return err
	}

	logger.Infow("Starting transcription",
		"files", len(args),
		"provider", cfg.Transcribe.Provider,
		"model", cfg.Transcribe.Model,
		"convert", cfg.Convert.Profile,
	)

	summary := runner.Run(ctx, args)
	fmt.Fprintln(cmd.OutOrStdout(), summary.Table())
	return summary.Err()
}

// contextOrBackground guards commands invoked without ExecuteContext.
func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
