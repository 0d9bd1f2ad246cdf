package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mgpai22/zhsub/internal/subtitle"
	"github.com/mgpai22/zhsub/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch DIR",
	Short: "Transcribe media files as they appear in a directory",
	Long: `Watch a directory and transcribe every new audio or video file.

Files are picked up once they stop changing for the debounce period set in
the config (watch.debounce_ms). With --reformat, new SRT files are also
reformatted into <name>_formatted.srt. Only one watcher may run per
directory.

Examples:
  zhsub watch ~/Recordings
  zhsub watch ./inbox --reformat -p gemini`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	addPipelineFlags(watchCmd)

	watchCmd.Flags().
		Bool("reformat", false, "Also reformat new SRT files")
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := args[0]

	if err := applyPipelineFlags(cmd, cfg); err != nil {
		return err
	}
	reformatSubs := cfg.Watch.ReformatSubtitles
	if cmd.Flags().Changed("reformat") {
		reformatSubs, _ = cmd.Flags().GetBool("reformat")
	}

	ctx, stop := signal.NotifyContext(contextOrBackground(cmd.Context()), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner, err := newRunner(ctx, cfg)
	if err != nil {
		return err
	}

	handler := watch.Handler{
		Media: func(ctx context.Context, paths []string) {
			summary := runner.Run(ctx, paths)
			fmt.Fprintln(cmd.OutOrStdout(), summary.Table())
		},
	}
	if reformatSubs {
		maxLine := cfg.Format.MaxLineLength
		handler.Subtitle = func(_ context.Context, path string) {
			if _, err := reformat(path, subtitle.FormattedPath(path), maxLine); err != nil {
				logger.Errorw("Reformat failed", "file", path, "error", err)
			}
		}
	}

	debounce := time.Duration(cfg.Watch.DebounceMillis) * time.Millisecond
	watcher, err := watch.New(dir, debounce, handler, logger)
	if err != nil {
		return err
	}

	if err := watcher.Run(ctx); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	logger.Infow("Watch stopped")
	return nil
}
