package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mgpai22/zhsub/internal/batch"
	"github.com/mgpai22/zhsub/internal/config"
	"github.com/mgpai22/zhsub/internal/convert"
	"github.com/mgpai22/zhsub/internal/formatter"
	"github.com/mgpai22/zhsub/internal/subtitle"
	"github.com/mgpai22/zhsub/internal/transcribe"
)

// addPipelineFlags registers the flags shared by transcribe and watch. Unset
// flags keep the configured values.
func addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().
		StringP("provider", "p", "", "Transcription provider (local, openai, gemini)")
	cmd.Flags().
		StringP("model", "m", "", "Model name; local sizes are base, small, medium, large-v3")
	cmd.Flags().
		String("convert", "", "OpenCC profile for script conversion, or \"none\"")
	cmd.Flags().
		Int("max-line", 0, "Maximum characters per subtitle line")
	cmd.Flags().
		StringSliceP("format", "f", nil, "Output formats (srt, txt, vtt)")
	cmd.Flags().
		IntP("chunk-minutes", "d", 0, "Split audio into chunks of this many minutes (0 disables)")
	cmd.Flags().
		Int("concurrency", 0, "Parallel transcription workers for chunked audio")
}

// applyPipelineFlags copies explicitly set flags over the configuration and
// validates the result.
func applyPipelineFlags(cmd *cobra.Command, c *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("provider") {
		c.Transcribe.Provider, _ = flags.GetString("provider")
		if !flags.Changed("model") && c.Transcribe.Provider != config.ProviderLocal {
			// the configured model belongs to another provider
			c.Transcribe.Model = ""
		}
	}
	if flags.Changed("model") {
		c.Transcribe.Model, _ = flags.GetString("model")
	}
	if flags.Changed("convert") {
		c.Convert.Profile, _ = flags.GetString("convert")
	}
	if flags.Changed("max-line") {
		c.Format.MaxLineLength, _ = flags.GetInt("max-line")
	}
	if flags.Changed("format") {
		c.Output.Formats, _ = flags.GetStringSlice("format")
	}
	if flags.Changed("chunk-minutes") {
		c.Transcribe.ChunkMinutes, _ = flags.GetInt("chunk-minutes")
	}
	if flags.Changed("concurrency") {
		c.Transcribe.Concurrency, _ = flags.GetInt("concurrency")
	}
	if c.Transcribe.Provider == config.ProviderLocal && c.Transcribe.Model == "" {
		c.Transcribe.Model = "medium"
	}
	return c.Validate()
}

func outputFormats(names []string) []subtitle.Format {
	formats := make([]subtitle.Format, 0, len(names))
	for _, name := range names {
		formats = append(formats, subtitle.Format(name))
	}
	return formats
}

// newRunner wires transcriber, converter and generator from the
// configuration into a batch runner.
func newRunner(ctx context.Context, c *config.Config) (*batch.Runner, error) {
	t := c.Transcribe
	transcriber, err := transcribe.Factory(ctx, transcribe.Provider(t.Provider), c.APIKey(), transcribe.Options{
		Language:      t.Language,
		Model:         t.Model,
		Prompt:        t.Prompt,
		WhisperBinary: t.WhisperBinary,
		ModelDir:      t.WhisperModels,
		Threads:       t.Threads,
		Timeout:       time.Duration(t.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create transcriber: %w", err)
	}

	converter, err := convert.New(c.Convert.Profile)
	if err != nil {
		return nil, err
	}

	generator := subtitle.NewGenerator(formatter.New(c.Format.MaxLineLength))

	runner := batch.NewRunner(transcriber, converter, generator, logger, batch.Options{
		Suffix:  c.Output.Suffix,
		Formats: outputFormats(c.Output.Formats),
		// remote providers have upload limits; the local binary decodes
		// media itself
		Prepare:      t.Provider != config.ProviderLocal,
		ChunkSeconds: float64(t.ChunkMinutes * 60),
		Concurrency:  t.Concurrency,
	})
	runner.Progress = batch.NewProgress(os.Stderr)
	return runner, nil
}
