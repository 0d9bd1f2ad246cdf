package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/mgpai22/zhsub/internal/audio"
	"github.com/mgpai22/zhsub/internal/convert"
	"github.com/mgpai22/zhsub/internal/logging"
	"github.com/mgpai22/zhsub/internal/subtitle"
	"github.com/mgpai22/zhsub/internal/transcribe"
)

// ErrCanceled marks files and batches stopped by context cancellation.
var ErrCanceled = errors.New("batch canceled")

// Options tunes a Runner.
type Options struct {
	// Suffix is appended to the media base name, "_cht" by default.
	Suffix  string
	Formats []subtitle.Format
	// Prepare compresses media to mono audio before recognition. Remote
	// providers need it to stay under upload limits.
	Prepare bool
	// ChunkSeconds > 0 splits prepared audio and transcribes the chunks
	// concurrently.
	ChunkSeconds float64
	Concurrency  int
	TempDir      string
}

// Runner processes media files sequentially.
type Runner struct {
	Transcriber transcribe.Transcriber
	Converter   convert.Converter
	Generator   *subtitle.Generator
	Logger      *logging.Logger
	Progress    Progress
	Options     Options

	prepare func(ctx context.Context, mediaPath, tempDir string) (string, error)
	now     func() time.Time
}

func NewRunner(
	t transcribe.Transcriber,
	c convert.Converter,
	g *subtitle.Generator,
	logger *logging.Logger,
	opts Options,
) *Runner {
	if c == nil {
		c = convert.Identity{}
	}
	if g == nil {
		g = subtitle.NewGenerator(nil)
	}
	if logger == nil {
		logger = logging.Nop()
	}
	if opts.Suffix == "" {
		opts.Suffix = "_cht"
	}
	if len(opts.Formats) == 0 {
		opts.Formats = []subtitle.Format{subtitle.FormatSRT, subtitle.FormatTXT}
	}
	return &Runner{
		Transcriber: t,
		Converter:   c,
		Generator:   g,
		Logger:      logger,
		Progress:    nopProgress{},
		Options:     opts,
		prepare:     audio.Prepare,
		now:         time.Now,
	}
}

// Run processes files in order and returns the per-file outcome.
func (r *Runner) Run(ctx context.Context, files []string) Summary {
	summary := Summary{
		RunID: uuid.NewString(),
		Total: len(files),
	}
	log := r.Logger.WithRunID(summary.RunID)
	log.Infow("batch started", "files", len(files))

	r.Progress.Start(len(files))
	defer r.Progress.Finish()

	for i, path := range files {
		if ctx.Err() != nil {
			summary.Canceled = true
			break
		}

		result := r.runFile(ctx, log, i, len(files), path)
		summary.Results = append(summary.Results, result)

		switch result.Status {
		case StatusSucceeded:
			summary.Succeeded++
		case StatusCanceled:
			summary.Canceled = true
		}
		if summary.Canceled {
			break
		}
	}

	if summary.Canceled {
		log.Warnw("batch canceled", "processed", len(summary.Results))
	}
	log.Infow(summary.Line(), "succeeded", summary.Succeeded, "total", summary.Total)
	return summary
}

func (r *Runner) runFile(
	ctx context.Context,
	log *logging.Logger,
	index, total int,
	path string,
) FileResult {
	started := r.now()
	result := FileResult{Path: path}
	log = log.With(logging.FieldFile, path)

	finish := func(status Status, err error) FileResult {
		result.Status = status
		result.Err = err
		result.Elapsed = r.now().Sub(started)
		switch status {
		case StatusSucceeded:
			log.Infow("file done", "segments", result.Segments, "outputs", result.Outputs, "elapsed", result.Elapsed)
		case StatusCanceled:
			log.Warnw("file canceled", "segments", result.Segments)
		default:
			log.Errorw("file failed", "error", err)
		}
		return result
	}

	if _, err := os.Stat(path); err != nil {
		return finish(StatusFailed, fmt.Errorf("file not found: %w", err))
	}

	log.Infow("transcribing", "position", fmt.Sprintf("%d/%d", index+1, total))
	r.Progress.File(index, filepath.Base(path))

	recognized, err := r.recognize(ctx, path)
	if err != nil {
		if ctx.Err() != nil {
			return finish(StatusCanceled, fmt.Errorf("%w: %w", ErrCanceled, ctx.Err()))
		}
		return finish(StatusFailed, fmt.Errorf("transcribe: %w", err))
	}

	duration := recognized.Duration
	if duration <= 0 && len(recognized.Segments) > 0 {
		duration = recognized.Segments[len(recognized.Segments)-1].End
	}
	if duration <= 0 {
		duration = 1
	}

	converted := make([]subtitle.Segment, 0, len(recognized.Segments))
	for i, seg := range recognized.Segments {
		if ctx.Err() != nil {
			return finish(StatusCanceled, fmt.Errorf("%w: %w", ErrCanceled, ctx.Err()))
		}

		text, err := r.Converter.Convert(seg.Text)
		if err != nil {
			return finish(StatusFailed, fmt.Errorf("segment %d: %w", i+1, err))
		}
		seg.Text = text
		converted = append(converted, seg)
		result.Segments++

		log.Debugw("segment", logging.FieldSegment, i+1, "start", seg.Start, "end", seg.End, "text", text)
		r.Progress.Segment(index, seg.End/duration)
	}

	sub, err := r.Generator.Generate(converted)
	if err != nil {
		return finish(StatusFailed, fmt.Errorf("generate subtitles: %w", err))
	}

	for _, format := range r.Options.Formats {
		out := subtitle.OutputPath(path, r.Options.Suffix, format)
		writer, err := subtitle.NewWriter(format)
		if err != nil {
			return finish(StatusFailed, err)
		}
		if err := writer.Write(sub, out); err != nil {
			return finish(StatusFailed, fmt.Errorf("write %s: %w", format, err))
		}
		result.Outputs = append(result.Outputs, out)
	}

	return finish(StatusSucceeded, nil)
}

// recognize prepares and optionally chunks the media before handing it to
// the transcriber.
func (r *Runner) recognize(ctx context.Context, path string) (*transcribe.Result, error) {
	opts := r.Options
	if !opts.Prepare && opts.ChunkSeconds <= 0 {
		return r.Transcriber.Transcribe(ctx, path)
	}

	tempDir, err := os.MkdirTemp(opts.TempDir, "zhsub-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	audioPath, err := r.prepare(ctx, path, tempDir)
	if err != nil {
		return nil, fmt.Errorf("prepare audio: %w", err)
	}

	if opts.ChunkSeconds <= 0 {
		return r.Transcriber.Transcribe(ctx, audioPath)
	}

	chunks, err := audio.ChunkAudio(ctx, audioPath, opts.ChunkSeconds, filepath.Join(tempDir, "chunks"), 0)
	if err != nil {
		return nil, fmt.Errorf("split audio: %w", err)
	}
	return transcribe.TranscribeWithChunks(ctx, r.Transcriber, chunks, opts.Concurrency)
}
