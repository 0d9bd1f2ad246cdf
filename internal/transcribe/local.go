package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/mgpai22/zhsub/internal/subtitle"
)

const (
	defaultLocalModel   = "medium"
	defaultLocalBinary  = "faster-whisper"
	defaultLocalTimeout = time.Hour
	localBeamSize       = 5
)

// LocalTranscriber shells out to a whisper CLI (faster-whisper or a
// whisper.cpp wrapper) that prints whisper JSON on stdout.
type LocalTranscriber struct {
	binary  string
	options Options
}

// whisper CLI JSON output
type localOutput struct {
	Segments []whisperSegment `json:"segments"`
	Language string           `json:"language"`
}

func NewLocalTranscriber(opts Options) (*LocalTranscriber, error) {
	if opts.WhisperBinary == "" {
		opts.WhisperBinary = defaultLocalBinary
	}
	if opts.Model == "" {
		opts.Model = defaultLocalModel
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultLocalTimeout
	}

	binary, err := exec.LookPath(opts.WhisperBinary)
	if err != nil {
		return nil, fmt.Errorf("whisper binary %q not found: %w", opts.WhisperBinary, err)
	}

	return &LocalTranscriber{binary: binary, options: opts}, nil
}

// Transcribe runs the CLI once for the whole file. Cancellation and the
// timeout kill the entire process group.
func (t *LocalTranscriber) Transcribe(ctx context.Context, audioPath string) (*Result, error) {
	if _, err := os.Stat(audioPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("audio file not found: %s", audioPath)
	}

	runCtx, cancel := context.WithTimeout(ctx, t.options.Timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, t.binary, t.buildArgs(audioPath)...)
	setProcessGroup(cmd)
	cmd.Cancel = func() error {
		return killProcessGroup(cmd.Process)
	}
	cmd.WaitDelay = 5 * time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("local whisper timed out after %s", t.options.Timeout)
		}
		return nil, fmt.Errorf("local whisper failed: %w: %s", err, lastLine(stderr.String()))
	}

	return parseLocalOutput(stdout.Bytes(), t.options.Language)
}

func (t *LocalTranscriber) buildArgs(audioPath string) []string {
	args := []string{"--model", t.options.Model}

	if t.options.ModelDir != "" {
		args = append(args, "--model-dir", t.options.ModelDir)
	}
	if t.options.Language != "" {
		args = append(args, "--language", t.options.Language)
	}
	if t.options.Prompt != "" {
		args = append(args, "--initial-prompt", t.options.Prompt)
	}
	args = append(args, "--beam-size", strconv.Itoa(localBeamSize))
	if t.options.Threads > 0 {
		args = append(args, "--threads", strconv.Itoa(t.options.Threads))
	}

	args = append(args, "--output-json", audioPath)
	return args
}

func parseLocalOutput(data []byte, fallbackLanguage string) (*Result, error) {
	var output localOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("failed to parse local whisper output: %w", err)
	}

	result := &Result{Language: output.Language}
	if result.Language == "" {
		result.Language = fallbackLanguage
	}

	for _, seg := range output.Segments {
		result.Segments = append(result.Segments, subtitle.Segment{
			Start: seg.Start,
			End:   seg.End,
			Text:  strings.TrimSpace(seg.Text),
		})
	}

	if n := len(result.Segments); n > 0 {
		result.Duration = result.Segments[n-1].End
	}
	return result, nil
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
