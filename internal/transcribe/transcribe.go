package transcribe

import (
	"context"
	"fmt"
	"time"

	"github.com/mgpai22/zhsub/internal/subtitle"
)

// transcription result; Duration is in seconds
type Result struct {
	Segments []subtitle.Segment
	Language string
	Duration float64
}

// interface for audio transcription
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (*Result, error)
}

// transcription service provider
type Provider string

const (
	ProviderLocal  Provider = "local"
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

// transcription options
type Options struct {
	Language string // Source language of audio, "zh" for this tool
	Model    string
	Prompt   string // initial prompt steering vocabulary and phrasing

	// local provider only
	WhisperBinary string
	ModelDir      string
	Threads       int
	Timeout       time.Duration
}

// creates transcriber based on provider
func Factory(
	ctx context.Context,
	provider Provider,
	apiKey string,
	opts Options,
) (Transcriber, error) {
	switch provider {
	case ProviderGemini:
		return NewGeminiTranscriber(ctx, apiKey, opts)
	case ProviderLocal:
		return NewLocalTranscriber(opts)
	case ProviderOpenAI:
		return NewOpenAITranscriber(ctx, apiKey, opts)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}
