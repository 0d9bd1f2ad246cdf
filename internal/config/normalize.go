package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeTranscribe()
	c.normalizeOutput()

	c.Convert.Profile = strings.ToLower(strings.TrimSpace(c.Convert.Profile))
	if c.Convert.Profile == "" {
		c.Convert.Profile = defaultConvertProfile
	}
	if c.Format.MaxLineLength <= 0 {
		c.Format.MaxLineLength = defaultMaxLineLength
	}
	if c.Watch.DebounceMillis <= 0 {
		c.Watch.DebounceMillis = defaultDebounceMillis
	}

	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	var err error
	if c.Logging.File, err = expandPath(strings.TrimSpace(c.Logging.File)); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	if c.Transcribe.WhisperModels, err = expandPath(strings.TrimSpace(c.Transcribe.WhisperModels)); err != nil {
		return fmt.Errorf("transcribe.whisper_model_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTranscribe() {
	t := &c.Transcribe
	t.Provider = strings.ToLower(strings.TrimSpace(t.Provider))
	if t.Provider == "" {
		t.Provider = ProviderLocal
	}
	t.Model = strings.TrimSpace(t.Model)
	if t.Model == "" && t.Provider == ProviderLocal {
		t.Model = defaultLocalModel
	}
	t.Language = strings.TrimSpace(t.Language)
	if strings.TrimSpace(t.Prompt) == "" {
		t.Prompt = DefaultPrompt
	}
	if t.Concurrency <= 0 {
		t.Concurrency = defaultConcurrency
	}
	if t.ChunkMinutes < 0 {
		t.ChunkMinutes = 0
	}
	if t.TimeoutSeconds <= 0 {
		t.TimeoutSeconds = defaultTimeoutSeconds
	}
	t.WhisperBinary = strings.TrimSpace(t.WhisperBinary)
	if t.WhisperBinary == "" {
		t.WhisperBinary = defaultWhisperBinary
	}

	t.OpenAIAPIKey = strings.TrimSpace(t.OpenAIAPIKey)
	if t.OpenAIAPIKey == "" {
		t.OpenAIAPIKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	}
	t.GeminiAPIKey = strings.TrimSpace(t.GeminiAPIKey)
	if t.GeminiAPIKey == "" {
		t.GeminiAPIKey = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	}
}

func (c *Config) normalizeOutput() {
	c.Output.Suffix = strings.TrimSpace(c.Output.Suffix)

	seen := make(map[string]bool, len(c.Output.Formats))
	formats := make([]string, 0, len(c.Output.Formats))
	for _, format := range c.Output.Formats {
		format = strings.ToLower(strings.TrimSpace(format))
		if format == "" || seen[format] {
			continue
		}
		seen[format] = true
		formats = append(formats, format)
	}
	if len(formats) == 0 {
		formats = []string{"srt", "txt"}
	}
	c.Output.Formats = formats
}
