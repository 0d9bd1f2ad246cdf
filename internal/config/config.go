package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Transcribe configures speech recognition.
type Transcribe struct {
	Provider       string `toml:"provider"`
	Model          string `toml:"model"`
	Language       string `toml:"language"`
	Prompt         string `toml:"prompt"`
	ChunkMinutes   int    `toml:"chunk_minutes"`
	Concurrency    int    `toml:"concurrency"`
	OpenAIAPIKey   string `toml:"openai_api_key"`
	GeminiAPIKey   string `toml:"gemini_api_key"`
	WhisperBinary  string `toml:"whisper_binary"`
	WhisperModels  string `toml:"whisper_model_dir"`
	Threads        int    `toml:"threads"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Convert selects the OpenCC profile, or "none".
type Convert struct {
	Profile string `toml:"profile"`
}

// Format configures the post-processing pipeline.
type Format struct {
	MaxLineLength int `toml:"max_line_length"`
}

// Output controls where and what gets written.
type Output struct {
	Suffix  string   `toml:"suffix"`
	Formats []string `toml:"formats"`
}

// Watch configures directory watch mode.
type Watch struct {
	DebounceMillis    int  `toml:"debounce_ms"`
	ReformatSubtitles bool `toml:"reformat_subtitles"`
}

// Logging configures log output.
type Logging struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Config is the full zhsub configuration.
type Config struct {
	Transcribe Transcribe `toml:"transcribe"`
	Convert    Convert    `toml:"convert"`
	Format     Format     `toml:"format"`
	Output     Output     `toml:"output"`
	Watch      Watch      `toml:"watch"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path of the per-user config file.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/zhsub/config.toml")
}

// Load locates, parses, normalizes and validates a configuration file. It
// returns the resolved path and whether that file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("zhsub.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// APIKey returns the key for the configured remote provider. The local
// provider needs none.
func (c *Config) APIKey() string {
	switch c.Transcribe.Provider {
	case ProviderOpenAI:
		return c.Transcribe.OpenAIAPIKey
	case ProviderGemini:
		return c.Transcribe.GeminiAPIKey
	default:
		return ""
	}
}

// Encode renders the effective configuration as TOML with secrets masked.
func (c *Config) Encode() (string, error) {
	masked := *c
	masked.Transcribe.OpenAIAPIKey = maskSecret(c.Transcribe.OpenAIAPIKey)
	masked.Transcribe.GeminiAPIKey = maskSecret(c.Transcribe.GeminiAPIKey)

	data, err := toml.Marshal(masked)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return string(data), nil
}

func maskSecret(value string) string {
	if len(value) <= 4 {
		return strings.Repeat("*", len(value))
	}
	return strings.Repeat("*", len(value)-4) + value[len(value)-4:]
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// CreateSample writes the sample configuration to path. An existing file is
// left alone unless overwrite is set.
func CreateSample(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists at %s", path)
		}
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
