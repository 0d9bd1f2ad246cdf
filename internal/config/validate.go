package config

import (
	"errors"
	"fmt"
	"slices"
)

// Validate ensures the configuration is usable. Missing API keys are not
// checked here; the provider reports them when it is constructed.
func (c *Config) Validate() error {
	if err := c.validateTranscribe(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateTranscribe() error {
	t := c.Transcribe
	switch t.Provider {
	case ProviderLocal:
		if !slices.Contains(LocalModels, t.Model) {
			return fmt.Errorf("transcribe.model: %q is not one of %v", t.Model, LocalModels)
		}
	case ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("transcribe.provider: unsupported value %q", t.Provider)
	}
	if t.Concurrency > 16 {
		return errors.New("transcribe.concurrency must be at most 16")
	}
	return nil
}

func (c *Config) validateOutput() error {
	if c.Output.Suffix == "" {
		// the output would overwrite a subtitle sitting next to the media
		return errors.New("output.suffix must not be empty")
	}
	for _, format := range c.Output.Formats {
		switch format {
		case "srt", "txt", "vtt":
		default:
			return fmt.Errorf("output.formats: unsupported value %q", format)
		}
	}
	return nil
}
