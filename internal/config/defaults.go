package config

// providers
const (
	ProviderLocal  = "local"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

const (
	// DefaultPrompt steers recognition toward Taiwan phrasing and short
	// sentences.
	DefaultPrompt = "這是一段繁體中文的對話，請使用台灣地區的用詞。每個句子盡量保持簡短*最多只能有18個字，請在適當的地方斷句*，適合字幕顯示。"

	defaultLocalModel     = "medium"
	defaultWhisperBinary  = "faster-whisper"
	defaultConvertProfile = "s2twp"
	defaultSuffix         = "_cht"
	defaultMaxLineLength  = 18
	defaultConcurrency    = 3
	defaultTimeoutSeconds = 3600
	defaultDebounceMillis = 1500
)

// ConvertNone disables script conversion.
const ConvertNone = "none"

// LocalModels lists the whisper model sizes offered for the local provider.
var LocalModels = []string{"base", "small", "medium", "large-v3"}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Transcribe: Transcribe{
			Provider:       ProviderLocal,
			Language:       "zh",
			Prompt:         DefaultPrompt,
			Concurrency:    defaultConcurrency,
			WhisperBinary:  defaultWhisperBinary,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Convert: Convert{
			Profile: defaultConvertProfile,
		},
		Format: Format{
			MaxLineLength: defaultMaxLineLength,
		},
		Output: Output{
			Suffix:  defaultSuffix,
			Formats: []string{"srt", "txt"},
		},
		Watch: Watch{
			DebounceMillis: defaultDebounceMillis,
		},
		Logging: Logging{
			Level: "info",
		},
	}
}
