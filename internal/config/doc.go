// Package config loads zhsub settings from TOML.
//
// Lookup order is the --config flag, ~/.config/zhsub/config.toml and then
// ./zhsub.toml in the working directory. A missing file is not an error: the
// defaults apply. API keys left empty fall back to OPENAI_API_KEY and
// GEMINI_API_KEY.
package config
