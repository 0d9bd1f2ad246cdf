package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mgpai22/zhsub/internal/config"
	"github.com/mgpai22/zhsub/internal/logging"
)

var (
	verbose    bool
	configPath string

	cfg       *config.Config
	cfgPath   string
	cfgExists bool
	logger    *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "zhsub",
	Short: "Chinese subtitle generator with Taiwan-style formatting",
	Long: `zhsub transcribes Chinese audio and video into subtitles.

Recognized speech is converted to Traditional Chinese, cleaned of filler
words, punctuated with full-width marks and split into short lines suited
for on-screen display. Existing SRT files can be reformatted with the same
rules.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", "", "Path to config file (default ~/.config/zhsub/config.toml or ./zhsub.toml)")
}

// setup loads the configuration and builds the logger every command uses.
func setup(cmd *cobra.Command, args []string) error {
	loaded, path, exists, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg, cfgPath, cfgExists = loaded, path, exists

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	logger, err = logging.New(logging.Options{
		Verbose: verbose,
		Level:   level,
		File:    cfg.Logging.File,
	})
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}

	if exists {
		logger.Debugw("config loaded", "path", path)
	} else if configPath != "" && cmd != configInitCmd {
		logger.Warnw("config file not found, using defaults", "path", path)
	}
	return nil
}
