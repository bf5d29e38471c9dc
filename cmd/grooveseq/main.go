package main

import (
	"fmt"
	"os"

	"github.com/grooveseq/grooveseq/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configFile string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "grooveseq",
	Short: "Groove step sequencer",
	Long: `grooveseq generates and plays 16 pad, 32 step drum patterns with swing,
humanized timing and velocity variation.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "read preferences from `file` instead of the user config dir")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (panic, fatal, error, warn, info, debug, trace)")
}

// loadPreferences returns the preferences and a logger configured by them.
func loadPreferences() (config.Preferences, *logrus.Logger, error) {
	logger := logrus.New()
	var prefs config.Preferences
	if configFile != "" {
		var err error
		if prefs, err = config.LoadFile(configFile); err != nil {
			return prefs, logger, err
		}
	} else {
		prefs = config.MakePreferences()
		if prefs.YmlError != nil {
			logger.WithError(prefs.YmlError).Warn("ignoring the user preferences")
			prefs = config.Defaults()
		}
	}
	logger.SetLevel(prefs.LogLevel())
	if logLevel != "" {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return prefs, logger, fmt.Errorf("invalid --log-level: %w", err)
		}
		logger.SetLevel(level)
	}
	return prefs, logger, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
