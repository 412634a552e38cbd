// wizard is a terminal game about a little wizard who walks a tile grid and
// topples trees into each other.
//
// Usage:
//
//	wizard play [map]   - Play a map (default from config)
//	wizard menu         - Pick maps interactively
//	wizard serve        - Start SSH server for remote play
//	wizard maps         - List available maps
//	wizard stats        - Show felling records
//
// Global flags:
//
//	--config <path>     - Custom config YAML
//	--pace <preset>     - relaxed, normal or brisk
//	--seed <value>      - Seed for generated maps
//	--db <path>         - Database path (default: ~/.wizard/wizard.db)
//	--maps <dir>        - Extra directory of YAML maps
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/little-wizard/internal/config"
	"github.com/vovakirdan/little-wizard/internal/levels"
)

var (
	// Global flags
	flagConfig   string
	flagPace     string
	flagSeed     int64
	flagDBPath   string
	flagMapsDir  string
	flagLogLevel string

	// Resolved in PersistentPreRunE
	cfg    config.WizardConfig
	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Little Wizard - topple forests in your terminal",
	Long: `Little Wizard is a terminal game. Click to walk, drag across a tree
to mark which way it falls, then hold on it to start the chain.

Available commands:
  play     - Play a map directly
  menu     - Interactive map picker
  serve    - Start SSH server for remote play
  maps     - Show all available maps
  stats    - Show felling records

Examples:
  wizard play grove
  wizard play forest --seed 42
  wizard menu --pace brisk
  wizard serve
  wizard stats`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPace, "pace", "", "Pace preset: relaxed, normal, brisk")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Seed for generated maps (0 = random)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to records database")
	rootCmd.PersistentFlags().StringVar(&flagMapsDir, "maps", "", "Extra directory of YAML maps")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mapsCmd)
	rootCmd.AddCommand(statsCmd)
}

// setup loads configuration, applies flag overrides, builds the logger and
// registers maps from the configured directory.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	cfg = loaded

	if flagPace != "" {
		preset, ok := config.ParsePace(flagPace)
		if !ok {
			return fmt.Errorf("unknown pace %q (want relaxed, normal or brisk)", flagPace)
		}
		config.ApplyPace(&cfg, preset)
	}
	if cmd.Flags().Changed("seed") {
		cfg.Map.Seed = flagSeed
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagMapsDir != "" {
		cfg.Map.Dir = flagMapsDir
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "wizard",
		Level:           level,
	})
	log.SetDefault(logger)

	if cfg.Map.Dir != "" {
		dir, err := config.ExpandHome(cfg.Map.Dir)
		if err != nil {
			return err
		}
		loader := levels.NewLoader(dir)
		loader.Logger = logger.WithPrefix("levels")
		added, err := loader.RegisterAll()
		if err != nil {
			logger.Warn("could not load maps", "dir", dir, "err", err)
		} else if len(added) > 0 {
			logger.Debug("registered maps", "dir", dir, "ids", added)
		}
	}
	return nil
}

// logToFile redirects logging to ~/.wizard/wizard.log while a full-screen
// program owns the terminal. The returned func restores stderr.
func logToFile() func() {
	path, err := config.ExpandHome("~/.wizard/wizard.log")
	if err != nil {
		return func() {}
	}
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(filepath.Dir(path), 0o755)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return func() {}
	}
	logger.SetOutput(f)
	return func() {
		logger.SetOutput(os.Stderr)
		f.Close()
	}
}
