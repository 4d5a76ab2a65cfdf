// arena runs a multiplayer snake arena: one human snake against AI opponents.
//
// Usage:
//
//	arena play               - Play in the terminal
//	arena serve              - Start SSH server, one private arena per session
//	arena web                - Serve the arena to browsers over WebSocket
//	arena simulate           - Run a headless game and print the leaderboard
//	arena skins              - List available skins
//	arena config             - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Arena config YAML (default: search order in config.Load)
//	--seed <value>      - RNG seed for reproducible games
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Write logs to a file instead of stderr
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-arena/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arena",
	Short: "Snake Arena - outlast the AI snakes",
	Long: `Snake Arena is a tick-based multiplayer snake game. You steer one
snake against AI opponents of varying skill; the last snake alive wins.

Available commands:
  play      - Play in your terminal
  serve     - Start SSH server for remote play
  web       - Serve the arena to browsers
  simulate  - Run a headless game
  skins     - List snake skins
  config    - Print the effective configuration

Examples:
  arena play
  arena play --ai 4 --difficulty hard
  arena serve --ssh :2222
  arena web --addr :8080
  arena simulate --ticks 500 --seed 42`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to arena config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = use config, then time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file instead of stderr")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(skinsCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the process logger from the global flags. An empty
// fallbackFile means stderr when --log-file is unset. The returned closer
// releases the log file, if any.
func newLogger(prefix, fallbackFile string) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var w io.Writer = os.Stderr
	closer := func() {}
	path := flagLogFile
	if path == "" {
		path = fallbackFile
	}
	if path != "" {
		if mkErr := os.MkdirAll(filepath.Dir(path), 0o700); mkErr != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", mkErr)
		}
		f, openErr := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if openErr != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", openErr)
		}
		w = f
		closer = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          prefix,
	})
	return logger, closer, nil
}

// loadConfig resolves the configuration, applies the --seed override and
// any command-specific tweaks, then validates. Warnings go to logger.
func loadConfig(logger *log.Logger, tweak func(*config.GameConfig) error) (config.GameConfig, error) {
	cfg, source, err := config.LoadWithSource(flagConfig)
	if err != nil {
		return config.GameConfig{}, err
	}
	if flagSeed != 0 {
		cfg.Seed = flagSeed
	}
	if tweak != nil {
		if err := tweak(&cfg); err != nil {
			return config.GameConfig{}, err
		}
	}
	if err := config.Validate(cfg); err != nil {
		return config.GameConfig{}, err
	}

	logger.Debug("config loaded", "source", source)
	for _, w := range config.Warnings(cfg) {
		logger.Warn(w)
	}
	return cfg, nil
}

// fail prints err and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
