package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-arena/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagMaxSessions int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the arena SSH server",
	Long: `Start an SSH server where every connection plays its own arena.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.snake-arena/host_key

The play flags (--ai, --food, --speed, --difficulty) set the arena every
session gets.

Examples:
  arena serve                           # Listen on :23234 with auto-generated key
  arena serve --ssh :2222               # Listen on port 2222
  arena serve --host-key ./my_host_key  # Use specific host key
  arena serve --ai 5 --difficulty hard

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().IntVar(&flagMaxSessions, "max-sessions", 20, "Maximum concurrent games (0 = unlimited)")
	addGameFlags(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger("arena-ssh", "")
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	game, err := loadConfig(logger, applyGameFlags)
	if err != nil {
		fail("%v", err)
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		MaxSessions: flagMaxSessions,
		Game:        game,
	}

	server, err := tui.NewSSHServer(cfg, logger)
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting arena SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fail("server: %v", err)
	}
}
