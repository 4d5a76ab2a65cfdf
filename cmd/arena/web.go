package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-arena/internal/engine"
	"github.com/vovakirdan/snake-arena/internal/platform/web"
)

var flagWebAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the arena to browsers",
	Long: `Start an HTTP server with a browser view of one shared arena.

Every connected browser watches the same game and may steer the player
snake. Snapshots are streamed over a WebSocket at /ws.

Examples:
  arena web                 # Listen on :8080
  arena web --addr :9000 --ai 3`,
	Args: cobra.NoArgs,
	Run:  runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address (host:port)")
	addGameFlags(webCmd)
}

func runWeb(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger("arena-web", "")
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	cfg, err := loadConfig(logger, applyGameFlags)
	if err != nil {
		fail("%v", err)
	}

	eng, err := engine.New(cfg, engine.WithLogger(logger))
	if err != nil {
		fail("%v", err)
	}
	defer eng.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Open http://localhost%s in a browser\n", flagWebAddr)
	fmt.Println("Press Ctrl+C to stop")

	if err := web.NewServer(eng, logger).ListenAndServe(ctx, flagWebAddr); err != nil {
		fail("server: %v", err)
	}
}
