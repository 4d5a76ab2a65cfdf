package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/snake-arena/internal/config"
	"github.com/vovakirdan/snake-arena/internal/engine"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.snake-arena/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// MaxSessions caps concurrent games. Zero means no limit.
	MaxSessions int

	// Game is the configuration every session's game is built from.
	Game config.GameConfig
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		MaxSessions: 20,
		Game:        config.DefaultGameConfig(),
	}
}

// SSHServer serves one private arena per SSH session.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	logger *log.Logger
	active atomic.Int32
}

// NewSSHServer creates a new SSH server with the given configuration.
// A nil logger logs to stderr.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if err := config.Validate(cfg.Game); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "arena-ssh",
		})
	}

	srv := &SSHServer{
		config: cfg,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		dir, dirErr := config.StateDir()
		if dirErr != nil {
			return nil, fmt.Errorf("cannot resolve state directory: %w", dirErr)
		}
		hostKeyPath = filepath.Join(dir, "host_key")
	}

	// Ensure host key directory exists
	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.limitMiddleware,
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler builds a fresh engine for each SSH session. The engine is
// closed when the session's context ends.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	if _, _, ok := sshSession.Pty(); !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	eng, err := engine.New(s.config.Game.Clone(),
		engine.WithLogger(s.logger.With("user", sshSession.User())),
	)
	if err != nil {
		s.logger.Error("cannot create game", "user", sshSession.User(), "error", err)
		return nil, nil
	}

	s.logger.Info("game assigned", "user", sshSession.User(), "game", eng.Snapshot().GameID)

	go func() {
		<-sshSession.Context().Done()
		eng.Close()
	}()

	return NewModel(eng), []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// limitMiddleware turns sessions away once MaxSessions games are running.
func (s *SSHServer) limitMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		n := s.active.Add(1)
		defer s.active.Add(-1)
		if limit := s.config.MaxSessions; limit > 0 && int(n) > limit {
			s.logger.Warn("session rejected, server full", "user", sshSession.User(), "active", n-1)
			wish.Fatalln(sshSession, "The arena is full, try again later.")
			return
		}
		next(sshSession)
	}
}

// ActiveSessions reports how many sessions are connected.
func (s *SSHServer) ActiveSessions() int {
	return int(s.active.Load())
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
