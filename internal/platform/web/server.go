package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/snake-arena/internal/config"
	"github.com/vovakirdan/snake-arena/internal/engine"
)

// WebSocketPath is where browsers connect.
const WebSocketPath = "/ws"

// MaxClients caps concurrent connections.
const MaxClients = 32

//go:embed static
var staticFiles embed.FS

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Local tool; any origin may watch
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// Server streams one engine to every connected browser.
type Server struct {
	eng    *engine.Engine
	feed   *engine.Feed
	hub    *Hub
	logger *log.Logger
}

// NewServer creates a server for eng and subscribes to its snapshots.
// A nil logger discards output.
func NewServer(eng *engine.Engine, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{eng: eng, feed: eng.Feed(outboxSize), hub: NewHub(), logger: logger}
}

// Handler returns the HTTP handler serving the socket and the static page.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(WebSocketPath, s.serveWS)

	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		// Only fails if the embed directive is wrong
		panic(err)
	}
	mux.Handle("/", http.FileServer(http.FS(static)))
	return mux
}

// Run broadcasts engine snapshots until ctx is done, then drops the
// subscription.
func (s *Server) Run(ctx context.Context) {
	defer s.feed.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case st, ok := <-s.feed.Events():
			if !ok {
				return
			}
			data, err := json.Marshal(StateMsg{Type: MsgState, State: st})
			if err != nil {
				s.logger.Error("cannot encode snapshot", "error", err)
				continue
			}
			s.hub.Broadcast(data)
		}
	}
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.Run(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("starting web server", "address", addr, "socket", WebSocketPath)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("ws upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	c := NewClient(ws)
	if !s.hub.TryAdd(c, MaxClients) {
		s.logger.Warn("client rejected, server full", "remote", r.RemoteAddr)
		data, _ := json.Marshal(ErrorMsg{Type: MsgError, Message: "server full"})
		_ = ws.WriteMessage(websocket.TextMessage, data)
		c.Close()
		return
	}
	defer s.hub.Remove(c.ID)
	s.logger.Info("client connected", "client", c.ID, "remote", r.RemoteAddr)

	go c.WriteLoop()
	_ = c.SendJSON(WelcomeMsg{Type: MsgWelcome, ClientID: c.ID, PlayerID: config.PlayerID})
	_ = c.SendJSON(StateMsg{Type: MsgState, State: s.eng.Snapshot()})

	err = c.ReadLoop(func(msg ClientMessage) {
		if applyErr := Apply(s.eng, msg); applyErr != nil {
			s.logger.Debug("rejected message", "client", c.ID, "type", msg.Type, "error", applyErr)
			_ = c.SendJSON(ErrorMsg{Type: MsgError, Message: applyErr.Error()})
		}
	})
	if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
		s.logger.Warn("ws read error", "client", c.ID, "error", err)
	}
	s.logger.Info("client disconnected", "client", c.ID)
}
