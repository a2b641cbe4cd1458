// Package panel serves the operator control panel over websockets. Clients
// send gravity, camera and reset commands and receive periodic session
// snapshots plus a notice whenever the picked ball changes.
package panel

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/thirdlf03/zawa/internal/logger"
	"github.com/thirdlf03/zawa/internal/scene"
)

// Config holds the panel server settings.
type Config struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Path    string `yaml:"path"`

	// StateInterval is how often snapshots are pushed.
	StateInterval time.Duration `yaml:"state_interval"`
	// PingInterval keeps idle connections alive; 0 disables pings.
	PingInterval time.Duration `yaml:"ping_interval"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DefaultConfig returns the panel defaults.
func DefaultConfig() Config {
	return Config{
		Enabled:       true,
		Addr:          "127.0.0.1:8765",
		Path:          "/ws",
		StateInterval: 100 * time.Millisecond,
		PingInterval:  5 * time.Second,
		WriteTimeout:  2 * time.Second,
	}
}

// Server fans session state out to panel clients and forwards their
// commands into a scene queue.
type Server struct {
	cfg      Config
	upgrader websocket.Upgrader
	queue    *scene.Queue
	log      *zap.Logger

	mu       sync.RWMutex
	clients  map[*SafeWriter]struct{}
	state    scene.State
	version  uint64
	selected string

	notify chan string
}

// New creates a server posting commands into queue.
func New(cfg Config, queue *scene.Queue) *Server {
	def := DefaultConfig()
	if cfg.StateInterval <= 0 {
		cfg.StateInterval = def.StateInterval
	}
	if cfg.Path == "" {
		cfg.Path = def.Path
	}
	return &Server{
		cfg: cfg,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		queue:   queue,
		log:     logger.Named("panel"),
		clients: make(map[*SafeWriter]struct{}),
		notify:  make(chan string, 1),
	}
}

// Publish records the latest session state. It never blocks; a change of
// selection is pushed to clients ahead of the next periodic snapshot.
func (s *Server) Publish(st scene.State) {
	s.mu.Lock()
	s.state = st
	s.version++
	changed := st.Selected != s.selected
	s.selected = st.Selected
	s.mu.Unlock()

	if !changed {
		return
	}
	select {
	case s.notify <- st.Selected:
	default:
		// Replace the stale pending name with the newest one.
		select {
		case <-s.notify:
		default:
		}
		select {
		case s.notify <- st.Selected:
		default:
		}
	}
}

// Clients returns the number of connected clients.
func (s *Server) Clients() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Handler returns an http handler serving the websocket endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(s.cfg.Path, s.HandleWS)
	return mux
}

// HandleWS upgrades the request and serves one client until it disconnects.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := NewSafeWriter(conn, s.cfg.WriteTimeout)
	defer func() {
		s.mu.Lock()
		delete(s.clients, client)
		s.mu.Unlock()
		_ = client.Close()
		s.log.Info("panel client disconnected", zap.String("remote", conn.RemoteAddr().String()))
	}()

	s.log.Info("panel client connected", zap.String("remote", conn.RemoteAddr().String()))

	if err := client.WriteJSON(NewInfoMessage("connected")); err != nil {
		return
	}
	s.mu.RLock()
	st := s.state
	s.mu.RUnlock()
	if err := client.WriteJSON(StateMessage{Type: MessageTypeState, State: st}); err != nil {
		return
	}

	s.mu.Lock()
	s.clients[client] = struct{}{}
	s.mu.Unlock()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn("websocket read failed", zap.Error(err))
			}
			return
		}

		cmd, err := ParseCommand(data)
		if err != nil {
			s.log.Debug("bad panel message", zap.Error(err))
			_ = client.WriteJSON(NewErrorMessage(err))
			continue
		}
		if !s.queue.Post(cmd) {
			s.log.Warn("command dropped, queue full", zap.Stringer("command", cmd.Kind))
			_ = client.WriteJSON(NewErrorMessage(errors.New("busy, command dropped")))
			continue
		}
		s.log.Debug("panel command", zap.Stringer("command", cmd.Kind))
	}
}

// Run pushes snapshots and selection changes to clients until ctx is done.
func (s *Server) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.StateInterval)
	defer ticker.Stop()

	var ping <-chan time.Time
	if s.cfg.PingInterval > 0 {
		pt := time.NewTicker(s.cfg.PingInterval)
		defer pt.Stop()
		ping = pt.C
	}

	var sent uint64
	for {
		select {
		case <-ctx.Done():
			return
		case name := <-s.notify:
			s.broadcast(SelectedMessage{Type: MessageTypeSelected, Name: name})
		case <-ticker.C:
			s.mu.RLock()
			st, v := s.state, s.version
			s.mu.RUnlock()
			if v == sent {
				continue
			}
			sent = v
			s.broadcast(StateMessage{Type: MessageTypeState, State: st})
		case <-ping:
			for _, c := range s.snapshotClients() {
				if err := c.WriteControl(websocket.PingMessage, nil); err != nil {
					s.log.Debug("ping failed", zap.Error(err))
				}
			}
		}
	}
}

func (s *Server) snapshotClients() []*SafeWriter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*SafeWriter, 0, len(s.clients))
	for c := range s.clients {
		out = append(out, c)
	}
	return out
}

func (s *Server) broadcast(v any) {
	for _, c := range s.snapshotClients() {
		if err := c.WriteJSON(v); err != nil {
			s.log.Debug("broadcast failed", zap.Error(err))
			_ = c.Close()
		}
	}
}

// ListenAndServe serves the panel on cfg.Addr and pushes state until ctx
// is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go s.Run(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.log.Info("panel listening", zap.String("addr", s.cfg.Addr), zap.String("path", s.cfg.Path))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
