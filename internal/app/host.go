// Package app hosts the scene session independently of any window: it
// rebuilds the session on reset, runs the level loader and feeds the
// operator panel. The viewer and the headless runner both sit on top of it.
package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/thirdlf03/zawa/internal/config"
	"github.com/thirdlf03/zawa/internal/level"
	"github.com/thirdlf03/zawa/internal/logger"
	"github.com/thirdlf03/zawa/internal/panel"
	"github.com/thirdlf03/zawa/internal/scene"
	"github.com/thirdlf03/zawa/internal/session"
)

// Host owns the current scene session and everything that outlives it:
// the command queue, the level loader and the operator panel. A reset
// command replaces the session with a fresh one built from configuration.
type Host struct {
	cfg    *config.Config
	log    *zap.Logger
	queue  *scene.Queue
	loader *level.Loader
	panel  *panel.Server

	width, height int

	session    *scene.Session
	cancelLoad context.CancelFunc
	resets     int
	listErr    error
}

// NewHost creates a host for a width x height surface. The panel is created
// when enabled in cfg but not started; see ServePanel.
func NewHost(cfg *config.Config, width, height int) *Host {
	h := &Host{
		cfg:    cfg,
		log:    logger.Named("host"),
		queue:  scene.NewQueue(scene.DefaultQueueSize),
		loader: level.NewLoader(cfg.Level.Workers),
		width:  width,
		height: height,
	}
	if cfg.Panel.Enabled {
		h.panel = panel.New(cfg.Panel, h.queue)
	}
	return h
}

// WithLoadFunc replaces how level assets are read.
func (h *Host) WithLoadFunc(fn level.LoadFunc) *Host {
	h.loader.WithLoadFunc(fn)
	return h
}

// Start builds the first session and begins loading the level.
func (h *Host) Start() {
	h.build()
}

// build replaces the session. An unreadable ball list is logged and the
// session starts without balls so the scene keeps stepping.
func (h *Host) build() {
	entries, err := session.Load(h.cfg.Session.BallsFile)
	h.listErr = err
	if err != nil {
		h.log.Error("ball list unreadable, starting without balls",
			zap.String("balls_file", h.cfg.Session.BallsFile),
			zap.Error(err))
		entries = nil
	}

	if h.cancelLoad != nil {
		h.cancelLoad()
	}
	ctx, cancel := context.WithCancel(context.Background())
	h.cancelLoad = cancel

	s := scene.New(h.cfg.Scene(), entries, h.width, h.height, h.queue)
	assets := h.cfg.Assets()
	if len(assets) == 0 {
		s.BeginLoading(nil)
	} else {
		s.BeginLoading(h.loader.Start(ctx, assets))
	}
	h.session = s

	h.log.Info("session started",
		zap.String("balls_file", h.cfg.Session.BallsFile),
		zap.Int("balls", len(entries)),
		zap.Int("assets", len(assets)),
		zap.Int("resets", h.resets))
}

// Frame advances the current session by delta seconds, rebuilding it if a
// reset was requested, and publishes the new state to the panel.
func (h *Host) Frame(delta float64) scene.FrameStats {
	st := h.session.Frame(delta)
	if st.Reset {
		h.resets++
		h.build()
	}
	h.Publish()
	return st
}

// BallListErr returns why the ball list could not be read when the current
// session was built, or nil.
func (h *Host) BallListErr() error {
	return h.listErr
}

// Publish pushes the current state to panel clients.
func (h *Host) Publish() {
	if h.panel != nil {
		h.panel.Publish(h.session.Snapshot())
	}
}

// Session returns the current session. It changes after a reset.
func (h *Host) Session() *scene.Session {
	return h.session
}

// Queue returns the command queue shared by every session.
func (h *Host) Queue() *scene.Queue {
	return h.queue
}

// Resets returns how many times the session was rebuilt.
func (h *Host) Resets() int {
	return h.resets
}

// Resize records the new surface size and relays it to the session.
func (h *Host) Resize(width, height int) {
	h.width, h.height = width, height
	h.session.Resize(width, height)
}

// ServePanel runs the operator panel until ctx is done. It returns
// immediately when the panel is disabled.
func (h *Host) ServePanel(ctx context.Context) error {
	if h.panel == nil {
		return nil
	}
	return h.panel.ListenAndServe(ctx)
}

// Close stops any loading still in flight.
func (h *Host) Close() {
	if h.cancelLoad != nil {
		h.cancelLoad()
	}
}
