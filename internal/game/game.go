// Package game runs the interactive viewer: it ties the window, input and
// renderer to the scene host and drives the frame loop.
package game

import (
	"context"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/thirdlf03/zawa/internal/app"
	"github.com/thirdlf03/zawa/internal/config"
	"github.com/thirdlf03/zawa/internal/engine/audio"
	"github.com/thirdlf03/zawa/internal/engine/input"
	"github.com/thirdlf03/zawa/internal/engine/renderer"
	"github.com/thirdlf03/zawa/internal/engine/screenshot"
	"github.com/thirdlf03/zawa/internal/engine/window"
	"github.com/thirdlf03/zawa/internal/logger"
	"github.com/thirdlf03/zawa/internal/scene"
)

// Game is the main application instance.
type Game struct {
	config   *config.Config
	running  bool
	log      *zap.Logger
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	audio    *audio.Manager
	shots    *screenshot.Capture
	host     *app.Host

	captureNext bool
}

// New opens the window and builds the first session.
func New(cfg *config.Config) (*Game, error) {
	g := &Game{
		config: cfg,
		log:    logger.Named("game"),
	}
	g.log.Info("initializing",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	// Create window (this also creates OpenGL context)
	var err error
	g.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
		Samples:    cfg.Window.Samples,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	g.renderer, err = renderer.New(renderer.DefaultConfig())
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.input = input.New()
	g.shots = screenshot.New(cfg.Window.ScreenshotDir, "zawa")

	g.audio = audio.New(cfg.Audio.Volume)
	if cfg.Audio.Enabled {
		if err := g.audio.Init(); err != nil {
			g.log.Warn("audio unavailable", zap.Error(err))
		}
	}

	width, height := g.window.Size()
	g.host = app.NewHost(cfg, width, height)
	g.host.Start()

	g.log.Info("initialized")
	return g, nil
}

// Run drives the frame loop until the window closes.
func (g *Game) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := g.host.ServePanel(ctx); err != nil {
			g.log.Error("panel stopped", zap.Error(err))
		}
	}()

	g.running = true
	lastTime := time.Now()
	fps := newFPSCounter(lastTime, time.Second)

	g.log.Info("starting frame loop")

	attracted := 0

	for g.running {
		now := time.Now()
		frame := now.Sub(lastTime)
		lastTime = now

		// 1. Input
		if g.input.Update() {
			g.running = false
			break
		}
		g.handleEvents()

		// 2. Simulation
		before := g.host.Session()
		st := g.host.Frame(frame.Seconds())
		if g.host.Session() != before {
			g.renderer.ResetStatics()
			g.audio.Play(audio.CueReset)
			attracted = 0
		}
		if st.Attracted > attracted {
			g.audio.Play(audio.CueAttract)
		}
		attracted = st.Attracted

		// 3. Render and present
		s := g.host.Session()
		statics := s.StaticBodies()
		g.renderer.SyncStatics(statics)
		drawW, drawH := g.window.DrawableSize()
		g.renderer.Render(s.Router(), drawW, drawH, statics, s.Balls(), s.Selected())
		if g.captureNext {
			g.captureNext = false
			g.capture()
		}
		g.window.SwapBuffers()

		if rate, worst, ok := fps.tick(now, frame); ok {
			if g.config.Window.ShowFPS {
				g.window.SetTitle(fmt.Sprintf("%s | %.0f fps | %s", g.config.Window.Title, rate, st.Phase))
			}
			g.log.Debug("fps",
				zap.Float64("fps", rate),
				zap.Duration("worst_frame", worst),
				zap.Int("sub_steps", st.SubSteps),
				zap.Int("contacts", s.World().ContactCount()),
				zap.Int("attracted", st.Attracted),
				zap.Stringer("phase", st.Phase),
			)
		}
	}

	return nil
}

func (g *Game) handleEvents() {
	s := g.host.Session()
	for _, event := range g.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			g.host.Resize(g.window.Size())

		case input.EventKeyDown:
			switch event.Key {
			case sdl.SCANCODE_ESCAPE:
				g.running = false
			case sdl.SCANCODE_C:
				g.host.Queue().Post(scene.Command{Kind: scene.CmdCycleCamera})
			case sdl.SCANCODE_R:
				g.host.Queue().Post(scene.Command{Kind: scene.CmdReset})
			case sdl.SCANCODE_F11:
				if err := g.window.ToggleFullscreen(); err != nil {
					g.log.Warn("fullscreen toggle failed", zap.Error(err))
				}
			case sdl.SCANCODE_F12:
				g.captureNext = true
			}

		case input.EventMouseDown:
			if event.Button != sdl.BUTTON_LEFT {
				continue
			}
			if name, ok := s.Pick(float32(event.MouseX), float32(event.MouseY)); ok {
				g.log.Info("selected", zap.String("name", name))
				g.host.Publish()
			}

		case input.EventMouseMove:
			if event.Dragging {
				s.HandleDrag(float32(event.MouseX), float32(event.MouseY), float32(event.DeltaX), float32(event.DeltaY))
			}

		case input.EventMouseWheel:
			s.HandleZoom(float32(event.MouseX), float32(event.MouseY), event.Wheel)
		}
	}
}

// capture saves the back buffer before it is presented.
func (g *Game) capture() {
	w, h := g.window.DrawableSize()
	path, err := g.shots.SavePixels(g.renderer.ReadPixels(w, h), w, h)
	if err != nil {
		g.log.Error("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("path", path))
}

// Close cleans up resources.
func (g *Game) Close() {
	g.log.Info("closing")

	if g.host != nil {
		g.host.Close()
	}
	if g.audio != nil {
		g.audio.Close()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}
