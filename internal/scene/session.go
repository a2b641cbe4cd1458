// Package scene assembles the simulation context of one session: the world,
// the level collision, the balls, the attraction field, the viewports and
// the picker. A Session is owned by the frame loop and is not safe for
// concurrent use; other goroutines talk to it through a Queue or a load
// result channel.
package scene

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/thirdlf03/zawa/internal/attraction"
	"github.com/thirdlf03/zawa/internal/ball"
	"github.com/thirdlf03/zawa/internal/collision"
	"github.com/thirdlf03/zawa/internal/engine/camera"
	"github.com/thirdlf03/zawa/internal/engine/picking"
	"github.com/thirdlf03/zawa/internal/engine/viewport"
	"github.com/thirdlf03/zawa/internal/goal"
	"github.com/thirdlf03/zawa/internal/level"
	"github.com/thirdlf03/zawa/internal/logger"
	"github.com/thirdlf03/zawa/internal/physics"
	"github.com/thirdlf03/zawa/internal/session"
)

// Phase is the session lifecycle stage.
type Phase int

const (
	// PhaseLoading accepts level meshes and goals. Physics already runs.
	PhaseLoading Phase = iota
	// PhaseReady has every asset settled and the goal set frozen.
	PhaseReady
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Config gathers everything needed to build a session.
type Config struct {
	Physics    physics.Config
	Attraction attraction.Config
	Viewport   viewport.Config

	Presets     []camera.Preset
	Observers   []camera.Preset
	PresetTween float32 // seconds, 0 snaps

	// MaxFrameDelta caps the wall-clock time fed to the world per frame.
	MaxFrameDelta float64

	Ring       ball.Ring
	BallRadius float32
	ColorSeed  uint64
}

// DefaultConfig returns the stock scene.
func DefaultConfig() Config {
	return Config{
		Physics:       physics.DefaultConfig(),
		Attraction:    attraction.DefaultConfig(),
		Viewport:      viewport.DefaultConfig(),
		Presets:       camera.DefaultPresets(),
		Observers:     camera.DefaultObservers(),
		PresetTween:   0.6,
		MaxFrameDelta: 0.05,
		Ring:          ball.DefaultRing,
		BallRadius:    ball.DefaultRadius,
		ColorSeed:     1,
	}
}

// FrameStats describes what one Frame call did.
type FrameStats struct {
	Delta     float64 // clamped delta fed to the world
	SubSteps  int
	Meshes    int // level meshes added this frame
	Commands  int // commands applied this frame
	Attracted int
	Phase     Phase

	// Reset is set when a reset command was received. The owner is expected
	// to discard this session and build a new one.
	Reset bool
}

// Session is the simulation context.
type Session struct {
	cfg   Config
	log   *zap.Logger
	queue *Queue

	world   *physics.World
	goals   *goal.Registry
	builder *collision.Builder
	balls   []*ball.Ball
	field   *attraction.Field
	router  *viewport.Router
	picker  *picking.Resolver

	phase   Phase
	loads   <-chan level.Result
	loadErr error
	assets  int
}

// New builds a session with one ball per entry, dropped on the ring. The
// level is empty until BeginLoading. A nil queue gets a private one.
func New(cfg Config, entries []session.Entry, width, height int, queue *Queue) *Session {
	if cfg.MaxFrameDelta <= 0 {
		cfg.MaxFrameDelta = DefaultConfig().MaxFrameDelta
	}
	if cfg.BallRadius <= 0 {
		cfg.BallRadius = ball.DefaultRadius
	}
	if len(cfg.Presets) == 0 {
		cfg.Presets = camera.DefaultPresets()
	}
	if queue == nil {
		queue = NewQueue(DefaultQueueSize)
	}

	s := &Session{
		cfg:   cfg,
		log:   logger.Named("scene"),
		queue: queue,
		world: physics.NewWorld(cfg.Physics),
		goals: goal.NewRegistry(),
	}
	s.builder = collision.NewBuilder(s.world, s.goals)

	palette := ball.NewPalette(cfg.ColorSeed)
	s.balls = make([]*ball.Ball, len(entries))
	for i, e := range entries {
		b := ball.New(i, e.Name, e.Priority, cfg.Ring.Position(i, len(entries)), cfg.BallRadius, palette.Next())
		s.world.AddBody(b.Body)
		s.balls[i] = b
	}

	s.field = attraction.New(cfg.Attraction, s.goals, s.balls)
	s.world.AddPreStep(s.field.Apply)

	rig := camera.NewRig(cfg.Presets, 1, cfg.PresetTween)
	s.router = viewport.NewRouter(cfg.Viewport, width, height, rig, camera.Observers(cfg.Observers, 1))
	s.picker = picking.NewResolver(s.router, s.balls)

	s.log.Info("session created",
		zap.Int("balls", len(s.balls)),
		zap.Int("views", len(s.router.Viewports())),
		zap.Int("width", width),
		zap.Int("height", height))
	return s
}

// BeginLoading feeds level results into the session. Results are consumed
// at the start of each frame; when the channel closes the goal set is
// frozen, the attraction field switches on and the session becomes ready.
// A nil channel makes the session ready immediately.
func (s *Session) BeginLoading(results <-chan level.Result) {
	if s.phase != PhaseLoading {
		return
	}
	if results == nil {
		s.finishLoading()
		return
	}
	s.loads = results
}

// Queue returns the command queue.
func (s *Session) Queue() *Queue {
	return s.queue
}

// Post enqueues a command for the next frame.
func (s *Session) Post(cmd Command) bool {
	return s.queue.Post(cmd)
}

// Frame runs one frame: pending commands and level meshes are applied, the
// world advances by delta (capped at MaxFrameDelta), ball renderables are
// synced and the primary camera controls are updated.
func (s *Session) Frame(delta float64) FrameStats {
	var st FrameStats

	st.Commands, st.Reset = s.drainCommands()
	st.Meshes = s.drainLoads()

	if delta > s.cfg.MaxFrameDelta {
		delta = s.cfg.MaxFrameDelta
	}
	st.Delta = delta
	st.SubSteps = s.world.Step(delta)

	for _, b := range s.balls {
		b.Sync()
	}
	if delta > 0 {
		s.router.Update(float32(delta))
	}

	st.Attracted = s.field.Attracted()
	st.Phase = s.phase
	return st
}

func (s *Session) drainCommands() (applied int, reset bool) {
	for {
		cmd, ok := s.queue.poll()
		if !ok {
			return applied, false
		}
		applied++
		switch cmd.Kind {
		case CmdSetGravity:
			g := cmd.merge(s.world.Gravity())
			if !g.IsFinite() {
				s.log.Warn("gravity ignored", zap.String("reason", "not finite"))
				continue
			}
			s.world.SetGravity(g)
			s.log.Info("gravity set",
				zap.Float32("x", g.X),
				zap.Float32("y", g.Y),
				zap.Float32("z", g.Z))
		case CmdCycleCamera:
			p := s.router.CycleCamera()
			s.log.Debug("camera cycled",
				zap.Int("preset", s.router.Primary().Rig.Presets.Index),
				zap.Float32("x", p.Position.X),
				zap.Float32("y", p.Position.Y),
				zap.Float32("z", p.Position.Z))
		case CmdReset:
			s.log.Info("reset requested")
			return applied, true
		default:
			s.log.Warn("unknown command", zap.Int("kind", int(cmd.Kind)))
		}
	}
}

func (s *Session) drainLoads() int {
	meshes := 0
	for s.loads != nil {
		select {
		case r, ok := <-s.loads:
			if !ok {
				s.loads = nil
				s.finishLoading()
				return meshes
			}
			meshes += s.applyResult(r)
		default:
			return meshes
		}
	}
	return meshes
}

func (s *Session) applyResult(r level.Result) int {
	s.assets++
	if r.Err != nil {
		s.loadErr = multierr.Append(s.loadErr, fmt.Errorf("asset %s: %w", r.Asset.Name, r.Err))
		return 0
	}
	for _, src := range r.Meshes {
		s.builder.AddMesh(src)
	}
	return len(r.Meshes)
}

func (s *Session) finishLoading() {
	s.goals.Freeze()
	s.field.SetEnabled(true)
	s.phase = PhaseReady

	bodies, triangles := s.builder.Stats()
	for _, err := range multierr.Errors(s.loadErr) {
		s.log.Error("level asset not loaded", zap.Error(err))
	}
	s.log.Info("level ready",
		zap.Int("assets", s.assets),
		zap.Int("failed", len(multierr.Errors(s.loadErr))),
		zap.Int("bodies", bodies),
		zap.Int("triangles", triangles),
		zap.Int("goals", s.goals.Len()))
}

// LoadErr returns every asset failure seen so far, combined.
func (s *Session) LoadErr() error {
	return s.loadErr
}

// Phase returns the lifecycle stage.
func (s *Session) Phase() Phase {
	return s.phase
}

// World returns the physics world.
func (s *Session) World() *physics.World {
	return s.world
}

// Goals returns the goal registry.
func (s *Session) Goals() *goal.Registry {
	return s.goals
}

// Balls returns the balls in list order.
func (s *Session) Balls() []*ball.Ball {
	return s.balls
}

// Field returns the attraction field.
func (s *Session) Field() *attraction.Field {
	return s.field
}

// Router returns the viewport router.
func (s *Session) Router() *viewport.Router {
	return s.router
}

// Resize relays a surface size change to the viewports.
func (s *Session) Resize(width, height int) {
	s.router.Resize(width, height)
}

// Pick resolves a pointer press; see picking.Resolver.Pick.
func (s *Session) Pick(px, py float32) (string, bool) {
	return s.picker.Pick(px, py)
}

// Selected returns the currently selected ball name.
func (s *Session) Selected() string {
	return s.picker.Selected()
}

// HandleDrag relays a pointer drag to the primary camera if it started in
// the interactive view.
func (s *Session) HandleDrag(px, py, dx, dy float32) {
	if vp, ok := s.router.Locate(px, py); ok && vp.Interactive() {
		vp.Rig.HandleDrag(dx, dy)
	}
}

// HandleZoom relays wheel input to the primary camera if the pointer is
// over the interactive view.
func (s *Session) HandleZoom(px, py, delta float32) {
	if vp, ok := s.router.Locate(px, py); ok && vp.Interactive() {
		vp.Rig.HandleZoom(delta)
	}
}

// StaticBodies returns the level bodies in insertion order.
func (s *Session) StaticBodies() []*physics.Body {
	var out []*physics.Body
	for _, b := range s.world.Bodies() {
		if b.IsStatic() {
			out = append(out, b)
		}
	}
	return out
}
