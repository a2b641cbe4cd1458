package scene

import (
	"errors"
	"testing"

	"github.com/thirdlf03/zawa/internal/ball"
	"github.com/thirdlf03/zawa/internal/collision"
	"github.com/thirdlf03/zawa/internal/engine/camera"
	"github.com/thirdlf03/zawa/internal/level"
	"github.com/thirdlf03/zawa/internal/session"
	"github.com/thirdlf03/zawa/pkg/math"
)

func entries(names ...string) []session.Entry {
	out := make([]session.Entry, len(names))
	for i, n := range names {
		out[i] = session.Entry{Name: n, Priority: session.DefaultPriority}
	}
	return out
}

func weightless() Config {
	cfg := DefaultConfig()
	cfg.Physics.Gravity = math.Vec3{}
	cfg.PresetTween = 0
	return cfg
}

func tinyMesh(name string, pos math.Vec3, isGoal bool) collision.MeshSource {
	return collision.MeshSource{
		Name:        name,
		Vertices:    []float32{0, 0, 0, 0.1, 0, 0, 0, 0, 0.1},
		Scale:       math.Vec3{X: 1, Y: 1, Z: 1},
		Position:    pos,
		Orientation: math.QuatIdentity(),
		Goal:        isGoal,
	}
}

func TestNewPlacesBallsOnRing(t *testing.T) {
	s := New(DefaultConfig(), entries("a", "b", "c", "d"), 1000, 800, nil)

	if len(s.Balls()) != 4 {
		t.Fatalf("balls = %d, want 4", len(s.Balls()))
	}
	if len(s.World().Bodies()) != 4 {
		t.Errorf("bodies = %d, want 4", len(s.World().Bodies()))
	}
	for i, b := range s.Balls() {
		want := ball.DefaultRing.Position(i, 4)
		if b.Body.Position.Distance(want) > 1e-5 {
			t.Errorf("ball %d at %v, want %v", i, b.Body.Position, want)
		}
		if b.Radius() != ball.DefaultRadius {
			t.Errorf("ball %d radius = %v", i, b.Radius())
		}
	}
	if s.Phase() != PhaseLoading {
		t.Errorf("phase = %v, want loading", s.Phase())
	}
	if s.Field().Enabled() {
		t.Error("attraction should be off while loading")
	}
}

func TestNewWithoutEntries(t *testing.T) {
	s := New(DefaultConfig(), nil, 1000, 800, nil)
	s.BeginLoading(nil)

	st := s.Frame(1.0 / 60)
	if st.Phase != PhaseReady {
		t.Errorf("phase = %v, want ready", st.Phase)
	}
	if len(s.Snapshot().Balls) != 0 {
		t.Error("expected no balls")
	}
}

func TestFrameClampsDelta(t *testing.T) {
	s := New(DefaultConfig(), entries("a"), 1000, 800, nil)

	st := s.Frame(1.0)
	if st.Delta != 0.05 {
		t.Errorf("delta = %v, want 0.05", st.Delta)
	}
	if st.SubSteps < 2 || st.SubSteps > 3 {
		t.Errorf("sub-steps = %d, want 3 (2 with rounding)", st.SubSteps)
	}
	if s.World().Time() > 0.05+1e-9 {
		t.Errorf("simulated %v s in one frame", s.World().Time())
	}
}

func TestFrameSyncsRenderables(t *testing.T) {
	s := New(DefaultConfig(), entries("a"), 1000, 800, nil)
	b := s.Balls()[0]
	start := b.Renderable.Position

	for i := 0; i < 10; i++ {
		s.Frame(1.0 / 60)
	}

	if b.Renderable.Position != b.Body.Position {
		t.Errorf("renderable %v, body %v", b.Renderable.Position, b.Body.Position)
	}
	if b.Renderable.Position.Y >= start.Y {
		t.Errorf("ball did not fall: %v -> %v", start.Y, b.Renderable.Position.Y)
	}
}

func TestLoadingFinishesOnClose(t *testing.T) {
	s := New(DefaultConfig(), entries("a"), 1000, 800, nil)

	results := make(chan level.Result, 2)
	results <- level.Result{
		Index: 0,
		Asset: level.Asset{Name: "holes", Goal: true},
		Meshes: []collision.MeshSource{
			tinyMesh("holes/0", math.Vec3{X: -4}, true),
			tinyMesh("holes/1", math.Vec3{X: 4}, true),
		},
	}
	results <- level.Result{Index: 1, Asset: level.Asset{Name: "box"}, Err: errors.New("no such file")}
	close(results)

	s.BeginLoading(results)
	if s.Phase() != PhaseLoading {
		t.Fatal("session ready before any frame")
	}

	st := s.Frame(1.0 / 60)
	if st.Meshes != 2 {
		t.Errorf("meshes = %d, want 2", st.Meshes)
	}
	if st.Phase != PhaseReady {
		t.Fatalf("phase = %v, want ready", st.Phase)
	}
	if !s.Goals().Frozen() || s.Goals().Len() != 2 {
		t.Errorf("goals frozen=%v len=%d", s.Goals().Frozen(), s.Goals().Len())
	}
	if !s.Field().Enabled() {
		t.Error("attraction should be on once ready")
	}
	if s.LoadErr() == nil {
		t.Error("failed asset should be reported")
	}
	if got := len(s.StaticBodies()); got != 2 {
		t.Errorf("static bodies = %d, want 2", got)
	}
}

func TestLoadingSpansFrames(t *testing.T) {
	s := New(weightless(), nil, 1000, 800, nil)

	results := make(chan level.Result, 2)
	s.BeginLoading(results)

	results <- level.Result{Asset: level.Asset{Name: "stages"}, Meshes: []collision.MeshSource{tinyMesh("stages/0", math.Vec3{}, false)}}
	if st := s.Frame(1.0 / 60); st.Phase != PhaseLoading || st.Meshes != 1 {
		t.Errorf("first frame: phase=%v meshes=%d", st.Phase, st.Meshes)
	}

	results <- level.Result{Asset: level.Asset{Name: "holes", Goal: true}, Meshes: []collision.MeshSource{tinyMesh("holes/0", math.Vec3{}, true)}}
	close(results)
	if st := s.Frame(1.0 / 60); st.Phase != PhaseReady || st.Meshes != 1 {
		t.Errorf("second frame: phase=%v meshes=%d", st.Phase, st.Meshes)
	}
	if s.LoadErr() != nil {
		t.Errorf("unexpected load error: %v", s.LoadErr())
	}
}

func TestAttractionPullsAfterLoading(t *testing.T) {
	cfg := weightless()
	list := []session.Entry{{Name: "gold", Priority: 3}}
	s := New(cfg, list, 1000, 800, nil)
	b := s.Balls()[0]
	start := b.Body.Position
	target := start.Add(math.Vec3{X: 1})

	results := make(chan level.Result, 1)
	results <- level.Result{Asset: level.Asset{Name: "holes", Goal: true}, Meshes: []collision.MeshSource{tinyMesh("holes/0", target, true)}}
	close(results)
	s.BeginLoading(results)

	var st FrameStats
	for i := 0; i < 10; i++ {
		st = s.Frame(0.05)
	}

	if !b.IsAttracted || st.Attracted != 1 {
		t.Errorf("attracted=%v count=%d, want attracted", b.IsAttracted, st.Attracted)
	}
	if b.Body.Position.X <= start.X {
		t.Errorf("ball did not move toward goal: x %v -> %v", start.X, b.Body.Position.X)
	}
	if b.Body.Position.Y != start.Y || b.Body.Position.Z != start.Z {
		t.Errorf("ball left the goal axis: %v", b.Body.Position)
	}
}

func TestCommands(t *testing.T) {
	s := New(weightless(), entries("a"), 1000, 800, nil)

	g := math.Vec3{X: 1, Y: -2, Z: 3}
	if !s.Post(Command{Kind: CmdSetGravity, Gravity: g}) {
		t.Fatal("post failed")
	}
	s.Post(Command{Kind: CmdCycleCamera})
	st := s.Frame(1.0 / 60)

	if st.Commands != 2 {
		t.Errorf("commands = %d, want 2", st.Commands)
	}
	if s.World().Gravity() != g {
		t.Errorf("gravity = %v, want %v", s.World().Gravity(), g)
	}
	snap := s.Snapshot()
	if snap.Preset != 1 {
		t.Errorf("preset = %d, want 1", snap.Preset)
	}
	want := camera.DefaultPresets()[1]
	if s.Router().Primary().Camera.Position != want.Position {
		t.Errorf("camera at %v, want %v", s.Router().Primary().Camera.Position, want.Position)
	}
	if snap.Gravity != g.Array() {
		t.Errorf("snapshot gravity = %v", snap.Gravity)
	}
}

func TestGravityKeepsUnsetAxes(t *testing.T) {
	cfg := weightless()
	cfg.Physics.Gravity = math.Vec3{X: 1, Y: -9.8, Z: 2}
	s := New(cfg, nil, 1000, 800, nil)

	s.Post(Command{Kind: CmdSetGravity, Gravity: math.Vec3{Y: -3}, Keep: [3]bool{true, false, true}})
	s.Frame(1.0 / 60)
	if g, want := s.World().Gravity(), (math.Vec3{X: 1, Y: -3, Z: 2}); g != want {
		t.Errorf("gravity = %v, want %v", g, want)
	}

	// Consecutive single-axis edits accumulate.
	s.Post(Command{Kind: CmdSetGravity, Gravity: math.Vec3{X: 0}, Keep: [3]bool{false, true, true}})
	s.Post(Command{Kind: CmdSetGravity, Gravity: math.Vec3{Z: -4}, Keep: [3]bool{true, true, false}})
	s.Frame(1.0 / 60)
	if g, want := s.World().Gravity(), (math.Vec3{X: 0, Y: -3, Z: -4}); g != want {
		t.Errorf("gravity = %v, want %v", g, want)
	}
}

func TestResetStopsDraining(t *testing.T) {
	q := NewQueue(4)
	s := New(weightless(), entries("a"), 1000, 800, q)

	q.Post(Command{Kind: CmdReset})
	q.Post(Command{Kind: CmdCycleCamera})

	st := s.Frame(1.0 / 60)
	if !st.Reset {
		t.Error("reset not surfaced")
	}
	if q.Len() != 1 {
		t.Errorf("queue len = %d, want 1 left for the next session", q.Len())
	}
	if s.Queue() != q {
		t.Error("session should use the shared queue")
	}
}

func TestQueueDropsWhenFull(t *testing.T) {
	q := NewQueue(1)
	if !q.Post(Command{Kind: CmdCycleCamera}) {
		t.Fatal("first post should succeed")
	}
	if q.Post(Command{Kind: CmdCycleCamera}) {
		t.Error("second post should be dropped")
	}
}

func TestNonFiniteGravityIgnored(t *testing.T) {
	s := New(DefaultConfig(), nil, 1000, 800, nil)
	before := s.World().Gravity()

	var zero float32
	s.Post(Command{Kind: CmdSetGravity, Gravity: math.Vec3{Y: 1 / zero}})
	s.Frame(1.0 / 60)

	if s.World().Gravity() != before {
		t.Errorf("gravity changed to %v", s.World().Gravity())
	}
}

func TestPickThroughSession(t *testing.T) {
	cfg := weightless()
	spawn := cfg.Ring.Position(0, 1)
	cfg.Presets = []camera.Preset{{Position: spawn.Add(math.Vec3{Y: 5}), Target: spawn}}
	s := New(cfg, entries("red"), 1000, 800, nil)

	// Primary occupies x 300..1000; its centre looks straight at the ball.
	name, ok := s.Pick(650, 400)
	if !ok || name != "red" {
		t.Fatalf("pick = %q %v, want red", name, ok)
	}

	if _, ok := s.Pick(10, 10); ok {
		t.Error("observer view should not be pickable")
	}
	if _, ok := s.Pick(301, 1); ok {
		t.Error("corner of the primary view should miss")
	}
	if s.Selected() != "red" {
		t.Errorf("selected = %q, want red kept after misses", s.Selected())
	}
	if s.Snapshot().Selected != "red" {
		t.Error("snapshot should carry the selection")
	}
}

func TestResizeKeepsCameras(t *testing.T) {
	s := New(DefaultConfig(), nil, 1000, 800, nil)
	before := s.Router().Primary().Camera.Position

	s.Resize(1200, 900)

	w, h := s.Router().Size()
	if w != 1200 || h != 900 {
		t.Errorf("size = %dx%d", w, h)
	}
	if s.Router().Primary().Camera.Position != before {
		t.Error("resize moved the camera")
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseLoading.String() != "loading" || PhaseReady.String() != "ready" {
		t.Error("unexpected phase names")
	}
	if CmdSetGravity.String() != "gravity" || CmdReset.String() != "reset" {
		t.Error("unexpected command names")
	}
}
