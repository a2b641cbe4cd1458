package physics

import (
	gomath "math"

	"github.com/thirdlf03/zawa/pkg/math"
)

// Config holds the world tunables.
type Config struct {
	Gravity     math.Vec3
	FixedStep   float64 // seconds per sub-step
	MaxSubSteps int
	Iterations  int     // solver velocity iterations per sub-step
	Slop        float32 // allowed penetration before positional correction
	Correction  float32 // fraction of penetration removed per sub-step
}

// DefaultConfig returns the scene defaults: earth gravity, 60 Hz, at most 10
// sub-steps per frame.
func DefaultConfig() Config {
	return Config{
		Gravity:     math.Vec3{Y: -9.8},
		FixedStep:   1.0 / 60.0,
		MaxSubSteps: 10,
		Iterations:  10,
		Slop:        0.005,
		Correction:  0.8,
	}
}

// PreStepFunc runs at the start of every sub-step with the sub-step length.
type PreStepFunc func(dt float32)

// World owns the bodies and advances them in fixed sub-steps.
type World struct {
	DefaultContactMaterial ContactMaterial

	cfg         Config
	bodies      []*Body
	preStep     []PreStepFunc
	accumulator float64
	time        float64
	steps       uint64
	contacts    int
}

// NewWorld creates an empty world.
func NewWorld(cfg Config) *World {
	def := DefaultConfig()
	if cfg.FixedStep <= 0 {
		cfg.FixedStep = def.FixedStep
	}
	if cfg.MaxSubSteps <= 0 {
		cfg.MaxSubSteps = def.MaxSubSteps
	}
	if cfg.Iterations <= 0 {
		cfg.Iterations = def.Iterations
	}
	return &World{
		DefaultContactMaterial: DefaultContactMaterial,
		cfg:                    cfg,
	}
}

// AddBody adds b and assigns its ID. Bodies are never removed.
func (w *World) AddBody(b *Body) {
	b.ID = len(w.bodies)
	w.bodies = append(w.bodies, b)
}

// Bodies returns the bodies in insertion order.
func (w *World) Bodies() []*Body {
	return w.bodies
}

// AddPreStep registers fn to run before every sub-step.
func (w *World) AddPreStep(fn PreStepFunc) {
	w.preStep = append(w.preStep, fn)
}

// Gravity returns the current gravity vector.
func (w *World) Gravity() math.Vec3 {
	return w.cfg.Gravity
}

// SetGravity replaces the gravity vector; it applies from the next sub-step.
func (w *World) SetGravity(g math.Vec3) {
	w.cfg.Gravity = g
}

// FixedStep returns the sub-step length in seconds.
func (w *World) FixedStep() float64 {
	return w.cfg.FixedStep
}

// MaxSubSteps returns the per-call sub-step cap.
func (w *World) MaxSubSteps() int {
	return w.cfg.MaxSubSteps
}

// Time returns the total simulated time.
func (w *World) Time() float64 {
	return w.time
}

// StepCount returns the number of sub-steps executed so far.
func (w *World) StepCount() uint64 {
	return w.steps
}

// ContactCount returns the number of contacts found in the last sub-step.
func (w *World) ContactCount() int {
	return w.contacts
}

// Step adds delta seconds to the accumulator and runs as many fixed
// sub-steps as fit, capped at MaxSubSteps. Whatever remains beyond the cap is
// dropped down to less than one sub-step, so a slow frame makes the world
// fall behind instead of spiralling. Returns the number of sub-steps run.
func (w *World) Step(delta float64) int {
	if delta <= 0 || gomath.IsNaN(delta) || gomath.IsInf(delta, 0) {
		return 0
	}

	fixed := w.cfg.FixedStep
	w.accumulator += delta

	n := 0
	for w.accumulator >= fixed && n < w.cfg.MaxSubSteps {
		w.internalStep(float32(fixed))
		w.accumulator -= fixed
		w.time += fixed
		n++
	}
	w.accumulator = gomath.Mod(w.accumulator, fixed)
	return n
}

func (w *World) internalStep(dt float32) {
	for _, fn := range w.preStep {
		fn(dt)
	}

	g := w.cfg.Gravity
	for _, b := range w.bodies {
		b.integrateVelocity(g, dt)
	}
	for _, b := range w.bodies {
		b.integratePosition(dt)
	}

	contacts := w.narrowphase()
	w.contacts = len(contacts)
	w.solve(contacts)

	for _, b := range w.bodies {
		b.clearForces()
	}
	w.steps++
}
