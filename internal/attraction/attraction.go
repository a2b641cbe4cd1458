// Package attraction pulls balls toward their nearest goal.
package attraction

import (
	"github.com/thirdlf03/zawa/internal/ball"
	"github.com/thirdlf03/zawa/internal/goal"
	"github.com/thirdlf03/zawa/pkg/math"
)

// PriorityOffset is subtracted from a ball's priority to get its force
// multiplier, so priority 1 pulls with zero force and 3 with twice k.
const PriorityOffset = 1

// Config holds the field tunables.
type Config struct {
	// Threshold is the maximum goal distance at which a ball is attracted.
	Threshold float32 `yaml:"threshold"`
	// Strength is the force per priority step above PriorityOffset.
	Strength float32 `yaml:"strength"`
	// ExcludedPriority is never attracted.
	ExcludedPriority int `yaml:"excluded_priority"`
}

// DefaultConfig returns the scene defaults.
func DefaultConfig() Config {
	return Config{
		Threshold:        1.5,
		Strength:         0.1,
		ExcludedPriority: 1,
	}
}

// Result is the outcome of evaluating one ball.
type Result struct {
	Active   bool
	Goal     goal.Goal
	Distance float32
	Force    math.Vec3
}

// Field applies the attraction force to every ball each tick.
type Field struct {
	cfg     Config
	goals   *goal.Registry
	balls   []*ball.Ball
	enabled bool
}

// New creates a disabled field over goals and balls.
func New(cfg Config, goals *goal.Registry, balls []*ball.Ball) *Field {
	return &Field{cfg: cfg, goals: goals, balls: balls}
}

// SetEnabled turns the field on or off. A disabled field clears every
// ball's IsAttracted flag on the next tick and applies no force.
func (f *Field) SetEnabled(on bool) {
	f.enabled = on
}

// Enabled reports whether the field applies forces.
func (f *Field) Enabled() bool {
	return f.enabled
}

// Evaluate computes the attraction for a ball at pos with priority.
// The force is unit(goal - pos) * (priority - PriorityOffset) * strength.
// Balls with the excluded priority are never attracted.
func (f *Field) Evaluate(pos math.Vec3, priority int) Result {
	g, dist, ok := f.goals.Nearest(pos)
	if !ok {
		return Result{}
	}

	res := Result{Goal: g, Distance: dist}
	if dist > f.cfg.Threshold || priority == f.cfg.ExcludedPriority {
		return res
	}

	res.Active = true
	dir := g.Position.Sub(pos).Normalize()
	res.Force = dir.Scale(float32(priority-PriorityOffset) * f.cfg.Strength)
	return res
}

// Apply evaluates every ball and accumulates the force on its body.
// It matches physics.PreStepFunc.
func (f *Field) Apply(_ float32) {
	for _, b := range f.balls {
		if !f.enabled {
			b.IsAttracted = false
			continue
		}
		res := f.Evaluate(b.Body.Position, b.Priority)
		b.IsAttracted = res.Active
		if res.Active {
			b.Body.ApplyForce(res.Force)
		}
	}
}

// Attracted returns the number of balls currently attracted.
func (f *Field) Attracted() int {
	n := 0
	for _, b := range f.balls {
		if b.IsAttracted {
			n++
		}
	}
	return n
}
