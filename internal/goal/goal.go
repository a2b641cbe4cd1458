// Package goal holds the target points that attract balls.
package goal

import (
	"errors"

	"github.com/thirdlf03/zawa/pkg/math"
)

// ErrFrozen is returned when adding to a registry after loading finished.
var ErrFrozen = errors.New("goal registry is frozen")

// Goal is one target point taken from a goal-tagged mesh instance.
type Goal struct {
	Source   string
	Position math.Vec3
}

// Registry is the ordered set of goals. It accepts additions while the level
// loads and is read-only once frozen.
type Registry struct {
	goals  []Goal
	frozen bool
}

// NewRegistry creates an empty, open registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add appends a goal.
func (r *Registry) Add(source string, pos math.Vec3) error {
	if r.frozen {
		return ErrFrozen
	}
	r.goals = append(r.goals, Goal{Source: source, Position: pos})
	return nil
}

// Freeze closes the registry for further additions.
func (r *Registry) Freeze() {
	r.frozen = true
}

// Frozen reports whether Freeze was called.
func (r *Registry) Frozen() bool {
	return r.frozen
}

// Len returns the number of goals.
func (r *Registry) Len() int {
	return len(r.goals)
}

// Goals returns the goals in registration order. Callers must not modify it.
func (r *Registry) Goals() []Goal {
	return r.goals
}

// Nearest returns the goal closest to p. On equal distance the goal
// registered first wins. ok is false when the registry is empty.
func (r *Registry) Nearest(p math.Vec3) (g Goal, dist float32, ok bool) {
	best := -1
	var bestSq float32
	for i := range r.goals {
		d := r.goals[i].Position.Sub(p).LengthSq()
		if best < 0 || d < bestSq {
			best = i
			bestSq = d
		}
	}
	if best < 0 {
		return Goal{}, 0, false
	}
	return r.goals[best], r.goals[best].Position.Distance(p), true
}
