// Package ball defines the simulated balls and their render state.
package ball

import (
	gomath "math"

	"github.com/thirdlf03/zawa/internal/physics"
	"github.com/thirdlf03/zawa/pkg/math"
)

const (
	// DefaultRadius is the radius of every ball.
	DefaultRadius = 0.3
	// DefaultMass is the mass of every ball.
	DefaultMass = 1.0
)

// Renderable is the visual state of a ball, copied from its body each frame.
type Renderable struct {
	Position    math.Vec3
	Orientation math.Quat
	Color       [3]float32
	Radius      float32
}

// Ball is a named, prioritized sphere in the world.
type Ball struct {
	ID         int
	Name       string
	Priority   int
	Body       *physics.Body
	Renderable *Renderable

	// IsAttracted is updated by the attraction field every tick.
	IsAttracted bool
}

// New creates a ball and its body at pos. The body is not added to a world.
func New(id int, name string, priority int, pos math.Vec3, radius float32, color [3]float32) *Ball {
	body := physics.NewBody(physics.BodyOptions{
		Mass:     DefaultMass,
		Position: pos,
		Shape:    physics.NewSphere(radius),
		Material: physics.BallMaterial,
	})
	return &Ball{
		ID:       id,
		Name:     name,
		Priority: priority,
		Body:     body,
		Renderable: &Renderable{
			Position:    pos,
			Orientation: body.Orientation,
			Color:       color,
			Radius:      radius,
		},
	}
}

// Radius returns the collision radius.
func (b *Ball) Radius() float32 {
	if s, ok := b.Body.Shape.(*physics.Sphere); ok {
		return s.Radius
	}
	return b.Renderable.Radius
}

// Sync copies the body transform into the renderable.
func (b *Ball) Sync() {
	b.Renderable.Position = b.Body.Position
	b.Renderable.Orientation = b.Body.Orientation
}

// Ring describes where balls are dropped: evenly spaced on a horizontal
// circle.
type Ring struct {
	Center math.Vec3
	Radius float32
}

// DefaultRing is the drop ring above the start funnel.
var DefaultRing = Ring{
	Center: math.Vec3{X: 1.6, Y: 15, Z: 5},
	Radius: 1.3,
}

// Position returns the spawn point of ball i out of n.
func (r Ring) Position(i, n int) math.Vec3 {
	if n <= 0 {
		return r.Center
	}
	a := float64(i) / float64(n) * 2 * gomath.Pi
	return math.Vec3{
		X: r.Center.X + r.Radius*float32(gomath.Cos(a)),
		Y: r.Center.Y,
		Z: r.Center.Z + r.Radius*float32(gomath.Sin(a)),
	}
}
