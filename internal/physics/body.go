package physics

import (
	gomath "math"

	"github.com/thirdlf03/zawa/pkg/math"
)

// Body is a rigid body with exactly one shape. Mass 0 makes it static.
type Body struct {
	ID int

	Position        math.Vec3
	Orientation     math.Quat
	Velocity        math.Vec3
	AngularVelocity math.Vec3

	Mass           float32
	Shape          Shape
	Material       *Material
	LinearDamping  float32
	AngularDamping float32

	invMass    float32
	invInertia float32 // isotropic; dynamic bodies are spheres

	force  math.Vec3
	torque math.Vec3
}

// BodyOptions configures NewBody.
type BodyOptions struct {
	Mass           float32
	Position       math.Vec3
	Orientation    math.Quat
	Shape          Shape
	Material       *Material
	LinearDamping  float32
	AngularDamping float32
}

// NewBody creates a body. A zero orientation becomes identity.
func NewBody(opts BodyOptions) *Body {
	orient := opts.Orientation
	if orient == (math.Quat{}) {
		orient = math.QuatIdentity()
	}

	b := &Body{
		ID:             -1,
		Position:       opts.Position,
		Orientation:    orient.Normalize(),
		Mass:           opts.Mass,
		Shape:          opts.Shape,
		Material:       opts.Material,
		LinearDamping:  opts.LinearDamping,
		AngularDamping: opts.AngularDamping,
	}
	b.updateMassProperties()
	return b
}

// NewStaticTrimesh creates a zero-mass body carrying mesh.
func NewStaticTrimesh(mesh *Trimesh, position math.Vec3, orientation math.Quat) *Body {
	return NewBody(BodyOptions{
		Position:    position,
		Orientation: orientation,
		Shape:       mesh,
	})
}

func (b *Body) updateMassProperties() {
	if b.Mass <= 0 {
		b.Mass = 0
		b.invMass = 0
		b.invInertia = 0
		return
	}
	b.invMass = 1 / b.Mass

	if s, ok := b.Shape.(*Sphere); ok && s.Radius > 0 {
		b.invInertia = 1 / (0.4 * b.Mass * s.Radius * s.Radius)
	} else {
		b.invInertia = 0
	}
}

// IsStatic reports whether the body never moves.
func (b *Body) IsStatic() bool {
	return b.invMass == 0
}

// InvMass returns 1/mass, or 0 for static bodies.
func (b *Body) InvMass() float32 {
	return b.invMass
}

// ApplyForce accumulates a force through the center of mass for the next
// sub-step.
func (b *Body) ApplyForce(f math.Vec3) {
	if b.IsStatic() {
		return
	}
	b.force = b.force.Add(f)
}

// Force returns the force accumulated so far in this sub-step.
func (b *Body) Force() math.Vec3 {
	return b.force
}

// Transform returns the body's model matrix.
func (b *Body) Transform() math.Mat4 {
	return math.Compose(b.Position, b.Orientation, math.Vec3{X: 1, Y: 1, Z: 1})
}

// ToLocal converts a world-space point into body space.
func (b *Body) ToLocal(p math.Vec3) math.Vec3 {
	return b.Orientation.Conjugate().Rotate(p.Sub(b.Position))
}

// velocityAt returns the velocity of a point at offset r from the center.
func (b *Body) velocityAt(r math.Vec3) math.Vec3 {
	return b.Velocity.Add(b.AngularVelocity.Cross(r))
}

func (b *Body) applyImpulse(j, r math.Vec3) {
	if b.IsStatic() {
		return
	}
	b.Velocity = b.Velocity.Add(j.Scale(b.invMass))
	b.AngularVelocity = b.AngularVelocity.Add(r.Cross(j).Scale(b.invInertia))
}

func (b *Body) integrateVelocity(gravity math.Vec3, dt float32) {
	if b.IsStatic() {
		return
	}
	accel := gravity.Add(b.force.Scale(b.invMass))
	b.Velocity = b.Velocity.Add(accel.Scale(dt))
	b.AngularVelocity = b.AngularVelocity.Add(b.torque.Scale(b.invInertia * dt))

	if b.LinearDamping > 0 {
		b.Velocity = b.Velocity.Scale(float32(gomath.Pow(float64(1-b.LinearDamping), float64(dt))))
	}
	if b.AngularDamping > 0 {
		b.AngularVelocity = b.AngularVelocity.Scale(float32(gomath.Pow(float64(1-b.AngularDamping), float64(dt))))
	}
}

func (b *Body) integratePosition(dt float32) {
	if b.IsStatic() {
		return
	}
	b.Position = b.Position.Add(b.Velocity.Scale(dt))
	if b.AngularVelocity != (math.Vec3{}) {
		b.Orientation = b.Orientation.Integrate(b.AngularVelocity, dt)
	}
}

func (b *Body) clearForces() {
	b.force = math.Vec3{}
	b.torque = math.Vec3{}
}
