// Package camera provides the perspective cameras and the orbit controls
// that drive the primary view.
package camera

import (
	gomath "math"

	"github.com/thirdlf03/zawa/pkg/math"
)

// Camera is a perspective camera aimed at a target point.
type Camera struct {
	Position math.Vec3
	Target   math.Vec3
	Up       math.Vec3

	FovY   float32 // vertical field of view, degrees
	Aspect float32
	Near   float32
	Far    float32
}

// New creates a camera at position looking at target with the scene's lens
// defaults (75 degrees, 0.1 to 1000).
func New(position, target math.Vec3, aspect float32) *Camera {
	return &Camera{
		Position: position,
		Target:   target,
		Up:       math.Vec3{Y: 1},
		FovY:     75,
		Aspect:   aspect,
		Near:     0.1,
		Far:      1000,
	}
}

// SetAspect updates the projection aspect ratio. Non-positive values are
// ignored.
func (c *Camera) SetAspect(aspect float32) {
	if aspect > 0 && !gomath.IsInf(float64(aspect), 0) {
		c.Aspect = aspect
	}
}

// LookAt re-aims the camera without moving it.
func (c *Camera) LookAt(target math.Vec3) {
	c.Target = target
}

// Forward returns the unit view direction.
func (c *Camera) Forward() math.Vec3 {
	return c.Target.Sub(c.Position).Normalize()
}

// up returns Up, or a horizontal fallback when looking straight along it.
func (c *Camera) up() math.Vec3 {
	f := c.Forward()
	if f.Cross(c.Up).LengthSq() < 1e-8 {
		return math.Vec3{Z: -1}
	}
	return c.Up
}

// ViewMatrix returns the world-to-view transform.
func (c *Camera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Target, c.up())
}

// ProjectionMatrix returns the perspective projection.
func (c *Camera) ProjectionMatrix() math.Mat4 {
	fov := float32(float64(c.FovY) * gomath.Pi / 180)
	return math.Perspective(fov, c.Aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *Camera) ViewProjection() math.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}
