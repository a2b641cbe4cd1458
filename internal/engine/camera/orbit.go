package camera

import (
	gomath "math"

	"github.com/thirdlf03/zawa/pkg/math"
)

// OrbitControls orbits a camera around its target. Drag and zoom input is
// accumulated and eased out over the following updates when damping is on.
type OrbitControls struct {
	Camera *Camera

	// Spherical coordinates relative to Camera.Target.
	Distance float32
	Pitch    float32 // elevation above the XZ plane, radians
	Yaw      float32 // rotation about +Y, radians

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	// DampingFactor is the fraction of pending motion applied per update.
	// Zero applies input immediately.
	DampingFactor float32

	pendingYaw   float32
	pendingPitch float32
	pendingZoom  float32 // multiplicative, 1 = none
}

// NewOrbitControls attaches controls to cam, starting from its current
// position.
func NewOrbitControls(cam *Camera) *OrbitControls {
	o := &OrbitControls{
		Camera:          cam,
		MinDistance:     1,
		MaxDistance:     200,
		MinPitch:        -gomath.Pi/2 + 0.001,
		MaxPitch:        gomath.Pi/2 - 0.001,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		DampingFactor:   0.05,
		pendingZoom:     1,
	}
	o.Sync()
	return o
}

// Sync re-reads the spherical coordinates from the camera, e.g. after the
// camera was moved directly. Pending input is discarded.
func (o *OrbitControls) Sync() {
	off := o.Camera.Position.Sub(o.Camera.Target)
	o.Distance = off.Length()
	if o.Distance > 0 {
		o.Pitch = float32(gomath.Asin(float64(clamp(off.Y/o.Distance, -1, 1))))
		o.Yaw = float32(gomath.Atan2(float64(off.X), float64(off.Z)))
	}
	o.pendingYaw = 0
	o.pendingPitch = 0
	o.pendingZoom = 1
}

// HandleDrag queues a rotation from a pointer drag in pixels.
func (o *OrbitControls) HandleDrag(deltaX, deltaY float32) {
	o.pendingYaw -= deltaX * o.DragSensitivity
	o.pendingPitch += deltaY * o.DragSensitivity
}

// HandleZoom queues a zoom from a wheel delta; positive moves closer.
func (o *OrbitControls) HandleZoom(delta float32) {
	o.pendingZoom *= 1 - delta*o.ZoomSensitivity
	if o.pendingZoom <= 0 {
		o.pendingZoom = 0.01
	}
}

// Update applies queued input and places the camera. A settled control
// leaves the camera where it is.
func (o *OrbitControls) Update() {
	if o.Settled() {
		return
	}

	f := o.DampingFactor
	if f <= 0 || f > 1 {
		f = 1
	}

	o.Yaw += o.pendingYaw * f
	o.Pitch += o.pendingPitch * f
	o.Distance *= float32(gomath.Pow(float64(o.pendingZoom), float64(f)))

	o.pendingYaw *= 1 - f
	o.pendingPitch *= 1 - f
	o.pendingZoom = float32(gomath.Pow(float64(o.pendingZoom), float64(1-f)))

	o.Pitch = clamp(o.Pitch, o.MinPitch, o.MaxPitch)
	o.Distance = clamp(o.Distance, o.MinDistance, o.MaxDistance)

	o.Camera.Position = o.position()
}

// Settled reports whether no queued input remains.
func (o *OrbitControls) Settled() bool {
	const eps = 1e-5
	return abs(o.pendingYaw) < eps && abs(o.pendingPitch) < eps && abs(o.pendingZoom-1) < eps
}

func (o *OrbitControls) position() math.Vec3 {
	cp := float32(gomath.Cos(float64(o.Pitch)))
	off := math.Vec3{
		X: o.Distance * cp * float32(gomath.Sin(float64(o.Yaw))),
		Y: o.Distance * float32(gomath.Sin(float64(o.Pitch))),
		Z: o.Distance * cp * float32(gomath.Cos(float64(o.Yaw))),
	}
	return o.Camera.Target.Add(off)
}

func clamp(v, lo, hi float32) float32 {
	return min(max(v, lo), hi)
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
