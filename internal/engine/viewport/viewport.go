// Package viewport lays out the camera views on the window surface and
// routes pointer positions to the view under them.
package viewport

import (
	"fmt"
	gomath "math"

	"github.com/thirdlf03/zawa/internal/engine/camera"
)

// Rect is a pixel rectangle with a top-left origin.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the pixel (px, py) lies inside r.
func (r Rect) Contains(px, py float32) bool {
	return px >= float32(r.X) && px < float32(r.X+r.W) &&
		py >= float32(r.Y) && py < float32(r.Y+r.H)
}

// Aspect returns W/H, or 1 for an empty rectangle.
func (r Rect) Aspect() float32 {
	if r.W <= 0 || r.H <= 0 {
		return 1
	}
	return float32(r.W) / float32(r.H)
}

// GL returns the rectangle with a bottom-left origin on a surface of the
// given height, as gl.Viewport and gl.Scissor expect.
func (r Rect) GL(surfaceH int) (x, y, w, h int32) {
	return int32(r.X), int32(surfaceH - r.Y - r.H), int32(r.W), int32(r.H)
}

// Scaled maps r from window coordinates onto a framebuffer sx and sy times
// larger. Edges are rounded so neighbouring rectangles stay adjacent.
func (r Rect) Scaled(sx, sy float64) Rect {
	x0 := int(gomath.Round(float64(r.X) * sx))
	y0 := int(gomath.Round(float64(r.Y) * sy))
	x1 := int(gomath.Round(float64(r.X+r.W) * sx))
	y1 := int(gomath.Round(float64(r.Y+r.H) * sy))
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Viewport is one camera view on the surface.
type Viewport struct {
	Name   string
	Rect   Rect
	Camera *camera.Camera

	// Rig drives the camera; only the primary viewport has one.
	Rig *camera.Rig
}

// Interactive reports whether pointer input applies to this view.
func (v *Viewport) Interactive() bool {
	return v.Rig != nil
}

// ToNDC maps surface pixel coordinates into this viewport's normalized
// device coordinates: x right, y up, both -1..1 across the rectangle.
func (v *Viewport) ToNDC(px, py float32) (x, y float32) {
	r := v.Rect
	if r.W <= 0 || r.H <= 0 {
		return 0, 0
	}
	x = (px-float32(r.X))/float32(r.W)*2 - 1
	y = -(py-float32(r.Y))/float32(r.H)*2 + 1
	return x, y
}

// Config controls the layout.
type Config struct {
	// PrimaryFraction is the share of the width given to the primary view,
	// which sits on the right.
	PrimaryFraction float64 `yaml:"primary_fraction"`
}

// DefaultConfig returns the 70/30 split.
func DefaultConfig() Config {
	return Config{PrimaryFraction: 0.7}
}

// Router owns the viewports: one primary and any number of fixed observer
// views stacked in the left strip.
type Router struct {
	cfg         Config
	width       int
	height      int
	primary     *Viewport
	secondaries []*Viewport
}

// NewRouter lays out the views for a width x height surface.
func NewRouter(cfg Config, width, height int, primary *camera.Rig, observers []*camera.Camera) *Router {
	if cfg.PrimaryFraction <= 0 || cfg.PrimaryFraction > 1 {
		cfg.PrimaryFraction = DefaultConfig().PrimaryFraction
	}
	r := &Router{
		cfg:     cfg,
		primary: &Viewport{Name: "main", Camera: primary.Camera, Rig: primary},
	}
	for i, cam := range observers {
		r.secondaries = append(r.secondaries, &Viewport{
			Name:   fmt.Sprintf("sub%d", i+1),
			Camera: cam,
		})
	}
	r.Resize(width, height)
	return r
}

// Size returns the current surface size.
func (r *Router) Size() (width, height int) {
	return r.width, r.height
}

// DrawableScale returns the ratio between a drawW x drawH framebuffer and
// the window size the router lays out in. It is 1 when either is empty.
func (r *Router) DrawableScale(drawW, drawH int) (sx, sy float64) {
	sx, sy = 1, 1
	w, h := r.Size()
	if w > 0 && drawW > 0 {
		sx = float64(drawW) / float64(w)
	}
	if h > 0 && drawH > 0 {
		sy = float64(drawH) / float64(h)
	}
	return sx, sy
}

// Primary returns the interactive view.
func (r *Router) Primary() *Viewport {
	return r.primary
}

// Secondaries returns the observer views top to bottom.
func (r *Router) Secondaries() []*Viewport {
	return r.secondaries
}

// Viewports returns every view, primary first.
func (r *Router) Viewports() []*Viewport {
	out := make([]*Viewport, 0, 1+len(r.secondaries))
	out = append(out, r.primary)
	return append(out, r.secondaries...)
}

// Resize recomputes every rectangle and camera aspect ratio. Camera
// placement is left untouched.
func (r *Router) Resize(width, height int) {
	width = max(width, 0)
	height = max(height, 0)
	r.width, r.height = width, height

	primaryW := int(gomath.Round(float64(width) * r.cfg.PrimaryFraction))
	if len(r.secondaries) == 0 {
		primaryW = width
	}
	stripW := width - primaryW

	r.primary.Rect = Rect{X: stripW, Y: 0, W: primaryW, H: height}
	r.primary.Camera.SetAspect(r.primary.Rect.Aspect())

	n := len(r.secondaries)
	for i, v := range r.secondaries {
		top := i * height / n
		bottom := (i + 1) * height / n
		v.Rect = Rect{X: 0, Y: top, W: stripW, H: bottom - top}
		v.Camera.SetAspect(v.Rect.Aspect())
	}
}

// Locate returns the view under the pointer.
func (r *Router) Locate(px, py float32) (*Viewport, bool) {
	if r.primary.Rect.Contains(px, py) {
		return r.primary, true
	}
	for _, v := range r.secondaries {
		if v.Rect.Contains(px, py) {
			return v, true
		}
	}
	return nil, false
}

// CycleCamera moves the primary camera to its next preset.
func (r *Router) CycleCamera() camera.Preset {
	return r.primary.Rig.Cycle()
}

// Update advances the primary camera's controls by dt seconds.
func (r *Router) Update(dt float32) {
	r.primary.Rig.Update(dt)
}
