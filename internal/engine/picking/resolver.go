package picking

import (
	"go.uber.org/zap"

	"github.com/thirdlf03/zawa/internal/ball"
	"github.com/thirdlf03/zawa/internal/engine/viewport"
	"github.com/thirdlf03/zawa/internal/logger"
)

// Resolver maps pointer presses to the ball under the pointer in the
// interactive viewport. A press that hits nothing keeps the previous
// selection.
type Resolver struct {
	router *viewport.Router
	balls  []*ball.Ball
	log    *zap.Logger

	selected string
}

// NewResolver creates a resolver over balls seen through router.
func NewResolver(router *viewport.Router, balls []*ball.Ball) *Resolver {
	return &Resolver{
		router: router,
		balls:  balls,
		log:    logger.Named("picking"),
	}
}

// Pick resolves a press at surface pixel (px, py). It returns the picked
// ball's name and true on a hit.
func (r *Resolver) Pick(px, py float32) (string, bool) {
	vp, ok := r.router.Locate(px, py)
	if !ok || !vp.Interactive() {
		return "", false
	}

	x, y := vp.ToNDC(px, py)
	ray := NDCToRay(x, y, vp.Camera.ViewProjection().Inverse())

	b, ok := r.Nearest(ray)
	if !ok {
		return "", false
	}

	r.selected = b.Name
	r.log.Debug("ball picked",
		zap.String("name", b.Name),
		zap.Int("id", b.ID),
		zap.Int("priority", b.Priority))
	return b.Name, true
}

// Nearest returns the ball whose sphere the ray enters first.
func (r *Resolver) Nearest(ray Ray) (*ball.Ball, bool) {
	var (
		best  *ball.Ball
		bestT float32
	)
	for _, b := range r.balls {
		t, hit := ray.IntersectSphere(b.Renderable.Position, b.Radius())
		if hit && (best == nil || t < bestT) {
			best, bestT = b, t
		}
	}
	return best, best != nil
}

// Selected returns the name of the last picked ball, or "" if none yet.
func (r *Resolver) Selected() string {
	return r.selected
}

// Clear drops the selection.
func (r *Resolver) Clear() {
	r.selected = ""
}
