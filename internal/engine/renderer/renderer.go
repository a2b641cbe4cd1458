// Package renderer draws the scene once per viewport with OpenGL.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/thirdlf03/zawa/internal/ball"
	"github.com/thirdlf03/zawa/internal/engine/lighting"
	"github.com/thirdlf03/zawa/internal/engine/model"
	"github.com/thirdlf03/zawa/internal/engine/shader"
	"github.com/thirdlf03/zawa/internal/engine/viewport"
	"github.com/thirdlf03/zawa/internal/logger"
	"github.com/thirdlf03/zawa/internal/physics"
	"github.com/thirdlf03/zawa/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Clear       [3]float32 // background color
	LevelColor  [3]float32
	SphereRings int
	Sun         lighting.Sun
}

// DefaultConfig returns the stock look.
func DefaultConfig() Config {
	return Config{
		Clear:       [3]float32{0.1, 0.1, 0.15},
		LevelColor:  [3]float32{0.7, 0.7, 0.72},
		SphereRings: 16,
		Sun:         lighting.DefaultSun(),
	}
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config
	log    *zap.Logger

	program *shader.Program
	sphere  *gpuMesh
	statics map[int]*gpuMesh // by body ID
}

// New creates a renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:  cfg,
		log:     logger.Named("renderer"),
		statics: make(map[int]*gpuMesh),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.SCISSOR_TEST)
	c := cfg.Clear
	gl.ClearColor(c[0], c[1], c[2], 1.0)

	var err error
	r.program, err = shader.New(shader.LitVertex, shader.LitFragment)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	rings := max(cfg.SphereRings, 4)
	r.sphere = uploadMesh(model.UVSphere(1, rings, rings*2))

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	r.ResetStatics()
	if r.sphere != nil {
		r.sphere.delete()
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// SyncStatics uploads level bodies that have no GPU mesh yet. It is cheap
// to call every frame while the level streams in.
func (r *Renderer) SyncStatics(bodies []*physics.Body) {
	for _, b := range bodies {
		if _, ok := r.statics[b.ID]; ok {
			continue
		}
		tm, ok := b.Shape.(*physics.Trimesh)
		if !ok {
			continue
		}
		m := model.FromTrimesh(tm)
		if m == nil {
			r.statics[b.ID] = nil
			continue
		}
		r.statics[b.ID] = uploadMesh(m)
		r.log.Debug("level mesh uploaded", zap.Int("body", b.ID), zap.Int("triangles", m.TriangleCount()))
	}
}

// ResetStatics frees every level mesh, e.g. before a session rebuild.
func (r *Renderer) ResetStatics() {
	for id, g := range r.statics {
		if g != nil {
			g.delete()
		}
		delete(r.statics, id)
	}
}

// Render draws the level and balls into every viewport of router on a
// drawW x drawH framebuffer. The router lays out in window coordinates,
// which differ from framebuffer pixels on high-density displays. The
// selected ball is drawn brighter.
func (r *Renderer) Render(router *viewport.Router, drawW, drawH int, statics []*physics.Body, balls []*ball.Ball, selected string) {
	sx, sy := router.DrawableScale(drawW, drawH)

	gl.Scissor(0, 0, 1<<15, 1<<15)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.program.Use()
	sun := r.config.Sun
	r.program.SetVec3("uLightDir", sun.Direction)
	r.program.SetVec3("uLightColor", sun.Color)
	r.program.SetFloat("uAmbient", sun.Ambient)

	for _, vp := range router.Viewports() {
		rect := vp.Rect.Scaled(sx, sy)
		if rect.W <= 0 || rect.H <= 0 {
			continue
		}
		x, y, w, h := rect.GL(drawH)
		gl.Viewport(x, y, w, h)
		gl.Scissor(x, y, w, h)
		gl.Clear(gl.DEPTH_BUFFER_BIT)

		r.program.SetMat4("uViewProj", vp.Camera.ViewProjection())

		r.program.SetVec3("uColor", r.config.LevelColor)
		for _, b := range statics {
			g := r.statics[b.ID]
			if g == nil {
				continue
			}
			r.program.SetMat4("uModel", b.Transform())
			g.draw()
		}

		for _, b := range balls {
			rd := b.Renderable
			color := rd.Color
			if b.Name == selected && selected != "" {
				color = highlight(color)
			}
			r.program.SetVec3("uColor", color)
			s := rd.Radius
			r.program.SetMat4("uModel", math.Compose(rd.Position, rd.Orientation, math.Vec3{X: s, Y: s, Z: s}))
			r.sphere.draw()
		}
	}
	gl.BindVertexArray(0)
}

// ReadPixels reads the default framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}

func highlight(c [3]float32) [3]float32 {
	for i := range c {
		c[i] = min(c[i]*0.5+0.5, 1)
	}
	return c
}
