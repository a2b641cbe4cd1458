// Package collision turns renderable mesh geometry into static collision
// bodies.
package collision

import (
	"go.uber.org/zap"

	"github.com/thirdlf03/zawa/internal/goal"
	"github.com/thirdlf03/zawa/internal/logger"
	"github.com/thirdlf03/zawa/internal/physics"
	"github.com/thirdlf03/zawa/pkg/math"
)

// CollisionMesh is scaled triangle geometry ready for a trimesh shape.
type CollisionMesh struct {
	Vertices []math.Vec3
	Indices  []uint32 // flattened triples, all in range
	Scale    math.Vec3
}

// TriangleCount returns the number of index triples.
func (m *CollisionMesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// SequentialIndices returns 0..n-1.
func SequentialIndices(n int) []uint32 {
	if n <= 0 {
		return nil
	}
	idx := make([]uint32, n)
	for i := range idx {
		idx[i] = uint32(i)
	}
	return idx
}

// Build converts flattened xyz positions and optional indices into a
// collision mesh. Each vertex is multiplied component-wise by scale; no
// rotation or translation is applied. With nil indices every three
// consecutive vertices form one triangle. Trailing partial vertices or index
// triples, and triples that reference missing vertices, are dropped.
func Build(vertices []float32, indices []uint32, scale math.Vec3) *CollisionMesh {
	n := len(vertices) / 3
	verts := make([]math.Vec3, n)
	for i := 0; i < n; i++ {
		v := math.Vec3{X: vertices[i*3], Y: vertices[i*3+1], Z: vertices[i*3+2]}
		verts[i] = v.Mul(scale)
	}

	if indices == nil {
		indices = SequentialIndices(n)
	}

	out := make([]uint32, 0, len(indices)/3*3)
	limit := uint32(n)
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		if a >= limit || b >= limit || c >= limit {
			continue
		}
		out = append(out, a, b, c)
	}

	return &CollisionMesh{
		Vertices: verts,
		Indices:  out,
		Scale:    scale,
	}
}

// MeshSource is one mesh instance found in a level asset.
type MeshSource struct {
	Name        string
	Vertices    []float32 // flattened xyz
	Indices     []uint32  // nil when the primitive is not indexed
	Scale       math.Vec3
	Position    math.Vec3
	Orientation math.Quat
	Goal        bool
}

// Builder adds static collision bodies to a world and records goals.
type Builder struct {
	world *physics.World
	goals *goal.Registry
	log   *zap.Logger

	bodies    int
	triangles int
}

// NewBuilder creates a builder for world and goals.
func NewBuilder(world *physics.World, goals *goal.Registry) *Builder {
	return &Builder{
		world: world,
		goals: goals,
		log:   logger.Named("collision"),
	}
}

// AddMesh builds src into a zero-mass trimesh body placed at the instance
// transform and adds it to the world. Goal-tagged sources also register
// their origin as a goal.
func (b *Builder) AddMesh(src MeshSource) *physics.Body {
	mesh := Build(src.Vertices, src.Indices, src.Scale)
	shape := physics.NewTrimesh(mesh.Vertices, mesh.Indices)
	body := physics.NewStaticTrimesh(shape, src.Position, src.Orientation)
	b.world.AddBody(body)

	b.bodies++
	b.triangles += shape.TriangleCount()

	if src.Goal {
		if err := b.goals.Add(src.Name, src.Position); err != nil {
			b.log.Warn("goal dropped", zap.String("mesh", src.Name), zap.Error(err))
		}
	}

	b.log.Debug("collision mesh added",
		zap.String("mesh", src.Name),
		zap.Int("body", body.ID),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("triangles", shape.TriangleCount()),
		zap.Bool("goal", src.Goal))

	return body
}

// Stats returns the number of bodies and triangles added so far.
func (b *Builder) Stats() (bodies, triangles int) {
	return b.bodies, b.triangles
}
