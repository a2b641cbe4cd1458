package physics

import (
	"github.com/thirdlf03/zawa/pkg/math"
)

// ShapeKind identifies the collision shape of a body.
type ShapeKind int

const (
	ShapeSphere ShapeKind = iota
	ShapeTrimesh
)

// String returns the shape name.
func (k ShapeKind) String() string {
	switch k {
	case ShapeSphere:
		return "sphere"
	case ShapeTrimesh:
		return "trimesh"
	default:
		return "unknown"
	}
}

// Shape is a collision shape expressed in body-local coordinates.
type Shape interface {
	Kind() ShapeKind
	// Bounds returns the local-space bounding box.
	Bounds() AABB
}

// Sphere is a sphere centered on the body origin.
type Sphere struct {
	Radius float32
}

// NewSphere creates a sphere shape.
func NewSphere(radius float32) *Sphere {
	return &Sphere{Radius: radius}
}

// Kind implements Shape.
func (s *Sphere) Kind() ShapeKind { return ShapeSphere }

// Bounds implements Shape.
func (s *Sphere) Bounds() AABB {
	r := math.Vec3{X: s.Radius, Y: s.Radius, Z: s.Radius}
	return AABB{Min: r.Neg(), Max: r}
}

// Triangle is one face of a trimesh with its precomputed unit normal.
type Triangle struct {
	V0, V1, V2 math.Vec3
	Normal     math.Vec3
}

// Centroid returns the triangle centroid.
func (t *Triangle) Centroid() math.Vec3 {
	return t.V0.Add(t.V1).Add(t.V2).Scale(1.0 / 3.0)
}

// Trimesh is static triangle geometry with a BVH for sphere queries.
type Trimesh struct {
	Vertices  []math.Vec3
	Indices   []uint32
	Triangles []Triangle
	root      *bvhNode
}

// NewTrimesh builds a trimesh from vertices and flattened index triples.
// Triples that reference missing vertices and degenerate triangles are
// skipped.
func NewTrimesh(vertices []math.Vec3, indices []uint32) *Trimesh {
	t := &Trimesh{
		Vertices: vertices,
		Indices:  indices,
	}

	n := uint32(len(vertices))
	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		if i0 >= n || i1 >= n || i2 >= n {
			continue
		}
		v0, v1, v2 := vertices[i0], vertices[i1], vertices[i2]
		normal := v1.Sub(v0).Cross(v2.Sub(v0))
		if normal.LengthSq() == 0 {
			continue
		}
		t.Triangles = append(t.Triangles, Triangle{V0: v0, V1: v1, V2: v2, Normal: normal.Normalize()})
	}

	t.root = buildBVH(t.Triangles)
	return t
}

// Kind implements Shape.
func (t *Trimesh) Kind() ShapeKind { return ShapeTrimesh }

// Bounds implements Shape.
func (t *Trimesh) Bounds() AABB {
	if t.root == nil {
		return AABB{}
	}
	return t.root.bounds
}

// TriangleCount returns the number of usable triangles.
func (t *Trimesh) TriangleCount() int {
	return len(t.Triangles)
}

// Query returns the indices of triangles whose bounds overlap box.
func (t *Trimesh) Query(box AABB) []int {
	return t.root.query(t.Triangles, box, nil)
}
