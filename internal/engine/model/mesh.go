package model

import (
	"github.com/thirdlf03/zawa/internal/physics"
)

// FromTrimesh builds a flat-shaded mesh in the trimesh's local frame. Each
// triangle gets its own three vertices carrying the face normal, so the
// faceted collision surface is drawn exactly as the balls see it.
func FromTrimesh(tm *physics.Trimesh) *Mesh {
	if tm == nil || len(tm.Triangles) == 0 {
		return nil
	}

	m := &Mesh{
		Vertices: make([]Vertex, 0, len(tm.Triangles)*3),
		Indices:  make([]uint32, 0, len(tm.Triangles)*3),
		Bounds:   emptyBounds(),
	}
	for i := range tm.Triangles {
		tri := &tm.Triangles[i]
		n := tri.Normal.Array()
		base := uint32(len(m.Vertices))
		for _, v := range [3][3]float32{tri.V0.Array(), tri.V1.Array(), tri.V2.Array()} {
			m.Vertices = append(m.Vertices, Vertex{Position: v, Normal: n})
			updateBounds(&m.Bounds, v)
		}
		m.Indices = append(m.Indices, base, base+1, base+2)
	}
	return m
}
