package model

import (
	gomath "math"
)

// UVSphere builds a smooth sphere of the given radius centred on the origin
// from stacks rings of slices segments each.
func UVSphere(radius float32, stacks, slices int) *Mesh {
	stacks = max(stacks, 2)
	slices = max(slices, 3)

	m := &Mesh{Bounds: emptyBounds()}
	for i := 0; i <= stacks; i++ {
		phi := gomath.Pi * float64(i) / float64(stacks)
		sp, cp := gomath.Sincos(phi)
		for j := 0; j <= slices; j++ {
			theta := 2 * gomath.Pi * float64(j) / float64(slices)
			st, ct := gomath.Sincos(theta)
			n := [3]float32{float32(sp * ct), float32(cp), float32(sp * st)}
			p := [3]float32{n[0] * radius, n[1] * radius, n[2] * radius}
			m.Vertices = append(m.Vertices, Vertex{Position: p, Normal: n})
			updateBounds(&m.Bounds, p)
		}
	}

	row := uint32(slices + 1)
	for i := 0; i < stacks; i++ {
		for j := 0; j < slices; j++ {
			a := uint32(i)*row + uint32(j)
			b := a + row
			if i != 0 {
				m.Indices = append(m.Indices, a, b, a+1)
			}
			if i != stacks-1 {
				m.Indices = append(m.Indices, a+1, b, b+1)
			}
		}
	}
	return m
}
