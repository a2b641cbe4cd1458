package physics

import (
	"testing"

	"github.com/thirdlf03/zawa/pkg/math"
)

func TestNewTrimeshSkipsBadTriangles(t *testing.T) {
	verts := []math.Vec3{{}, {X: 1}, {Z: 1}, {X: 2}}
	indices := []uint32{
		0, 1, 2, // ok
		0, 1, 9, // out of range
		0, 1, 3, // degenerate (collinear)
		1, 2, // trailing partial triple
	}

	m := NewTrimesh(verts, indices)
	if m.TriangleCount() != 1 {
		t.Errorf("TriangleCount() = %d, want 1", m.TriangleCount())
	}
}

func TestTrimeshQuery(t *testing.T) {
	// A strip of unit squares along X.
	var verts []math.Vec3
	var indices []uint32
	for i := 0; i < 16; i++ {
		x := float32(i)
		base := uint32(len(verts))
		verts = append(verts,
			math.Vec3{X: x}, math.Vec3{X: x + 1}, math.Vec3{X: x + 1, Z: 1}, math.Vec3{X: x, Z: 1})
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	m := NewTrimesh(verts, indices)

	got := m.Query(AABB{Min: math.Vec3{X: 5.2, Y: -0.1, Z: 0.2}, Max: math.Vec3{X: 5.8, Y: 0.1, Z: 0.8}})
	if len(got) != 2 {
		t.Fatalf("Query() returned %d triangles, want 2", len(got))
	}
	for _, idx := range got {
		c := m.Triangles[idx].Centroid()
		if c.X < 5 || c.X > 6 {
			t.Errorf("Query() returned triangle centered at %v", c)
		}
	}

	if far := m.Query(AABB{Min: math.Vec3{Y: 5}, Max: math.Vec3{X: 20, Y: 6, Z: 1}}); len(far) != 0 {
		t.Errorf("Query() above the strip returned %d triangles", len(far))
	}
}

func TestClosestPointOnTriangle(t *testing.T) {
	a := math.Vec3{}
	b := math.Vec3{X: 2}
	c := math.Vec3{Z: 2}

	tests := []struct {
		name string
		p    math.Vec3
		want math.Vec3
	}{
		{"above face", math.Vec3{X: 0.5, Y: 3, Z: 0.5}, math.Vec3{X: 0.5, Z: 0.5}},
		{"vertex a", math.Vec3{X: -1, Z: -1}, a},
		{"vertex b", math.Vec3{X: 5, Z: -1}, b},
		{"edge ab", math.Vec3{X: 1, Y: 1, Z: -1}, math.Vec3{X: 1}},
		{"edge bc", math.Vec3{X: 2, Z: 2}, math.Vec3{X: 1, Z: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := closestPointOnTriangle(tt.p, a, b, c)
			if got.Distance(tt.want) > 1e-5 {
				t.Errorf("closestPointOnTriangle(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestSphereInertia(t *testing.T) {
	b := NewBody(BodyOptions{Mass: 2, Shape: NewSphere(0.5)})
	// I = 2/5 m r^2 = 0.2
	if got := 1 / b.invInertia; got < 0.1999 || got > 0.2001 {
		t.Errorf("sphere inertia = %v, want 0.2", got)
	}
	if b.InvMass() != 0.5 {
		t.Errorf("InvMass() = %v, want 0.5", b.InvMass())
	}
}
