package collision

import (
	"testing"

	"github.com/thirdlf03/zawa/internal/goal"
	"github.com/thirdlf03/zawa/internal/physics"
	"github.com/thirdlf03/zawa/pkg/math"
)

var unitScale = math.Vec3{X: 1, Y: 1, Z: 1}

func TestBuildSequentialIndices(t *testing.T) {
	// Six vertices, no index list: two triangles.
	verts := []float32{
		0, 0, 0, 1, 0, 0, 0, 0, 1,
		2, 0, 0, 3, 0, 0, 2, 0, 1,
	}

	m := Build(verts, nil, unitScale)

	if len(m.Vertices) != 6 {
		t.Fatalf("vertices = %d, want 6", len(m.Vertices))
	}
	if m.TriangleCount() != 2 {
		t.Errorf("TriangleCount() = %d, want 2", m.TriangleCount())
	}
	for i, idx := range m.Indices {
		if idx != uint32(i) {
			t.Errorf("index %d = %d, want %d", i, idx, i)
		}
	}
}

func TestBuildScalesPerAxis(t *testing.T) {
	verts := []float32{1, 2, 3, -1, 0.5, 4, 0, 0, 0}
	scale := math.Vec3{X: 3, Y: 0.8, Z: 3}

	m := Build(verts, []uint32{0, 1, 2}, scale)

	want := []math.Vec3{
		{X: 3, Y: 1.6, Z: 9},
		{X: -3, Y: 0.4, Z: 12},
		{},
	}
	for i, w := range want {
		if m.Vertices[i] != w {
			t.Errorf("vertex %d = %v, want %v", i, m.Vertices[i], w)
		}
	}
	if m.Scale != scale {
		t.Errorf("Scale = %v, want %v", m.Scale, scale)
	}
}

func TestBuildDropsMalformed(t *testing.T) {
	tests := []struct {
		name      string
		vertices  []float32
		indices   []uint32
		wantVerts int
		wantTris  int
	}{
		{"trailing vertex component", []float32{0, 0, 0, 1, 0, 0, 0, 1, 0, 9, 9}, nil, 3, 1},
		{"trailing index", []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, []uint32{0, 1, 2, 0}, 3, 1},
		{"out of range index", []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, []uint32{0, 1, 2, 0, 1, 7}, 3, 1},
		{"partial sequential", []float32{0, 0, 0, 1, 0, 0, 0, 1, 0, 1, 1, 0}, nil, 4, 1},
		{"empty", nil, nil, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Build(tt.vertices, tt.indices, unitScale)
			if len(m.Vertices) != tt.wantVerts {
				t.Errorf("vertices = %d, want %d", len(m.Vertices), tt.wantVerts)
			}
			if m.TriangleCount() != tt.wantTris {
				t.Errorf("TriangleCount() = %d, want %d", m.TriangleCount(), tt.wantTris)
			}
		})
	}
}

func TestBuildIgnoresTransform(t *testing.T) {
	// Vertices are only scaled; placement is carried by the body.
	w := physics.NewWorld(physics.DefaultConfig())
	b := NewBuilder(w, goal.NewRegistry())

	body := b.AddMesh(MeshSource{
		Name:        "stages",
		Vertices:    []float32{1, 0, 0, 0, 0, 1, 0, 0, 0},
		Scale:       math.Vec3{X: 2, Y: 2, Z: 2},
		Position:    math.Vec3{Y: 10},
		Orientation: math.QuatFromAxisAngle(math.Vec3{Y: 1}, 1),
	})

	mesh := body.Shape.(*physics.Trimesh)
	if mesh.Vertices[0] != (math.Vec3{X: 2}) {
		t.Errorf("vertex 0 = %v, want (2,0,0)", mesh.Vertices[0])
	}
	if body.Position != (math.Vec3{Y: 10}) {
		t.Errorf("body position = %v, want (0,10,0)", body.Position)
	}
	if !body.IsStatic() {
		t.Error("collision body should be static")
	}
}

func TestAddMeshRegistersGoals(t *testing.T) {
	w := physics.NewWorld(physics.DefaultConfig())
	goals := goal.NewRegistry()
	b := NewBuilder(w, goals)

	tri := []float32{0, 0, 0, 1, 0, 0, 0, 0, 1}
	b.AddMesh(MeshSource{Name: "stages", Vertices: tri, Scale: unitScale})
	b.AddMesh(MeshSource{Name: "holes", Vertices: tri, Scale: unitScale, Position: math.Vec3{X: 4}, Goal: true})

	if len(w.Bodies()) != 2 {
		t.Errorf("bodies = %d, want 2", len(w.Bodies()))
	}
	if goals.Len() != 1 || goals.Goals()[0].Position != (math.Vec3{X: 4}) {
		t.Errorf("goals = %v, want one at (4,0,0)", goals.Goals())
	}

	goals.Freeze()
	b.AddMesh(MeshSource{Name: "holes", Vertices: tri, Scale: unitScale, Goal: true})
	if goals.Len() != 1 {
		t.Errorf("frozen registry grew to %d", goals.Len())
	}

	bodies, tris := b.Stats()
	if bodies != 3 || tris != 3 {
		t.Errorf("Stats() = %d, %d; want 3, 3", bodies, tris)
	}
}
