package level

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/thirdlf03/zawa/internal/collision"
	"github.com/thirdlf03/zawa/pkg/math"
)

// transform is a decomposed node transform.
type transform struct {
	position    math.Vec3
	orientation math.Quat
	scale       math.Vec3
}

func identityTransform() transform {
	return transform{
		orientation: math.QuatIdentity(),
		scale:       math.Vec3{X: 1, Y: 1, Z: 1},
	}
}

// then applies child (local to t) and returns the combined transform.
func (t transform) then(child transform) transform {
	return transform{
		position:    t.position.Add(t.orientation.Rotate(child.position.Mul(t.scale))),
		orientation: t.orientation.Mul(child.orientation).Normalize(),
		scale:       t.scale.Mul(child.scale),
	}
}

func nodeTransform(n *gltf.Node) transform {
	if m := n.MatrixOrDefault(); m != gltf.DefaultMatrix {
		return decompose(m)
	}
	tr := n.TranslationOrDefault()
	rot := n.RotationOrDefault()
	sc := n.ScaleOrDefault()
	return transform{
		position:    math.Vec3{X: float32(tr[0]), Y: float32(tr[1]), Z: float32(tr[2])},
		orientation: math.Quat{X: float32(rot[0]), Y: float32(rot[1]), Z: float32(rot[2]), W: float32(rot[3])}.Normalize(),
		scale:       math.Vec3{X: float32(sc[0]), Y: float32(sc[1]), Z: float32(sc[2])},
	}
}

// decompose splits a column-major TRS matrix.
func decompose(m [16]float64) transform {
	var mat math.Mat4
	for i := range m {
		mat[i] = float32(m[i])
	}
	col := func(i int) math.Vec3 {
		return math.Vec3{X: mat[i*4], Y: mat[i*4+1], Z: mat[i*4+2]}
	}
	scale := math.Vec3{X: col(0).Length(), Y: col(1).Length(), Z: col(2).Length()}

	rot := math.Identity()
	for i, s := range []float32{scale.X, scale.Y, scale.Z} {
		if s == 0 {
			continue
		}
		c := col(i).Scale(1 / s)
		rot[i*4], rot[i*4+1], rot[i*4+2] = c.X, c.Y, c.Z
	}

	return transform{
		position:    math.Vec3{X: mat[12], Y: mat[13], Z: mat[14]},
		orientation: math.QuatFromMat4(rot),
		scale:       scale,
	}
}

// LoadFile reads a glTF or GLB file and returns one mesh source per triangle
// primitive, placed at its node's world transform.
func LoadFile(asset Asset) ([]collision.MeshSource, error) {
	doc, err := gltf.Open(asset.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", asset.Path, err)
	}
	return Extract(doc, asset)
}

// Extract walks the default scene of doc.
func Extract(doc *gltf.Document, asset Asset) ([]collision.MeshSource, error) {
	roots := sceneRoots(doc)
	var out []collision.MeshSource
	visited := make(map[int]bool)

	var walk func(idx int, parent transform) error
	walk = func(idx int, parent transform) error {
		if idx < 0 || idx >= len(doc.Nodes) {
			return fmt.Errorf("node %d out of range", idx)
		}
		if visited[idx] {
			return fmt.Errorf("node %d visited twice", idx)
		}
		visited[idx] = true

		node := doc.Nodes[idx]
		world := parent.then(nodeTransform(node))

		if node.Mesh != nil {
			srcs, err := meshSources(doc, int(*node.Mesh), nodeName(node, idx), world, asset)
			if err != nil {
				return err
			}
			out = append(out, srcs...)
		}
		for _, child := range node.Children {
			if err := walk(int(child), world); err != nil {
				return err
			}
		}
		return nil
	}

	for _, root := range roots {
		if err := walk(root, identityTransform()); err != nil {
			return out, fmt.Errorf("%s: %w", asset.Name, err)
		}
	}
	return out, nil
}

func sceneRoots(doc *gltf.Document) []int {
	if len(doc.Scenes) > 0 {
		s := 0
		if doc.Scene != nil && int(*doc.Scene) < len(doc.Scenes) {
			s = int(*doc.Scene)
		}
		roots := make([]int, len(doc.Scenes[s].Nodes))
		for i, n := range doc.Scenes[s].Nodes {
			roots[i] = int(n)
		}
		return roots
	}

	// No scenes: every node that is nobody's child is a root.
	child := make(map[int]bool)
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			child[int(c)] = true
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !child[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

func nodeName(n *gltf.Node, idx int) string {
	if n.Name != "" {
		return n.Name
	}
	return fmt.Sprintf("node%d", idx)
}

func meshSources(doc *gltf.Document, meshIdx int, name string, world transform, asset Asset) ([]collision.MeshSource, error) {
	if meshIdx < 0 || meshIdx >= len(doc.Meshes) {
		return nil, fmt.Errorf("mesh %d out of range", meshIdx)
	}

	var out []collision.MeshSource
	for i, prim := range doc.Meshes[meshIdx].Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok || int(posIdx) >= len(doc.Accessors) {
			continue
		}

		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return nil, fmt.Errorf("read positions of %s/%d: %w", name, i, err)
		}
		verts := make([]float32, 0, len(positions)*3)
		for _, p := range positions {
			verts = append(verts, p[0], p[1], p[2])
		}

		var indices []uint32
		if prim.Indices != nil && int(*prim.Indices) < len(doc.Accessors) {
			indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return nil, fmt.Errorf("read indices of %s/%d: %w", name, i, err)
			}
		}

		out = append(out, collision.MeshSource{
			Name:        asset.Name + "/" + name,
			Vertices:    verts,
			Indices:     indices,
			Scale:       asset.Scale,
			Position:    world.position,
			Orientation: world.orientation,
			// One goal per node instance, however many primitives it has.
			Goal: asset.Goal && len(out) == 0,
		})
	}
	return out, nil
}
