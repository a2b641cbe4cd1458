package physics

import (
	gomath "math"

	"github.com/thirdlf03/zawa/pkg/math"
)

const (
	bvhLeafSize = 4
	bvhMaxDepth = 20
)

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max math.Vec3
}

// Overlaps reports whether two boxes intersect (touching counts).
func (a AABB) Overlaps(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

// Expand grows the box by r on every side.
func (a AABB) Expand(r float32) AABB {
	d := math.Vec3{X: r, Y: r, Z: r}
	return AABB{Min: a.Min.Sub(d), Max: a.Max.Add(d)}
}

func emptyAABB() AABB {
	const inf = gomath.MaxFloat32
	return AABB{
		Min: math.Vec3{X: inf, Y: inf, Z: inf},
		Max: math.Vec3{X: -inf, Y: -inf, Z: -inf},
	}
}

type bvhNode struct {
	bounds      AABB
	left, right *bvhNode
	triangles   []int // leaf only
}

func buildBVH(tris []Triangle) *bvhNode {
	if len(tris) == 0 {
		return nil
	}
	indices := make([]int, len(tris))
	for i := range indices {
		indices[i] = i
	}
	return buildBVHNode(tris, indices, 0)
}

func buildBVHNode(tris []Triangle, indices []int, depth int) *bvhNode {
	node := &bvhNode{bounds: triangleBounds(tris, indices)}

	if len(indices) <= bvhLeafSize || depth > bvhMaxDepth {
		node.triangles = indices
		return node
	}

	size := node.bounds.Max.Sub(node.bounds.Min)
	axis := 0
	if size.Y > size.X {
		axis = 1
	}
	if size.Z > size.Axis(axis) {
		axis = 2
	}

	mid := partitionTriangles(tris, indices, axis)
	if mid == 0 || mid == len(indices) {
		node.triangles = indices
		return node
	}

	node.left = buildBVHNode(tris, indices[:mid], depth+1)
	node.right = buildBVHNode(tris, indices[mid:], depth+1)
	return node
}

func triangleBounds(tris []Triangle, indices []int) AABB {
	b := emptyAABB()
	for _, idx := range indices {
		t := &tris[idx]
		b.Min = b.Min.Min(t.V0).Min(t.V1).Min(t.V2)
		b.Max = b.Max.Max(t.V0).Max(t.V1).Max(t.V2)
	}
	return b
}

// partitionTriangles splits indices around the mean centroid on axis.
func partitionTriangles(tris []Triangle, indices []int, axis int) int {
	var center float32
	for _, idx := range indices {
		center += tris[idx].Centroid().Axis(axis)
	}
	center /= float32(len(indices))

	left, right := 0, len(indices)-1
	for left <= right {
		if tris[indices[left]].Centroid().Axis(axis) < center {
			left++
		} else {
			indices[left], indices[right] = indices[right], indices[left]
			right--
		}
	}
	return left
}

func (n *bvhNode) query(tris []Triangle, box AABB, out []int) []int {
	if n == nil || !n.bounds.Overlaps(box) {
		return out
	}
	if n.left == nil && n.right == nil {
		for _, idx := range n.triangles {
			t := &tris[idx]
			tb := AABB{Min: t.V0.Min(t.V1).Min(t.V2), Max: t.V0.Max(t.V1).Max(t.V2)}
			if tb.Overlaps(box) {
				out = append(out, idx)
			}
		}
		return out
	}
	out = n.left.query(tris, box, out)
	return n.right.query(tris, box, out)
}
