package physics

import (
	"sort"

	"github.com/thirdlf03/zawa/pkg/math"
)

const (
	// maxMeshContacts caps the contacts kept for one sphere/trimesh pair.
	maxMeshContacts = 4
	// sameNormalDot merges mesh contacts whose normals are nearly parallel.
	sameNormalDot = 0.95
)

// contact is one penetrating point between bodies a and b. normal points
// from b towards a.
type contact struct {
	a, b   *Body
	normal math.Vec3
	point  math.Vec3
	depth  float32

	material ContactMaterial

	rA, rB    math.Vec3
	normalK   float32
	bounce    float32
	normalAcc float32
	tangAcc   float32
}

// narrowphase collects all contacts between body pairs.
func (w *World) narrowphase() []*contact {
	var contacts []*contact
	for i := 0; i < len(w.bodies); i++ {
		a := w.bodies[i]
		for j := i + 1; j < len(w.bodies); j++ {
			b := w.bodies[j]
			if a.IsStatic() && b.IsStatic() {
				continue
			}
			contacts = w.collidePair(contacts, a, b)
		}
	}
	return contacts
}

func (w *World) collidePair(out []*contact, a, b *Body) []*contact {
	start := len(out)
	sa, aIsSphere := a.Shape.(*Sphere)
	sb, bIsSphere := b.Shape.(*Sphere)

	switch {
	case aIsSphere && bIsSphere:
		if c := sphereSphere(a, sa, b, sb); c != nil {
			out = append(out, c)
		}
	case aIsSphere:
		if mesh, ok := b.Shape.(*Trimesh); ok {
			out = append(out, sphereTrimesh(a, sa, b, mesh)...)
		}
	case bIsSphere:
		if mesh, ok := a.Shape.(*Trimesh); ok {
			out = append(out, sphereTrimesh(b, sb, a, mesh)...)
		}
	}

	if len(out) > start {
		mat := combine(a.Material, b.Material, w.DefaultContactMaterial)
		for _, c := range out[start:] {
			c.material = mat
		}
	}
	return out
}

func sphereSphere(a *Body, sa *Sphere, b *Body, sb *Sphere) *contact {
	d := a.Position.Sub(b.Position)
	rsum := sa.Radius + sb.Radius
	distSq := d.LengthSq()
	if distSq >= rsum*rsum {
		return nil
	}

	dist := d.Length()
	normal := math.Vec3{Y: 1}
	if dist > 1e-6 {
		normal = d.Scale(1 / dist)
	}
	return &contact{
		a:      a,
		b:      b,
		normal: normal,
		point:  b.Position.Add(normal.Scale(sb.Radius)),
		depth:  rsum - dist,
	}
}

// sphereTrimesh tests a sphere against a static mesh in the mesh's local
// frame and returns up to maxMeshContacts contacts with distinct normals.
func sphereTrimesh(s *Body, sphere *Sphere, m *Body, mesh *Trimesh) []*contact {
	r := sphere.Radius
	center := m.ToLocal(s.Position)
	box := AABB{Min: center, Max: center}.Expand(r)

	candidates := mesh.Query(box)
	if len(candidates) == 0 {
		return nil
	}

	var found []*contact
	for _, idx := range candidates {
		tri := &mesh.Triangles[idx]
		closest := closestPointOnTriangle(center, tri.V0, tri.V1, tri.V2)
		diff := center.Sub(closest)
		distSq := diff.LengthSq()
		if distSq >= r*r {
			continue
		}

		dist := diff.Length()
		normal := tri.Normal
		if dist > 1e-4 {
			normal = diff.Scale(1 / dist)
		} else if tri.Normal.Dot(center.Sub(tri.V0)) < 0 {
			normal = normal.Neg()
		}

		found = append(found, &contact{
			a:      s,
			b:      m,
			normal: m.Orientation.Rotate(normal),
			point:  m.Orientation.Rotate(closest).Add(m.Position),
			depth:  r - dist,
		})
	}

	sort.SliceStable(found, func(i, j int) bool { return found[i].depth > found[j].depth })

	kept := found[:0]
	for _, c := range found {
		duplicate := false
		for _, k := range kept {
			if c.normal.Dot(k.normal) > sameNormalDot {
				duplicate = true
				break
			}
		}
		if !duplicate {
			kept = append(kept, c)
			if len(kept) == maxMeshContacts {
				break
			}
		}
	}
	return kept
}

// closestPointOnTriangle returns the point of triangle abc closest to p.
func closestPointOnTriangle(p, a, b, c math.Vec3) math.Vec3 {
	ab := b.Sub(a)
	ac := c.Sub(a)
	ap := p.Sub(a)

	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return a
	}

	bp := p.Sub(b)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return a.Add(ab.Scale(v))
	}

	cp := p.Sub(c)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return a.Add(ac.Scale(w))
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return b.Add(c.Sub(b).Scale(w))
	}

	denom := 1 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return a.Add(ab.Scale(v)).Add(ac.Scale(w))
}
