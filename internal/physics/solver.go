package physics

import (
	"github.com/thirdlf03/zawa/pkg/math"
)

func (w *World) solve(contacts []*contact) {
	if len(contacts) == 0 {
		return
	}

	for _, c := range contacts {
		c.rA = c.point.Sub(c.a.Position)
		c.rB = c.point.Sub(c.b.Position)
		c.normalK = effectiveMass(c, c.normal)

		vn := c.a.velocityAt(c.rA).Sub(c.b.velocityAt(c.rB)).Dot(c.normal)
		if vn < 0 {
			c.bounce = -c.material.Restitution * vn
		}
	}

	for range w.cfg.Iterations {
		for _, c := range contacts {
			solveContact(c)
		}
	}

	for _, c := range contacts {
		correctPosition(c, w.cfg.Slop, w.cfg.Correction)
	}
}

func effectiveMass(c *contact, dir math.Vec3) float32 {
	ra := c.rA.Cross(dir)
	rb := c.rB.Cross(dir)
	return c.a.invMass + c.b.invMass +
		c.a.invInertia*ra.LengthSq() + c.b.invInertia*rb.LengthSq()
}

func solveContact(c *contact) {
	if c.normalK <= 0 {
		return
	}

	vRel := c.a.velocityAt(c.rA).Sub(c.b.velocityAt(c.rB))
	vn := vRel.Dot(c.normal)

	jn := (c.bounce - vn) / c.normalK
	old := c.normalAcc
	c.normalAcc = max(old+jn, 0)
	jn = c.normalAcc - old

	impulse := c.normal.Scale(jn)
	c.a.applyImpulse(impulse, c.rA)
	c.b.applyImpulse(impulse.Neg(), c.rB)

	mu := c.material.Friction
	if mu <= 0 {
		return
	}

	vRel = c.a.velocityAt(c.rA).Sub(c.b.velocityAt(c.rB))
	vt := vRel.Sub(c.normal.Scale(vRel.Dot(c.normal)))
	speed := vt.Length()
	if speed < 1e-6 {
		return
	}
	tangent := vt.Scale(1 / speed)
	kt := effectiveMass(c, tangent)
	if kt <= 0 {
		return
	}

	jt := -speed / kt
	limit := mu * c.normalAcc
	oldT := c.tangAcc
	c.tangAcc = min(max(oldT+jt, -limit), limit)
	jt = c.tangAcc - oldT

	fi := tangent.Scale(jt)
	c.a.applyImpulse(fi, c.rA)
	c.b.applyImpulse(fi.Neg(), c.rB)
}

func correctPosition(c *contact, slop, fraction float32) {
	total := c.a.invMass + c.b.invMass
	if total == 0 {
		return
	}
	pen := c.depth - slop
	if pen <= 0 {
		return
	}
	push := c.normal.Scale(pen * fraction / total)
	c.a.Position = c.a.Position.Add(push.Scale(c.a.invMass))
	c.b.Position = c.b.Position.Sub(push.Scale(c.b.invMass))
}
