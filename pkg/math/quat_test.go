package math

import (
	"math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{X: 1, Y: 2, Z: 3, W: 4}
	n := q.Normalize()

	length := float32(math.Sqrt(float64(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W)))
	if math.Abs(float64(length-1.0)) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}
}

func TestQuatToMat4(t *testing.T) {
	m := QuatIdentity().ToMat4()

	identity := Identity()
	for i := 0; i < 16; i++ {
		if math.Abs(float64(m[i]-identity[i])) > 0.0001 {
			t.Errorf("Identity quat should produce identity matrix, element %d: got %v, want %v", i, m[i], identity[i])
		}
	}
}

func TestQuatFromAxisAngle(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, float32(math.Pi/2))

	expectedW := float32(math.Cos(math.Pi / 4))
	expectedY := float32(math.Sin(math.Pi / 4))

	if math.Abs(float64(q.W-expectedW)) > 0.001 {
		t.Errorf("QuatFromAxisAngle W: expected %v, got %v", expectedW, q.W)
	}
	if math.Abs(float64(q.Y-expectedY)) > 0.001 {
		t.Errorf("QuatFromAxisAngle Y: expected %v, got %v", expectedY, q.Y)
	}
}

func TestQuatRotateMatchesMatrix(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{1, 1, 0}.Normalize(), 1.1)
	v := Vec3{0.3, -2, 5}

	got := q.Rotate(v)
	want := q.ToMat4().TransformPoint(v)
	if got.Distance(want) > 0.0001 {
		t.Errorf("Quat.Rotate() = %v, matrix gives %v", got, want)
	}
}

func TestQuatConjugateUndoesRotation(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{0, 0, 1}, 0.8)
	v := Vec3{1, 2, 3}
	got := q.Conjugate().Rotate(q.Rotate(v))
	if got.Distance(v) > 0.0001 {
		t.Errorf("conjugate round trip = %v, want %v", got, v)
	}
}

func TestQuatIntegrate(t *testing.T) {
	// Spin about Y at pi/2 rad/s for one second in small steps.
	q := QuatIdentity()
	w := Vec3{0, float32(math.Pi / 2), 0}
	for i := 0; i < 600; i++ {
		q = q.Integrate(w, 1.0/600)
	}

	got := q.Rotate(Vec3{1, 0, 0})
	want := Vec3{0, 0, -1}
	if got.Distance(want) > 0.01 {
		t.Errorf("integrated rotation of +X = %v, want %v", got, want)
	}
}

func TestQuatIntegrateZeroSpin(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{1, 0, 0}, 0.4)
	got := q.Integrate(Vec3{}, 1.0/60)
	v := Vec3{0, 1, 0}
	if got.Rotate(v).Distance(q.Rotate(v)) > 0.0001 {
		t.Errorf("zero angular velocity changed orientation: %v -> %v", q, got)
	}
}

func TestQuatFromMat4(t *testing.T) {
	axes := []Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, Vec3{1, 2, 3}.Normalize()}
	angles := []float32{0.3, 1.5, 2.9, -2.2}

	for _, axis := range axes {
		for _, angle := range angles {
			q := QuatFromAxisAngle(axis, angle)
			back := QuatFromMat4(q.ToMat4())

			v := Vec3{0.5, -1, 2}
			if d := back.Rotate(v).Distance(q.Rotate(v)); d > 0.0001 {
				t.Errorf("QuatFromMat4 axis %v angle %v: rotation differs by %v", axis, angle, d)
			}
		}
	}
}
