package physics

// Material describes the surface response of a body.
type Material struct {
	Name        string
	Friction    float32
	Restitution float32
}

// ContactMaterial is the combined response used for one contact pair.
type ContactMaterial struct {
	Friction    float32
	Restitution float32
}

// DefaultContactMaterial is used when either body of a pair has no material.
var DefaultContactMaterial = ContactMaterial{
	Friction:    0.3,
	Restitution: 0,
}

// BallMaterial is the material assigned to every ball.
var BallMaterial = &Material{
	Name:        "ball",
	Friction:    0,
	Restitution: 1,
}

// combine returns the contact material for a pair of bodies. When both carry
// a material the coefficients are multiplied, otherwise fallback is used.
func combine(a, b *Material, fallback ContactMaterial) ContactMaterial {
	if a == nil || b == nil {
		return fallback
	}
	return ContactMaterial{
		Friction:    a.Friction * b.Friction,
		Restitution: a.Restitution * b.Restitution,
	}
}
