// Package lighting provides the directional light used to shade the scene.
package lighting

import (
	"math"
)

// Sun is a directional light with an ambient floor.
type Sun struct {
	Direction [3]float32 // unit vector pointing towards the light
	Color     [3]float32
	Ambient   float32
}

// DefaultSun lights the level from high above and slightly behind the
// default camera.
func DefaultSun() Sun {
	return Sun{
		Direction: SunDirection(45, 60),
		Color:     [3]float32{1, 1, 1},
		Ambient:   0.35,
	}
}

// SunDirection converts longitude/latitude angles in degrees to a light
// direction. Longitude rotates about Y, latitude is the elevation above the
// horizon. The result points towards the sun.
func SunDirection(longitude, latitude float32) [3]float32 {
	lonRad := float64(longitude) * math.Pi / 180.0
	latRad := float64(latitude) * math.Pi / 180.0

	x := float32(math.Cos(latRad) * math.Sin(lonRad))
	y := float32(math.Sin(latRad))
	z := float32(math.Cos(latRad) * math.Cos(lonRad))

	return [3]float32{x, y, z}
}

// Shade returns the diffuse-plus-ambient intensity for a surface normal.
func (s Sun) Shade(normal [3]float32) float32 {
	d := normal[0]*s.Direction[0] + normal[1]*s.Direction[1] + normal[2]*s.Direction[2]
	if d < 0 {
		d = 0
	}
	return min(s.Ambient+(1-s.Ambient)*d, 1)
}
