package lighting

import (
	"math"
	"testing"
)

func TestSunDirection(t *testing.T) {
	tests := []struct {
		lon, lat float32
		want     [3]float32
	}{
		{0, 90, [3]float32{0, 1, 0}},
		{0, 0, [3]float32{0, 0, 1}},
		{90, 0, [3]float32{1, 0, 0}},
	}
	for _, tt := range tests {
		got := SunDirection(tt.lon, tt.lat)
		for i := range got {
			if math.Abs(float64(got[i]-tt.want[i])) > 1e-6 {
				t.Errorf("SunDirection(%v, %v) = %v, want %v", tt.lon, tt.lat, got, tt.want)
				break
			}
		}
	}
}

func TestShade(t *testing.T) {
	s := Sun{Direction: [3]float32{0, 1, 0}, Ambient: 0.25}

	if got := s.Shade([3]float32{0, 1, 0}); got != 1 {
		t.Errorf("facing the sun = %v, want 1", got)
	}
	if got := s.Shade([3]float32{0, -1, 0}); got != 0.25 {
		t.Errorf("facing away = %v, want ambient 0.25", got)
	}
}
