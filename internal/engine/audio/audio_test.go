package audio

import (
	gomath "math"
	"testing"
	"time"
)

func TestVolumeConversion(t *testing.T) {
	tests := []struct {
		vol  float64
		want float64
	}{
		{1.0, 0},
		{0.5, -1},
		{0.25, -2},
		{0.0, -100},
	}

	for _, tt := range tests {
		if got := volumeToDb(tt.vol); gomath.Abs(got-tt.want) > 1e-9 {
			t.Errorf("volumeToDb(%f) = %f, want %f", tt.vol, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, min, max, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
		{0, 0, 1, 0},
		{1, 0, 1, 1},
	}

	for _, tt := range tests {
		got := clamp(tt.v, tt.min, tt.max)
		if got != tt.want {
			t.Errorf("clamp(%f, %f, %f) = %f, want %f", tt.v, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestNewManager(t *testing.T) {
	m := New(3)
	if m.Volume() != 1 {
		t.Errorf("volume = %f, want clamped to 1", m.Volume())
	}
	if m.IsInitialized() {
		t.Error("should not be initialized before Init")
	}

	m.SetVolume(0.3)
	if m.Volume() != 0.3 {
		t.Errorf("volume = %f, want 0.3", m.Volume())
	}

	// Playing without a device must not panic.
	m.Play(CueAttract)
	m.Close()
}

func TestToneLength(t *testing.T) {
	cue := Cue{Freq: 440, Duration: 100 * time.Millisecond}
	s := tone(DefaultSampleRate, cue)
	want := DefaultSampleRate.N(cue.Duration)

	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for {
		n, ok := s.Stream(buf)
		for i := range n {
			peak = gomath.Max(peak, gomath.Abs(buf[i][0]))
			if buf[i][0] != buf[i][1] {
				t.Fatalf("sample %d not mono: %v", total+i, buf[i])
			}
		}
		total += n
		if !ok {
			break
		}
	}

	if total != want {
		t.Errorf("streamed %d samples, want %d", total, want)
	}
	if peak <= 0.1 || peak > 1 {
		t.Errorf("peak = %f, want in (0.1, 1]", peak)
	}
}
