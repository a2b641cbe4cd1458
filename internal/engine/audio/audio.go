// Package audio plays short synthesized cues, such as the chime heard when
// a ball comes within reach of a goal.
package audio

import (
	"fmt"
	gomath "math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
)

// DefaultSampleRate is the playback sample rate.
const DefaultSampleRate = beep.SampleRate(44100)

// Cue is a tone with an exponential decay.
type Cue struct {
	Freq     float64
	Duration time.Duration
}

// Stock cues.
var (
	CueAttract = Cue{Freq: 880, Duration: 180 * time.Millisecond}
	CueReset   = Cue{Freq: 330, Duration: 250 * time.Millisecond}
)

// Manager owns the speaker and a mixer for concurrent cues.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate
	volume      float64
	mixer       *beep.Mixer
}

// New creates a manager at volume (0.0 to 1.0). Nothing plays until Init
// succeeds.
func New(volume float64) *Manager {
	return &Manager{
		sampleRate: DefaultSampleRate,
		volume:     clamp(volume, 0, 1),
		mixer:      &beep.Mixer{},
	}
}

// Init opens the audio device.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Close stops playback.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Clear()
	m.initialized = false
}

// IsInitialized reports whether Init succeeded.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetVolume sets the volume (0.0 to 1.0).
func (m *Manager) SetVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = clamp(vol, 0, 1)
}

// Volume returns the volume.
func (m *Manager) Volume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.volume
}

// Play mixes cue into the output. It is a no-op before Init.
func (m *Manager) Play(cue Cue) {
	m.mu.RLock()
	ok := m.initialized
	vol := m.volume
	m.mu.RUnlock()

	if !ok || vol <= 0 {
		return
	}
	speaker.Lock()
	m.mixer.Add(&effects.Volume{
		Streamer: tone(m.sampleRate, cue),
		Base:     2,
		Volume:   volumeToDb(vol),
	})
	speaker.Unlock()
}

// tone returns a decaying sine streamer for cue.
func tone(sr beep.SampleRate, cue Cue) beep.Streamer {
	total := sr.N(cue.Duration)
	step := 2 * gomath.Pi * cue.Freq / float64(sr)
	decay := 5.0 / float64(max(total, 1))
	pos := 0

	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		n := min(len(samples), total-pos)
		for i := range n {
			p := float64(pos + i)
			v := gomath.Sin(step*p) * gomath.Exp(-decay*p)
			samples[i][0], samples[i][1] = v, v
		}
		pos += n
		return n, true
	})
}

// volumeToDb maps a 0-1 volume onto effects.Volume's base-2 scale, where
// 1 is unity gain.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100
	}
	return gomath.Log2(vol)
}

func clamp(v, lo, hi float64) float64 {
	return gomath.Max(lo, gomath.Min(hi, v))
}
