package camera

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/thirdlf03/zawa/pkg/math"
)

// Preset is a stored camera placement.
type Preset struct {
	Position math.Vec3 `yaml:"position"`
	Target   math.Vec3 `yaml:"target"`
}

// DefaultLookTarget is where the primary camera aims.
var DefaultLookTarget = math.Vec3{Y: -5}

// DefaultPresets returns the primary camera placements: overview, straight
// down, and two low angles.
func DefaultPresets() []Preset {
	return []Preset{
		{Position: math.Vec3{X: -8, Y: 25, Z: 0}, Target: DefaultLookTarget},
		{Position: math.Vec3{X: 0, Y: 13.5, Z: 0}, Target: DefaultLookTarget},
		{Position: math.Vec3{X: 0, Y: 8, Z: 3}, Target: DefaultLookTarget},
		{Position: math.Vec3{X: 0, Y: 3, Z: 3.5}, Target: DefaultLookTarget},
	}
}

// PresetCycler steps through presets in order, wrapping around.
type PresetCycler struct {
	Presets []Preset
	Index   int
}

// NewPresetCycler starts at preset 0.
func NewPresetCycler(presets []Preset) *PresetCycler {
	return &PresetCycler{Presets: presets}
}

// Current returns the active preset.
func (p *PresetCycler) Current() Preset {
	if len(p.Presets) == 0 {
		return Preset{}
	}
	return p.Presets[p.Index]
}

// Next advances to the following preset and returns it.
func (p *PresetCycler) Next() Preset {
	if len(p.Presets) == 0 {
		return Preset{}
	}
	p.Index = (p.Index + 1) % len(p.Presets)
	return p.Presets[p.Index]
}

// transition eases the camera from one placement to another.
type transition struct {
	from, to Preset
	tween    *gween.Tween
}

func (t *transition) update(dt float32) (Preset, bool) {
	k, done := t.tween.Update(dt)
	if done {
		return t.to, true
	}
	return Preset{
		Position: t.from.Position.Lerp(t.to.Position, k),
		Target:   t.from.Target.Lerp(t.to.Target, k),
	}, false
}

// Rig is the primary camera with its orbit controls and presets.
type Rig struct {
	Camera  *Camera
	Orbit   *OrbitControls
	Presets *PresetCycler

	// TweenDuration is the preset transition time in seconds; 0 snaps.
	TweenDuration float32

	active *transition
}

// NewRig places a camera at the first preset.
func NewRig(presets []Preset, aspect, tween float32) *Rig {
	cycler := NewPresetCycler(presets)
	start := cycler.Current()
	cam := New(start.Position, start.Target, aspect)
	return &Rig{
		Camera:        cam,
		Orbit:         NewOrbitControls(cam),
		Presets:       cycler,
		TweenDuration: tween,
	}
}

// Cycle moves to the next preset and re-aims at its target.
func (r *Rig) Cycle() Preset {
	next := r.Presets.Next()
	if r.TweenDuration <= 0 {
		r.active = nil
		r.place(next)
		return next
	}
	r.active = &transition{
		from:  Preset{Position: r.Camera.Position, Target: r.Camera.Target},
		to:    next,
		tween: gween.New(0, 1, r.TweenDuration, ease.OutCubic),
	}
	return next
}

// Transitioning reports whether a preset move is in progress.
func (r *Rig) Transitioning() bool {
	return r.active != nil
}

// Update advances any preset transition, otherwise applies orbit input.
func (r *Rig) Update(dt float32) {
	if r.active != nil {
		p, done := r.active.update(dt)
		r.place(p)
		if done {
			r.active = nil
		}
		return
	}
	r.Orbit.Update()
}

// HandleDrag forwards pointer drags to the orbit unless a transition runs.
func (r *Rig) HandleDrag(dx, dy float32) {
	if r.active == nil {
		r.Orbit.HandleDrag(dx, dy)
	}
}

// HandleZoom forwards wheel input to the orbit unless a transition runs.
func (r *Rig) HandleZoom(delta float32) {
	if r.active == nil {
		r.Orbit.HandleZoom(delta)
	}
}

func (r *Rig) place(p Preset) {
	r.Camera.Position = p.Position
	r.Camera.Target = p.Target
	r.Orbit.Sync()
}

// DefaultObservers returns the fixed observer placements: a top-down view of
// the whole drop, the upper stage and the lower stage.
func DefaultObservers() []Preset {
	return []Preset{
		{Position: math.Vec3{X: 0, Y: 13.5, Z: 0}, Target: math.Vec3{Y: -90}},
		{Position: math.Vec3{X: 0, Y: 8, Z: 3}, Target: math.Vec3{}},
		{Position: math.Vec3{X: 0, Y: 3, Z: 3.5}, Target: math.Vec3{Y: -2}},
	}
}

// Observers creates one fixed camera per preset.
func Observers(presets []Preset, aspect float32) []*Camera {
	cams := make([]*Camera, len(presets))
	for i, p := range presets {
		cams[i] = New(p.Position, p.Target, aspect)
	}
	return cams
}
