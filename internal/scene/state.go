package scene

// BallState is the externally visible state of one ball.
type BallState struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	Priority  int        `json:"priority"`
	Position  [3]float32 `json:"position"`
	Attracted bool       `json:"attracted"`
}

// State is a copy of the session state safe to hand to other goroutines.
type State struct {
	Phase    string      `json:"phase"`
	Time     float64     `json:"time"`
	Gravity  [3]float32  `json:"gravity"`
	Selected string      `json:"selected"`
	Goals    int         `json:"goals"`
	Preset   int         `json:"preset"`
	Balls    []BallState `json:"balls"`
}

// Snapshot copies the current state.
func (s *Session) Snapshot() State {
	st := State{
		Phase:    s.phase.String(),
		Time:     s.world.Time(),
		Gravity:  s.world.Gravity().Array(),
		Selected: s.picker.Selected(),
		Goals:    s.goals.Len(),
		Preset:   s.router.Primary().Rig.Presets.Index,
		Balls:    make([]BallState, len(s.balls)),
	}
	for i, b := range s.balls {
		st.Balls[i] = BallState{
			ID:        b.ID,
			Name:      b.Name,
			Priority:  b.Priority,
			Position:  b.Renderable.Position.Array(),
			Attracted: b.IsAttracted,
		}
	}
	return st
}
