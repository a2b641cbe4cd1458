package attraction

import (
	"testing"

	"github.com/thirdlf03/zawa/internal/ball"
	"github.com/thirdlf03/zawa/internal/goal"
	"github.com/thirdlf03/zawa/internal/physics"
	"github.com/thirdlf03/zawa/pkg/math"
)

func twoGoals() *goal.Registry {
	r := goal.NewRegistry()
	r.Add("holes", math.Vec3{X: 0, Y: 0, Z: 0})
	r.Add("holes", math.Vec3{X: 5, Y: 0, Z: 0})
	r.Freeze()
	return r
}

func TestEvaluatePriorityThree(t *testing.T) {
	f := New(DefaultConfig(), twoGoals(), nil)

	res := f.Evaluate(math.Vec3{X: 1, Y: 0, Z: 0}, 3)

	if res.Goal.Position != (math.Vec3{}) {
		t.Errorf("nearest goal = %v, want origin", res.Goal.Position)
	}
	if res.Distance != 1 {
		t.Errorf("distance = %v, want 1", res.Distance)
	}
	if !res.Active {
		t.Fatal("ball within threshold with priority 3 should be attracted")
	}
	want := math.Vec3{X: -0.2}
	if res.Force.Distance(want) > 1e-6 {
		t.Errorf("force = %v, want %v", res.Force, want)
	}
}

func TestEvaluateExcludedPriority(t *testing.T) {
	f := New(DefaultConfig(), twoGoals(), nil)

	for _, pos := range []math.Vec3{{X: 0.1}, {X: 1}, {X: 4.9}, {X: 2.5}} {
		res := f.Evaluate(pos, 1)
		if res.Active || res.Force != (math.Vec3{}) {
			t.Errorf("priority 1 at %v: active=%v force=%v, want inactive", pos, res.Active, res.Force)
		}
	}
}

func TestExcludedPriorityDoesNotChangeForce(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ExcludedPriority = 5
	f := New(cfg, twoGoals(), nil)

	res := f.Evaluate(math.Vec3{X: 1}, 3)
	if !res.Active {
		t.Fatal("priority 3 should be attracted when 5 is excluded")
	}
	// Still (3 - 1) * 0.1 toward the origin.
	if want := (math.Vec3{X: -0.2}); res.Force.Distance(want) > 1e-6 {
		t.Errorf("force = %v, want %v", res.Force, want)
	}

	if f.Evaluate(math.Vec3{X: 1}, 5).Active {
		t.Error("excluded priority 5 should not be attracted")
	}
	if res := f.Evaluate(math.Vec3{X: 1}, 1); !res.Active || res.Force != (math.Vec3{}) {
		t.Errorf("priority 1 = %+v, want active with zero force", res)
	}
}

func TestEvaluateThreshold(t *testing.T) {
	f := New(DefaultConfig(), twoGoals(), nil)

	tests := []struct {
		name   string
		pos    math.Vec3
		active bool
	}{
		{"inside", math.Vec3{X: 1.4}, true},
		{"on threshold", math.Vec3{X: 1.5}, true},
		{"outside", math.Vec3{X: 1.6}, false},
		{"near second goal", math.Vec3{X: 4}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Evaluate(tt.pos, 2).Active; got != tt.active {
				t.Errorf("Active = %v, want %v", got, tt.active)
			}
		})
	}
}

func TestEvaluateLowPriorityRepels(t *testing.T) {
	f := New(DefaultConfig(), twoGoals(), nil)

	res := f.Evaluate(math.Vec3{X: 1}, 0)
	if !res.Active {
		t.Fatal("priority 0 should be active")
	}
	if res.Force.X <= 0 {
		t.Errorf("priority 0 force = %v, want pointing away from the goal", res.Force)
	}
}

func TestEvaluateNoGoals(t *testing.T) {
	f := New(DefaultConfig(), goal.NewRegistry(), nil)
	if res := f.Evaluate(math.Vec3{}, 5); res.Active {
		t.Error("ball attracted with an empty goal registry")
	}
}

func TestApplyAsPreStep(t *testing.T) {
	cfg := physics.DefaultConfig()
	cfg.Gravity = math.Vec3{}
	w := physics.NewWorld(cfg)

	near := ball.New(0, "near", 3, math.Vec3{X: 1}, ball.DefaultRadius, [3]float32{})
	plain := ball.New(1, "plain", 1, math.Vec3{X: 4.5}, ball.DefaultRadius, [3]float32{})
	w.AddBody(near.Body)
	w.AddBody(plain.Body)

	f := New(DefaultConfig(), twoGoals(), []*ball.Ball{near, plain})
	w.AddPreStep(f.Apply)

	// Disabled: no force.
	w.Step(1.0 / 60.0)
	if near.Body.Velocity != (math.Vec3{}) || near.IsAttracted {
		t.Fatalf("disabled field moved ball: %v", near.Body.Velocity)
	}

	f.SetEnabled(true)
	w.Step(1.0 / 60.0)

	if !near.IsAttracted {
		t.Error("near ball should be attracted")
	}
	if plain.IsAttracted {
		t.Error("priority 1 ball should not be attracted")
	}
	// a = F/m = 0.2 toward -X for one tick.
	wantVX := float32(-0.2 / 60.0)
	if d := near.Body.Velocity.X - wantVX; d > 1e-6 || d < -1e-6 {
		t.Errorf("velocity after one tick = %v, want %v", near.Body.Velocity.X, wantVX)
	}
	if plain.Body.Velocity != (math.Vec3{}) {
		t.Errorf("priority 1 ball moved: %v", plain.Body.Velocity)
	}
	if f.Attracted() != 1 {
		t.Errorf("Attracted() = %d, want 1", f.Attracted())
	}
}
