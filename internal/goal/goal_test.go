package goal

import (
	"errors"
	"testing"

	"github.com/thirdlf03/zawa/pkg/math"
)

func TestRegistryFreeze(t *testing.T) {
	r := NewRegistry()
	if err := r.Add("holes", math.Vec3{X: 1}); err != nil {
		t.Fatalf("Add() while open: %v", err)
	}
	r.Freeze()

	if err := r.Add("holes", math.Vec3{X: 2}); !errors.Is(err, ErrFrozen) {
		t.Errorf("Add() after Freeze = %v, want ErrFrozen", err)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
	if !r.Frozen() {
		t.Error("Frozen() = false after Freeze")
	}
}

func TestNearest(t *testing.T) {
	r := NewRegistry()
	r.Add("a", math.Vec3{X: 0, Y: 0, Z: 0})
	r.Add("b", math.Vec3{X: 5, Y: 0, Z: 0})

	g, dist, ok := r.Nearest(math.Vec3{X: 1})
	if !ok || g.Source != "a" || dist != 1 {
		t.Errorf("Nearest() = %v, %v, %v; want a, 1, true", g, dist, ok)
	}
}

func TestNearestTieKeepsFirst(t *testing.T) {
	r := NewRegistry()
	r.Add("first", math.Vec3{X: -1})
	r.Add("second", math.Vec3{X: 1})

	g, _, _ := r.Nearest(math.Vec3{})
	if g.Source != "first" {
		t.Errorf("Nearest() on a tie = %q, want first", g.Source)
	}
}

func TestNearestEmpty(t *testing.T) {
	if _, _, ok := NewRegistry().Nearest(math.Vec3{}); ok {
		t.Error("Nearest() on empty registry reported ok")
	}
}
