package physics

import (
	"math"
	"testing"
)

func TestCirclesOverlap(t *testing.T) {
	tests := []struct {
		name string
		a    Vec2
		ra   float64
		b    Vec2
		rb   float64
		want bool
	}{
		{"overlapping", Vec2{0, 0}, 0.3, Vec2{0, 0.5}, 0.3, true},
		{"apart", Vec2{0, 0}, 0.3, Vec2{0, 1.0}, 0.3, false},
		{"touching", Vec2{0, 0}, 0.5, Vec2{1, 0}, 0.5, false},
		{"same center", Vec2{2, 2}, 0.1, Vec2{2, 2}, 0.1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CirclesOverlap(tt.a, tt.ra, tt.b, tt.rb); got != tt.want {
				t.Errorf("CirclesOverlap(%v, %v, %v, %v) = %v, want %v", tt.a, tt.ra, tt.b, tt.rb, got, tt.want)
			}
		})
	}
}

func TestLerp(t *testing.T) {
	a := Vec2{X: -3, Y: 7}
	b := Vec2{X: 0.1, Y: -0.7}

	if got := Lerp(a, b, 0); got != a {
		t.Errorf("Lerp(t=0) = %v, want %v", got, a)
	}
	if got := Lerp(a, b, 1); got != b {
		t.Errorf("Lerp(t=1) = %v, want %v", got, b)
	}
	mid := Lerp(Vec2{0, 0}, Vec2{4, 2}, 0.5)
	if mid != (Vec2{2, 1}) {
		t.Errorf("Lerp(t=0.5) = %v, want {2 1}", mid)
	}
}

func TestPathReachesDestinationExactly(t *testing.T) {
	dest := Vec2{X: 0.3, Y: -1.7}
	p := NewPath(Vec2{X: 10, Y: 10}, dest, 0.7)

	arrived := false
	for i := 0; i < 1000 && !arrived; i++ {
		_, arrived = p.Step()
	}
	if !arrived {
		t.Fatal("path never arrived")
	}
	if p.Traveled != p.Total {
		t.Errorf("Traveled = %v, want %v", p.Traveled, p.Total)
	}
	if got := p.Position(); got != dest {
		t.Errorf("Position() = %v, want %v", got, dest)
	}
}

func TestPathDelayAndBoost(t *testing.T) {
	p := NewPath(Vec2{0, 0}, Vec2{8, 0}, 1)
	p.Delay = 2
	p.Boost(1000)

	if p.Speed != 2 {
		t.Errorf("Speed after Boost = %v, want 2", p.Speed)
	}
	for i := 0; i < 2; i++ {
		if pos, _ := p.Step(); pos != (Vec2{0, 0}) {
			t.Errorf("step %d during delay moved to %v", i, pos)
		}
	}
	if pos, _ := p.Step(); pos != (Vec2{2, 0}) {
		t.Errorf("first moving step = %v, want {2 0}", pos)
	}
}

func TestPathZeroLength(t *testing.T) {
	p := NewPath(Vec2{1, 1}, Vec2{1, 1}, 0.1)
	pos, arrived := p.Step()
	if !arrived || pos != (Vec2{1, 1}) {
		t.Errorf("Step() = %v, %v, want {1 1}, true", pos, arrived)
	}
}

func TestOrbit(t *testing.T) {
	o := &Orbit{Center: Vec2{1, 0}, Radius: 2, AngularSpeed: math.Pi / 2}
	pos, arrived := o.Step()
	if arrived {
		t.Error("orbit should never arrive")
	}
	if math.Abs(pos.X-1) > 1e-9 || math.Abs(pos.Y-2) > 1e-9 {
		t.Errorf("Step() = %v, want {1 2}", pos)
	}
}
