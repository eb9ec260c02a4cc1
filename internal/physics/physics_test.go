package physics

import "testing"

func TestBoxOverlaps(t *testing.T) {
	ship := Vec2{X: 15, Y: 12.5}
	bullet := Vec2{X: 1, Y: 2}

	tests := []struct {
		name string
		a, b Box
		want bool
	}{
		{"same centre", BoxAt(Vec2{}, ship), BoxAt(Vec2{}, bullet), true},
		{"touching on x", BoxAt(Vec2{}, ship), BoxAt(Vec2{X: 16}, bullet), true},
		{"gap on x", BoxAt(Vec2{}, ship), BoxAt(Vec2{X: 16.5}, bullet), false},
		{"touching on y", BoxAt(Vec2{}, ship), BoxAt(Vec2{Y: -14.5}, bullet), true},
		{"gap on y", BoxAt(Vec2{}, ship), BoxAt(Vec2{Y: 15}, bullet), false},
		{"overlap x only", BoxAt(Vec2{}, ship), BoxAt(Vec2{X: 5, Y: 100}, ship), false},
		{"ships side by side", BoxAt(Vec2{X: -15}, ship), BoxAt(Vec2{X: 15}, ship), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("a.Overlaps(b) = %v, want %v", got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("b.Overlaps(a) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContainsIsHalfOpen(t *testing.T) {
	min := Vec2{X: -205, Y: -405}
	max := Vec2{X: 205, Y: 405}

	if !Contains(min, max, Vec2{X: -205, Y: -405}) {
		t.Error("lower bound should be inside")
	}
	if Contains(min, max, Vec2{X: 205, Y: 0}) {
		t.Error("upper x bound should be outside")
	}
	if Contains(min, max, Vec2{X: 0, Y: 405}) {
		t.Error("upper y bound should be outside")
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(250, -180, 180); got != 180 {
		t.Errorf("Clamp(250) = %v, want 180", got)
	}
	if got := Clamp(-400, -380, 380); got != -380 {
		t.Errorf("Clamp(-400) = %v, want -380", got)
	}
	if got := Clamp(12, -180, 180); got != 12 {
		t.Errorf("Clamp(12) = %v, want 12", got)
	}
}
