package geom

import (
	"math"
	"testing"
)

func TestTransformPoint(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		in   Point
		want Point
	}{
		{"identity", Identity(), Point{3, 4}, Point{3, 4}},
		{"translate", Translate(10, -2), Point{1, 1}, Point{11, -1}},
		{"scale", Scale(2, 3), Point{1, 1}, Point{2, 3}},
		{"rotate 90deg", Rotate(math.Pi / 2), Point{1, 0}, Point{0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.TransformPoint(tt.in)
			if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
				t.Errorf("TransformPoint(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestThenOrder(t *testing.T) {
	s := Scale(2, 2)
	tr := Translate(10, 0)
	p := Point{1, 0}

	// Scale first, then translate: (1*2)+10 = 12.
	if got := s.Then(tr).TransformPoint(p); got.X != 12 {
		t.Errorf("Scale.Then(Translate) x = %v, want 12", got.X)
	}
	// Translate first, then scale: (1+10)*2 = 22.
	if got := tr.Then(s).TransformPoint(p); got.X != 22 {
		t.Errorf("Translate.Then(Scale) x = %v, want 22", got.X)
	}
}

func TestInvert(t *testing.T) {
	m := Translate(5, 7).Multiply(Rotate(0.3)).Multiply(Scale(2, 0.5))
	if got := m.Multiply(m.Invert()); !got.ApproxEqual(Identity(), 1e-9) {
		t.Errorf("m * m^-1 = %+v, want identity", got)
	}
	if got := Scale(0, 0).Invert(); !got.IsIdentity() {
		t.Errorf("singular Invert() = %+v, want identity", got)
	}
}

func TestIsIdentity(t *testing.T) {
	if !Identity().IsIdentity() {
		t.Error("Identity().IsIdentity() = false")
	}
	if Translate(1, 0).IsIdentity() {
		t.Error("Translate(1, 0).IsIdentity() = true")
	}
}
