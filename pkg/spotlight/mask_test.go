package spotlight_test

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/vanderheijden86/spotlight/pkg/geometry"
	"github.com/vanderheijden86/spotlight/pkg/spotlight"
)

func TestMaskRoundedCorners(t *testing.T) {
	m := spotlight.NewMask(geometry.R(10, 10, 8, 5), 2)
	if m.Radius() != 2 {
		t.Fatalf("Radius = %d, want 2", m.Radius())
	}
	tests := []struct {
		y      int
		x0, x1 int
		ok     bool
	}{
		{9, 0, 0, false},
		{10, 12, 16, true},
		{11, 11, 17, true},
		{12, 10, 18, true},
		{13, 11, 17, true},
		{14, 12, 16, true},
		{15, 0, 0, false},
	}
	for _, tt := range tests {
		x0, x1, ok := m.Span(tt.y)
		if ok != tt.ok || x0 != tt.x0 || x1 != tt.x1 {
			t.Errorf("Span(%d) = (%d, %d, %v), want (%d, %d, %v)", tt.y, x0, x1, ok, tt.x0, tt.x1, tt.ok)
		}
	}
	if m.Transparent(geometry.Pt(10, 10)) {
		t.Error("corner cell should be tinted")
	}
	if !m.Transparent(geometry.Pt(10, 12)) {
		t.Error("middle row edge should be transparent")
	}
}

func TestMaskSingleRowNeverRounded(t *testing.T) {
	m := spotlight.NewMask(geometry.R(0, 3, 12, 1), 4)
	x0, x1, ok := m.Span(3)
	if !ok || x0 != 0 || x1 != 12 {
		t.Errorf("Span = (%d, %d, %v), want (0, 12, true)", x0, x1, ok)
	}
}

func TestMaskEveryRowKeepsACell(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := geometry.R(
			rapid.IntRange(0, 50).Draw(t, "x"),
			rapid.IntRange(0, 50).Draw(t, "y"),
			rapid.IntRange(1, 40).Draw(t, "w"),
			rapid.IntRange(1, 40).Draw(t, "h"),
		)
		radius := rapid.IntRange(0, 30).Draw(t, "radius")
		m := spotlight.NewMask(r, radius)
		if m != spotlight.NewMask(r, radius) {
			t.Fatal("mask is not a pure function of rect and radius")
		}
		for y := r.MinY(); y < r.MaxY(); y++ {
			x0, x1, ok := m.Span(y)
			if !ok || x1 <= x0 {
				t.Fatalf("row %d has no transparent cell (%d, %d, %v)", y, x0, x1, ok)
			}
			if x0 < r.MinX() || x1 > r.MaxX() {
				t.Fatalf("row %d span [%d,%d) escapes %v", y, x0, x1, r)
			}
		}
	})
}
