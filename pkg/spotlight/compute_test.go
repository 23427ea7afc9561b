package spotlight_test

import (
	"errors"
	"testing"

	"pgregory.net/rapid"

	"github.com/vanderheijden86/spotlight/pkg/geometry"
	"github.com/vanderheijden86/spotlight/pkg/spotlight"
)

func TestComputeGeometryInBounds(t *testing.T) {
	window := geometry.R(0, 0, 80, 24)
	frame := geometry.R(10, 5, 12, 1)

	g, err := spotlight.ComputeGeometry(frame, nil, geometry.Insets{}, window, 500)
	if err != nil {
		t.Fatalf("ComputeGeometry: %v", err)
	}
	if g.Highlight != frame {
		t.Errorf("Highlight = %v, want %v", g.Highlight, frame)
	}
	if want := geometry.R(510, 505, 12, 1); g.Cutout != want {
		t.Errorf("Cutout = %v, want %v", g.Cutout, want)
	}
	if want := geometry.R(-500, -500, 1080, 1024); g.Overlay != want {
		t.Errorf("Overlay = %v, want %v", g.Overlay, want)
	}
}

func TestComputeGeometrySourceRectAndExpansion(t *testing.T) {
	window := geometry.R(0, 0, 80, 24)
	frame := geometry.R(10, 5, 20, 4)
	src := geometry.R(2, 1, 6, 2)

	g, err := spotlight.ComputeGeometry(frame, &src, geometry.Insets{Top: -1, Left: -2, Bottom: -1, Right: -2}, window, 0)
	if err != nil {
		t.Fatalf("ComputeGeometry: %v", err)
	}
	if want := geometry.R(10, 5, 10, 4); g.Highlight != want {
		t.Errorf("Highlight = %v, want %v", g.Highlight, want)
	}
	if g.Cutout != g.Highlight {
		t.Errorf("zero margin cutout %v should equal highlight %v", g.Cutout, g.Highlight)
	}
}

func TestComputeGeometryOutOfBounds(t *testing.T) {
	window := geometry.R(0, 0, 80, 24)
	tests := []struct {
		name   string
		frame  geometry.Rect
		expand geometry.Insets
	}{
		{"left", geometry.R(-1, 5, 10, 1), geometry.Insets{}},
		{"top", geometry.R(5, -1, 10, 1), geometry.Insets{}},
		{"right", geometry.R(75, 5, 6, 1), geometry.Insets{}},
		{"bottom", geometry.R(5, 23, 10, 2), geometry.Insets{}},
		{"expanded past edge", geometry.R(0, 0, 10, 1), geometry.Insets{Left: -1}},
		{"shrunk to nothing", geometry.R(10, 10, 4, 2), geometry.Uniform(1)},
		{"zero size target", geometry.R(10, 10, 0, 1), geometry.Insets{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := spotlight.ComputeGeometry(tt.frame, nil, tt.expand, window, 500)
			if !errors.Is(err, spotlight.ErrTargetOutOfBounds) {
				t.Fatalf("err = %v, want ErrTargetOutOfBounds", err)
			}
		})
	}
}

func TestComputeGeometryExpansionSign(t *testing.T) {
	window := geometry.R(0, 0, 80, 24)
	frame := geometry.R(10, 10, 4, 2)

	g, err := spotlight.ComputeGeometry(frame, nil, geometry.Uniform(-1), window, 0)
	if err != nil {
		t.Fatalf("negative expansion: %v", err)
	}
	if want := geometry.R(9, 9, 6, 4); g.Highlight != want {
		t.Errorf("negative expansion highlight = %v, want %v (grown)", g.Highlight, want)
	}

	g, err = spotlight.ComputeGeometry(frame, nil, geometry.Insets{Left: 1, Right: 1}, window, 0)
	if err != nil {
		t.Fatalf("positive expansion: %v", err)
	}
	if want := geometry.R(11, 10, 2, 2); g.Highlight != want {
		t.Errorf("positive expansion highlight = %v, want %v (shrunk)", g.Highlight, want)
	}
}

func TestComputeGeometryEdgeFitIsInBounds(t *testing.T) {
	window := geometry.R(0, 0, 80, 24)
	if _, err := spotlight.ComputeGeometry(window, nil, geometry.Insets{}, window, 500); err != nil {
		t.Fatalf("full-window highlight should fit: %v", err)
	}
}

func TestComputeGeometryProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ww := rapid.IntRange(1, 300).Draw(t, "ww")
		wh := rapid.IntRange(1, 120).Draw(t, "wh")
		window := geometry.R(0, 0, ww, wh)
		frame := geometry.R(
			rapid.IntRange(-20, ww+20).Draw(t, "x"),
			rapid.IntRange(-20, wh+20).Draw(t, "y"),
			rapid.IntRange(1, ww+20).Draw(t, "w"),
			rapid.IntRange(1, wh+20).Draw(t, "h"),
		)
		margin := rapid.IntRange(0, 600).Draw(t, "margin")

		g, err := spotlight.ComputeGeometry(frame, nil, geometry.Insets{}, window, margin)
		if frame.Within(window) {
			if err != nil {
				t.Fatalf("in-bounds frame %v rejected: %v", frame, err)
			}
			if g.Cutout != frame.Offset(margin, margin) {
				t.Fatalf("cutout %v, want %v", g.Cutout, frame.Offset(margin, margin))
			}
			if !g.Cutout.Within(geometry.RectFromSize(g.Overlay.Size())) {
				t.Fatalf("cutout %v outside overlay %v", g.Cutout, g.Overlay)
			}
		} else if !errors.Is(err, spotlight.ErrTargetOutOfBounds) {
			t.Fatalf("out-of-bounds frame %v accepted", frame)
		}
	})
}
