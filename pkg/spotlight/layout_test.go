package spotlight_test

import (
	"testing"

	"github.com/vanderheijden86/spotlight/pkg/geometry"
	"github.com/vanderheijden86/spotlight/pkg/spotlight"
)

func placeAt(t *testing.T, highlight geometry.Rect, bubble geometry.Size, window geometry.Rect) spotlight.Layout {
	t.Helper()
	g, err := spotlight.ComputeGeometry(highlight, nil, geometry.Insets{}, window, 0)
	if err != nil {
		t.Fatalf("ComputeGeometry: %v", err)
	}
	return spotlight.PlaceBubble(g, bubble, window, geometry.Insets{}, spotlight.DefaultBubbleMetrics)
}

func TestPlaceBubbleAboveNearBottom(t *testing.T) {
	window := geometry.R(0, 0, 400, 800)
	l := placeAt(t, geometry.R(100, 750, 80, 40), geometry.Size{W: 120, H: 120}, window)
	if l.Direction != spotlight.Above {
		t.Fatalf("Direction = %s, want above", l.Direction)
	}
	if l.Bubble.MaxY() > 750 {
		t.Errorf("bubble %v overlaps highlight top 750", l.Bubble)
	}
	if l.Arrow.Y != 749 {
		t.Errorf("Arrow.Y = %d, want 749", l.Arrow.Y)
	}
	if l.Bubble.MaxY() != l.Arrow.Y {
		t.Errorf("bubble bottom %d should meet arrow row %d", l.Bubble.MaxY(), l.Arrow.Y)
	}
}

func TestPlaceBubbleBelowWithRoom(t *testing.T) {
	window := geometry.R(0, 0, 400, 800)
	l := placeAt(t, geometry.R(100, 100, 80, 40), geometry.Size{W: 120, H: 120}, window)
	if l.Direction != spotlight.Below {
		t.Fatalf("Direction = %s, want below", l.Direction)
	}
	if l.Arrow.Y != 140 {
		t.Errorf("Arrow.Y = %d, want 140", l.Arrow.Y)
	}
	if l.Bubble.Y != 141 {
		t.Errorf("Bubble.Y = %d, want 141", l.Bubble.Y)
	}
}

func TestPlaceBubbleThreshold(t *testing.T) {
	window := geometry.R(0, 0, 80, 24)
	bubble := geometry.Size{W: 20, H: 5}
	// Room below is 24-18 = 6 = H + stand-off: fits.
	if l := placeAt(t, geometry.R(10, 17, 10, 1), bubble, window); l.Direction != spotlight.Below {
		t.Errorf("exact fit placed %s, want below", l.Direction)
	}
	if l := placeAt(t, geometry.R(10, 18, 10, 1), bubble, window); l.Direction != spotlight.Above {
		t.Errorf("one short placed %s, want above", l.Direction)
	}
}

func TestPlaceBubbleClampsToSafeArea(t *testing.T) {
	window := geometry.R(0, 0, 80, 24)
	safe := geometry.Insets{Left: 2, Right: 3}
	m := spotlight.DefaultBubbleMetrics
	g, err := spotlight.ComputeGeometry(geometry.R(0, 2, 4, 1), nil, geometry.Insets{}, window, 0)
	if err != nil {
		t.Fatal(err)
	}
	l := spotlight.PlaceBubble(g, geometry.Size{W: 30, H: 4}, window, safe, m)
	if want := safe.Left + m.SideMargin; l.Bubble.X != want {
		t.Errorf("Bubble.X = %d, want %d", l.Bubble.X, want)
	}
	if l.Arrow.X < l.Bubble.MinX() || l.Arrow.X >= l.Bubble.MaxX() {
		t.Errorf("arrow x %d outside bubble %v", l.Arrow.X, l.Bubble)
	}

	g, err = spotlight.ComputeGeometry(geometry.R(76, 2, 4, 1), nil, geometry.Insets{}, window, 0)
	if err != nil {
		t.Fatal(err)
	}
	l = spotlight.PlaceBubble(g, geometry.Size{W: 30, H: 4}, window, safe, m)
	if want := 80 - safe.Right - m.SideMargin; l.Bubble.MaxX() != want {
		t.Errorf("Bubble.MaxX = %d, want %d", l.Bubble.MaxX(), want)
	}
}

func TestBubbleMaxWidth(t *testing.T) {
	got := spotlight.BubbleMaxWidth(geometry.R(0, 0, 80, 24), geometry.Insets{Left: 1, Right: 1}, spotlight.DefaultBubbleMetrics)
	if got != 76 {
		t.Errorf("BubbleMaxWidth = %d, want 76", got)
	}
}

func TestDirectionGlyph(t *testing.T) {
	if spotlight.Above.Glyph() != spotlight.ArrowDown || spotlight.Below.Glyph() != spotlight.ArrowUp {
		t.Error("arrow should point from the bubble toward the highlight")
	}
	b, _ := spotlight.Above.MarshalText()
	if string(b) != "above" {
		t.Errorf("MarshalText = %q", b)
	}
}
