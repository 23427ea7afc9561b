package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestPlaceAt(t *testing.T) {
	bg := "..........\n..........\n.........."
	tests := []struct {
		name string
		fg   string
		x, y int
		want string
	}{
		{"inside", "ab\ncd", 3, 1, "..........\n...ab.....\n...cd....."},
		{"clipped left", "abc", -1, 0, "bc........\n..........\n.........."},
		{"clipped right", "abc", 8, 2, "..........\n..........\n........ab"},
		{"clipped bottom", "ab\ncd", 0, 2, "..........\n..........\nab........"},
		{"off canvas", "ab", 20, 0, bg},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlaceAt(bg, tt.fg, tt.x, tt.y, 10, 3)
			if got != tt.want {
				t.Errorf("PlaceAt =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestPlaceAtPadsShortBackground(t *testing.T) {
	got := PlaceAt("ab", "X", 4, 1, 6, 2)
	if want := "ab    \n    X "; got != want {
		t.Errorf("PlaceAt = %q, want %q", got, want)
	}
}

func TestPlaceAtKeepsStyling(t *testing.T) {
	fg := "\x1b[1mXY\x1b[0m"
	got := PlaceAt("......", fg, 2, 0, 6, 1)
	if ansi.Strip(got) != "..XY.." {
		t.Errorf("stripped = %q", ansi.Strip(got))
	}
	if !strings.Contains(got, "\x1b[1m") {
		t.Errorf("styling lost: %q", got)
	}
}
