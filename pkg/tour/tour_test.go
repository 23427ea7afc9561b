package tour

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vanderheijden86/spotlight/pkg/geometry"
	"github.com/vanderheijden86/spotlight/pkg/spotlight"
)

const introTour = `
name: intro
steps:
  - target: hello
    message: Hi, this is the Hello button. Tap anywhere to continue.
  - target: tap
    message: You have to tap here to continue.
    policy: blocks_outside
  - target: tap
    message: "**Done**"
    markdown: true
    next: Finish
    source_rect: {x: 1, y: 0, w: 3, h: 1}
    expansion: {top: 0, left: -1, bottom: 0, right: -1}
    corner_radius: 0
`

func TestParse(t *testing.T) {
	tr, err := Parse([]byte(introTour))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tr.Name != "intro" || len(tr.Steps) != 3 {
		t.Fatalf("got %q with %d steps", tr.Name, len(tr.Steps))
	}
	last := tr.Steps[2]
	if last.SourceRect == nil || *last.SourceRect != geometry.R(1, 0, 3, 1) {
		t.Errorf("source rect = %v", last.SourceRect)
	}
	if last.CornerRadius == nil || *last.CornerRadius != 0 {
		t.Errorf("corner radius = %v", last.CornerRadius)
	}
	if last.Expansion.Left != -1 || last.Expansion.Right != -1 {
		t.Errorf("expansion = %+v", last.Expansion)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tour.yaml")
	if err := os.WriteFile(path, []byte(introTour), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{"no steps", "name: empty\n", []string{"no steps"}},
		{"missing fields", "steps:\n  - policy: nope\n", []string{"target is required", "message is required", `unknown policy "nope"`}},
		{"next with blocked outside", "steps:\n  - {target: a, message: m, next: Go, policy: blocks_outside}\n", []string{"next button"}},
		{"next with blocked outside flag", "steps:\n  - {target: a, message: m, next: Go, blocks_tap_outside: true}\n", []string{"next button"}},
		{"negative radius", "steps:\n  - {target: a, message: m, corner_radius: -1}\n", []string{"corner_radius"}},
		{"empty source rect", "steps:\n  - {target: a, message: m, source_rect: {x: 1, y: 1, w: 0, h: 1}}\n", []string{"source_rect"}},
		{"bad yaml", "steps: [", []string{"parsing tour"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil {
				t.Fatal("expected error")
			}
			for _, w := range tt.want {
				if !strings.Contains(err.Error(), w) {
					t.Errorf("error %q does not mention %q", err, w)
				}
			}
		})
	}
}

func TestStepInstruction(t *testing.T) {
	win := geometry.NewWindow(geometry.Size{W: 40, H: 12})
	win.AddChild(geometry.NewElement("tap", geometry.R(10, 4, 8, 1)))

	tr, err := Parse([]byte(introTour))
	if err != nil {
		t.Fatal(err)
	}

	instr, err := tr.Steps[1].Instruction(win)
	if err != nil {
		t.Fatalf("Instruction: %v", err)
	}
	if !instr.Policy().BlocksTapOutsideCutout {
		t.Error("blocks_outside policy not applied")
	}
	if r, ok := instr.Target().FrameInWindow(); !ok || r != geometry.R(10, 4, 8, 1) {
		t.Errorf("target frame = %v, %v", r, ok)
	}

	instr, err = tr.Steps[2].Instruction(win)
	if err != nil {
		t.Fatal(err)
	}
	if next, ok := instr.NextButton().(spotlight.SimpleNext); !ok || next.Label != "Finish" {
		t.Errorf("next button = %#v", instr.NextButton())
	}
	if src, ok := instr.SourceRect(); !ok || src != geometry.R(1, 0, 3, 1) {
		t.Errorf("source rect = %v, %v", src, ok)
	}
	if instr.CornerRadius() != 0 || !instr.Message().Markdown {
		t.Errorf("radius = %d, markdown = %v", instr.CornerRadius(), instr.Message().Markdown)
	}

	if _, err := tr.Steps[0].Instruction(win); !errors.Is(err, ErrUnknownTarget) {
		t.Errorf("err = %v, want ErrUnknownTarget", err)
	}
}
