// Package tour loads onboarding tours: ordered lists of spotlight steps
// described in YAML and resolved against a host's element tree.
//
// Example tour file:
//
//	name: intro
//	steps:
//	  - target: hello
//	    message: Hi, this is the Hello button. Tap anywhere to continue.
//	  - target: tap
//	    message: You have to tap here to continue.
//	    policy: blocks_outside
package tour

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/spotlight/pkg/geometry"
	"github.com/vanderheijden86/spotlight/pkg/spotlight"
)

// ErrUnknownTarget is returned when a step names an element the host does
// not have.
var ErrUnknownTarget = errors.New("unknown target element")

// Policy names accepted in tour files.
const (
	PolicyMessageOnly   = "message_only"
	PolicyNextButton    = "next_button"
	PolicyBlocksOutside = "blocks_outside"
)

// Step is one highlight in a tour.
type Step struct {
	Target     string `yaml:"target" json:"target"`
	Message    string `yaml:"message" json:"message"`
	Markdown   bool   `yaml:"markdown,omitempty" json:"markdown,omitempty"`
	Background string `yaml:"background,omitempty" json:"background,omitempty"`
	Foreground string `yaml:"foreground,omitempty" json:"foreground,omitempty"`
	MaxWidth   int    `yaml:"max_width,omitempty" json:"max_width,omitempty"`

	// Next is the label of a simple next button; empty means none.
	Next   string `yaml:"next,omitempty" json:"next,omitempty"`
	Policy string `yaml:"policy,omitempty" json:"policy,omitempty"`

	// Individual policy flags, applied on top of the named policy.
	BlocksTapOutside bool `yaml:"blocks_tap_outside,omitempty" json:"blocks_tap_outside,omitempty"`
	BlocksTapInside  bool `yaml:"blocks_tap_inside,omitempty" json:"blocks_tap_inside,omitempty"`
	IgnoresTapInside bool `yaml:"ignores_tap_inside,omitempty" json:"ignores_tap_inside,omitempty"`

	SourceRect   *geometry.Rect  `yaml:"source_rect,omitempty" json:"source_rect,omitempty"`
	// Expansion insets the highlight; negative edges grow it.
	Expansion    geometry.Insets `yaml:"expansion,omitempty" json:"expansion,omitempty"`
	CornerRadius *int            `yaml:"corner_radius,omitempty" json:"corner_radius,omitempty"`

	// Optional steps are skipped when their target is missing or does not
	// fit the window.
	Optional bool `yaml:"optional,omitempty" json:"optional,omitempty"`
}

// Tour is a named list of steps.
type Tour struct {
	Name  string `yaml:"name" json:"name"`
	Steps []Step `yaml:"steps" json:"steps"`
}

// Load reads and validates a tour file.
func Load(path string) (*Tour, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tour: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a tour document.
func Parse(data []byte) (*Tour, error) {
	var t Tour
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing tour: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate checks every step and reports all problems at once.
func (t *Tour) Validate() error {
	if len(t.Steps) == 0 {
		return errors.New("tour has no steps")
	}
	var errs []error
	for i, s := range t.Steps {
		if err := s.validate(); err != nil {
			errs = append(errs, fmt.Errorf("step %d (%s): %w", i+1, s.Target, err))
		}
	}
	return errors.Join(errs...)
}

func (s Step) validate() error {
	var errs []error
	if s.Target == "" {
		errs = append(errs, errors.New("target is required"))
	}
	if s.Message == "" {
		errs = append(errs, errors.New("message is required"))
	}
	policy, err := s.policy()
	if err != nil {
		errs = append(errs, err)
	} else if s.Next != "" && policy.BlocksTapOutsideCutout {
		errs = append(errs, errors.New("a next button cannot be combined with blocking taps outside the cutout"))
	}
	if s.CornerRadius != nil && *s.CornerRadius < 0 {
		errs = append(errs, fmt.Errorf("corner_radius %d is negative", *s.CornerRadius))
	}
	if s.SourceRect != nil && s.SourceRect.Empty() {
		errs = append(errs, fmt.Errorf("source_rect %v is empty", *s.SourceRect))
	}
	return errors.Join(errs...)
}

func (s Step) policy() (spotlight.Policy, error) {
	var p spotlight.Policy
	switch s.Policy {
	case "", PolicyMessageOnly:
		p = spotlight.PolicyMessageOnly
	case PolicyNextButton:
		p = spotlight.PolicyNextButton
	case PolicyBlocksOutside:
		p = spotlight.PolicyBlocksOutside
	default:
		return p, fmt.Errorf("unknown policy %q", s.Policy)
	}
	p.BlocksTapOutsideCutout = p.BlocksTapOutsideCutout || s.BlocksTapOutside
	p.BlocksTapInsideCutout = p.BlocksTapInsideCutout || s.BlocksTapInside
	p.IgnoresTapInsideCutout = p.IgnoresTapInsideCutout || s.IgnoresTapInside
	return p, nil
}

// Instruction resolves the step against root's element tree.
func (s Step) Instruction(root *geometry.Element) (spotlight.Instruction, error) {
	el := root.Find(s.Target)
	if el == nil {
		return spotlight.Instruction{}, fmt.Errorf("%q: %w", s.Target, ErrUnknownTarget)
	}
	policy, err := s.policy()
	if err != nil {
		return spotlight.Instruction{}, err
	}

	opts := []spotlight.InstructionOption{spotlight.WithPolicy(policy)}
	if s.Next != "" {
		opts = append(opts, spotlight.WithNextButton(spotlight.SimpleNext{Label: s.Next}))
	}
	if s.SourceRect != nil {
		opts = append(opts, spotlight.WithSourceRect(*s.SourceRect))
	}
	if s.Expansion != (geometry.Insets{}) {
		opts = append(opts, spotlight.WithCutoutExpansion(s.Expansion))
	}
	if s.CornerRadius != nil {
		opts = append(opts, spotlight.WithCornerRadius(*s.CornerRadius))
	}

	msg := spotlight.Message{
		Text:       s.Message,
		Markdown:   s.Markdown,
		Background: s.Background,
		Foreground: s.Foreground,
		MaxWidth:   s.MaxWidth,
	}
	return spotlight.NewInstruction(spotlight.WeakElement(el), msg, opts...), nil
}
