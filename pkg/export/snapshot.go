// Package export writes a still picture of what the overlay is showing:
// the element boxes, the tinted surface with its rounded cutout, the
// message bubble and the arrow. Snapshots are used for documentation
// screenshots and for checking layouts without a terminal.
package export

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/spotlight/pkg/geometry"
	"github.com/vanderheijden86/spotlight/pkg/spotlight"
)

// ErrNothingShowing is returned when a snapshot is requested from a manager
// with no attached overlay.
var ErrNothingShowing = errors.New("no instruction is showing")

// Box is one element of the host screen, in window coordinates.
type Box struct {
	Name  string        `json:"name"`
	Frame geometry.Rect `json:"frame"`
}

// Snapshot is everything needed to draw one frame of the overlay.
type Snapshot struct {
	Window       geometry.Size    `json:"window"`
	Tint         spotlight.Tint   `json:"tint"`
	CornerRadius int              `json:"corner_radius"`
	Layout       spotlight.Layout `json:"layout"`
	Message      string           `json:"message"`
	Background   string           `json:"background,omitempty"`
	Foreground   string           `json:"foreground,omitempty"`
	NextLabel    string           `json:"next_label,omitempty"`
	Elements     []Box            `json:"elements,omitempty"`
}

// FromManager captures the most recently attached overlay of m over window.
func FromManager(m *spotlight.Manager, window *geometry.Element) (Snapshot, error) {
	attached := m.Attached()
	if len(attached) == 0 {
		return Snapshot{}, ErrNothingShowing
	}
	a := attached[len(attached)-1]
	msg := a.Instruction.Message()

	snap := Snapshot{
		Window:       window.Bounds().Size(),
		Tint:         a.Surface.Tint(),
		CornerRadius: a.Surface.CornerRadius(),
		Layout:       a.Layout,
		Message:      msg.Text,
		Background:   msg.Background,
		Foreground:   msg.Foreground,
		Elements:     Boxes(window),
	}
	if next, ok := a.Instruction.NextButton().(spotlight.SimpleNext); ok {
		snap.NextLabel = next.Label
	}
	return snap, nil
}

// Boxes flattens the element tree under root into window-coordinate boxes,
// back to front. Detached or zero-sized elements are skipped.
func Boxes(root *geometry.Element) []Box {
	var out []Box
	var walk func(e *geometry.Element)
	walk = func(e *geometry.Element) {
		for _, c := range e.Children() {
			if r, ok := c.FrameInWindow(); ok && !r.Empty() {
				out = append(out, Box{Name: c.Name, Frame: r})
			}
			walk(c)
		}
	}
	walk(root)
	return out
}

// Mask returns the cutout mask in window coordinates.
func (s Snapshot) Mask() spotlight.Mask {
	return spotlight.NewMask(s.Layout.Highlight, s.CornerRadius)
}

// MarshalIndent encodes the snapshot as indented JSON.
func (s Snapshot) MarshalIndent() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return data, nil
}

// ParseSnapshot decodes a snapshot written by MarshalIndent.
func ParseSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decoding snapshot: %w", err)
	}
	return s, nil
}
