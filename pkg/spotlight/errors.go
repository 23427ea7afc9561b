package spotlight

import "errors"

var (
	// ErrTargetOutOfBounds is returned when the highlighted rectangle, after
	// source-rect and expansion adjustments, is empty or does not lie
	// entirely inside the window. A session that becomes out of bounds after a resize closes
	// unexpectedly instead.
	ErrTargetOutOfBounds = errors.New("target out of bounds")

	// ErrSuperseded resolves a Pending whose session was replaced by a newer
	// Show before it finished.
	ErrSuperseded = errors.New("instruction superseded")
)
