package life

import "errors"

var (
	// ErrOutOfBounds indicates a row or column outside the grid.
	ErrOutOfBounds = errors.New("life: coordinate out of bounds")

	// ErrUnknownPreset indicates a pattern name with no registered preset.
	ErrUnknownPreset = errors.New("life: unknown preset")
)
