package engine

import "errors"

var (
	// ErrOutOfBounds reports a cell write outside the grid. The validity
	// checker runs before every mutation, so seeing it means a caller bug.
	ErrOutOfBounds = errors.New("engine: cell out of bounds")

	// ErrInvalidColor reports a cell value outside KindNone..KindZ.
	ErrInvalidColor = errors.New("engine: invalid color identifier")
)
