package core

import "errors"

// Sentinel errors for structural problems the core refuses to plan around.
// Infeasibility (no path exists) is never one of these — it is reported as a
// nil path / nil solution, per the package's error-handling policy.
var (
	// ErrEmptyGrid indicates a grid with no rows or no columns.
	ErrEmptyGrid = errors.New("core: grid must have at least one row and one column")
	// ErrRaggedGrid indicates rows of differing lengths.
	ErrRaggedGrid = errors.New("core: all grid rows must have the same length")
	// ErrBadPosition indicates a cell outside the grid bounds.
	ErrBadPosition = errors.New("core: position out of bounds")
	// ErrBadTimestamp indicates a negative or out-of-horizon time value.
	ErrBadTimestamp = errors.New("core: timestamp out of bounds")
)
