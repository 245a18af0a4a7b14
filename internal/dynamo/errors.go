package dynamo

import "errors"

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates a state vector containing NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrTableOrder indicates a step-size table violating its ordering
	// invariant (ascending step sizes, strictly decreasing points).
	ErrTableOrder = errors.New("dynamo: step table out of order")

	// ErrEmptyTable indicates a step-size table with no entries.
	ErrEmptyTable = errors.New("dynamo: empty step table")
)
