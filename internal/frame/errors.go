package frame

import "errors"

var (
	// ErrInvalidArgument reports a missing buffer, mismatched dimensions, or an
	// out-of-contract parameter such as an even kernel size or high < low.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrAllocationFailure reports that a scratch buffer could not be acquired.
	ErrAllocationFailure = errors.New("allocation failure")
)
