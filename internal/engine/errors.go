package engine

import "errors"

// Sentinel errors for the three error kinds SetPosition/MakeMove/TT
// resize can report to the host layer.
var (
	// ErrInvalidFEN is returned by SetPosition for a malformed or
	// inconsistent position string; the prior position is left intact.
	ErrInvalidFEN = errors.New("engine: invalid FEN")
	// ErrIllegalMove is returned by MakeMove when the supplied
	// coordinate move does not appear in the legal move list.
	ErrIllegalMove = errors.New("engine: illegal move")
	// ErrAllocationFailure is returned when a transposition-table
	// resize could not be satisfied; the previous table is kept.
	ErrAllocationFailure = errors.New("engine: hash table allocation failed")
)
