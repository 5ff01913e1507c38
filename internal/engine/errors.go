package engine

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrNotEnoughParticipants means fewer than two competitor
	// identities resolved; the match record is left unmodified.
	ErrNotEnoughParticipants = errors.New("not enough participants")

	// ErrAlreadySimulated guards the never-resimulate invariant.
	ErrAlreadySimulated = errors.New("match already simulated")
)
