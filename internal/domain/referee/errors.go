package referee

import (
	"errors"
)

// Sentinel error kinds for this package. Both are recoverable: callers
// fall back and surface a warning instead of aborting the match.
var (
	ErrNoSuitableReferee      = errors.New("no suitable referee available")
	ErrNoReplacementAvailable = errors.New("no replacement referee available")
)
