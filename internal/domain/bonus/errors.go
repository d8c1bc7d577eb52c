package bonus

import "errors"

// Sentinel kinds for classification table errors.
var (
	ErrInconsistentEntry = errors.New("bonus entry discipline disagrees with code")
	ErrDuplicateCode     = errors.New("duplicate bonus code")
	ErrInvalidEntry      = errors.New("invalid bonus entry")
)
