package mining

import "errors"

// Engine errors. Callers match them with errors.Is; the engine wraps them with
// the offending identifier or the structural mismatch it found.
var (
	ErrUnknownCoin       = errors.New("unknown coin")
	ErrInvalidProjection = errors.New("invalid projection")
)
