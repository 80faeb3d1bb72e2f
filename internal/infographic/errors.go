package infographic

import "errors"

// ErrInvalidRequest is returned for malformed render input.
var ErrInvalidRequest = errors.New("invalid render request")
