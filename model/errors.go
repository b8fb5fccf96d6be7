package model

import "errors"

// ErrNotFound indicates that an identifier could not be resolved or that the
// upstream service has zero matching records. It is an expected outcome on
// bad input, not a fault.
var ErrNotFound = errors.New("not found")

// ErrInvalidInput indicates malformed input that failed a shape check before
// any network call was made.
var ErrInvalidInput = errors.New("invalid input")
