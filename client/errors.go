package client

import "fmt"

// UpstreamError wraps a network or API failure from the upstream service.
// It is fatal to the current operation and is never retried; Op identifies
// the failed call for operator logs.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func upstream(op string, err error) error {
	return &UpstreamError{Op: op, Err: err}
}
