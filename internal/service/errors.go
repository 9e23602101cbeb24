package service

import (
	"errors"
	"fmt"
)

// ErrAnalysisTimeout is returned when an assistant run does not leave the
// queued/in-progress states within the configured bound. Handlers surface
// it as a gateway timeout.
var ErrAnalysisTimeout = errors.New("assistant run timed out")

// ValidationError reports a malformed or missing input field. Handlers
// surface it as a client error with field-level detail.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// GatewayError reports that the assistant returned a failure state, or that
// the proxy hit an unexpected error while talking to it. Handlers surface it
// as a bad gateway.
type GatewayError struct {
	State string
	Err   error
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("assistant run failed (%s): %v", e.State, e.Err)
	}
	return fmt.Sprintf("assistant run failed: %s", e.State)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
