package medistore

import (
	"errors"
	"fmt"
)

// FailureKind classifies a remote call failure
type FailureKind string

const (
	// KindTransport means the request never produced a response
	KindTransport FailureKind = "transport"
	// KindRemote means the API answered with a non-2xx status or a logical failure
	KindRemote FailureKind = "remote"
	// KindDecode means the response body could not be understood
	KindDecode FailureKind = "decode"
)

// Failure is the single error shape callers see for remote problems.
// Message is suitable for showing to the shopper.
type Failure struct {
	Kind      FailureKind
	Operation string
	Status    int
	Message   string
	Err       error
}

func (f *Failure) Error() string {
	if f.Status > 0 {
		return fmt.Sprintf("medistore %s: %s (HTTP %d): %s", f.Operation, f.Kind, f.Status, f.Message)
	}
	return fmt.Sprintf("medistore %s: %s: %s", f.Operation, f.Kind, f.Message)
}

// Unwrap returns the underlying cause, if any
func (f *Failure) Unwrap() error {
	return f.Err
}

// AsFailure extracts a *Failure from err
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// requestFailedMessage mirrors the message shown when the API gives none
func requestFailedMessage(status int) string {
	return fmt.Sprintf("Request failed (%d)", status)
}
