package billing

import (
	"errors"
)

// ErrorKind classifies failures coming back from the invoice collaborators
type ErrorKind int

const (
	// NetworkFailure means the request could not complete
	NetworkFailure ErrorKind = iota + 1
	// ServerRejection means the server answered with a non-2xx status and a reason
	ServerRejection
	// ValidationFailure means the input was malformed
	ValidationFailure
)

func (k ErrorKind) String() string {
	switch k {
	case NetworkFailure:
		return "network_failure"
	case ServerRejection:
		return "server_rejection"
	case ValidationFailure:
		return "validation_failure"
	}
	return "unknown"
}

var (
	// ErrUnknownInvoiceStatus is returned for any status outside paid/unpaid
	ErrUnknownInvoiceStatus = errors.New("unknown invoice status")
	// ErrBatchInProgress is returned when a batch is submitted while another one is running
	ErrBatchInProgress = errors.New("a payment batch is already in progress")
)

// Error carries a descriptive message meant to be shown to the user as is
type Error struct {
	Kind       ErrorKind
	Message    string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidationError builds a ValidationFailure with the given message
func NewValidationError(message string) *Error {
	return &Error{Kind: ValidationFailure, Message: message}
}

// KindOf returns the kind of err if it is (or wraps) an *Error
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
