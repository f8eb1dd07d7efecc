package kiosk

import "errors"

// ValidationError is a local precondition failure caught before any network
// call is made (missing name, missing image, model not trained).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// IsValidation reports whether err is a local validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ErrConfirmationDeclined is returned when the operator rejects a
// destructive action at the confirmation prompt.
var ErrConfirmationDeclined = errors.New("confirmation declined")

// ErrBusy is returned when an operation of the same kind is already in
// flight.
var ErrBusy = errors.New("operation already in progress")
