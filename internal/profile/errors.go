package profile

import (
	"errors"
	"fmt"
)

// User-facing messages
const (
	MsgIINLength      = "IIN must be 12 digits"
	MsgRequiredFields = "Please fill in all required fields"
	MsgSubmitFailed   = "Failed to update profile"
)

// ValidationKind tells which rule rejected a draft
type ValidationKind int

const (
	// KindIIN: the IIN is empty or not exactly 12 characters
	KindIIN ValidationKind = iota
	// KindRequired: a required field is empty
	KindRequired
)

// String returns a human-readable name for the kind
func (k ValidationKind) String() string {
	switch k {
	case KindIIN:
		return "iin"
	case KindRequired:
		return "required"
	default:
		return fmt.Sprintf("ValidationKind(%d)", k)
	}
}

// ValidationError is a locally detected problem with the draft.
// It never reaches the submitter.
type ValidationError struct {
	Kind    ValidationKind
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message
}

// SubmissionError wraps a rejection from the submitter. Message is the
// rejection's text, or MsgSubmitFailed when the rejection carried none.
type SubmissionError struct {
	Message string
	Err     error
}

// Error implements the error interface
func (e *SubmissionError) Error() string {
	return e.Message
}

// Unwrap returns the submitter's error
func (e *SubmissionError) Unwrap() error {
	return e.Err
}

func newSubmissionError(err error) *SubmissionError {
	msg := err.Error()
	if msg == "" {
		msg = MsgSubmitFailed
	}
	return &SubmissionError{Message: msg, Err: err}
}

// IsValidationError checks if an error is a ValidationError
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

// IsSubmissionError checks if an error is a SubmissionError
func IsSubmissionError(err error) bool {
	var sErr *SubmissionError
	return errors.As(err, &sErr)
}
