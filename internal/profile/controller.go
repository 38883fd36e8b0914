package profile

import (
	"context"

	"github.com/studentportal/profilecli/internal/logging"
)

// Submitter persists a validated draft. It is the controller's only
// side-effecting dependency. A nil return means success; a non-nil error is
// surfaced to the user through its message.
type Submitter interface {
	SubmitProfile(ctx context.Context, draft ProfileDraft) error
}

// SubmitterFunc adapts a function to the Submitter interface
type SubmitterFunc func(ctx context.Context, draft ProfileDraft) error

// SubmitProfile calls f(ctx, draft)
func (f SubmitterFunc) SubmitProfile(ctx context.Context, draft ProfileDraft) error {
	return f(ctx, draft)
}

// Phase is where the controller is in a submit attempt
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseValidating
	PhaseSubmitting
)

// String returns a human-readable name for the phase
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseValidating:
		return "validating"
	case PhaseSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// Result is the terminal state of one submit attempt
type Result int

const (
	ResultSucceeded Result = iota
	ResultValidationFailed
	ResultSubmissionFailed
)

// String returns a human-readable name for the result
func (r Result) String() string {
	switch r {
	case ResultSucceeded:
		return "succeeded"
	case ResultValidationFailed:
		return "validation_failed"
	case ResultSubmissionFailed:
		return "submission_failed"
	default:
		return "unknown"
	}
}

// Outcome is the tagged result of a submit attempt. Err is a
// *ValidationError or *SubmissionError when the attempt was rejected.
type Outcome struct {
	Result Result
	Err    error
}

// Succeeded reports whether the submitter accepted the draft
func (o Outcome) Succeeded() bool {
	return o.Result == ResultSucceeded
}

// Message returns the user-visible error message, or "" on success
func (o Outcome) Message() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// Attempt is a submission that passed validation and is waiting for the
// submitter. Draft is the snapshot handed to the submitter.
type Attempt struct {
	ID    int
	Draft ProfileDraft
}

// Controller owns the profile draft, the focused field and the current error
// message. Create one per mounted form; it is discarded with the form.
type Controller struct {
	draft    ProfileDraft
	focused  Field
	err      error
	phase    Phase
	inFlight int
	attempts int
}

// NewController creates a controller with an empty draft, no focus and no
// error.
func NewController() *Controller {
	return &Controller{
		focused: FieldNone,
		phase:   PhaseIdle,
	}
}

// Draft returns the current draft
func (c *Controller) Draft() ProfileDraft {
	return c.draft
}

// Value returns the current value of one field
func (c *Controller) Value(f Field) string {
	return c.draft.Get(f)
}

// SetField replaces the value of exactly one field. No validation happens
// here; partial input is expected while typing.
func (c *Controller) SetField(f Field, value string) {
	c.draft = c.draft.With(f, value)
	logging.LogFieldEvent("change", f.String(), len(value))
}

// FocusedField returns the field with input focus, or FieldNone
func (c *Controller) FocusedField() Field {
	return c.focused
}

// IsFocused reports whether f currently has focus
func (c *Controller) IsFocused(f Field) bool {
	return f != FieldNone && c.focused == f
}

// OnFocus records that f gained input focus
func (c *Controller) OnFocus(f Field) {
	c.focused = f
	logging.LogFieldEvent("focus", f.String(), 0)
}

// OnBlur clears the focused field. It does not care which field blurred,
// so calling it with nothing focused is a no-op.
func (c *Controller) OnBlur() {
	if c.focused != FieldNone {
		logging.LogFieldEvent("blur", c.focused.String(), 0)
	}
	c.focused = FieldNone
}

// Error returns the message to display, or "" when there is none
func (c *Controller) Error() string {
	if c.err == nil {
		return ""
	}
	return c.err.Error()
}

// LastError returns the current *ValidationError or *SubmissionError
func (c *Controller) LastError() error {
	return c.err
}

// Phase returns where the controller is in a submit attempt. It stays
// PhaseSubmitting while any attempt is waiting for its submitter.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Begin starts a submit attempt: it clears the current error and validates
// the draft. On a validation failure the error is recorded and returned,
// and no Attempt is created. Otherwise the returned Attempt must be passed
// to Resolve once the submitter has finished.
func (c *Controller) Begin() (*Attempt, error) {
	c.err = nil
	c.phase = PhaseValidating
	c.attempts++

	if err := Validate(c.draft); err != nil {
		c.err = err
		c.phase = PhaseIdle
		if c.inFlight > 0 {
			c.phase = PhaseSubmitting
		}
		logging.LogSubmission(c.attempts, ResultValidationFailed.String(), err.Error())
		return nil, err
	}

	c.inFlight++
	c.phase = PhaseSubmitting
	return &Attempt{ID: c.attempts, Draft: c.draft}, nil
}

// Resolve records the submitter's answer for an attempt started by Begin.
// A nil err leaves no message; otherwise the message is the error's text or
// MsgSubmitFailed when the text is empty.
func (c *Controller) Resolve(a *Attempt, err error) Outcome {
	if c.inFlight > 0 {
		c.inFlight--
	}
	if c.inFlight == 0 {
		c.phase = PhaseIdle
	}

	id := 0
	if a != nil {
		id = a.ID
	}

	if err != nil {
		subErr := newSubmissionError(err)
		c.err = subErr
		logging.LogSubmission(id, ResultSubmissionFailed.String(), subErr.Message)
		return Outcome{Result: ResultSubmissionFailed, Err: subErr}
	}

	logging.LogSubmission(id, ResultSucceeded.String(), "")
	return Outcome{Result: ResultSucceeded}
}

// Submit runs a whole attempt: Begin, exactly one call to s when validation
// passes, then Resolve. It blocks until s returns; there is no timeout
// beyond whatever ctx carries.
func (c *Controller) Submit(ctx context.Context, s Submitter) Outcome {
	attempt, err := c.Begin()
	if err != nil {
		return Outcome{Result: ResultValidationFailed, Err: err}
	}
	return c.Resolve(attempt, s.SubmitProfile(ctx, attempt.Draft))
}

// SubmitLabel returns the submit control's label. isSubmitting is owned by
// the host, not the controller.
func SubmitLabel(isSubmitting bool) string {
	if isSubmitting {
		return "Saving..."
	}
	return "Complete Profile"
}
