// Package profile implements the student profile form controller.
//
// The controller owns the in-progress profile draft, tracks which field has
// input focus, and gates submission behind two validation rules before
// handing the draft to an injected Submitter. It has no knowledge of how the
// form is drawn or how the profile is persisted.
//
// # Field State
//
// A ProfileDraft holds six string fields. Edits go through SetField, which
// replaces exactly one field and leaves the others untouched. Any string is
// accepted while typing; nothing is validated until submit.
//
// # Submission
//
// Each attempt walks a small state machine:
//
//	Idle → Validating → Rejected(ValidationError)
//	                  → Submitting → Succeeded
//	                               → Rejected(SubmissionError)
//
// and returns to Idle afterwards. Validation checks, in order:
//
//  1. the IIN is exactly 12 characters long ("IIN must be 12 digits")
//  2. first name, last name, phone and date of birth are non-empty
//     ("Please fill in all required fields")
//
// Only the length of the IIN is checked, not that every character is a digit.
//
// Blocking callers use Submit. Event-loop hosts that must keep processing
// input while the submitter runs split the attempt into Begin and Resolve:
//
//	attempt, err := c.Begin()
//	if err != nil {
//	    // validation failed, c.Error() holds the message
//	}
//	go func() {
//	    result := submitter.SubmitProfile(ctx, attempt.Draft)
//	    // back on the UI goroutine:
//	    outcome := c.Resolve(attempt, result)
//	}()
//
// The controller never guards against overlapping attempts and never times
// out a submitter. Hosts disable the submit control while a submission is in
// flight.
//
// # Thread Safety
//
// A Controller is not safe for concurrent use. It is meant to be mutated
// from a single UI goroutine.
package profile
