package profile

import (
	"context"
	"errors"
	"testing"
)

// recordingSubmitter counts calls and remembers the last draft
type recordingSubmitter struct {
	calls int
	got   ProfileDraft
	err   error
}

func (r *recordingSubmitter) SubmitProfile(ctx context.Context, d ProfileDraft) error {
	r.calls++
	r.got = d
	return r.err
}

func fill(c *Controller, d ProfileDraft) {
	for _, f := range Fields {
		c.SetField(f, d.Get(f))
	}
}

func TestNewController(t *testing.T) {
	c := NewController()

	if c.Draft() != (ProfileDraft{}) {
		t.Errorf("Draft() = %+v, want empty draft", c.Draft())
	}
	if c.FocusedField() != FieldNone {
		t.Errorf("FocusedField() = %v, want none", c.FocusedField())
	}
	if c.Error() != "" {
		t.Errorf("Error() = %q, want empty", c.Error())
	}
	if c.Phase() != PhaseIdle {
		t.Errorf("Phase() = %v, want idle", c.Phase())
	}
}

func TestSetField_ChangesOnlyNamedField(t *testing.T) {
	c := NewController()
	fill(c, validDraft())
	before := c.Draft()

	c.SetField(FieldPhone, "+7 700 1234567")
	after := c.Draft()

	if after.Phone != "+7 700 1234567" {
		t.Errorf("Phone = %q, want %q", after.Phone, "+7 700 1234567")
	}
	for _, f := range Fields {
		if f == FieldPhone {
			continue
		}
		if after.Get(f) != before.Get(f) {
			t.Errorf("%s changed from %q to %q", f, before.Get(f), after.Get(f))
		}
	}
}

func TestSetField_AcceptsPartialInput(t *testing.T) {
	c := NewController()
	c.SetField(FieldIIN, "12a")
	c.SetField(FieldDateOfBirth, "1990-1")

	if c.Value(FieldIIN) != "12a" || c.Value(FieldDateOfBirth) != "1990-1" {
		t.Errorf("partial input not stored: %+v", c.Draft())
	}
	if c.Error() != "" {
		t.Errorf("SetField should never set an error, got %q", c.Error())
	}
}

func TestDraftWith_DoesNotMutateReceiver(t *testing.T) {
	d := validDraft()
	updated := d.With(FieldLastName, "Smith")

	if d.LastName != "Doe" {
		t.Errorf("receiver mutated: LastName = %q", d.LastName)
	}
	if updated.LastName != "Smith" {
		t.Errorf("LastName = %q, want Smith", updated.LastName)
	}
}

func TestFocusTracking(t *testing.T) {
	c := NewController()

	c.OnFocus(FieldIIN)
	if c.FocusedField() != FieldIIN || !c.IsFocused(FieldIIN) {
		t.Fatalf("FocusedField() = %v, want iin", c.FocusedField())
	}

	// Only one field focused at a time
	c.OnFocus(FieldPhone)
	if c.IsFocused(FieldIIN) {
		t.Error("iin should lose focus when phone gains it")
	}

	c.OnBlur()
	if c.FocusedField() != FieldNone {
		t.Errorf("FocusedField() = %v after blur, want none", c.FocusedField())
	}
}

func TestOnBlur_Idempotent(t *testing.T) {
	c := NewController()
	c.OnBlur()
	c.OnBlur()
	if c.FocusedField() != FieldNone {
		t.Errorf("FocusedField() = %v, want none", c.FocusedField())
	}
}

func TestFocus_DoesNotAffectSubmission(t *testing.T) {
	c := NewController()
	fill(c, validDraft())
	c.OnFocus(FieldIIN)

	sub := &recordingSubmitter{}
	out := c.Submit(context.Background(), sub)

	if !out.Succeeded() || sub.calls != 1 {
		t.Errorf("focus changed submission: outcome=%v calls=%d", out.Result, sub.calls)
	}
	if c.FocusedField() != FieldIIN {
		t.Error("submission should not change focus")
	}
}

func TestSubmit_InvalidIINNeverCallsSubmitter(t *testing.T) {
	for _, iin := range []string{"", "1", "12345", "12345678901", "1234567890123"} {
		t.Run("iin="+iin, func(t *testing.T) {
			c := NewController()
			fill(c, validDraft())
			c.SetField(FieldIIN, iin)

			sub := &recordingSubmitter{}
			out := c.Submit(context.Background(), sub)

			if sub.calls != 0 {
				t.Errorf("submitter called %d times, want 0", sub.calls)
			}
			if out.Result != ResultValidationFailed {
				t.Errorf("Result = %v, want validation_failed", out.Result)
			}
			if c.Error() != MsgIINLength {
				t.Errorf("Error() = %q, want %q", c.Error(), MsgIINLength)
			}
		})
	}
}

func TestSubmit_MissingRequiredNeverCallsSubmitter(t *testing.T) {
	for _, f := range []Field{FieldFirstName, FieldLastName, FieldPhone, FieldDateOfBirth} {
		t.Run(f.String(), func(t *testing.T) {
			c := NewController()
			fill(c, validDraft())
			c.SetField(f, "")

			sub := &recordingSubmitter{}
			c.Submit(context.Background(), sub)

			if sub.calls != 0 {
				t.Errorf("submitter called %d times, want 0", sub.calls)
			}
			if c.Error() != MsgRequiredFields {
				t.Errorf("Error() = %q, want %q", c.Error(), MsgRequiredFields)
			}
		})
	}
}

func TestSubmit_ValidDraftCallsSubmitterOnce(t *testing.T) {
	c := NewController()
	want := validDraft()
	fill(c, want)

	sub := &recordingSubmitter{}
	out := c.Submit(context.Background(), sub)

	if sub.calls != 1 {
		t.Fatalf("submitter called %d times, want 1", sub.calls)
	}
	if sub.got != want {
		t.Errorf("submitter got %+v, want %+v", sub.got, want)
	}
	if !out.Succeeded() || out.Message() != "" {
		t.Errorf("Outcome = %+v, want success with no message", out)
	}
	if c.Error() != "" {
		t.Errorf("Error() = %q, want empty", c.Error())
	}
	if c.Phase() != PhaseIdle {
		t.Errorf("Phase() = %v, want idle", c.Phase())
	}
}

func TestSubmit_RejectionMessages(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"message passed through", errors.New("network down"), "network down"},
		{"empty message falls back", errors.New(""), MsgSubmitFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController()
			fill(c, validDraft())

			out := c.Submit(context.Background(), &recordingSubmitter{err: tt.err})

			if out.Result != ResultSubmissionFailed {
				t.Errorf("Result = %v, want submission_failed", out.Result)
			}
			if c.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", c.Error(), tt.wantMsg)
			}
			if !errors.Is(c.LastError(), tt.err) {
				t.Error("SubmissionError should unwrap to the submitter's error")
			}
		})
	}
}

func TestSubmit_ClearsPreviousError(t *testing.T) {
	c := NewController()
	c.Submit(context.Background(), &recordingSubmitter{})
	if c.Error() != MsgIINLength {
		t.Fatalf("setup: Error() = %q", c.Error())
	}

	fill(c, validDraft())
	c.Submit(context.Background(), &recordingSubmitter{})
	if c.Error() != "" {
		t.Errorf("Error() = %q after successful submit, want empty", c.Error())
	}
}

func TestBeginResolve_SuspendsUntilResolved(t *testing.T) {
	c := NewController()
	c.Submit(context.Background(), &recordingSubmitter{err: errors.New("old")})
	fill(c, validDraft())

	attempt, err := c.Begin()
	if err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	// Error is cleared before the submitter runs
	if c.Error() != "" {
		t.Errorf("Error() = %q while submitting, want empty", c.Error())
	}
	if c.Phase() != PhaseSubmitting {
		t.Errorf("Phase() = %v, want submitting", c.Phase())
	}

	// Edits keep flowing while suspended; the attempt keeps its snapshot
	c.SetField(FieldPhone, "changed")
	if attempt.Draft.Phone != validDraft().Phone {
		t.Errorf("attempt snapshot changed: %q", attempt.Draft.Phone)
	}

	out := c.Resolve(attempt, errors.New("network down"))
	if out.Message() != "network down" || c.Error() != "network down" {
		t.Errorf("Resolve() message = %q, Error() = %q", out.Message(), c.Error())
	}
	if c.Phase() != PhaseIdle {
		t.Errorf("Phase() = %v after resolve, want idle", c.Phase())
	}
}

func TestBegin_OverlappingAttemptsAreNotGuarded(t *testing.T) {
	c := NewController()
	fill(c, validDraft())

	first, err := c.Begin()
	if err != nil {
		t.Fatalf("first Begin() error = %v", err)
	}
	second, err := c.Begin()
	if err != nil {
		t.Fatalf("second Begin() error = %v", err)
	}
	if first.ID == second.ID {
		t.Error("attempts should have distinct IDs")
	}

	c.Resolve(first, nil)
	if c.Phase() != PhaseSubmitting {
		t.Errorf("Phase() = %v with one attempt outstanding, want submitting", c.Phase())
	}
	c.Resolve(second, errors.New("duplicate"))
	if c.Phase() != PhaseIdle || c.Error() != "duplicate" {
		t.Errorf("Phase() = %v, Error() = %q", c.Phase(), c.Error())
	}
}

func TestSubmitterFunc(t *testing.T) {
	called := false
	var s Submitter = SubmitterFunc(func(ctx context.Context, d ProfileDraft) error {
		called = true
		return nil
	})
	c := NewController()
	fill(c, validDraft())
	c.Submit(context.Background(), s)
	if !called {
		t.Error("SubmitterFunc was not called")
	}
}

func TestSubmitLabel(t *testing.T) {
	if got := SubmitLabel(false); got != "Complete Profile" {
		t.Errorf("SubmitLabel(false) = %q", got)
	}
	if got := SubmitLabel(true); got != "Saving..." {
		t.Errorf("SubmitLabel(true) = %q", got)
	}
}
