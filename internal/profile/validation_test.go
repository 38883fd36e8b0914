package profile

import (
	"strings"
	"testing"
)

func validDraft() ProfileDraft {
	return ProfileDraft{
		IIN:         "123456789012",
		LastName:    "Doe",
		FirstName:   "John",
		MiddleName:  "",
		Phone:       "+77001234567",
		DateOfBirth: "1990-01-01",
	}
}

// TestValidateIIN tests the identification number length rule
func TestValidateIIN(t *testing.T) {
	tests := []struct {
		name    string
		iin     string
		wantErr bool
	}{
		{"Valid: 12 digits", "123456789012", false},
		{"Valid: 12 chars with a letter (length only)", "12345678901a", false},
		{"Valid: 12 multibyte chars", strings.Repeat("١", 12), false},
		{"Invalid: empty", "", true},
		{"Invalid: 5 digits", "12345", true},
		{"Invalid: 11 digits", "12345678901", true},
		{"Invalid: 13 digits", "1234567890123", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			d.IIN = tt.iin

			err := Validate(d)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			vErr, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("Expected *ValidationError, got %T", err)
			}
			if vErr.Kind != KindIIN {
				t.Errorf("Kind = %v, want %v", vErr.Kind, KindIIN)
			}
			if err.Error() != MsgIINLength {
				t.Errorf("Error() = %q, want %q", err.Error(), MsgIINLength)
			}
		})
	}
}

// TestValidateRequired tests the required-field rule
func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ProfileDraft)
	}{
		{"missing first name", func(d *ProfileDraft) { d.FirstName = "" }},
		{"missing last name", func(d *ProfileDraft) { d.LastName = "" }},
		{"missing phone", func(d *ProfileDraft) { d.Phone = "" }},
		{"missing date of birth", func(d *ProfileDraft) { d.DateOfBirth = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)

			err := Validate(d)
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			if err.Error() != MsgRequiredFields {
				t.Errorf("Error() = %q, want %q", err.Error(), MsgRequiredFields)
			}
			if vErr := err.(*ValidationError); vErr.Kind != KindRequired {
				t.Errorf("Kind = %v, want %v", vErr.Kind, KindRequired)
			}
		})
	}
}

func TestValidate_IINRuleShortCircuits(t *testing.T) {
	// Everything is missing; only the IIN message is reported
	err := Validate(ProfileDraft{IIN: "123"})
	if err == nil || err.Error() != MsgIINLength {
		t.Fatalf("Validate() = %v, want %q", err, MsgIINLength)
	}
}

func TestValidate_MiddleNameOptional(t *testing.T) {
	d := validDraft()
	d.MiddleName = ""
	if err := Validate(d); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestValidate_WhitespaceCountsAsFilled(t *testing.T) {
	d := validDraft()
	d.FirstName = " "
	if err := Validate(d); err != nil {
		t.Errorf("Validate() error = %v, want nil (presence check only)", err)
	}
}

func TestIsErrorHelpers(t *testing.T) {
	vErr := Validate(ProfileDraft{})
	if !IsValidationError(vErr) {
		t.Error("IsValidationError() should be true for validation failures")
	}
	if IsSubmissionError(vErr) {
		t.Error("IsSubmissionError() should be false for validation failures")
	}

	sErr := newSubmissionError(errString("boom"))
	if !IsSubmissionError(sErr) {
		t.Error("IsSubmissionError() should be true")
	}
	if IsValidationError(sErr) {
		t.Error("IsValidationError() should be false for submission failures")
	}
}

type errString string

func (e errString) Error() string { return string(e) }
