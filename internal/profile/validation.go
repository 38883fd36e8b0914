package profile

import "unicode/utf8"

// Validate checks a draft against the submit rules. The IIN rule runs first
// and short-circuits the required-field rule. Returns nil or a
// *ValidationError.
//
// The IIN is only checked for length; "12345678901a" passes.
func Validate(d ProfileDraft) error {
	if d.IIN == "" || utf8.RuneCountInString(d.IIN) != IINLength {
		return &ValidationError{Kind: KindIIN, Message: MsgIINLength}
	}

	if d.FirstName == "" || d.LastName == "" || d.Phone == "" || d.DateOfBirth == "" {
		return &ValidationError{Kind: KindRequired, Message: MsgRequiredFields}
	}

	return nil
}
