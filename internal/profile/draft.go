package profile

import (
	"fmt"
	"unicode/utf8"
)

// Field identifies one editable field of the profile form.
type Field string

const (
	FieldIIN         Field = "iin"
	FieldLastName    Field = "lastName"
	FieldFirstName   Field = "firstName"
	FieldMiddleName  Field = "middleName"
	FieldPhone       Field = "phone"
	FieldDateOfBirth Field = "dateOfBirth"

	// FieldNone means no field has focus
	FieldNone Field = ""
)

// IINLength is the number of characters a valid IIN has.
const IINLength = 12

// Fields lists the form fields in display order.
var Fields = []Field{
	FieldIIN,
	FieldLastName,
	FieldFirstName,
	FieldMiddleName,
	FieldPhone,
	FieldDateOfBirth,
}

// ParseField converts a field name to a Field.
func ParseField(name string) (Field, error) {
	for _, f := range Fields {
		if string(f) == name {
			return f, nil
		}
	}
	return FieldNone, fmt.Errorf("unknown profile field %q", name)
}

// String returns the field name
func (f Field) String() string {
	if f == FieldNone {
		return "none"
	}
	return string(f)
}

// ProfileDraft is the in-progress, unvalidated form data.
// An absent value is the empty string.
type ProfileDraft struct {
	IIN         string `json:"iin" yaml:"iin"`
	LastName    string `json:"lastName" yaml:"last_name"`
	FirstName   string `json:"firstName" yaml:"first_name"`
	MiddleName  string `json:"middleName" yaml:"middle_name"`
	Phone       string `json:"phone" yaml:"phone"`
	DateOfBirth string `json:"dateOfBirth" yaml:"date_of_birth"`
}

// Get returns the value of a single field.
func (d ProfileDraft) Get(f Field) string {
	switch f {
	case FieldIIN:
		return d.IIN
	case FieldLastName:
		return d.LastName
	case FieldFirstName:
		return d.FirstName
	case FieldMiddleName:
		return d.MiddleName
	case FieldPhone:
		return d.Phone
	case FieldDateOfBirth:
		return d.DateOfBirth
	default:
		return ""
	}
}

// With returns a copy of the draft with exactly one field replaced.
// Unknown fields leave the draft unchanged.
func (d ProfileDraft) With(f Field, value string) ProfileDraft {
	switch f {
	case FieldIIN:
		d.IIN = value
	case FieldLastName:
		d.LastName = value
	case FieldFirstName:
		d.FirstName = value
	case FieldMiddleName:
		d.MiddleName = value
	case FieldPhone:
		d.Phone = value
	case FieldDateOfBirth:
		d.DateOfBirth = value
	}
	return d
}

// Complete reports whether a field shows the "filled in" cue: the IIN once it
// has exactly 12 characters, every other field once it is non-empty.
func (d ProfileDraft) Complete(f Field) bool {
	value := d.Get(f)
	if f == FieldIIN {
		return value != "" && utf8.RuneCountInString(value) == IINLength
	}
	return value != ""
}

// FieldSpec describes how a field is presented.
type FieldSpec struct {
	Field       Field
	Label       string
	Placeholder string
	Required    bool
	CharLimit   int // 0 = unlimited
	Numeric     bool
}

// FieldSpecs holds presentation metadata for every field, in display order.
var FieldSpecs = []FieldSpec{
	{Field: FieldIIN, Label: "Individual Identification Number (IIN)", Placeholder: "12-digit number", Required: true, CharLimit: IINLength, Numeric: true},
	{Field: FieldLastName, Label: "Last Name", Placeholder: "Doe", Required: true},
	{Field: FieldFirstName, Label: "First Name", Placeholder: "John", Required: true},
	{Field: FieldMiddleName, Label: "Middle Name (Optional)", Placeholder: "Michael"},
	{Field: FieldPhone, Label: "Phone Number", Placeholder: "+7 (700) 123-45-67", Required: true},
	{Field: FieldDateOfBirth, Label: "Date of Birth", Placeholder: "YYYY-MM-DD", Required: true, CharLimit: 10},
}

// SpecFor returns the presentation metadata of a field.
func SpecFor(f Field) (FieldSpec, bool) {
	for _, spec := range FieldSpecs {
		if spec.Field == f {
			return spec, true
		}
	}
	return FieldSpec{}, false
}
