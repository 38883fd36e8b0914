package studentapi

import (
	"time"

	"github.com/studentportal/profilecli/internal/profile"
)

// Role sent in X-User-Role. The student service only lets students create
// student profiles.
const RoleStudent = "student"

// ProfileRequest is the JSON body of a create or update call
type ProfileRequest struct {
	IIN         string `json:"iin"`
	LastName    string `json:"last_name"`
	FirstName   string `json:"first_name"`
	MiddleName  string `json:"middle_name,omitempty"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"date_of_birth"`
}

// NewProfileRequest converts a draft into its wire form
func NewProfileRequest(d profile.ProfileDraft) ProfileRequest {
	return ProfileRequest{
		IIN:         d.IIN,
		LastName:    d.LastName,
		FirstName:   d.FirstName,
		MiddleName:  d.MiddleName,
		Phone:       d.Phone,
		DateOfBirth: d.DateOfBirth,
	}
}

// StudentProfile is the profile as stored by the student service
type StudentProfile struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	IIN          string    `json:"iin"`
	LastName     string    `json:"last_name"`
	FirstName    string    `json:"first_name"`
	MiddleName   string    `json:"middle_name,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	DateOfBirth  string    `json:"date_of_birth,omitempty"`
	UniversityID string    `json:"university_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Draft converts a stored profile back into an editable draft
func (p *StudentProfile) Draft() profile.ProfileDraft {
	return profile.ProfileDraft{
		IIN:         p.IIN,
		LastName:    p.LastName,
		FirstName:   p.FirstName,
		MiddleName:  p.MiddleName,
		Phone:       p.Phone,
		DateOfBirth: p.DateOfBirth,
	}
}

// FullName returns "Last First Middle" with empty parts skipped
func (p *StudentProfile) FullName() string {
	name := p.LastName
	for _, part := range []string{p.FirstName, p.MiddleName} {
		if part == "" {
			continue
		}
		if name != "" {
			name += " "
		}
		name += part
	}
	return name
}

// ErrorResponse is the service's error body
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthStatus is the body of GET /health
type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// OK reports whether the service says it is healthy
func (h *HealthStatus) OK() bool {
	return h.Status == "ok"
}
