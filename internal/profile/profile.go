// Package profile keeps the user profile documents: personal details, the
// profile photo and the last sign-in location.
package profile

import (
	"strings"
	"time"

	"github.com/2beens/coachportal/internal/coaching"
)

const DateLayout = "2006-01-02"

type UserProfile struct {
	Name        string      `json:"name"`
	DateOfBirth string      `json:"dateOfBirth"`
	Height      string      `json:"height"`
	Gender      string      `json:"gender"`
	Email       string      `json:"email"`
	PhotoURL    string      `json:"photoURL"`
	LastLogin   *LoginAudit `json:"lastLogin,omitempty"`
	// Age is derived from DateOfBirth on read, never stored.
	Age *int `json:"age,omitempty"`
}

type LoginAudit struct {
	At      time.Time `json:"at"`
	Method  string    `json:"method"`
	IP      string    `json:"ip"`
	City    string    `json:"city"`
	Country string    `json:"country"`
}

// CalculateAge returns the full years between dob and now.
func CalculateAge(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

func (p *UserProfile) deriveAge(now time.Time) {
	p.Age = nil
	if p.DateOfBirth == "" {
		return
	}
	dob, err := time.Parse(DateLayout, p.DateOfBirth)
	if err != nil {
		return
	}
	age := CalculateAge(dob, now)
	p.Age = &age
}

type UpdateRequest struct {
	Name        string `json:"name"`
	DateOfBirth string `json:"dateOfBirth"`
	Height      string `json:"height"`
	Gender      string `json:"gender"`
}

// Fields validates the request and returns the fields to merge into the profile.
func (req UpdateRequest) Fields() (map[string]any, error) {
	dob := strings.TrimSpace(req.DateOfBirth)
	if dob != "" {
		if _, err := time.Parse(DateLayout, dob); err != nil {
			return nil, coaching.Invalid("Invalid date of birth.")
		}
	}
	return map[string]any{
		"name":        strings.TrimSpace(req.Name),
		"dateOfBirth": dob,
		"height":      strings.TrimSpace(req.Height),
		"gender":      strings.TrimSpace(req.Gender),
	}, nil
}

type EmailRequest struct {
	Email string `json:"email"`
}

type PasswordRequest struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}
