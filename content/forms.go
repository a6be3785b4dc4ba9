package content

import (
	"net/mail"
	"strings"
	"time"
)

// Validate checks the required contact form fields.
func (r ContactRequest) Validate() error {
	var verr ValidationError
	if strings.TrimSpace(r.Name) == "" {
		verr.add("name", "is required")
	}
	validateEmail(&verr, r.Email)
	if strings.TrimSpace(r.Message) == "" {
		verr.add("message", "is required")
	}
	return verr.orNil()
}

// Validate checks the required booking fields. Bookings must be in the future
// relative to now.
func (r BookingRequest) Validate(now time.Time) error {
	var verr ValidationError
	if strings.TrimSpace(r.Name) == "" {
		verr.add("name", "is required")
	}
	validateEmail(&verr, r.Email)
	if strings.TrimSpace(r.Phone) == "" {
		verr.add("phone", "is required")
	}
	if strings.TrimSpace(r.Location) == "" {
		verr.add("location", "is required")
	}
	if !validServices[r.Service] {
		verr.add("service", "must be one of eye-exam, contact-lenses, fitting")
	}
	switch {
	case r.Date.IsZero():
		verr.add("date", "is required")
	case !r.Date.After(now):
		verr.add("date", "must be in the future")
	}
	return verr.orNil()
}

var validServices = map[string]bool{
	"eye-exam":       true,
	"contact-lenses": true,
	"fitting":        true,
}

func validateEmail(verr *ValidationError, email string) {
	if strings.TrimSpace(email) == "" {
		verr.add("email", "is required")
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		verr.add("email", "is not a valid address")
	}
}
