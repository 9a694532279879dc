package booking

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ContactErrors carries field-scoped validation messages for the checkout
// form. Empty fields mean the corresponding input is valid.
type ContactErrors struct {
	Name  string
	Email string
}

func (e ContactErrors) OK() bool {
	return e.Name == "" && e.Email == ""
}

// ValidateContact checks the checkout contact fields. Name must be
// non-empty after trimming; email must match a local@domain.tld shape.
func ValidateContact(name string, email string) ContactErrors {
	var errs ContactErrors
	if strings.TrimSpace(name) == "" {
		errs.Name = "Name is required"
	}
	email = strings.TrimSpace(email)
	if email == "" {
		errs.Email = "Email is required"
	} else if !emailPattern.MatchString(email) {
		errs.Email = "Invalid email address"
	}
	return errs
}
