// Package validation checks buyer input before any network call is made.
package validation

import (
	"regexp"
	"strings"

	"github.com/jcmexdev/digital-storefront/internal/storefront/core/domain/entity"
)

const (
	FieldName  = "name"
	FieldEmail = "email"
	FieldPhone = "phone"
)

var (
	emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)
)

// FieldErrors maps a form field to its error message. An empty map means
// the input is valid.
type FieldErrors map[string]string

func (fe FieldErrors) Valid() bool { return len(fe) == 0 }

// Clear drops the error of a single field, leaving the others untouched.
func (fe FieldErrors) Clear(field string) {
	delete(fe, field)
}

// ValidateCustomer returns one entry per failing field.
func ValidateCustomer(c entity.Customer) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(c.Name) == "" {
		errs[FieldName] = "Name is required"
	}

	switch {
	case strings.TrimSpace(c.Email) == "":
		errs[FieldEmail] = "Email is required"
	case !emailPattern.MatchString(c.Email):
		errs[FieldEmail] = "Email is invalid"
	}

	// The phone is matched untrimmed: surrounding spaces are not digits.
	switch {
	case strings.TrimSpace(c.Phone) == "":
		errs[FieldPhone] = "Phone number is required"
	case !phonePattern.MatchString(c.Phone):
		errs[FieldPhone] = "Phone number must be 10 digits"
	}

	return errs
}

// IsField reports whether name is one of the checkout form fields.
func IsField(name string) bool {
	switch name {
	case FieldName, FieldEmail, FieldPhone:
		return true
	}
	return false
}
