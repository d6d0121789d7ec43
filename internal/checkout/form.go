// Package checkout turns a cart and a delivery form into an order summary
// message and a deep link into the shop's messaging account.
package checkout

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"storefront/internal/model"
)

// MaxAddressLength is the longest accepted delivery address, in characters.
const MaxAddressLength = 200

// Form field names used as keys in model.FieldErrors.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldAddress = "address"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateForm checks each field of form independently and returns one
// message per failing field. The result is empty when the form is valid.
func ValidateForm(form model.DeliveryForm) model.FieldErrors {
	errs := model.FieldErrors{}

	if strings.TrimSpace(form.Name) == "" {
		errs[FieldName] = "Please enter your full name"
	}

	if strings.TrimSpace(form.Email) == "" {
		errs[FieldEmail] = "Please enter your email address"
	} else if !emailPattern.MatchString(form.Email) {
		errs[FieldEmail] = "Please enter a valid email address"
	}

	if strings.TrimSpace(form.Address) == "" {
		errs[FieldAddress] = "Please enter your delivery address"
	} else if utf8.RuneCountInString(form.Address) > MaxAddressLength {
		errs[FieldAddress] = "Address must be less than 200 characters"
	}

	return errs
}
