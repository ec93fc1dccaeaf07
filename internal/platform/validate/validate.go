// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate collects field-level failures of a request payload into a
// single VALIDATION_ERROR.
//
// Domain services validate before calling their store, so stores only see
// well-formed input. A Validator is single-use and not safe for concurrent use.
package validate

import (
	"fmt"
	"net/mail"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/bizportal/internal/platform/apperr"
)

// accountIDPattern matches role-prefixed account ids such as MGR-001 or CUS-7K2.
var accountIDPattern = regexp.MustCompile(`^[A-Z]{2,4}-[A-Z0-9]{1,16}$`)

// ErrInvalidJSON is returned when the request body cannot be decoded.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

// Validator accumulates rule failures; see [Validator.Err].
type Validator struct {
	errs []apperr.FieldError
}

func (v *Validator) Required(field, value string) *Validator {
	return v.Custom(field, strings.TrimSpace(value) == "", "This field is required")
}

// MaxLen counts runes, not bytes.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	return v.Custom(field, utf8.RuneCountInString(value) > max, fmt.Sprintf("Maximum %d characters", max))
}

// Range is inclusive on both ends.
func (v *Validator) Range(field string, value, min, max int) *Validator {
	return v.Custom(field, value < min || value > max, fmt.Sprintf("Must be between %d and %d", min, max))
}

// NonNegative rejects amounts below zero, such as prices in cents.
func (v *Validator) NonNegative(field string, value int64) *Validator {
	return v.Custom(field, value < 0, "Must not be negative")
}

func (v *Validator) Email(field, value string) *Validator {
	_, err := mail.ParseAddress(value)
	return v.Custom(field, err != nil, "Must be a valid email address")
}

// AccountID expects two to four upper-case letters, a hyphen, then up to
// sixteen upper-case letters or digits.
func (v *Validator) AccountID(field, value string) *Validator {
	return v.Custom(field, !accountIDPattern.MatchString(value), "Must be a valid account id (e.g. MGR-001)")
}

func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	return v.Custom(field, !slices.Contains(allowed, value), "Must be one of: "+strings.Join(allowed, ", "))
}

// Custom records message against field when failed is true.
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
	}
	return v
}

// HasErrors reports whether any rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// Err ends the chain: nil when every rule passed, otherwise one
// VALIDATION_ERROR listing each failed field in rule order.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// RequiredError builds a single-field validation error.
func RequiredError(field, message string) *apperr.AppError {
	return apperr.ValidationError("Validation failed", apperr.FieldError{Field: field, Message: message})
}
