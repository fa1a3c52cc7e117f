// Package validate implements the input validation rules for account fields.
// Checks are pure functions of their input: no I/O, deterministic, and they
// always report the first violated rule (presence before format, name before
// email), so a caller can fail fast before touching the store.
package validate

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	domainerrors "passport/internal/domain/errors"
)

// Validator evaluates field-level rules. Immutable after construction.
type Validator struct {
	v *validator.Validate
}

// New is the constructor for Validator.
func New() *Validator {
	return &Validator{
		v: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Registration checks a registration candidate. Rule ordering is contractual:
// missing name, illegal name, missing email, illegal email.
func (val *Validator) Registration(name, email string) error {
	if err := val.Name(name, true); err != nil {
		return err
	}

	return val.Email(email, true)
}

// Name checks the display name: 1-16 characters. With required set, an absent
// name is reported as missing rather than illegal.
func (val *Validator) Name(name string, required bool) error {
	if name == "" {
		if required {
			return domainerrors.ErrMissingName
		}

		// Supplied but empty: below the lower length bound.
		return domainerrors.ErrIllegalName
	}

	if err := val.v.Var(name, "min=1,max=16"); err != nil {
		return domainerrors.ErrIllegalName
	}

	return nil
}

// Email checks email syntax: local-part @ domain, with at least one dot in
// the domain.
func (val *Validator) Email(email string, required bool) error {
	if email == "" {
		if required {
			return domainerrors.ErrMissingEmail
		}

		return domainerrors.ErrIllegalEmail
	}

	if err := val.v.Var(email, "email"); err != nil {
		return domainerrors.ErrIllegalEmail
	}

	at := strings.LastIndex(email, "@")
	if at < 0 || !strings.Contains(email[at+1:], ".") {
		return domainerrors.ErrIllegalEmail
	}

	return nil
}

// Password checks the minimum strength rule for a new password: at least six
// characters and not composed of digits only.
func (val *Validator) Password(password string) error {
	if err := val.v.Var(password, "min=6"); err != nil {
		return domainerrors.ErrInvalidPassword
	}

	digitsOnly := true
	for _, r := range password {
		if !unicode.IsDigit(r) {
			digitsOnly = false

			break
		}
	}
	if digitsOnly {
		return domainerrors.ErrInvalidPassword
	}

	return nil
}

// ID checks a path-supplied identifier against the store's 24-hex-character
// format and parses it. Malformed ids fail before any store lookup.
func (val *Validator) ID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, domainerrors.ErrInvalidID
	}

	return id, nil
}
