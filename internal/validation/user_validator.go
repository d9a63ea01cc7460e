package validation

import (
	"errors"
	"net/mail"
	"strings"
)

var (
	ErrEmailRequired    = errors.New("email is required")
	ErrEmailInvalid     = errors.New("email is invalid")
	ErrFullNameRequired = errors.New("full_name is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrPasswordTooLong  = errors.New("password must be at most 72 bytes")
)

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

type UserValidator interface {
	ValidateNewUser(email, fullName, password string) error
	ValidateEmail(email string) error
	ValidateFullName(fullName string) error
	ValidatePassword(password string) error
}

type DefaultUserValidator struct{}

func NewDefaultUserValidator() *DefaultUserValidator {
	return &DefaultUserValidator{}
}

func (v *DefaultUserValidator) ValidateNewUser(email, fullName, password string) error {
	if err := v.ValidateEmail(email); err != nil {
		return err
	}
	if err := v.ValidateFullName(fullName); err != nil {
		return err
	}
	return v.ValidatePassword(password)
}

func (v *DefaultUserValidator) ValidateFullName(fullName string) error {
	if strings.TrimSpace(fullName) == "" {
		return ErrFullNameRequired
	}
	return nil
}

// ValidatePassword has no strength rule. The length cap is in bytes, not runes.
func (v *DefaultUserValidator) ValidatePassword(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if len(password) > MaxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}

// ValidateEmail accepts a bare address such as a@x.com. Display-name forms
// like "A <a@x.com>" are rejected.
func (v *DefaultUserValidator) ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrEmailRequired
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrEmailInvalid
	}
	return nil
}
