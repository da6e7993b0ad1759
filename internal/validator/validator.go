package validator

import (
	"errors"
	"regexp"
)

var (
	ErrInvalidEmail       = errors.New("invalid email")
	ErrInvalidName        = errors.New("invalid name")
	ErrInvalidPassword    = errors.New("password must be at least 6 characters")
	ErrInvalidAccountCode = errors.New("account code must be digits only")
	ErrInvalidCategory    = errors.New("invalid account category")
	ErrInvalidBalanceSide = errors.New("normal balance must be debit or credit")
)

var (
	emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	codeRegex  = regexp.MustCompile(`^[0-9]+$`)
)

func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

func ValidateName(name string) error {
	if name == "" {
		return ErrInvalidName
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < 6 {
		return ErrInvalidPassword
	}
	return nil
}

func ValidateAccountCode(code string) error {
	if !codeRegex.MatchString(code) {
		return ErrInvalidAccountCode
	}
	return nil
}

func ValidateCategory(category string) error {
	switch category {
	case "", "asset", "liability", "equity", "revenue", "expense":
		return nil
	}
	return ErrInvalidCategory
}

func ValidateNormalBalance(side string) error {
	switch side {
	case "", "debit", "credit":
		return nil
	}
	return ErrInvalidBalanceSide
}
