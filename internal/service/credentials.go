package service

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf16"
)

var (
	ErrMissingName      = errors.New("name is required")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrWeakPassword     = errors.New("weak password")
	ErrPasswordTooLong  = errors.New("password exceeds 72 bytes")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

const (
	minPasswordLength = 8
	// bcrypt solo usa los primeros 72 bytes y x/crypto rechaza entradas más largas.
	maxPasswordBytes = 72
)

// emailShape solo valida la forma local@dominio.tld, no la entregabilidad.
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateName exige un nombre no vacío.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrMissingName
	}
	return nil
}

// ValidateEmailShape comprueba la forma del correo.
func ValidateEmailShape(email string) error {
	if !emailShape.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

// ValidatePasswordStrength exige al menos 8 caracteres con un dígito, una
// minúscula y una mayúscula, y como máximo 72 bytes. Los caracteres se
// cuentan en unidades UTF-16.
func ValidatePasswordStrength(password string) error {
	if utf16Length(password) < minPasswordLength {
		return ErrWeakPassword
	}
	var hasDigit, hasLower, hasUpper bool
	for _, r := range password {
		switch {
		case isLineTerminator(r):
			return ErrWeakPassword
		case r >= '0' && r <= '9':
			hasDigit = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		}
	}
	if !hasDigit || !hasLower || !hasUpper {
		return ErrWeakPassword
	}
	if len(password) > maxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}

// ValidateConfirmation compara password y confirmación como strings.
func ValidateConfirmation(password, rePassword string) error {
	if password != rePassword {
		return ErrPasswordMismatch
	}
	return nil
}

func isLineTerminator(r rune) bool {
	return r == '\n' || r == '\r' || r == '\u2028' || r == '\u2029'
}

func utf16Length(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
