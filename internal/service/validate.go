package service

import (
	"regexp"
	"unicode"
	"unicode/utf8"

	"github.com/sakif/blog-backend/internal/apperror"
)

// Signup validation rules. The exact messages are part of the API contract —
// the web client matches on them — so they are kept verbatim, typos included.
const (
	MinFullnameLength = 3
	MinPasswordLength = 6
	MaxPasswordLength = 20

	msgFullnameTooShort = "Fullname must be at least 3 letter long"
	msgEmailRequired    = "Email is required"
	msgEmailInvalid     = "Email is invalide"
	msgPasswordWeak     = "Password should contain atleast 1 uppercase, 1 lowercase and 1 number with length between 6 to 20 characters"
)

// emailRegex accepts local-part@domain.tld: word characters with optional
// single dot/hyphen separators and a 2-3 letter TLD.
var emailRegex = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// validateSignup runs the signup input checks in order, returning the first
// failure. Order matters: clients show one message at a time and expect the
// fullname check to win over a missing email, and so on.
func validateSignup(fullname, email, password string) error {
	if utf8.RuneCountInString(fullname) < MinFullnameLength {
		return apperror.ValidationFailed("fullname", msgFullnameTooShort)
	}
	if email == "" {
		return apperror.ValidationFailed("email", msgEmailRequired)
	}
	if !emailRegex.MatchString(email) {
		return apperror.ValidationFailed("email", msgEmailInvalid)
	}
	if !validPassword(password) {
		return apperror.ValidationFailed("password", msgPasswordWeak)
	}
	return nil
}

// validPassword checks the password policy: 6-20 characters with at least
// one digit, one lowercase and one uppercase letter.
//
// The policy is a lookahead regex upstream
// (^(?=.*\d)(?=.*[a-z])(?=.*[A-Z]).{6,20}$); Go's RE2 engine has no
// lookaheads, so the same rule is written as explicit scans.
func validPassword(password string) bool {
	if n := utf8.RuneCountInString(password); n < MinPasswordLength || n > MaxPasswordLength {
		return false
	}

	var hasDigit, hasLower, hasUpper bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		}
	}
	return hasDigit && hasLower && hasUpper
}
