package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/sakif/blog-backend/internal/apperror"
)

func TestValidateSignup(t *testing.T) {
	tests := []struct {
		name     string
		fullname string
		email    string
		password string
		wantMsg  string // "" means valid
	}{
		{
			name:     "valid input",
			fullname: "Jane Doe",
			email:    "jane@example.com",
			password: "Abcde1",
		},
		{
			name:     "fullname too short",
			fullname: "Jo",
			email:    "jo@example.com",
			password: "Abcde1",
			wantMsg:  msgFullnameTooShort,
		},
		{
			// "éé" is 2 characters but 4 bytes; the length rule counts
			// characters, so this must still fail.
			name:     "multibyte fullname too short",
			fullname: "éé",
			email:    "ee@example.com",
			password: "Abcde1",
			wantMsg:  msgFullnameTooShort,
		},
		{
			name:     "multibyte fullname long enough",
			fullname: "Åsa",
			email:    "asa@example.com",
			password: "Abcde1",
		},
		{
			name:     "fullname check wins over missing email",
			fullname: "",
			email:    "",
			password: "",
			wantMsg:  msgFullnameTooShort,
		},
		{
			name:     "email required",
			fullname: "Jane Doe",
			email:    "",
			password: "Abcde1",
			wantMsg:  msgEmailRequired,
		},
		{
			name:     "email without domain",
			fullname: "Jane Doe",
			email:    "jane@",
			password: "Abcde1",
			wantMsg:  msgEmailInvalid,
		},
		{
			name:     "email without at sign",
			fullname: "Jane Doe",
			email:    "jane.example.com",
			password: "Abcde1",
			wantMsg:  msgEmailInvalid,
		},
		{
			name:     "email with long TLD",
			fullname: "Jane Doe",
			email:    "jane@example.museum",
			password: "Abcde1",
			wantMsg:  msgEmailInvalid,
		},
		{
			name:     "email with dotted local part",
			fullname: "Jane Doe",
			email:    "jane.doe@mail.example.com",
			password: "Abcde1",
		},
		{
			name:     "password too short",
			fullname: "Jane Doe",
			email:    "jane@example.com",
			password: "Abc1",
			wantMsg:  msgPasswordWeak,
		},
		{
			name:     "password too long",
			fullname: "Jane Doe",
			email:    "jane@example.com",
			password: "Abcdefghij1" + strings.Repeat("x", 15),
			wantMsg:  msgPasswordWeak,
		},
		{
			name:     "password without digit",
			fullname: "Jane Doe",
			email:    "jane@example.com",
			password: "Abcdefg",
			wantMsg:  msgPasswordWeak,
		},
		{
			name:     "password without uppercase",
			fullname: "Jane Doe",
			email:    "jane@example.com",
			password: "abcdef1",
			wantMsg:  msgPasswordWeak,
		},
		{
			name:     "password without lowercase",
			fullname: "Jane Doe",
			email:    "jane@example.com",
			password: "ABCDEF1",
			wantMsg:  msgPasswordWeak,
		},
		{
			name:     "password at exact bounds",
			fullname: "Jane Doe",
			email:    "jane@example.com",
			password: "Abcd12",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validateSignup(tc.fullname, tc.email, tc.password)

			if tc.wantMsg == "" {
				if err != nil {
					t.Fatalf("validateSignup() error = %v, want nil", err)
				}
				return
			}

			if err == nil {
				t.Fatalf("validateSignup() = nil, want %q", tc.wantMsg)
			}
			if !errors.Is(err, apperror.ErrValidation) {
				t.Errorf("validateSignup() error is not ErrValidation: %v", err)
			}

			var appErr *apperror.AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("validateSignup() error is not an *AppError: %v", err)
			}
			if appErr.Message != tc.wantMsg {
				t.Errorf("message = %q, want %q", appErr.Message, tc.wantMsg)
			}
		})
	}
}

func TestDefaultAvatar(t *testing.T) {
	url := defaultAvatar()
	if !strings.HasPrefix(url, "https://api.dicebear.com/") {
		t.Errorf("defaultAvatar() = %q, want a dicebear URL", url)
	}
	if !strings.Contains(url, "seed=") {
		t.Errorf("defaultAvatar() = %q, missing seed parameter", url)
	}
}
