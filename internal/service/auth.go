// Package service contains the business logic layer of the application.
//
// The three-layer split follows the usual shape:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (business layer) → validates, enforces rules, orchestrates
//	Repository (data layer)  → reads/writes the database
//
// AuthService owns the credential-validation and identity-resolution rules
// for all three entry points (signup, signin, google-auth). Handlers never
// touch the database; the service never touches HTTP.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rs/xid"
	"github.com/sakif/blog-backend/internal/apperror"
	"github.com/sakif/blog-backend/internal/auth"
	"github.com/sakif/blog-backend/internal/model"
	"github.com/sakif/blog-backend/internal/repository"
)

// usernameSuffixLength is how many random characters get appended to a
// username candidate when the plain email local-part is already taken.
const usernameSuffixLength = 5

// ErrProviderVerification marks a Google token the provider would not
// vouch for. The handler reports these with one generic message instead of
// leaking what exactly the provider disliked about the token.
var ErrProviderVerification = errors.New("provider verification failed")

// Cross-path rejection messages. Like the validation messages, these are
// matched by the client and kept verbatim.
const (
	msgSignedUpWithoutGoogle = "This email was signed up without google. Please log in with password to access the account"
	msgSignedUpWithGoogle    = "Account was created using Google. Try logging in with Google."
	msgIncorrectPassword     = "Incorrect password"
)

// IdentityVerifier validates a provider-issued access token and returns the
// verified claims. Satisfied by *auth.GoogleVerifier; an interface so tests
// can stand in for Google.
type IdentityVerifier interface {
	Verify(ctx context.Context, accessToken string) (*auth.GoogleUser, error)
}

// AuthService handles the authentication business logic.
//
// Dependencies (injected via NewAuthService):
//   - users     repository.UserRepository → read/write user records
//   - tokens    *auth.TokenService        → issue JWT access tokens
//   - passwords *auth.PasswordService     → bcrypt hashing/verification
//   - google    IdentityVerifier          → Google token verification
//   - logger    *slog.Logger              → structured logging
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	google    IdentityVerifier
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all required dependencies.
// Called from server.go when wiring the dependency graph.
func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	google IdentityVerifier,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		google:    google,
		logger:    logger,
	}
}

// AuthResult bundles the user record and the issued JWT so the handler can
// build the response payload in one step.
type AuthResult struct {
	User  *model.User
	Token string
}

// SignupInput is the signup request after JSON decoding.
type SignupInput struct {
	Fullname string
	Email    string
	Password string
}

// Signup creates a local password account.
//
// Flow: validate input → hash password → allocate username → pick a default
// avatar → persist. A duplicate email surfaces from the store as a conflict
// (apperror.ErrConflict); the store's UNIQUE constraint makes that hold even
// when two signups for the same email race.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	if err := validateSignup(in.Fullname, in.Email, in.Password); err != nil {
		return nil, err
	}

	email := strings.ToLower(in.Email)

	hashed, err := s.passwords.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("service/auth: hashing password: %w", err)
	}

	username, err := s.allocateUsername(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("service/auth: allocating username: %w", err)
	}

	user := &model.User{
		Fullname:   in.Fullname,
		Email:      email,
		Password:   hashed,
		Username:   username,
		ProfileImg: defaultAvatar(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("service/auth: creating user: %w", err)
	}

	s.logger.Info("user signed up",
		slog.String("userID", user.ID),
		slog.String("username", user.Username),
	)

	return s.result(user)
}

// Signin authenticates a local password account.
//
// An account flagged google_auth has no password to check — the attempt is
// rejected before the hash comparison, mirroring the check /google-auth
// performs in the other direction.
func (s *AuthService) Signin(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, fmt.Errorf("service/auth: looking up %q: %w", email, err)
	}

	if user.GoogleAuth {
		return nil, apperror.Forbidden(msgSignedUpWithGoogle)
	}

	if err := s.passwords.Verify(user.Password, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, apperror.Forbidden(msgIncorrectPassword)
		}
		// Comparison itself failed (e.g. corrupt hash) — a system fault,
		// not a wrong password.
		return nil, fmt.Errorf("service/auth: verifying password for user %s: %w", user.ID, err)
	}

	s.logger.Info("user signed in", slog.String("userID", user.ID))

	return s.result(user)
}

// GoogleAuth authenticates (or registers) via a Google-issued access token.
//
// Flow:
//  1. Verify the token with Google; any failure is reported generically.
//  2. Upgrade the avatar URL to the high-res variant (s96-c → s384-c, a
//     googleusercontent.com naming convention).
//  3. Resolve the account by email: an existing password account is
//     rejected, an existing Google account logs in, an unseen email gets a
//     new account flagged google_auth.
func (s *AuthService) GoogleAuth(ctx context.Context, accessToken string) (*AuthResult, error) {
	gUser, err := s.google.Verify(ctx, accessToken)
	if err != nil {
		s.logger.Warn("google token verification failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("service/auth: %w: %w", ErrProviderVerification, err)
	}

	email := strings.ToLower(gUser.Email)
	picture := strings.Replace(gUser.Picture, "s96-c", "s384-c", 1)

	user, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		// Existing account — only allowed through if it was created via Google.
		if !user.GoogleAuth {
			return nil, apperror.Forbidden(msgSignedUpWithoutGoogle)
		}

	case errors.Is(err, apperror.ErrNotFound):
		// First login for this email — register a Google-backed account.
		username, allocErr := s.allocateUsername(ctx, email)
		if allocErr != nil {
			return nil, fmt.Errorf("service/auth: allocating username: %w", allocErr)
		}

		user = &model.User{
			Fullname:   gUser.Name,
			Email:      email,
			Username:   username,
			ProfileImg: picture,
			GoogleAuth: true,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("service/auth: creating google user: %w", err)
		}

		s.logger.Info("user registered via google",
			slog.String("userID", user.ID),
			slog.String("username", user.Username),
		)

	default:
		return nil, fmt.Errorf("service/auth: looking up %q: %w", email, err)
	}

	return s.result(user)
}

// GetUserByID returns the user for the given internal ID. Used by /api/me
// after the middleware validates the token and extracts the subject claim.
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, fmt.Errorf("service/auth: user ID must not be empty")
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service/auth: fetching user %s: %w", id, err)
	}

	return user, nil
}

// result signs an access token for the user and bundles the pair.
func (s *AuthService) result(user *model.User) (*AuthResult, error) {
	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating token for user %s: %w", user.ID, err)
	}
	return &AuthResult{User: user, Token: token}, nil
}

// allocateUsername derives a handle from the email local-part. If the plain
// candidate is taken, a 5-character random suffix disambiguates it. The
// suffix comes from the tail of a fresh xid (the random/counter bytes, not
// the timestamp prefix).
func (s *AuthService) allocateUsername(ctx context.Context, email string) (string, error) {
	username, _, _ := strings.Cut(email, "@")

	taken, err := s.users.UsernameExists(ctx, username)
	if err != nil {
		return "", err
	}
	if taken {
		id := xid.New().String()
		username += id[len(id)-usernameSuffixLength:]
	}

	return username, nil
}
