package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/blog-backend/internal/auth"
	"github.com/sakif/blog-backend/internal/service"
)

// msgGoogleAuthFailed is the one message every provider-side verification
// failure collapses into. Which check the token failed is not the client's
// business.
const msgGoogleAuthFailed = "Failed to authenticate you with google. Try with some other google account"

// AuthHandler exposes the three authentication entry points plus the
// profile lookup for an already-authenticated session.
//
//	POST /signup      → local account creation
//	POST /signin      → local password login
//	POST /google-auth → login/registration via a Google access token
//	GET  /api/me      → current user's record (behind RequireAuth)
//
// The handler only decodes requests and encodes responses; every rule lives
// in service.AuthService.
type AuthHandler struct {
	authSvc *service.AuthService
	logger  *slog.Logger
}

// NewAuthHandler creates an AuthHandler. All dependencies are injected;
// the handler has no knowledge of how they're constructed.
func NewAuthHandler(authSvc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authSvc: authSvc,
		logger:  logger,
	}
}

// authResponse is the success payload shared by all three auth endpoints.
// Field names are the client contract.
type authResponse struct {
	AccessToken string `json:"access_token"`
	ProfileImg  string `json:"profile_img"`
	Username    string `json:"username"`
	Fullname    string `json:"fullname"`
}

func newAuthResponse(result *service.AuthResult) authResponse {
	return authResponse{
		AccessToken: result.Token,
		ProfileImg:  result.User.ProfileImg,
		Username:    result.User.Username,
		Fullname:    result.User.Fullname,
	}
}

// HandleSignup creates a local password account.
//
// HTTP: POST /signup
// Body: {"fullname": "...", "email": "...", "password": "..."}
//
// Validation failures come back as 403 with the exact message the service
// produced; a duplicate email is 409 {"Error":"Email already exists"}.
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Fullname string `json:"fullname"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("signup: invalid JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON body"})
		return
	}

	result, err := h.authSvc.Signup(r.Context(), service.SignupInput{
		Fullname: req.Fullname,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newAuthResponse(result))
}

// HandleSignin authenticates a local password account.
//
// HTTP: POST /signin
// Body: {"email": "...", "password": "..."}
//
// An unknown email is 404 {"Error":"Email not found"}; a wrong password or
// a Google-only account is 403.
func (h *AuthHandler) HandleSignin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("signin: invalid JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON body"})
		return
	}

	result, err := h.authSvc.Signin(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newAuthResponse(result))
}

// HandleGoogleAuth authenticates (or registers) via a Google access token.
//
// HTTP: POST /google-auth
// Body: {"access_token": "..."} — the token Google issued to the client,
// not one of this server's own session tokens.
func (h *AuthHandler) HandleGoogleAuth(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("google-auth: invalid JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON body"})
		return
	}

	result, err := h.authSvc.GoogleAuth(r.Context(), req.AccessToken)
	if err != nil {
		if errors.Is(err, service.ErrProviderVerification) {
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: msgGoogleAuthFailed})
			return
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newAuthResponse(result))
}

// HandleMe returns the currently authenticated user's profile.
//
// HTTP: GET /api/me
// Auth: Required (RequireAuth middleware sets userID in context)
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		// Unreachable behind RequireAuth, but don't count on the routing.
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "valid authentication required"})
		return
	}

	user, err := h.authSvc.GetUserByID(r.Context(), userID)
	if err != nil {
		h.logger.Error("me: user lookup failed", slog.String("userID", userID), slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
