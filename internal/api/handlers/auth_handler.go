package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/pwambugu/glassauth/internal/auth"
	"github.com/pwambugu/glassauth/internal/mail"
	"github.com/pwambugu/glassauth/internal/models"
	"github.com/pwambugu/glassauth/internal/services"
)

// User-facing error strings. Wrong-password and unknown-email logins must
// produce byte-identical responses.
const (
	msgAllFieldsRequired = "All fields required"
	msgEmailTaken        = "Email already registered. Please use a different email or login."
	msgSignupFailed      = "Signup failed. Please try again."
	msgLoginFailed       = "Login failed. Please try again."
	msgInvalidCreds      = "Invalid credentials"
	msgNotVerified       = "Email not verified"
	msgBadVerifyLink     = "Invalid verification link"
)

// AuthHandler handles signup, login, verification, and the dashboard.
type AuthHandler struct {
	users     services.UserServiceProvider
	events    services.EventServiceProvider
	issuer    *auth.TokenIssuer
	mailer    mail.Mailer
	publicURL string
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users services.UserServiceProvider, events services.EventServiceProvider, issuer *auth.TokenIssuer, mailer mail.Mailer, publicURL string) *AuthHandler {
	return &AuthHandler{users: users, events: events, issuer: issuer, mailer: mailer, publicURL: publicURL}
}

// SignupPayload defines the structure for signup requests.
type SignupPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup handles new account registration and returns a session token.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var payload SignupPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, msgAllFieldsRequired)
		return
	}
	if payload.Name == "" || payload.Email == "" || payload.Password == "" {
		respondError(w, http.StatusBadRequest, msgAllFieldsRequired)
		return
	}

	user, err := h.users.Signup(r.Context(), payload.Name, payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			respondError(w, http.StatusBadRequest, msgEmailTaken)
			return
		}
		log.Error().Err(err).Str("email", payload.Email).Msg("Signup error")
		respondError(w, http.StatusBadRequest, msgSignupFailed)
		return
	}

	// The verification email is sent before responding, so signup latency
	// includes the SMTP round-trip. A delivery failure is logged only; the
	// account already exists and the signup still succeeds.
	verifyURL := fmt.Sprintf("%s/api/verify/%s", h.publicURL, user.VerifyToken)
	if err := h.mailer.SendVerification(r.Context(), user.Email, user.Name, verifyURL); err != nil {
		log.Error().Err(err).Str("email", user.Email).Msg("Failed to send verification email")
		h.events.Record(r.Context(), models.EventMailFailure, models.LevelWarning,
			"Verification email delivery failed", user.Email)
	}

	token, err := h.issuer.Issue(user.ID, user.Email)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to issue token")
		respondError(w, http.StatusBadRequest, msgSignupFailed)
		return
	}

	h.events.Record(r.Context(), models.EventSignup, models.LevelInfo, "New account registered", user.Email)
	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Login authenticates a user and returns a session token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, msgAllFieldsRequired)
		return
	}
	if payload.Email == "" || payload.Password == "" {
		respondError(w, http.StatusBadRequest, msgAllFieldsRequired)
		return
	}

	user, err := h.users.Authenticate(r.Context(), payload.Email, payload.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			h.events.Record(r.Context(), models.EventLoginFailed, models.LevelWarning,
				"Failed login attempt", payload.Email)
			respondError(w, http.StatusBadRequest, msgInvalidCreds)
		case errors.Is(err, services.ErrNotVerified):
			respondError(w, http.StatusBadRequest, msgNotVerified)
		default:
			log.Error().Err(err).Str("email", payload.Email).Msg("Login error")
			respondError(w, http.StatusBadRequest, msgLoginFailed)
		}
		return
	}

	token, err := h.issuer.Issue(user.ID, user.Email)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to issue token")
		respondError(w, http.StatusBadRequest, msgLoginFailed)
		return
	}

	h.events.Record(r.Context(), models.EventLogin, models.LevelInfo, "User logged in", user.Email)
	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Dashboard greets the authenticated user. Token checks happen in the
// middleware; by the time we get here the claims are verified.
func (h *AuthHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Invalid token")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Welcome, user %s", claims.Email),
	})
}

// VerifyEmail marks the account behind a verification token as verified.
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	user, err := h.users.Verify(r.Context(), token)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusBadRequest, msgBadVerifyLink)
			return
		}
		log.Error().Err(err).Msg("Verification error")
		respondError(w, http.StatusBadRequest, msgBadVerifyLink)
		return
	}

	h.events.Record(r.Context(), models.EventVerified, models.LevelInfo, "Email address verified", user.Email)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Email verified. You can now log in."})
}
