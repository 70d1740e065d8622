package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/drewham94/AMai-Code/internal/auth"
	"github.com/drewham94/AMai-Code/internal/service"
	"github.com/drewham94/AMai-Code/internal/validation"
)

// AuthHandler handles login, logout, and session lookup
type AuthHandler struct {
	tokens   *auth.TokenManager
	profiles *service.ProfileService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(tokens *auth.TokenManager, profiles *service.ProfileService) *AuthHandler {
	return &AuthHandler{tokens: tokens, profiles: profiles}
}

type loginRequest struct {
	Email string `json:"email"`
}

// Login issues a session cookie for the given email and returns the
// stored profile, or null when the user is new
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := validation.ValidateEmail(email); err != nil {
		respondWithError(w, http.StatusBadRequest, "A valid email is required", "", nil)
		return
	}

	token, err := h.tokens.Issue(email)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to create session", "Error issuing token", err)
		return
	}
	http.SetCookie(w, auth.CreateSessionCookie(r, token, time.Now().Add(h.tokens.Duration())))

	profile, err := h.profiles.Get(email)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load profile", "Error loading profile", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"profile": profile, // null for first-time users
	})
}

// Logout clears the session cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, auth.CreateDeleteCookie(r))
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Me returns the profile for the current session, an email stub when
// no profile has been saved yet, or null without a valid cookie
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(auth.SessionCookieName)
	if err != nil {
		respondJSON(w, http.StatusOK, json.RawMessage("null"))
		return
	}
	email, err := h.tokens.Verify(cookie.Value)
	if err != nil {
		http.SetCookie(w, auth.CreateDeleteCookie(r))
		respondJSON(w, http.StatusOK, json.RawMessage("null"))
		return
	}

	profile, err := h.profiles.Get(email)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load profile", "Error loading profile", err)
		return
	}
	if profile == nil {
		respondJSON(w, http.StatusOK, map[string]string{"email": email})
		return
	}
	respondJSON(w, http.StatusOK, profile)
}
