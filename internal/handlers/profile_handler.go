package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/drewham94/AMai-Code/internal/models"
	"github.com/drewham94/AMai-Code/internal/service"
)

// ProfileHandler serves the user profile
type ProfileHandler struct {
	profiles *service.ProfileService
	orch     *service.Orchestrator
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profiles *service.ProfileService, orch *service.Orchestrator) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, orch: orch}
}

// Get returns the stored profile, or null when none exists
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	email := EmailFromContext(r.Context())

	profile, err := h.profiles.Get(email)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load profile", "Error loading profile", err)
		return
	}
	if profile == nil {
		respondJSON(w, http.StatusOK, json.RawMessage("null"))
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// Save commits a staged profile wholesale. If a practice prompt is
// active and the language, accent, or skill level changed, prompt
// generation restarts under the new configuration.
func (h *ProfileHandler) Save(w http.ResponseWriter, r *http.Request) {
	email := EmailFromContext(r.Context())

	var staged models.UserProfile
	if err := decodeJSON(r, &staged); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	saved, coreChanged, err := h.profiles.Save(email, &staged)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid profile", "Error saving profile", err)
		return
	}

	if coreChanged {
		// Restart whenever a prompt or its feedback is on screen. A
		// recording or analysis in flight is left to finish.
		if sctx := h.orch.Context(email); sctx != nil &&
			(sctx.State == service.StatePromptReady || sctx.State == service.StateFeedbackReady) {
			if _, err := h.orch.StartPractice(r.Context(), email, service.StartRequest{Mode: sctx.Mode}); err != nil {
				log.Printf("Warning: prompt restart after settings change failed for %s: %v", email, err)
			}
		}
	}

	respondJSON(w, http.StatusOK, saved)
}
