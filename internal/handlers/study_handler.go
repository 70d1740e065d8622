package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/drewham94/AMai-Code/internal/repository"
	"github.com/drewham94/AMai-Code/internal/service"
)

// StudyHandler serves flashcard review and progress endpoints
type StudyHandler struct {
	study    *service.StudyService
	profiles *service.ProfileService
	sessions *repository.SessionRepository
	focus    *service.FocusService
}

// NewStudyHandler creates a new study handler
func NewStudyHandler(
	study *service.StudyService,
	profiles *service.ProfileService,
	sessions *repository.SessionRepository,
	focus *service.FocusService,
) *StudyHandler {
	return &StudyHandler{study: study, profiles: profiles, sessions: sessions, focus: focus}
}

type startStudyRequest struct {
	MaxCards int `json:"maxCards"`
}

// StartRun opens a new study run over the profile's active language
func (h *StudyHandler) StartRun(w http.ResponseWriter, r *http.Request) {
	email := EmailFromContext(r.Context())

	var req startStudyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	profile, err := h.profiles.Get(email)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load profile", "Error loading profile", err)
		return
	}
	if profile == nil {
		respondWithError(w, http.StatusBadRequest, "Save a profile before studying", "", nil)
		return
	}

	cards, err := h.study.StartStudyRun(email, profile.TargetLanguage, req.MaxCards)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to start study run", "Error starting study run", err)
		return
	}
	respondJSON(w, http.StatusOK, cards)
}

type answerRequest struct {
	CardID  string `json:"cardId"`
	Correct bool   `json:"correct"`
}

// Answer grades the current card of the active run
func (h *StudyHandler) Answer(w http.ResponseWriter, r *http.Request) {
	email := EmailFromContext(r.Context())

	var req answerRequest
	if err := decodeJSON(r, &req); err != nil || req.CardID == "" {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	card, err := h.study.RecordAnswer(email, req.CardID, req.Correct)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoActiveRun),
			errors.Is(err, service.ErrRunComplete),
			errors.Is(err, service.ErrWrongCard):
			respondWithError(w, http.StatusConflict, err.Error(), "", nil)
		case errors.Is(err, service.ErrCardNotFound):
			respondWithError(w, http.StatusNotFound, "Flashcard not found", "", nil)
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to record answer", "Error recording answer", err)
		}
		return
	}
	respondJSON(w, http.StatusOK, card)
}

// Translate returns a card's definition in the target language,
// fetching and caching it on first use
func (h *StudyHandler) Translate(w http.ResponseWriter, r *http.Request) {
	email := EmailFromContext(r.Context())
	cardID := r.PathValue("id")

	translated, err := h.study.TranslateDefinition(r.Context(), email, cardID)
	if err != nil {
		if errors.Is(err, service.ErrCardNotFound) {
			respondWithError(w, http.StatusNotFound, "Flashcard not found", "", nil)
			return
		}
		respondWithError(w, http.StatusBadGateway, "Failed to translate, please try again", "Translation error", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"definitionTarget": translated})
}

// Progress returns the dashboard summary: average score, streak, score
// series, and today's focus minutes
func (h *StudyHandler) Progress(w http.ResponseWriter, r *http.Request) {
	email := EmailFromContext(r.Context())

	sessions, err := h.sessions.ListByUser(email)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load sessions", "Error listing sessions", err)
		return
	}
	focus, err := h.focus.List(email)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load focus sessions", "Error listing focus sessions", err)
		return
	}

	respondJSON(w, http.StatusOK, service.Summarize(sessions, focus, time.Now(), time.Local))
}
