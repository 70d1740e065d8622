package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/drewham94/AMai-Code/internal/models"
	"github.com/drewham94/AMai-Code/internal/repository"
	"github.com/drewham94/AMai-Code/internal/service"
)

// CollectionsHandler serves the per-user collection endpoints:
// practice history, saved passages, slang bank, flashcards, and focus
// sessions. Lists come back in the order the store defines (newest
// first for dated collections).
type CollectionsHandler struct {
	sessions *repository.SessionRepository
	passages *repository.PassageRepository
	slang    *repository.SlangRepository
	cards    *repository.FlashcardRepository
	focus    *service.FocusService
}

// NewCollectionsHandler creates a new collections handler
func NewCollectionsHandler(
	sessions *repository.SessionRepository,
	passages *repository.PassageRepository,
	slang *repository.SlangRepository,
	cards *repository.FlashcardRepository,
	focus *service.FocusService,
) *CollectionsHandler {
	return &CollectionsHandler{
		sessions: sessions,
		passages: passages,
		slang:    slang,
		cards:    cards,
		focus:    focus,
	}
}

func successBody() map[string]bool {
	return map[string]bool{"success": true}
}

// ListSessions returns practice history, newest first
func (h *CollectionsHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	email := EmailFromContext(r.Context())

	sessions, err := h.sessions.ListByUser(email)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load sessions", "Error listing sessions", err)
		return
	}
	respondJSON(w, http.StatusOK, sessions)
}

// CreateSession appends one practice session record
func (h *CollectionsHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	email := EmailFromContext(r.Context())

	var session models.PracticeSession
	if err := decodeJSON(r, &session); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}
	session.UserEmail = email
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.Date.IsZero() {
		session.Date = time.Now().UTC()
	}

	if err := h.sessions.Create(&session); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to save session", "Error saving session", err)
		return
	}
	respondJSON(w, http.StatusOK, successBody())
}

// ListPassages returns saved passages, newest first
func (h *CollectionsHandler) ListPassages(w http.ResponseWriter, r *http.Request) {
	email := EmailFromContext(r.Context())

	passages, err := h.passages.ListByUser(email)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load passages", "Error listing passages", err)
		return
	}
	respondJSON(w, http.StatusOK, passages)
}

// CreatePassage saves one passage
func (h *CollectionsHandler) CreatePassage(w http.ResponseWriter, r *http.Request) {
	email := EmailFromContext(r.Context())

	var passage models.SavedPassage
	if err := decodeJSON(r, &passage); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}
	passage.UserEmail = email
	if passage.ID == "" {
		passage.ID = uuid.New().String()
	}
	if passage.Date.IsZero() {
		passage.Date = time.Now().UTC()
	}

	if err := h.passages.Create(&passage); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to save passage", "Error saving passage", err)
		return
	}
	respondJSON(w, http.StatusOK, successBody())
}

// ListSlang returns the slang bank, newest first
func (h *CollectionsHandler) ListSlang(w http.ResponseWriter, r *http.Request) {
	email := EmailFromContext(r.Context())

	terms, err := h.slang.ListByUser(email)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load slang", "Error listing slang", err)
		return
	}
	respondJSON(w, http.StatusOK, terms)
}

// CreateSlang saves one slang term; re-saving an existing term for the
// same language updates it instead of duplicating
func (h *CollectionsHandler) CreateSlang(w http.ResponseWriter, r *http.Request) {
	email := EmailFromContext(r.Context())

	var term models.SlangTerm
	if err := decodeJSON(r, &term); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}
	term.UserEmail = email
	if term.ID == "" {
		term.ID = uuid.New().String()
	}
	if term.DateLearned.IsZero() {
		term.DateLearned = time.Now().UTC()
	}

	if err := h.slang.Upsert(&term); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to save slang term", "Error saving slang", err)
		return
	}
	respondJSON(w, http.StatusOK, successBody())
}

// ListFlashcards returns all of the user's flashcards
func (h *CollectionsHandler) ListFlashcards(w http.ResponseWriter, r *http.Request) {
	email := EmailFromContext(r.Context())

	cards, err := h.cards.ListByUser(email)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load flashcards", "Error listing flashcards", err)
		return
	}
	respondJSON(w, http.StatusOK, cards)
}

// ReplaceFlashcards swaps the user's entire flashcard set for the
// posted array
func (h *CollectionsHandler) ReplaceFlashcards(w http.ResponseWriter, r *http.Request) {
	email := EmailFromContext(r.Context())

	var cards []models.Flashcard
	if err := decodeJSON(r, &cards); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}
	for i := range cards {
		if cards[i].ID == "" {
			cards[i].ID = uuid.New().String()
		}
		if cards[i].DateAdded.IsZero() {
			cards[i].DateAdded = time.Now().UTC()
		}
		if cards[i].Frequency < models.FrequencyMin || cards[i].Frequency > models.FrequencyMax {
			cards[i].Frequency = models.FrequencyDefault
		}
	}

	if err := h.cards.ReplaceAll(email, cards); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to save flashcards", "Error replacing flashcards", err)
		return
	}
	respondJSON(w, http.StatusOK, successBody())
}

// ListFocusSessions returns focus history, newest first
func (h *CollectionsHandler) ListFocusSessions(w http.ResponseWriter, r *http.Request) {
	email := EmailFromContext(r.Context())

	sessions, err := h.focus.List(email)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load focus sessions", "Error listing focus sessions", err)
		return
	}
	respondJSON(w, http.StatusOK, sessions)
}

// CreateFocusSession records one completed focus timer. Posting the
// same id twice records it once.
func (h *CollectionsHandler) CreateFocusSession(w http.ResponseWriter, r *http.Request) {
	email := EmailFromContext(r.Context())

	var session models.FocusSession
	if err := decodeJSON(r, &session); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}
	if session.Date.IsZero() {
		session.Date = time.Now().UTC()
	}

	if err := h.focus.Record(email, &session); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to save focus session", "Error saving focus session", err)
		return
	}
	respondJSON(w, http.StatusOK, successBody())
}

type startFocusTimerRequest struct {
	Minutes int `json:"minutes"`
}

// StartFocusTimer begins the uninterrupted-study countdown. The timer
// records its focus session by itself when it runs out.
func (h *CollectionsHandler) StartFocusTimer(w http.ResponseWriter, r *http.Request) {
	email := EmailFromContext(r.Context())

	var req startFocusTimerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	if err := h.focus.StartTimer(email, req.Minutes); err != nil {
		if errors.Is(err, service.ErrTimerRunning) {
			respondWithError(w, http.StatusConflict, "A focus timer is already running", "", err)
			return
		}
		respondWithError(w, http.StatusBadRequest, "Invalid focus duration", "", err)
		return
	}
	respondJSON(w, http.StatusOK, successBody())
}

// CancelFocusTimer stops the countdown without recording anything
func (h *CollectionsHandler) CancelFocusTimer(w http.ResponseWriter, r *http.Request) {
	email := EmailFromContext(r.Context())

	if err := h.focus.CancelTimer(email); err != nil {
		respondWithError(w, http.StatusNotFound, "No focus timer is running", "", err)
		return
	}
	respondJSON(w, http.StatusOK, successBody())
}

// FocusTimerRemaining reports the seconds left on the countdown
func (h *CollectionsHandler) FocusTimerRemaining(w http.ResponseWriter, r *http.Request) {
	email := EmailFromContext(r.Context())

	remaining, err := h.focus.Remaining(email)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "No focus timer is running", "", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"remainingSeconds": int(remaining / time.Second)})
}
