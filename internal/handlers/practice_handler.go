package handlers

import (
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/drewham94/AMai-Code/internal/audio"
	"github.com/drewham94/AMai-Code/internal/gateway"
	"github.com/drewham94/AMai-Code/internal/models"
	"github.com/drewham94/AMai-Code/internal/service"
)

// PracticeHandler drives the practice flow over HTTP
type PracticeHandler struct {
	orch          *service.Orchestrator
	maxUploadSize int64
}

// NewPracticeHandler creates a new practice handler
func NewPracticeHandler(orch *service.Orchestrator, maxUploadSize int64) *PracticeHandler {
	return &PracticeHandler{orch: orch, maxUploadSize: maxUploadSize}
}

type startPracticeRequest struct {
	Mode     models.PracticeMode   `json:"mode"`
	Text     string                `json:"text,omitempty"`
	Flavor   models.PracticeFlavor `json:"flavor,omitempty"`
	Scenario string                `json:"context,omitempty"`
}

// Start begins a new practice run and returns the rendered prompt
func (h *PracticeHandler) Start(w http.ResponseWriter, r *http.Request) {
	email := EmailFromContext(r.Context())

	var req startPracticeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	sctx, err := h.orch.StartPractice(r.Context(), email, service.StartRequest{
		Mode:         req.Mode,
		ExplicitText: req.Text,
		Flavor:       req.Flavor,
		Scenario:     req.Scenario,
	})
	if err != nil {
		h.respondPracticeError(w, "Failed to generate a prompt, please try again", err)
		return
	}
	respondJSON(w, http.StatusOK, sctx)
}

type submitRecordingRequest struct {
	Audio    string `json:"audio"` // base64
	MIMEType string `json:"mimeType"`
}

type submitRecordingResponse struct {
	Session        *models.PracticeSession `json:"session"`
	AssistantText  string                  `json:"assistantText,omitempty"`
	AssistantAudio string                  `json:"assistantAudio,omitempty"` // base64 WAV
}

// Submit analyzes a recorded attempt and returns the scored session
func (h *PracticeHandler) Submit(w http.ResponseWriter, r *http.Request) {
	email := EmailFromContext(r.Context())
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	var req submitRecordingRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	recording, err := base64.StdEncoding.DecodeString(req.Audio)
	if err != nil || len(recording) == 0 {
		respondWithError(w, http.StatusBadRequest, "Invalid audio payload", "", err)
		return
	}

	result, err := h.orch.SubmitRecording(r.Context(), email, recording, req.MIMEType)
	if err != nil {
		h.respondPracticeError(w, "Failed to analyze the recording, please try again", err)
		return
	}

	resp := submitRecordingResponse{
		Session:       result.Session,
		AssistantText: result.AssistantText,
	}
	if len(result.AssistantAudio) > 0 {
		resp.AssistantAudio = base64.StdEncoding.EncodeToString(audio.WrapPCM(result.AssistantAudio))
	}
	respondJSON(w, http.StatusOK, resp)
}

type speakRequest struct {
	Text string `json:"text"`
}

// Speak renders prompt text as WAV audio with the profile's voice
func (h *PracticeHandler) Speak(w http.ResponseWriter, r *http.Request) {
	email := EmailFromContext(r.Context())

	var req speakRequest
	if err := decodeJSON(r, &req); err != nil || req.Text == "" {
		respondWithError(w, http.StatusBadRequest, "Text is required", "", err)
		return
	}

	pcm, err := h.orch.Speak(r.Context(), email, req.Text)
	if err != nil {
		h.respondPracticeError(w, "Failed to synthesize speech, please try again", err)
		return
	}

	w.Header().Set("Content-Type", "audio/wav")
	w.WriteHeader(http.StatusOK)
	w.Write(audio.WrapPCM(pcm))
}

// respondPracticeError maps orchestrator and gateway failures to HTTP
// statuses: bad transitions are client errors, gateway trouble is a
// retryable upstream failure
func (h *PracticeHandler) respondPracticeError(w http.ResponseWriter, userMsg string, err error) {
	switch {
	case errors.Is(err, service.ErrNoActivePrompt), errors.Is(err, service.ErrInvalidMode):
		respondWithError(w, http.StatusConflict, err.Error(), "", nil)
	case errors.Is(err, service.ErrProfileRequired):
		respondWithError(w, http.StatusBadRequest, "Save a profile before practicing", "", nil)
	case gateway.IsRateLimited(err):
		respondWithError(w, http.StatusTooManyRequests, "The generator is busy, please try again shortly", "Gateway rate limited", err)
	default:
		respondWithError(w, http.StatusBadGateway, userMsg, "Gateway error", err)
	}
}
