package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/drewham94/AMai-Code/internal/catalog"
	"github.com/drewham94/AMai-Code/internal/gateway"
	"github.com/drewham94/AMai-Code/internal/models"
	"github.com/drewham94/AMai-Code/internal/repository"
)

var (
	ErrProfileRequired = errors.New("user has no profile")
	ErrNoActivePrompt  = errors.New("no active prompt to record against")
	ErrInvalidMode     = errors.New("invalid practice mode")
)

// PracticeState is the orchestrator's position in one practice flow
type PracticeState string

const (
	StateIdle            PracticeState = "Idle"
	StatePromptPending   PracticeState = "PromptPending"
	StatePromptReady     PracticeState = "PromptReady"
	StateRecording       PracticeState = "Recording"
	StateAnalysisPending PracticeState = "AnalysisPending"
	StateFeedbackReady   PracticeState = "FeedbackReady"
)

// maxPriorityWords caps the flashcard hint words fed into prompt
// generation
const maxPriorityWords = 5

// SessionContext is the full state of one practice flow. A new run
// always starts from a fresh value so nothing leaks between sessions.
type SessionContext struct {
	State       PracticeState            `json:"state"`
	Mode        models.PracticeMode      `json:"mode"`
	Language    models.Language          `json:"language"`
	Accent      string                   `json:"accent"`
	SkillLevel  models.SkillLevel        `json:"skillLevel"`
	Flavor      models.PracticeFlavor    `json:"flavor"`
	Scenario    string                   `json:"scenario,omitempty"`
	Prompt      string                   `json:"prompt"`
	Translation string                   `json:"translation,omitempty"`
	Vocabulary  []gateway.VocabularyWord `json:"vocabulary,omitempty"`
	SlangTerms  []gateway.SlangGloss     `json:"slangTerms,omitempty"`
	Score       int                      `json:"score,omitempty"`
	Feedback    *models.Feedback         `json:"feedback,omitempty"`
	StartedAt   time.Time                `json:"startedAt"`
}

// StartRequest describes one startPractice call
type StartRequest struct {
	Mode models.PracticeMode
	// ExplicitText skips generation and uses the literal text as the
	// prompt (tongue twister flow)
	ExplicitText string
	// Flavor overrides the profile's preferred flavor when set
	Flavor models.PracticeFlavor
	// Scenario is optional free-text context for generation
	Scenario string
}

// SubmitResult is what one completed recording produces
type SubmitResult struct {
	Session        *models.PracticeSession
	AssistantText  string
	AssistantAudio []byte // raw PCM, empty when the assistant is off or failed
}

// Orchestrator runs the practice state machine: one active flow per
// user, no concurrent runs
type Orchestrator struct {
	gateway  gateway.Gateway
	profiles *repository.ProfileRepository
	sessions *repository.SessionRepository
	passages *repository.PassageRepository
	slang    *repository.SlangRepository
	cards    *repository.FlashcardRepository
	study    *StudyService

	mu       sync.Mutex
	contexts map[string]*SessionContext
	locks    map[string]*sync.Mutex
}

// NewOrchestrator creates a practice orchestrator
func NewOrchestrator(
	gw gateway.Gateway,
	profiles *repository.ProfileRepository,
	sessions *repository.SessionRepository,
	passages *repository.PassageRepository,
	slang *repository.SlangRepository,
	cards *repository.FlashcardRepository,
	study *StudyService,
) *Orchestrator {
	return &Orchestrator{
		gateway:  gw,
		profiles: profiles,
		sessions: sessions,
		passages: passages,
		slang:    slang,
		cards:    cards,
		study:    study,
		contexts: make(map[string]*SessionContext),
		locks:    make(map[string]*sync.Mutex),
	}
}

// userLock serializes practice operations per user
func (o *Orchestrator) userLock(email string) *sync.Mutex {
	o.mu.Lock()
	defer o.mu.Unlock()
	lock, ok := o.locks[email]
	if !ok {
		lock = &sync.Mutex{}
		o.locks[email] = lock
	}
	return lock
}

func (o *Orchestrator) setContext(email string, sctx *SessionContext) {
	o.mu.Lock()
	o.contexts[email] = sctx
	o.mu.Unlock()
}

// Context returns the user's current session context, or nil when idle
func (o *Orchestrator) Context(email string) *SessionContext {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.contexts[email]
}

// StartPractice begins a new practice flow, discarding any prior one.
// With ExplicitText set it goes straight to PromptReady; tongue
// twisters draw a random catalog entry; otherwise it generates a
// prompt and, for Read mode, persists it as a passage.
func (o *Orchestrator) StartPractice(ctx context.Context, email string, req StartRequest) (*SessionContext, error) {
	if !req.Mode.IsValid() {
		return nil, ErrInvalidMode
	}

	lock := o.userLock(email)
	lock.Lock()
	defer lock.Unlock()

	profile, err := o.profiles.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile == nil {
		return nil, ErrProfileRequired
	}

	flavor := req.Flavor
	if flavor == "" {
		flavor = profile.PreferredFlavor
	}

	// Fresh context: prior feedback, slang annotations, and prompt
	// data never leak between runs
	sctx := &SessionContext{
		State:      StatePromptPending,
		Mode:       req.Mode,
		Language:   profile.TargetLanguage,
		Accent:     profile.TargetAccent,
		SkillLevel: profile.SkillLevel,
		Flavor:     flavor,
		Scenario:   req.Scenario,
		StartedAt:  time.Now().UTC(),
	}
	o.setContext(email, sctx)

	if req.ExplicitText != "" {
		sctx.Prompt = req.ExplicitText
		sctx.State = StatePromptReady
		return sctx, nil
	}

	var genErr error
	switch req.Mode {
	case models.ModeSlang:
		genErr = o.generateSlangPrompt(ctx, email, profile, sctx)
	case models.ModeTongueTwister:
		// Twisters come from the fixed catalog, never the model
		twisters := catalog.TongueTwisters(profile.TargetLanguage)
		if len(twisters) == 0 {
			genErr = fmt.Errorf("no tongue twisters for language %s", profile.TargetLanguage)
		} else {
			sctx.Prompt = twisters[rand.Intn(len(twisters))]
		}
	default:
		genErr = o.generatePracticePrompt(ctx, email, profile, sctx)
	}
	if genErr != nil {
		// Failed resolves to Idle; the prompt stays blank and the
		// caller decides whether to retry
		sctx.State = StateIdle
		return nil, genErr
	}

	sctx.State = StatePromptReady
	return sctx, nil
}

func (o *Orchestrator) generatePracticePrompt(ctx context.Context, email string, profile *models.UserProfile, sctx *SessionContext) error {
	priority, err := o.study.PriorityWords(email, profile.TargetLanguage, maxPriorityWords)
	if err != nil {
		return err
	}

	prompt, err := o.gateway.GeneratePrompt(ctx, gateway.PromptRequest{
		Language:      profile.TargetLanguage,
		SkillLevel:    profile.SkillLevel,
		Flavor:        sctx.Flavor,
		Mode:          sctx.Mode,
		PriorityWords: priority,
		Context:       sctx.Scenario,
	})
	if err != nil {
		return err
	}

	sctx.Prompt = prompt.Text
	sctx.Translation = prompt.Translation
	sctx.Vocabulary = prompt.Vocabulary

	if sctx.Mode == models.ModeRead {
		passage := &models.SavedPassage{
			ID:        uuid.New().String(),
			UserEmail: email,
			Text:      prompt.Text,
			Date:      time.Now().UTC(),
			Language:  profile.TargetLanguage,
		}
		if err := o.passages.Create(passage); err != nil {
			log.Printf("Warning: failed to save passage for %s: %v", email, err)
		}
	}

	for _, word := range prompt.Vocabulary {
		if err := o.study.Enroll(email, profile.TargetLanguage, word.Word, word.Definition, word.WordType); err != nil {
			log.Printf("Warning: failed to enroll %q: %v", word.Word, err)
		}
	}
	return nil
}

func (o *Orchestrator) generateSlangPrompt(ctx context.Context, email string, profile *models.UserProfile, sctx *SessionContext) error {
	region := ""
	if accent, ok := catalog.FindAccent(profile.TargetLanguage, profile.TargetAccent); ok {
		region = accent.Region
	}

	slang, err := o.gateway.GenerateSlang(ctx, gateway.SlangRequest{
		Language: profile.TargetLanguage,
		Accent:   profile.TargetAccent,
		Region:   region,
		Context:  sctx.Scenario,
	})
	if err != nil {
		return err
	}

	sctx.Prompt = slang.Sentence
	sctx.SlangTerms = slang.Terms

	for _, term := range slang.Terms {
		entry := &models.SlangTerm{
			ID:          uuid.New().String(),
			UserEmail:   email,
			Term:        term.Term,
			Meaning:     term.Meaning,
			Example:     slang.Sentence,
			Region:      region,
			Language:    profile.TargetLanguage,
			DateLearned: time.Now().UTC(),
		}
		if err := o.slang.Upsert(entry); err != nil {
			log.Printf("Warning: failed to save slang term %q: %v", term.Term, err)
		}
		if err := o.study.Enroll(email, profile.TargetLanguage, term.Term, term.Meaning, term.WordType); err != nil {
			log.Printf("Warning: failed to enroll slang term %q: %v", term.Term, err)
		}
	}
	return nil
}

// BeginRecording marks the flow as recording. Only legal with a
// rendered prompt.
func (o *Orchestrator) BeginRecording(email string) error {
	lock := o.userLock(email)
	lock.Lock()
	defer lock.Unlock()

	sctx := o.Context(email)
	if sctx == nil || sctx.State != StatePromptReady {
		return ErrNoActivePrompt
	}
	sctx.State = StateRecording
	return nil
}

// CancelRecording aborts a recording back to the rendered prompt
func (o *Orchestrator) CancelRecording(email string) error {
	lock := o.userLock(email)
	lock.Lock()
	defer lock.Unlock()

	sctx := o.Context(email)
	if sctx == nil || sctx.State != StateRecording {
		return ErrNoActivePrompt
	}
	sctx.State = StatePromptReady
	return nil
}

// SubmitRecording analyzes a recorded attempt, stores the resulting
// session, then runs optional assistant generation. The session is
// durably recorded before any assistant audio is synthesized, so a
// failed or skipped assistant never loses the result.
func (o *Orchestrator) SubmitRecording(ctx context.Context, email string, audio []byte, mimeType string) (*SubmitResult, error) {
	lock := o.userLock(email)
	lock.Lock()
	defer lock.Unlock()

	sctx := o.Context(email)
	if sctx == nil || (sctx.State != StatePromptReady && sctx.State != StateRecording) {
		return nil, ErrNoActivePrompt
	}

	profile, err := o.profiles.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile == nil {
		return nil, ErrProfileRequired
	}

	sctx.State = StateAnalysisPending

	analysis, err := o.gateway.AnalyzeRecording(ctx, gateway.AnalysisRequest{
		Audio:      audio,
		MIMEType:   mimeType,
		Prompt:     sctx.Prompt,
		Language:   sctx.Language,
		Accent:     sctx.Accent,
		Mode:       sctx.Mode,
		SkillLevel: sctx.SkillLevel,
	})
	if err != nil {
		sctx.State = StateIdle
		return nil, err
	}

	session := &models.PracticeSession{
		ID:         uuid.New().String(),
		UserEmail:  email,
		Date:       time.Now().UTC(),
		Language:   sctx.Language,
		Accent:     sctx.Accent,
		SkillLevel: sctx.SkillLevel,
		Flavor:     sctx.Flavor,
		Mode:       sctx.Mode,
		Prompt:     sctx.Prompt,
		Score:      analysis.Score,
		Feedback: models.Feedback{
			Strengths:        analysis.Strengths,
			Improvements:     analysis.Improvements,
			DetailedAnalysis: analysis.DetailedAnalysis,
		},
	}

	if profile.IsLiveAssistantEnabled {
		text, err := o.gateway.GenerateEncouragement(ctx, gateway.EncouragementRequest{
			Feedback:       session.Feedback,
			Score:          session.Score,
			Language:       profile.AssistantLanguage,
			TargetLanguage: profile.TargetLanguage,
			EnglishAccent:  profile.AssistantEnglishAccent,
		})
		if err != nil {
			log.Printf("Warning: assistant encouragement failed for %s: %v", email, err)
		} else {
			session.AssistantResponse = text
		}
	}

	if err := o.sessions.Create(session); err != nil {
		sctx.State = StateIdle
		return nil, fmt.Errorf("failed to save practice session: %w", err)
	}

	o.bumpMatchedCards(email, sctx)

	result := &SubmitResult{Session: session, AssistantText: session.AssistantResponse}
	if session.AssistantResponse != "" {
		pcm, err := o.synthesize(ctx, profile, session.AssistantResponse)
		if err != nil {
			log.Printf("Warning: assistant speech failed for %s: %v", email, err)
		} else {
			result.AssistantAudio = pcm
		}
	}

	sctx.Score = analysis.Score
	sctx.Feedback = &session.Feedback
	sctx.State = StateFeedbackReady
	return result, nil
}

// bumpMatchedCards increments practiceCount on every flashcard of the
// active language whose word appears in the prompt text. This is an
// exposure count, independent of correctness.
func (o *Orchestrator) bumpMatchedCards(email string, sctx *SessionContext) {
	cards, err := o.cards.ListByUser(email)
	if err != nil {
		log.Printf("Warning: failed to load flashcards for %s: %v", email, err)
		return
	}

	var matched []string
	for _, card := range cards {
		if card.Language == sctx.Language && card.MatchesPrompt(sctx.Prompt) {
			matched = append(matched, card.ID)
		}
	}
	if len(matched) == 0 {
		return
	}
	if err := o.cards.IncrementPracticeCount(email, matched); err != nil {
		log.Printf("Warning: failed to bump practice counts for %s: %v", email, err)
	}
}

// Speak renders text with the profile's chosen voice. Returns raw PCM;
// callers wrap it in a playable container.
func (o *Orchestrator) Speak(ctx context.Context, email, text string) ([]byte, error) {
	profile, err := o.profiles.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile == nil {
		return nil, ErrProfileRequired
	}
	return o.synthesize(ctx, profile, text)
}

func (o *Orchestrator) synthesize(ctx context.Context, profile *models.UserProfile, text string) ([]byte, error) {
	voice, ok := catalog.FindVoice(profile.PreferredVoice)
	if !ok {
		voice = catalog.DefaultVoice()
	}
	return o.gateway.SynthesizeSpeech(ctx, gateway.SpeechRequest{
		Text:   text,
		Voice:  voice.ID,
		Accent: profile.TargetAccent,
	})
}
