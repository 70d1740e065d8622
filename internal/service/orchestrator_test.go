package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drewham94/AMai-Code/internal/catalog"
	"github.com/drewham94/AMai-Code/internal/database"
	"github.com/drewham94/AMai-Code/internal/gateway"
	"github.com/drewham94/AMai-Code/internal/models"
	"github.com/drewham94/AMai-Code/internal/repository"
)

const testEmail = "learner@example.com"

type testEnv struct {
	mock     *gateway.Mock
	profiles *repository.ProfileRepository
	sessions *repository.SessionRepository
	passages *repository.PassageRepository
	slang    *repository.SlangRepository
	cards    *repository.FlashcardRepository
	focus    *repository.FocusRepository
	study    *StudyService
	orch     *Orchestrator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.RunMigrations("../../migrations"))

	env := &testEnv{
		mock:     gateway.NewMock(),
		profiles: repository.NewProfileRepository(db),
		sessions: repository.NewSessionRepository(db),
		passages: repository.NewPassageRepository(db),
		slang:    repository.NewSlangRepository(db),
		cards:    repository.NewFlashcardRepository(db),
		focus:    repository.NewFocusRepository(db),
	}
	env.study = NewStudyService(env.cards, env.mock)
	env.orch = NewOrchestrator(env.mock, env.profiles, env.sessions, env.passages, env.slang, env.cards, env.study)

	require.NoError(t, env.profiles.Upsert(&models.UserProfile{
		Email:             testEmail,
		Name:              "Learner",
		TargetLanguage:    models.LanguageFrench,
		TargetAccent:      "Parisian Style French",
		SkillLevel:        models.SkillBeginner,
		PreferredFlavor:   models.FlavorCasual,
		DailyGoal:         15,
		PreferredVoice:    "Puck",
		AssistantLanguage: models.AssistantTarget,
	}))
	return env
}

func (e *testEnv) enableAssistant(t *testing.T) {
	t.Helper()
	profile, err := e.profiles.GetByEmail(testEmail)
	require.NoError(t, err)
	profile.IsLiveAssistantEnabled = true
	require.NoError(t, e.profiles.Upsert(profile))
}

func TestStartPracticeReadMode(t *testing.T) {
	env := newTestEnv(t)
	env.mock.Prompts = []*gateway.PracticePrompt{{
		Text:        "Bonjour à tous",
		Translation: "**Hello** everyone",
		Vocabulary: []gateway.VocabularyWord{
			{Word: "Bonjour", Definition: "hello", EnglishEquivalent: "Hello", WordType: "expression"},
		},
	}}

	sctx, err := env.orch.StartPractice(context.Background(), testEmail, StartRequest{Mode: models.ModeRead})
	require.NoError(t, err)
	assert.Equal(t, StatePromptReady, sctx.State)
	assert.Equal(t, "Bonjour à tous", sctx.Prompt)
	assert.Equal(t, "**Hello** everyone", sctx.Translation)

	// Read-mode prompts are saved as passages
	passages, err := env.passages.ListByUser(testEmail)
	require.NoError(t, err)
	require.Len(t, passages, 1)
	assert.Equal(t, "Bonjour à tous", passages[0].Text)

	// Returned vocabulary is auto-enrolled as a flashcard
	cards, err := env.cards.ListByUser(testEmail)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "Bonjour", cards[0].Word)
	assert.Equal(t, models.FrequencyDefault, cards[0].Frequency)
	assert.Equal(t, 0, cards[0].ConsecutiveCorrect)
	assert.False(t, cards[0].IsCustom)
}

func TestStartPracticeAutoEnrollmentIdempotent(t *testing.T) {
	env := newTestEnv(t)
	vocab := []gateway.VocabularyWord{
		{Word: "Bonjour", Definition: "hello", EnglishEquivalent: "Hello", WordType: "expression"},
	}
	env.mock.Prompts = []*gateway.PracticePrompt{
		{Text: "Bonjour à tous", Translation: "Hello everyone", Vocabulary: vocab},
		{Text: "bonjour encore", Translation: "hello again", Vocabulary: []gateway.VocabularyWord{
			{Word: "bonjour", Definition: "hello", EnglishEquivalent: "hello", WordType: "expression"},
		}},
	}

	_, err := env.orch.StartPractice(context.Background(), testEmail, StartRequest{Mode: models.ModeRead})
	require.NoError(t, err)
	_, err = env.orch.StartPractice(context.Background(), testEmail, StartRequest{Mode: models.ModeRead})
	require.NoError(t, err)

	cards, err := env.cards.ListByUser(testEmail)
	require.NoError(t, err)
	assert.Len(t, cards, 1, "case-insensitive re-enrollment must not duplicate")
}

func TestStartPracticeExplicitTextSkipsGateway(t *testing.T) {
	env := newTestEnv(t)

	sctx, err := env.orch.StartPractice(context.Background(), testEmail, StartRequest{
		Mode:         models.ModeTongueTwister,
		ExplicitText: "Un chasseur sachant chasser",
	})
	require.NoError(t, err)
	assert.Equal(t, StatePromptReady, sctx.State)
	assert.Equal(t, "Un chasseur sachant chasser", sctx.Prompt)
	assert.Empty(t, env.mock.PromptCalls)
}

func TestStartPracticeTongueTwisterDrawsFromCatalog(t *testing.T) {
	env := newTestEnv(t)

	sctx, err := env.orch.StartPractice(context.Background(), testEmail, StartRequest{
		Mode: models.ModeTongueTwister,
	})
	require.NoError(t, err)
	assert.Equal(t, StatePromptReady, sctx.State)
	assert.Contains(t, catalog.TongueTwisters(models.LanguageFrench), sctx.Prompt)
	assert.Empty(t, env.mock.PromptCalls)
}

func TestStartPracticeGatewayFailure(t *testing.T) {
	env := newTestEnv(t)
	// Empty mock queue: prompt generation fails

	_, err := env.orch.StartPractice(context.Background(), testEmail, StartRequest{Mode: models.ModeRead})
	require.Error(t, err)

	sctx := env.orch.Context(testEmail)
	require.NotNil(t, sctx)
	assert.Equal(t, StateIdle, sctx.State)
	assert.Empty(t, sctx.Prompt)
}

func TestStartPracticePriorityWords(t *testing.T) {
	env := newTestEnv(t)

	for i, word := range []string{"chien", "chat", "fromage"} {
		require.NoError(t, env.cards.Upsert(&models.Flashcard{
			ID:        word,
			UserEmail: testEmail,
			Word:      word,
			Frequency: 5 - i,
			Language:  models.LanguageFrench,
			DateAdded: time.Now().UTC(),
		}))
	}
	// A mastered card never appears as a hint
	mastered := &models.Flashcard{
		ID:        "mastered",
		UserEmail: testEmail,
		Word:      "pain",
		Frequency: 1,
		Language:  models.LanguageFrench,
		DateAdded: time.Now().UTC(),
	}
	require.NoError(t, env.cards.Upsert(mastered))
	mastered.ConsecutiveCorrect = 3
	require.NoError(t, env.cards.UpdateReviewState(mastered))

	env.mock.Prompts = []*gateway.PracticePrompt{{Text: "Le chien mange", Translation: "The dog eats"}}
	_, err := env.orch.StartPractice(context.Background(), testEmail, StartRequest{Mode: models.ModeRead})
	require.NoError(t, err)

	require.Len(t, env.mock.PromptCalls, 1)
	words := env.mock.PromptCalls[0].PriorityWords
	assert.Equal(t, []string{"chien", "chat", "fromage"}, words)
	assert.NotContains(t, words, "pain")
}

func TestStartPracticeSlangMode(t *testing.T) {
	env := newTestEnv(t)
	env.mock.Slangs = []*gateway.SlangPrompt{{
		Sentence: "C'est **ouf** ce truc !",
		Terms:    []gateway.SlangGloss{{Term: "ouf", Meaning: "crazy", WordType: "adjective"}},
	}}

	sctx, err := env.orch.StartPractice(context.Background(), testEmail, StartRequest{Mode: models.ModeSlang})
	require.NoError(t, err)
	assert.Equal(t, "C'est **ouf** ce truc !", sctx.Prompt)
	require.Len(t, sctx.SlangTerms, 1)

	require.Len(t, env.mock.SlangCalls, 1)
	assert.Equal(t, "France", env.mock.SlangCalls[0].Region)

	terms, err := env.slang.ListByUser(testEmail)
	require.NoError(t, err)
	require.Len(t, terms, 1)
	assert.Equal(t, "ouf", terms[0].Term)

	cards, err := env.cards.ListByUser(testEmail)
	require.NoError(t, err)
	assert.Len(t, cards, 1, "slang terms are enrolled as flashcards")
}

func TestSubmitRecordingWhileIdleRejected(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.orch.SubmitRecording(context.Background(), testEmail, []byte("audio"), "audio/webm")
	assert.ErrorIs(t, err, ErrNoActivePrompt)

	sessions, err := env.sessions.ListByUser(testEmail)
	require.NoError(t, err)
	assert.Empty(t, sessions, "a rejected submission never produces a session")
}

func TestSubmitRecordingHappyPath(t *testing.T) {
	env := newTestEnv(t)
	env.mock.Prompts = []*gateway.PracticePrompt{{Text: "Bonjour à tous", Translation: "Hello everyone"}}
	env.mock.Analyses = []*gateway.Analysis{{
		Score:            85,
		Strengths:        []string{"clear vowels"},
		Improvements:     []string{"liaison"},
		DetailedAnalysis: "Good rhythm.",
	}}

	_, err := env.orch.StartPractice(context.Background(), testEmail, StartRequest{Mode: models.ModeRead})
	require.NoError(t, err)

	result, err := env.orch.SubmitRecording(context.Background(), testEmail, []byte("audio"), "audio/webm")
	require.NoError(t, err)
	assert.Equal(t, 85, result.Session.Score)
	assert.Empty(t, result.AssistantText, "assistant disabled by default")

	sctx := env.orch.Context(testEmail)
	assert.Equal(t, StateFeedbackReady, sctx.State)

	sessions, err := env.sessions.ListByUser(testEmail)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "Bonjour à tous", sessions[0].Prompt)
	assert.Equal(t, []string{"clear vowels"}, sessions[0].Feedback.Strengths)
}

func TestSubmitRecordingAnalysisFailure(t *testing.T) {
	env := newTestEnv(t)
	env.mock.Prompts = []*gateway.PracticePrompt{{Text: "Bonjour", Translation: "Hello"}}

	_, err := env.orch.StartPractice(context.Background(), testEmail, StartRequest{Mode: models.ModeRead})
	require.NoError(t, err)

	// Empty analysis queue: the gateway call fails
	_, err = env.orch.SubmitRecording(context.Background(), testEmail, []byte("audio"), "audio/webm")
	require.Error(t, err)

	assert.Equal(t, StateIdle, env.orch.Context(testEmail).State)
	sessions, err := env.sessions.ListByUser(testEmail)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestSubmitRecordingAssistantFailureIsSwallowed(t *testing.T) {
	env := newTestEnv(t)
	env.enableAssistant(t)
	env.mock.Prompts = []*gateway.PracticePrompt{{Text: "Bonjour", Translation: "Hello"}}
	env.mock.Analyses = []*gateway.Analysis{{Score: 70, DetailedAnalysis: "ok"}}
	// Encouragement and speech queues empty: both assistant calls fail

	_, err := env.orch.StartPractice(context.Background(), testEmail, StartRequest{Mode: models.ModeRead})
	require.NoError(t, err)

	result, err := env.orch.SubmitRecording(context.Background(), testEmail, []byte("audio"), "audio/webm")
	require.NoError(t, err, "assistant failure must not block completion")
	assert.Empty(t, result.AssistantText)
	assert.Empty(t, result.AssistantAudio)

	sessions, err := env.sessions.ListByUser(testEmail)
	require.NoError(t, err)
	assert.Len(t, sessions, 1, "session is durably recorded regardless of the assistant")
}

func TestSubmitRecordingWithAssistant(t *testing.T) {
	env := newTestEnv(t)
	env.enableAssistant(t)
	env.mock.Prompts = []*gateway.PracticePrompt{{Text: "Bonjour", Translation: "Hello"}}
	env.mock.Analyses = []*gateway.Analysis{{Score: 90, DetailedAnalysis: "great"}}
	env.mock.Encouragements = []string{"Bravo, continue comme ça !"}
	env.mock.Speech = [][]byte{{0x01, 0x02}}

	_, err := env.orch.StartPractice(context.Background(), testEmail, StartRequest{Mode: models.ModeRead})
	require.NoError(t, err)

	result, err := env.orch.SubmitRecording(context.Background(), testEmail, []byte("audio"), "audio/webm")
	require.NoError(t, err)
	assert.Equal(t, "Bravo, continue comme ça !", result.AssistantText)
	assert.Equal(t, []byte{0x01, 0x02}, result.AssistantAudio)

	sessions, err := env.sessions.ListByUser(testEmail)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "Bravo, continue comme ça !", sessions[0].AssistantResponse)
}

func TestSubmitRecordingBumpsMatchedCards(t *testing.T) {
	env := newTestEnv(t)

	for _, word := range []string{"bonjour", "fromage"} {
		require.NoError(t, env.cards.Upsert(&models.Flashcard{
			ID:        word,
			UserEmail: testEmail,
			Word:      word,
			Frequency: models.FrequencyDefault,
			Language:  models.LanguageFrench,
			DateAdded: time.Now().UTC(),
		}))
	}

	env.mock.Prompts = []*gateway.PracticePrompt{{Text: "Bonjour à tous", Translation: "Hello everyone"}}
	env.mock.Analyses = []*gateway.Analysis{{Score: 75, DetailedAnalysis: "ok"}}

	_, err := env.orch.StartPractice(context.Background(), testEmail, StartRequest{Mode: models.ModeRead})
	require.NoError(t, err)
	_, err = env.orch.SubmitRecording(context.Background(), testEmail, []byte("audio"), "audio/webm")
	require.NoError(t, err)

	cards, err := env.cards.ListByUser(testEmail)
	require.NoError(t, err)
	for _, card := range cards {
		switch card.Word {
		case "bonjour":
			assert.Equal(t, 1, card.PracticeCount, "matched word gets an exposure bump")
		case "fromage":
			assert.Equal(t, 0, card.PracticeCount, "unmatched word is untouched")
		}
	}
}

func TestRepracticeDiscardsFeedback(t *testing.T) {
	env := newTestEnv(t)
	env.mock.Prompts = []*gateway.PracticePrompt{
		{Text: "Bonjour", Translation: "Hello"},
		{Text: "Bonsoir", Translation: "Good evening"},
	}
	env.mock.Analyses = []*gateway.Analysis{{Score: 60, DetailedAnalysis: "ok"}}

	_, err := env.orch.StartPractice(context.Background(), testEmail, StartRequest{Mode: models.ModeRead})
	require.NoError(t, err)
	_, err = env.orch.SubmitRecording(context.Background(), testEmail, []byte("audio"), "audio/webm")
	require.NoError(t, err)
	require.Equal(t, StateFeedbackReady, env.orch.Context(testEmail).State)

	sctx, err := env.orch.StartPractice(context.Background(), testEmail, StartRequest{Mode: models.ModeRead})
	require.NoError(t, err)
	assert.Equal(t, StatePromptReady, sctx.State)
	assert.Nil(t, sctx.Feedback, "stale feedback never leaks into a new run")
	assert.Equal(t, "Bonsoir", sctx.Prompt)
}

func TestRecordingTransitions(t *testing.T) {
	env := newTestEnv(t)
	env.mock.Prompts = []*gateway.PracticePrompt{{Text: "Bonjour", Translation: "Hello"}}

	assert.ErrorIs(t, env.orch.BeginRecording(testEmail), ErrNoActivePrompt)

	_, err := env.orch.StartPractice(context.Background(), testEmail, StartRequest{Mode: models.ModeRead})
	require.NoError(t, err)

	require.NoError(t, env.orch.BeginRecording(testEmail))
	assert.Equal(t, StateRecording, env.orch.Context(testEmail).State)

	require.NoError(t, env.orch.CancelRecording(testEmail))
	assert.Equal(t, StatePromptReady, env.orch.Context(testEmail).State)
}

func TestStartPracticeWithoutProfile(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.orch.StartPractice(context.Background(), "stranger@example.com", StartRequest{Mode: models.ModeRead})
	assert.ErrorIs(t, err, ErrProfileRequired)
}
