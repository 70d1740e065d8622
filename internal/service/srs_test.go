package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drewham94/AMai-Code/internal/models"
)

func seedCards(t *testing.T, env *testEnv, words ...string) {
	t.Helper()
	for _, word := range words {
		require.NoError(t, env.cards.Upsert(&models.Flashcard{
			ID:           word,
			UserEmail:    testEmail,
			Word:         word,
			DefinitionEn: "def of " + word,
			Frequency:    models.FrequencyDefault,
			Language:     models.LanguageFrench,
			DateAdded:    time.Now().UTC(),
		}))
	}
}

func TestStartStudyRunExcludesMastered(t *testing.T) {
	env := newTestEnv(t)
	seedCards(t, env, "un", "deux", "trois")

	mastered, err := env.cards.GetByID("trois", testEmail)
	require.NoError(t, err)
	mastered.ConsecutiveCorrect = models.MasteryThreshold
	mastered.Frequency = 1
	require.NoError(t, env.cards.UpdateReviewState(mastered))

	cards, err := env.study.StartStudyRun(testEmail, models.LanguageFrench, 10)
	require.NoError(t, err)
	assert.Len(t, cards, 2)
	for _, card := range cards {
		assert.NotEqual(t, "trois", card.Word)
	}
}

func TestStartStudyRunFiltersLanguage(t *testing.T) {
	env := newTestEnv(t)
	seedCards(t, env, "bonjour")
	require.NoError(t, env.cards.Upsert(&models.Flashcard{
		ID:        "hola",
		UserEmail: testEmail,
		Word:      "hola",
		Frequency: models.FrequencyDefault,
		Language:  models.LanguageSpanish,
		DateAdded: time.Now().UTC(),
	}))

	cards, err := env.study.StartStudyRun(testEmail, models.LanguageFrench, 10)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "bonjour", cards[0].Word)
}

func TestStartStudyRunCapsAtMaxCards(t *testing.T) {
	env := newTestEnv(t)
	seedCards(t, env, "a", "b", "c", "d", "e", "f", "g")

	cards, err := env.study.StartStudyRun(testEmail, models.LanguageFrench, 5)
	require.NoError(t, err)
	assert.Len(t, cards, 5)

	// An unsupported size falls back to the default of 10
	cards, err = env.study.StartStudyRun(testEmail, models.LanguageFrench, 7)
	require.NoError(t, err)
	assert.Len(t, cards, 7, "default cap of 10 keeps all seven cards")
}

func TestRecordAnswerCorrectStreak(t *testing.T) {
	env := newTestEnv(t)
	seedCards(t, env, "mot")

	// frequency follows the streak: 1 correct -> 3, 2 -> 2, 3+ -> 1
	wantFrequency := []int{3, 2, 1, 1}
	for i, want := range wantFrequency {
		cards, err := env.study.StartStudyRun(testEmail, models.LanguageFrench, 10)
		require.NoError(t, err)
		if i >= models.MasteryThreshold {
			assert.Empty(t, cards, "mastered card leaves the study pool")
			break
		}
		require.Len(t, cards, 1)

		card, err := env.study.RecordAnswer(testEmail, "mot", true)
		require.NoError(t, err)
		assert.Equal(t, i+1, card.ConsecutiveCorrect)
		assert.Equal(t, want, card.Frequency)
		assert.Equal(t, i+1, card.PracticeCount)
	}
}

func TestRecordAnswerIncorrectResets(t *testing.T) {
	env := newTestEnv(t)
	seedCards(t, env, "mot")

	card, err := env.cards.GetByID("mot", testEmail)
	require.NoError(t, err)
	card.ConsecutiveCorrect = 2
	card.Frequency = 2
	require.NoError(t, env.cards.UpdateReviewState(card))

	_, err = env.study.StartStudyRun(testEmail, models.LanguageFrench, 10)
	require.NoError(t, err)

	updated, err := env.study.RecordAnswer(testEmail, "mot", false)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.ConsecutiveCorrect)
	assert.Equal(t, models.FrequencyMax, updated.Frequency)
}

func TestRecordAnswerSequentialCursor(t *testing.T) {
	env := newTestEnv(t)
	seedCards(t, env, "un", "deux")

	cards, err := env.study.StartStudyRun(testEmail, models.LanguageFrench, 10)
	require.NoError(t, err)
	require.Len(t, cards, 2)

	// Answering out of order is rejected
	_, err = env.study.RecordAnswer(testEmail, cards[1].ID, true)
	assert.ErrorIs(t, err, ErrWrongCard)

	_, err = env.study.RecordAnswer(testEmail, cards[0].ID, true)
	require.NoError(t, err)
	_, err = env.study.RecordAnswer(testEmail, cards[1].ID, true)
	require.NoError(t, err)

	assert.True(t, env.study.Run(testEmail).Complete())
	_, err = env.study.RecordAnswer(testEmail, cards[0].ID, true)
	assert.ErrorIs(t, err, ErrRunComplete)
}

func TestRecordAnswerWithoutRun(t *testing.T) {
	env := newTestEnv(t)
	seedCards(t, env, "mot")

	_, err := env.study.RecordAnswer(testEmail, "mot", true)
	assert.ErrorIs(t, err, ErrNoActiveRun)
}

func TestTranslateDefinitionCachedOnce(t *testing.T) {
	env := newTestEnv(t)
	seedCards(t, env, "chien")
	env.mock.Translations = []string{"un animal domestique"}

	got, err := env.study.TranslateDefinition(context.Background(), testEmail, "chien")
	require.NoError(t, err)
	assert.Equal(t, "un animal domestique", got)
	assert.Len(t, env.mock.TranslateCalls, 1)

	// Second toggle reuses the cache; the empty mock queue would fail
	// if the gateway were called again
	got, err = env.study.TranslateDefinition(context.Background(), testEmail, "chien")
	require.NoError(t, err)
	assert.Equal(t, "un animal domestique", got)
	assert.Len(t, env.mock.TranslateCalls, 1)
}

func TestTranslateDefinitionUnknownCard(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.study.TranslateDefinition(context.Background(), testEmail, "missing")
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestEnrollKeepsReviewState(t *testing.T) {
	env := newTestEnv(t)
	seedCards(t, env, "mot")

	card, err := env.cards.GetByID("mot", testEmail)
	require.NoError(t, err)
	card.ConsecutiveCorrect = 2
	card.PracticeCount = 4
	require.NoError(t, env.cards.UpdateReviewState(card))

	// Re-enrolling the same word must not reset progress
	require.NoError(t, env.study.Enroll(testEmail, models.LanguageFrench, "Mot", "word", "noun"))

	cards, err := env.cards.ListByUser(testEmail)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, 2, cards[0].ConsecutiveCorrect)
	assert.Equal(t, 4, cards[0].PracticeCount)
	assert.Equal(t, "word", cards[0].DefinitionEn, "definition refreshes on re-enrollment")
}
