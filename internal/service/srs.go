package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/drewham94/AMai-Code/internal/gateway"
	"github.com/drewham94/AMai-Code/internal/models"
	"github.com/drewham94/AMai-Code/internal/repository"
)

var (
	ErrCardNotFound = errors.New("flashcard not found")
	ErrNoActiveRun  = errors.New("no active study run")
	ErrRunComplete  = errors.New("study run already complete")
	ErrWrongCard    = errors.New("card is not the current card in the run")
)

// Allowed study run sizes; anything else falls back to the default.
const (
	DefaultMaxCards = 10
)

var allowedMaxCards = map[int]bool{5: true, 10: true, 15: true, 20: true}

// StudyRun is a strictly sequential cursor over one shuffled card
// selection. Runs are in-memory only; a reload rebuilds from the store.
type StudyRun struct {
	CardIDs []string
	Cursor  int
}

// Complete reports whether every card in the run has been answered
func (r *StudyRun) Complete() bool {
	return r.Cursor >= len(r.CardIDs)
}

// StudyService drives flashcard review: run selection, answer
// grading, auto-enrollment, and lazy definition translation
type StudyService struct {
	cards   *repository.FlashcardRepository
	gateway gateway.Gateway

	mu   sync.Mutex
	runs map[string]*StudyRun
}

// NewStudyService creates a new study service
func NewStudyService(cards *repository.FlashcardRepository, gw gateway.Gateway) *StudyService {
	return &StudyService{
		cards:   cards,
		gateway: gw,
		runs:    make(map[string]*StudyRun),
	}
}

// StartStudyRun selects up to maxCards not-yet-mastered cards in the
// given language, shuffled, and opens a new run over them. Any
// previous run for the user is discarded.
func (s *StudyService) StartStudyRun(email string, language models.Language, maxCards int) ([]models.Flashcard, error) {
	if !allowedMaxCards[maxCards] {
		maxCards = DefaultMaxCards
	}

	all, err := s.cards.ListByUser(email)
	if err != nil {
		return nil, fmt.Errorf("failed to load flashcards: %w", err)
	}

	due := make([]models.Flashcard, 0, len(all))
	for _, card := range all {
		if card.Language == language && !card.IsMastered() {
			due = append(due, card)
		}
	}

	rand.Shuffle(len(due), func(i, j int) {
		due[i], due[j] = due[j], due[i]
	})
	if len(due) > maxCards {
		due = due[:maxCards]
	}

	ids := make([]string, len(due))
	for i, card := range due {
		ids[i] = card.ID
	}

	s.mu.Lock()
	s.runs[email] = &StudyRun{CardIDs: ids}
	s.mu.Unlock()

	return due, nil
}

// Run returns the user's active study run, or nil
func (s *StudyService) Run(email string) *StudyRun {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs[email]
}

// RecordAnswer grades the current card of the user's run and advances
// the cursor by exactly one. Answers must arrive in run order.
func (s *StudyService) RecordAnswer(email, cardID string, correct bool) (*models.Flashcard, error) {
	s.mu.Lock()
	run, ok := s.runs[email]
	if !ok {
		s.mu.Unlock()
		return nil, ErrNoActiveRun
	}
	if run.Complete() {
		s.mu.Unlock()
		return nil, ErrRunComplete
	}
	if run.CardIDs[run.Cursor] != cardID {
		s.mu.Unlock()
		return nil, ErrWrongCard
	}
	run.Cursor++
	s.mu.Unlock()

	card, err := s.cards.GetByID(cardID, email)
	if err != nil {
		return nil, fmt.Errorf("failed to load flashcard: %w", err)
	}
	if card == nil {
		return nil, ErrCardNotFound
	}

	card.ApplyAnswer(correct)
	if err := s.cards.UpdateReviewState(card); err != nil {
		return nil, fmt.Errorf("failed to save review state: %w", err)
	}
	return card, nil
}

// Enroll adds a generated vocabulary word or slang term as a new
// flashcard. The (word, language) natural key is case-insensitive at
// the storage layer, so re-enrolling an existing word never creates a
// duplicate and never resets its review state.
func (s *StudyService) Enroll(email string, language models.Language, word, definitionEn, wordType string) error {
	card := &models.Flashcard{
		ID:           uuid.New().String(),
		UserEmail:    email,
		Word:         word,
		DefinitionEn: definitionEn,
		WordType:     wordType,
		Frequency:    models.FrequencyDefault,
		Language:     language,
		DateAdded:    time.Now().UTC(),
	}
	if err := s.cards.Upsert(card); err != nil {
		return fmt.Errorf("failed to enroll flashcard: %w", err)
	}
	return nil
}

// TranslateDefinition returns the card's definition in its own
// language, fetching the translation at most once and caching it on
// the card.
func (s *StudyService) TranslateDefinition(ctx context.Context, email, cardID string) (string, error) {
	card, err := s.cards.GetByID(cardID, email)
	if err != nil {
		return "", fmt.Errorf("failed to load flashcard: %w", err)
	}
	if card == nil {
		return "", ErrCardNotFound
	}
	if card.DefinitionTarget != "" {
		return card.DefinitionTarget, nil
	}

	translated, err := s.gateway.TranslateText(ctx, card.DefinitionEn, card.Language)
	if err != nil {
		return "", err
	}
	if err := s.cards.UpdateDefinitionTarget(card.ID, email, translated); err != nil {
		return "", fmt.Errorf("failed to cache translation: %w", err)
	}
	return translated, nil
}

// PriorityWords returns up to limit not-yet-mastered words in the
// language, highest review frequency first, to seed prompt generation
func (s *StudyService) PriorityWords(email string, language models.Language, limit int) ([]string, error) {
	all, err := s.cards.ListByUser(email)
	if err != nil {
		return nil, fmt.Errorf("failed to load flashcards: %w", err)
	}

	due := make([]models.Flashcard, 0, len(all))
	for _, card := range all {
		if card.Language == language && !card.IsMastered() {
			due = append(due, card)
		}
	}
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].Frequency > due[j].Frequency
	})

	if len(due) > limit {
		due = due[:limit]
	}
	words := make([]string, len(due))
	for i, card := range due {
		words[i] = card.Word
	}
	return words, nil
}
