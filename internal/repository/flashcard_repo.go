package repository

import (
	"database/sql"
	"fmt"

	"github.com/drewham94/AMai-Code/internal/database"
	"github.com/drewham94/AMai-Code/internal/models"
)

const flashcardColumns = `id, user_email, word, definition_en, definition_target, word_type,
		       practice_count, consecutive_correct, frequency, language, date_added, is_custom`

// FlashcardRepository handles database operations for flashcards
type FlashcardRepository struct {
	db *database.DB
}

// NewFlashcardRepository creates a new flashcard repository
func NewFlashcardRepository(db *database.DB) *FlashcardRepository {
	return &FlashcardRepository{db: db}
}

func scanFlashcard(scan func(dest ...interface{}) error) (*models.Flashcard, error) {
	card := &models.Flashcard{}
	err := scan(
		&card.ID,
		&card.UserEmail,
		&card.Word,
		&card.DefinitionEn,
		&card.DefinitionTarget,
		&card.WordType,
		&card.PracticeCount,
		&card.ConsecutiveCorrect,
		&card.Frequency,
		&card.Language,
		&card.DateAdded,
		&card.IsCustom,
	)
	return card, err
}

// Upsert saves a flashcard, updating the existing row when the user
// already has a card for the same word in the same language
func (r *FlashcardRepository) Upsert(card *models.Flashcard) error {
	clause := r.db.Dialect.UpsertClause(
		[]string{"user_email", "language", "word_key"},
		[]string{"word", "definition_en", "word_type"},
	)
	query := `
		INSERT INTO flashcards (id, user_email, word, word_key, definition_en, definition_target,
		                        word_type, practice_count, consecutive_correct, frequency,
		                        language, date_added, is_custom)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	` + clause

	_, err := r.db.Exec(query,
		card.ID,
		card.UserEmail,
		card.Word,
		normalizeKey(card.Word),
		card.DefinitionEn,
		card.DefinitionTarget,
		card.WordType,
		card.PracticeCount,
		card.ConsecutiveCorrect,
		card.Frequency,
		card.Language,
		card.DateAdded,
		card.IsCustom,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert flashcard: %w", err)
	}
	return nil
}

// GetByID retrieves a flashcard owned by the given user, or nil
func (r *FlashcardRepository) GetByID(id, email string) (*models.Flashcard, error) {
	query := "SELECT " + flashcardColumns + " FROM flashcards WHERE id = ? AND user_email = ?"

	card, err := scanFlashcard(r.db.QueryRow(query, id, email).Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get flashcard: %w", err)
	}
	return card, nil
}

// ListByUser retrieves all of a user's flashcards
func (r *FlashcardRepository) ListByUser(email string) ([]models.Flashcard, error) {
	query := "SELECT " + flashcardColumns + " FROM flashcards WHERE user_email = ? ORDER BY word"

	rows, err := r.db.Query(query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to query flashcards: %w", err)
	}
	defer rows.Close()

	cards := []models.Flashcard{}
	for rows.Next() {
		card, err := scanFlashcard(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan flashcard: %w", err)
		}
		cards = append(cards, *card)
	}

	return cards, rows.Err()
}

// UpdateReviewState persists a card's scheduling fields after an answer
func (r *FlashcardRepository) UpdateReviewState(card *models.Flashcard) error {
	query := `
		UPDATE flashcards
		SET consecutive_correct = ?, frequency = ?, practice_count = ?
		WHERE id = ? AND user_email = ?
	`
	_, err := r.db.Exec(query,
		card.ConsecutiveCorrect,
		card.Frequency,
		card.PracticeCount,
		card.ID,
		card.UserEmail,
	)
	if err != nil {
		return fmt.Errorf("failed to update flashcard: %w", err)
	}
	return nil
}

// UpdateDefinitionTarget caches a card's translated definition
func (r *FlashcardRepository) UpdateDefinitionTarget(id, email, definition string) error {
	query := "UPDATE flashcards SET definition_target = ? WHERE id = ? AND user_email = ?"
	_, err := r.db.Exec(query, definition, id, email)
	if err != nil {
		return fmt.Errorf("failed to update definition: %w", err)
	}
	return nil
}

// IncrementPracticeCount bumps the exposure counter for the given cards
func (r *FlashcardRepository) IncrementPracticeCount(email string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := "UPDATE flashcards SET practice_count = practice_count + 1 WHERE id = ? AND user_email = ?"
	for _, id := range ids {
		if _, err := tx.Exec(query, id, email); err != nil {
			return fmt.Errorf("failed to increment practice count: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// ReplaceAll swaps a user's entire flashcard set in one transaction
func (r *FlashcardRepository) ReplaceAll(email string, cards []models.Flashcard) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM flashcards WHERE user_email = ?", email); err != nil {
		return fmt.Errorf("failed to clear flashcards: %w", err)
	}

	query := `
		INSERT INTO flashcards (id, user_email, word, word_key, definition_en, definition_target,
		                        word_type, practice_count, consecutive_correct, frequency,
		                        language, date_added, is_custom)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	for _, card := range cards {
		if _, err := tx.Exec(query,
			card.ID,
			email,
			card.Word,
			normalizeKey(card.Word),
			card.DefinitionEn,
			card.DefinitionTarget,
			card.WordType,
			card.PracticeCount,
			card.ConsecutiveCorrect,
			card.Frequency,
			card.Language,
			card.DateAdded,
			card.IsCustom,
		); err != nil {
			return fmt.Errorf("failed to insert flashcard: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Delete removes a flashcard owned by the given user
func (r *FlashcardRepository) Delete(id, email string) error {
	query := "DELETE FROM flashcards WHERE id = ? AND user_email = ?"
	_, err := r.db.Exec(query, id, email)
	if err != nil {
		return fmt.Errorf("failed to delete flashcard: %w", err)
	}
	return nil
}
