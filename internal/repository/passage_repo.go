package repository

import (
	"fmt"

	"github.com/drewham94/AMai-Code/internal/database"
	"github.com/drewham94/AMai-Code/internal/models"
)

// PassageRepository handles database operations for saved passages
type PassageRepository struct {
	db *database.DB
}

// NewPassageRepository creates a new passage repository
func NewPassageRepository(db *database.DB) *PassageRepository {
	return &PassageRepository{db: db}
}

// Create saves a passage for later practice
func (r *PassageRepository) Create(passage *models.SavedPassage) error {
	query := `
		INSERT INTO saved_passages (id, user_email, text, date, language)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		passage.ID,
		passage.UserEmail,
		passage.Text,
		passage.Date,
		passage.Language,
	)
	if err != nil {
		return fmt.Errorf("failed to create passage: %w", err)
	}
	return nil
}

// ListByUser retrieves a user's saved passages, newest first
func (r *PassageRepository) ListByUser(email string) ([]models.SavedPassage, error) {
	query := `
		SELECT id, user_email, text, date, language
		FROM saved_passages
		WHERE user_email = ?
		ORDER BY date DESC
	`
	rows, err := r.db.Query(query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to query passages: %w", err)
	}
	defer rows.Close()

	passages := []models.SavedPassage{}
	for rows.Next() {
		var passage models.SavedPassage
		if err := rows.Scan(
			&passage.ID,
			&passage.UserEmail,
			&passage.Text,
			&passage.Date,
			&passage.Language,
		); err != nil {
			return nil, fmt.Errorf("failed to scan passage: %w", err)
		}
		passages = append(passages, passage)
	}

	return passages, rows.Err()
}

// Delete removes a passage owned by the given user
func (r *PassageRepository) Delete(id, email string) error {
	query := "DELETE FROM saved_passages WHERE id = ? AND user_email = ?"
	_, err := r.db.Exec(query, id, email)
	if err != nil {
		return fmt.Errorf("failed to delete passage: %w", err)
	}
	return nil
}
