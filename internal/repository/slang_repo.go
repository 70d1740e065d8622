package repository

import (
	"fmt"
	"strings"

	"github.com/drewham94/AMai-Code/internal/database"
	"github.com/drewham94/AMai-Code/internal/models"
)

// normalizeKey lowercases and trims a natural-key component so the same
// word saved twice with different casing collapses to one row
func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SlangRepository handles database operations for saved slang terms
type SlangRepository struct {
	db *database.DB
}

// NewSlangRepository creates a new slang repository
func NewSlangRepository(db *database.DB) *SlangRepository {
	return &SlangRepository{db: db}
}

// Upsert saves a slang term, updating the existing row when the user has
// already saved the same term for the same language
func (r *SlangRepository) Upsert(term *models.SlangTerm) error {
	clause := r.db.Dialect.UpsertClause(
		[]string{"user_email", "language", "term_key"},
		[]string{"term", "meaning", "example", "region"},
	)
	query := `
		INSERT INTO slang_terms (id, user_email, term, term_key, meaning, example, region, language, date_learned)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	` + clause

	_, err := r.db.Exec(query,
		term.ID,
		term.UserEmail,
		term.Term,
		normalizeKey(term.Term),
		term.Meaning,
		term.Example,
		term.Region,
		term.Language,
		term.DateLearned,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert slang term: %w", err)
	}
	return nil
}

// ListByUser retrieves a user's saved slang terms, newest first
func (r *SlangRepository) ListByUser(email string) ([]models.SlangTerm, error) {
	query := `
		SELECT id, user_email, term, meaning, example, region, language, date_learned
		FROM slang_terms
		WHERE user_email = ?
		ORDER BY date_learned DESC
	`
	rows, err := r.db.Query(query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to query slang terms: %w", err)
	}
	defer rows.Close()

	terms := []models.SlangTerm{}
	for rows.Next() {
		var term models.SlangTerm
		if err := rows.Scan(
			&term.ID,
			&term.UserEmail,
			&term.Term,
			&term.Meaning,
			&term.Example,
			&term.Region,
			&term.Language,
			&term.DateLearned,
		); err != nil {
			return nil, fmt.Errorf("failed to scan slang term: %w", err)
		}
		terms = append(terms, term)
	}

	return terms, rows.Err()
}

// Delete removes a slang term owned by the given user
func (r *SlangRepository) Delete(id, email string) error {
	query := "DELETE FROM slang_terms WHERE id = ? AND user_email = ?"
	_, err := r.db.Exec(query, id, email)
	if err != nil {
		return fmt.Errorf("failed to delete slang term: %w", err)
	}
	return nil
}
