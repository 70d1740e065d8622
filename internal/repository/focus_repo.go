package repository

import (
	"fmt"

	"github.com/drewham94/AMai-Code/internal/database"
	"github.com/drewham94/AMai-Code/internal/models"
)

// FocusRepository handles database operations for focus sessions
type FocusRepository struct {
	db *database.DB
}

// NewFocusRepository creates a new focus repository
func NewFocusRepository(db *database.DB) *FocusRepository {
	return &FocusRepository{db: db}
}

// Create records a completed focus block
func (r *FocusRepository) Create(session *models.FocusSession) error {
	query := `
		INSERT INTO focus_sessions (id, user_email, date, minutes)
		VALUES (?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		session.ID,
		session.UserEmail,
		session.Date,
		session.Minutes,
	)
	if err != nil {
		return fmt.Errorf("failed to create focus session: %w", err)
	}
	return nil
}

// Exists reports whether a focus session with the given id is already recorded
func (r *FocusRepository) Exists(id, email string) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM focus_sessions WHERE id = ? AND user_email = ?"
	if err := r.db.QueryRow(query, id, email).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check focus session: %w", err)
	}
	return count > 0, nil
}

// ListByUser retrieves a user's focus sessions, newest first
func (r *FocusRepository) ListByUser(email string) ([]models.FocusSession, error) {
	query := `
		SELECT id, user_email, date, minutes
		FROM focus_sessions
		WHERE user_email = ?
		ORDER BY date DESC
	`
	rows, err := r.db.Query(query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to query focus sessions: %w", err)
	}
	defer rows.Close()

	sessions := []models.FocusSession{}
	for rows.Next() {
		var session models.FocusSession
		if err := rows.Scan(
			&session.ID,
			&session.UserEmail,
			&session.Date,
			&session.Minutes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan focus session: %w", err)
		}
		sessions = append(sessions, session)
	}

	return sessions, rows.Err()
}
