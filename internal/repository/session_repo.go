package repository

import (
	"encoding/json"
	"fmt"

	"github.com/drewham94/AMai-Code/internal/database"
	"github.com/drewham94/AMai-Code/internal/models"
)

// SessionRepository handles database operations for practice sessions
type SessionRepository struct {
	db *database.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *database.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a completed practice session
func (r *SessionRepository) Create(session *models.PracticeSession) error {
	feedback, err := json.Marshal(session.Feedback)
	if err != nil {
		return fmt.Errorf("failed to encode feedback: %w", err)
	}

	query := `
		INSERT INTO practice_sessions (id, user_email, date, language, accent, skill_level,
		                               flavor, mode, prompt, score, assistant_response, feedback)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.Exec(query,
		session.ID,
		session.UserEmail,
		session.Date,
		session.Language,
		session.Accent,
		session.SkillLevel,
		session.Flavor,
		session.Mode,
		session.Prompt,
		session.Score,
		session.AssistantResponse,
		string(feedback),
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// ListByUser retrieves a user's practice sessions, newest first
func (r *SessionRepository) ListByUser(email string) ([]models.PracticeSession, error) {
	query := `
		SELECT id, user_email, date, language, accent, skill_level, flavor, mode, prompt,
		       score, assistant_response, feedback
		FROM practice_sessions
		WHERE user_email = ?
		ORDER BY date DESC
	`
	rows, err := r.db.Query(query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	sessions := []models.PracticeSession{}
	for rows.Next() {
		var session models.PracticeSession
		var feedback string
		if err := rows.Scan(
			&session.ID,
			&session.UserEmail,
			&session.Date,
			&session.Language,
			&session.Accent,
			&session.SkillLevel,
			&session.Flavor,
			&session.Mode,
			&session.Prompt,
			&session.Score,
			&session.AssistantResponse,
			&feedback,
		); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		if err := json.Unmarshal([]byte(feedback), &session.Feedback); err != nil {
			return nil, fmt.Errorf("failed to decode feedback: %w", err)
		}
		sessions = append(sessions, session)
	}

	return sessions, rows.Err()
}
