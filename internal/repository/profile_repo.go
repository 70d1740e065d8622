package repository

import (
	"database/sql"
	"fmt"

	"github.com/drewham94/AMai-Code/internal/database"
	"github.com/drewham94/AMai-Code/internal/models"
)

// ProfileRepository handles database operations for user profiles
type ProfileRepository struct {
	db *database.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *database.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetByEmail retrieves a profile by email, or nil if none exists
func (r *ProfileRepository) GetByEmail(email string) (*models.UserProfile, error) {
	query := `
		SELECT email, name, target_language, target_accent, skill_level, preferred_flavor,
		       daily_goal, preferred_voice, assistant_language, assistant_english_accent,
		       is_live_assistant_enabled
		FROM user_profiles
		WHERE email = ?
	`
	profile := &models.UserProfile{}
	err := r.db.QueryRow(query, email).Scan(
		&profile.Email,
		&profile.Name,
		&profile.TargetLanguage,
		&profile.TargetAccent,
		&profile.SkillLevel,
		&profile.PreferredFlavor,
		&profile.DailyGoal,
		&profile.PreferredVoice,
		&profile.AssistantLanguage,
		&profile.AssistantEnglishAccent,
		&profile.IsLiveAssistantEnabled,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return profile, nil
}

// Upsert inserts a profile or updates the existing one for the same email
func (r *ProfileRepository) Upsert(profile *models.UserProfile) error {
	clause := r.db.Dialect.UpsertClause(
		[]string{"email"},
		[]string{
			"name", "target_language", "target_accent", "skill_level", "preferred_flavor",
			"daily_goal", "preferred_voice", "assistant_language", "assistant_english_accent",
			"is_live_assistant_enabled",
		},
	)
	query := `
		INSERT INTO user_profiles (email, name, target_language, target_accent, skill_level,
		                           preferred_flavor, daily_goal, preferred_voice,
		                           assistant_language, assistant_english_accent,
		                           is_live_assistant_enabled)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	` + clause

	_, err := r.db.Exec(query,
		profile.Email,
		profile.Name,
		profile.TargetLanguage,
		profile.TargetAccent,
		profile.SkillLevel,
		profile.PreferredFlavor,
		profile.DailyGoal,
		profile.PreferredVoice,
		profile.AssistantLanguage,
		profile.AssistantEnglishAccent,
		profile.IsLiveAssistantEnabled,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}
