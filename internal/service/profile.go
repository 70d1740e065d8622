package service

import (
	"fmt"
	"slices"

	"github.com/drewham94/AMai-Code/internal/catalog"
	"github.com/drewham94/AMai-Code/internal/models"
	"github.com/drewham94/AMai-Code/internal/repository"
	"github.com/drewham94/AMai-Code/internal/validation"
)

// ProfileService manages the user profile. Saving is a wholesale
// upsert; an accent must never stay attached to a mismatched language.
type ProfileService struct {
	profiles *repository.ProfileRepository
}

// NewProfileService creates a profile service
func NewProfileService(profiles *repository.ProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// Get returns the user's profile, or nil when none exists
func (s *ProfileService) Get(email string) (*models.UserProfile, error) {
	profile, err := s.profiles.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return profile, nil
}

// Save validates and persists a profile as the new active one. When
// the target language changed, or the accent does not belong to the
// target language, the accent resets to the language's first accent.
// An English-speaking assistant with an unknown English accent resets
// to the first known one.
// The returned bool reports whether any of the practice-affecting
// settings (language, accent, skill level) changed, so callers can
// restart an in-flight prompt under the new configuration.
func (s *ProfileService) Save(email string, staged *models.UserProfile) (*models.UserProfile, bool, error) {
	staged.Email = email

	if err := validation.ValidateName(staged.Name); err != nil {
		return nil, false, err
	}

	current, err := s.profiles.GetByEmail(email)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load profile: %w", err)
	}

	languageChanged := current != nil && current.TargetLanguage != staged.TargetLanguage
	if _, ok := catalog.FindAccent(staged.TargetLanguage, staged.TargetAccent); !ok || languageChanged {
		first, ok := catalog.DefaultAccent(staged.TargetLanguage)
		if !ok {
			return nil, false, fmt.Errorf("no accents defined for language %s", staged.TargetLanguage)
		}
		staged.TargetAccent = first.Name
	}

	if staged.AssistantLanguage == models.AssistantEnglish && !slices.Contains(catalog.EnglishAccents, staged.AssistantEnglishAccent) {
		staged.AssistantEnglishAccent = catalog.EnglishAccents[0]
	}

	if err := staged.Validate(); err != nil {
		return nil, false, err
	}
	if err := s.profiles.Upsert(staged); err != nil {
		return nil, false, fmt.Errorf("failed to save profile: %w", err)
	}

	coreChanged := current == nil ||
		current.TargetLanguage != staged.TargetLanguage ||
		current.TargetAccent != staged.TargetAccent ||
		current.SkillLevel != staged.SkillLevel
	return staged, coreChanged, nil
}
