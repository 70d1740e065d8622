package models

import "errors"

// Language is a supported practice language
type Language string

const (
	LanguageFrench  Language = "French"
	LanguageSpanish Language = "Spanish"
)

// Languages lists all supported languages in display order
var Languages = []Language{LanguageFrench, LanguageSpanish}

// IsValid reports whether the language is one of the supported values
func (l Language) IsValid() bool {
	return l == LanguageFrench || l == LanguageSpanish
}

// SkillLevel is an ordered learner proficiency level
type SkillLevel string

const (
	SkillNovice       SkillLevel = "Novice"
	SkillBeginner     SkillLevel = "Beginner"
	SkillIntermediate SkillLevel = "Intermediate"
	SkillAdvanced     SkillLevel = "Advanced"
	SkillExpert       SkillLevel = "Expert"
)

// SkillLevels lists all skill levels from least to most experienced
var SkillLevels = []SkillLevel{SkillNovice, SkillBeginner, SkillIntermediate, SkillAdvanced, SkillExpert}

// IsValid reports whether the skill level is a known value
func (s SkillLevel) IsValid() bool {
	return s.Rank() >= 0
}

// Rank returns the position of the level in the ordering, or -1 if unknown
func (s SkillLevel) Rank() int {
	for i, level := range SkillLevels {
		if s == level {
			return i
		}
	}
	return -1
}

// PracticeFlavor is the subject/register of a generated prompt
type PracticeFlavor string

const (
	FlavorCasual         PracticeFlavor = "Casual"
	FlavorAcademic       PracticeFlavor = "Academic"
	FlavorConversational PracticeFlavor = "Conversational"
	FlavorProfessional   PracticeFlavor = "Professional"
	FlavorCreative       PracticeFlavor = "Creative"
)

// PracticeFlavors lists all prompt flavors
var PracticeFlavors = []PracticeFlavor{
	FlavorCasual, FlavorAcademic, FlavorConversational, FlavorProfessional, FlavorCreative,
}

// IsValid reports whether the flavor is a known value
func (f PracticeFlavor) IsValid() bool {
	for _, flavor := range PracticeFlavors {
		if f == flavor {
			return true
		}
	}
	return false
}

// PracticeMode is the type of practice exercise
type PracticeMode string

const (
	ModeRead          PracticeMode = "Read"
	ModeRespond       PracticeMode = "Respond"
	ModeTongueTwister PracticeMode = "TongueTwister"
	ModeSlang         PracticeMode = "Slang"
)

// IsValid reports whether the mode is a known value
func (m PracticeMode) IsValid() bool {
	switch m {
	case ModeRead, ModeRespond, ModeTongueTwister, ModeSlang:
		return true
	}
	return false
}

// AssistantLanguage selects which language the live assistant speaks
type AssistantLanguage string

const (
	AssistantTarget  AssistantLanguage = "Target"
	AssistantEnglish AssistantLanguage = "English"
)

// UserProfile holds a user's practice configuration, keyed by email
type UserProfile struct {
	Email                  string            `json:"email"`
	Name                   string            `json:"name"`
	TargetLanguage         Language          `json:"targetLanguage"`
	TargetAccent           string            `json:"targetAccent"`
	SkillLevel             SkillLevel        `json:"skillLevel"`
	PreferredFlavor        PracticeFlavor    `json:"preferredFlavor"`
	DailyGoal              int               `json:"dailyGoal"`
	PreferredVoice         string            `json:"preferredVoice"`
	AssistantLanguage      AssistantLanguage `json:"assistantLanguage"`
	AssistantEnglishAccent string            `json:"assistantEnglishAccent"`
	IsLiveAssistantEnabled bool              `json:"isLiveAssistantEnabled"`
}

// Validate checks that the profile's enum fields hold known values
func (p *UserProfile) Validate() error {
	if p.Email == "" {
		return errors.New("email is required")
	}
	if !p.TargetLanguage.IsValid() {
		return errors.New("invalid target language")
	}
	if !p.SkillLevel.IsValid() {
		return errors.New("invalid skill level")
	}
	if !p.PreferredFlavor.IsValid() {
		return errors.New("invalid practice flavor")
	}
	return nil
}
