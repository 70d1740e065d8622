package models

import (
	"strings"
	"time"
)

const (
	// MasteryThreshold is the consecutive-correct count at which a card is mastered
	MasteryThreshold = 3

	// FrequencyMin and FrequencyMax bound the review frequency scale
	FrequencyMin = 1
	FrequencyMax = 5

	// FrequencyDefault is assigned to newly enrolled cards
	FrequencyDefault = 3
)

// Flashcard is a vocabulary card tracked by the review scheduler
type Flashcard struct {
	ID                 string    `json:"id"`
	UserEmail          string    `json:"-"`
	Word               string    `json:"word"`
	DefinitionEn       string    `json:"definitionEn"`
	DefinitionTarget   string    `json:"definitionTarget,omitempty"`
	WordType           string    `json:"wordType"`
	PracticeCount      int       `json:"practiceCount"`
	ConsecutiveCorrect int       `json:"consecutiveCorrect"`
	Frequency          int       `json:"frequency"`
	Language           Language  `json:"language"`
	DateAdded          time.Time `json:"dateAdded"`
	IsCustom           bool      `json:"isCustom"`
}

// ApplyAnswer updates the card's review state after a study answer.
// A correct answer increments the streak and steps the frequency down;
// an incorrect answer resets the streak and pins the card to the
// highest frequency. The exposure counter advances either way.
func (c *Flashcard) ApplyAnswer(correct bool) {
	c.PracticeCount++
	if !correct {
		c.ConsecutiveCorrect = 0
		c.Frequency = FrequencyMax
		return
	}
	c.ConsecutiveCorrect++
	switch {
	case c.ConsecutiveCorrect == 1:
		c.Frequency = 3
	case c.ConsecutiveCorrect == 2:
		c.Frequency = 2
	default:
		c.Frequency = FrequencyMin
	}
}

// IsMastered reports whether the card has met the mastery streak
func (c *Flashcard) IsMastered() bool {
	return c.ConsecutiveCorrect >= MasteryThreshold
}

// MatchesPrompt reports whether the card's word appears in the prompt
// text, case-insensitively
func (c *Flashcard) MatchesPrompt(prompt string) bool {
	if c.Word == "" {
		return false
	}
	return strings.Contains(strings.ToLower(prompt), strings.ToLower(c.Word))
}

// SlangTerm is a colloquial expression saved from slang practice
type SlangTerm struct {
	ID          string    `json:"id"`
	UserEmail   string    `json:"-"`
	Term        string    `json:"term"`
	Meaning     string    `json:"meaning"`
	Example     string    `json:"example"`
	Region      string    `json:"region"`
	Language    Language  `json:"language"`
	DateLearned time.Time `json:"dateLearned"`
}
