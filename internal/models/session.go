package models

import "time"

// Feedback is the structured result of analyzing a recording
type Feedback struct {
	Strengths        []string `json:"strengths"`
	Improvements     []string `json:"improvements"`
	DetailedAnalysis string   `json:"detailedAnalysis"`
}

// PracticeSession is one completed practice attempt.
// Immutable once created; history is append-only per user.
type PracticeSession struct {
	ID                string         `json:"id"`
	UserEmail         string         `json:"-"`
	Date              time.Time      `json:"date"`
	Language          Language       `json:"language"`
	Accent            string         `json:"accent"`
	SkillLevel        SkillLevel     `json:"skillLevel"`
	Flavor            PracticeFlavor `json:"flavor"`
	Mode              PracticeMode   `json:"mode"`
	Prompt            string         `json:"prompt"`
	Score             int            `json:"score"`
	AssistantResponse string         `json:"assistantResponse,omitempty"`
	Feedback          Feedback       `json:"feedback"`
}

// SavedPassage is a Read-mode prompt kept for later practice
type SavedPassage struct {
	ID        string    `json:"id"`
	UserEmail string    `json:"-"`
	Text      string    `json:"text"`
	Date      time.Time `json:"date"`
	Language  Language  `json:"language"`
}

// FocusSession is a completed uninterrupted-study timer record
type FocusSession struct {
	ID        string    `json:"id"`
	UserEmail string    `json:"-"`
	Date      time.Time `json:"date"`
	Minutes   int       `json:"minutes"`
}
