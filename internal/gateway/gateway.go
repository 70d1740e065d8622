// Package gateway wraps the generative model behind a typed interface.
// All prompt construction, structured-output schemas, and response
// validation live here so the rest of the application deals only in
// domain types.
package gateway

import (
	"context"

	"github.com/drewham94/AMai-Code/internal/models"
)

// Gateway is the interface the practice flows use to reach the
// generative model
type Gateway interface {
	// GeneratePrompt produces a practice passage or question with its
	// translation and vocabulary
	GeneratePrompt(ctx context.Context, req PromptRequest) (*PracticePrompt, error)

	// GenerateSlang produces a sentence built around regional slang
	GenerateSlang(ctx context.Context, req SlangRequest) (*SlangPrompt, error)

	// AnalyzeRecording scores a recorded attempt against the prompt
	AnalyzeRecording(ctx context.Context, req AnalysisRequest) (*Analysis, error)

	// SynthesizeSpeech renders text as raw 16-bit PCM at 24kHz mono
	SynthesizeSpeech(ctx context.Context, req SpeechRequest) ([]byte, error)

	// GenerateEncouragement produces a short conversational summary of
	// session feedback
	GenerateEncouragement(ctx context.Context, req EncouragementRequest) (string, error)

	// TranslateText translates English text into the given target language
	TranslateText(ctx context.Context, text string, target models.Language) (string, error)
}

// PromptRequest describes the practice prompt to generate
type PromptRequest struct {
	Language   models.Language
	SkillLevel models.SkillLevel
	Flavor     models.PracticeFlavor
	Mode       models.PracticeMode
	// PriorityWords are flashcard words the prompt should try to work in
	PriorityWords []string
	// Context is an optional free-text scenario, truncated to 20 words
	Context string
}

// VocabularyWord is one highlighted word from a generated prompt
type VocabularyWord struct {
	Word              string `json:"word"`
	Definition        string `json:"definition"`
	EnglishEquivalent string `json:"englishEquivalent"`
	WordType          string `json:"wordType"`
}

// PracticePrompt is the generated practice material
type PracticePrompt struct {
	Text        string           `json:"text"`
	Translation string           `json:"translation"`
	Vocabulary  []VocabularyWord `json:"vocabulary"`
}

// SlangRequest describes the slang sentence to generate
type SlangRequest struct {
	Language models.Language
	Accent   string
	Region   string
	// Context is an optional free-text scenario, truncated to 20 words
	Context string
}

// SlangGloss is one slang term and its plain-English meaning
type SlangGloss struct {
	Term     string `json:"term"`
	Meaning  string `json:"meaning"`
	WordType string `json:"wordType"`
}

// SlangPrompt is a generated sentence with its slang glossary
type SlangPrompt struct {
	Sentence string       `json:"sentence"`
	Terms    []SlangGloss `json:"terms"`
}

// AnalysisRequest carries a recording and the context it was made in
type AnalysisRequest struct {
	Audio      []byte
	MIMEType   string
	Prompt     string
	Language   models.Language
	Accent     string
	Mode       models.PracticeMode
	SkillLevel models.SkillLevel
}

// Analysis is the scored feedback for a recording
type Analysis struct {
	Score            int      `json:"score"`
	Strengths        []string `json:"strengths"`
	Improvements     []string `json:"improvements"`
	DetailedAnalysis string   `json:"detailedAnalysis"`
}

// SpeechRequest describes text to render as audio
type SpeechRequest struct {
	Text   string
	Voice  string
	Accent string // optional accent direction for the voice
}

// EncouragementRequest describes the feedback to summarize for the user
type EncouragementRequest struct {
	Feedback       models.Feedback
	Score          int
	Language       models.AssistantLanguage
	TargetLanguage models.Language
	EnglishAccent  string
}
