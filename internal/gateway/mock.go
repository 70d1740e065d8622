package gateway

import (
	"context"
	"sync"

	"github.com/drewham94/AMai-Code/internal/models"
)

// Mock is a deterministic Gateway for testing.
// Each operation returns canned results in FIFO order and records its
// requests. When a queue is empty the operation fails with an
// unavailable error, and a non-nil Err preempts everything.
type Mock struct {
	mu sync.Mutex

	Err error

	Prompts        []*PracticePrompt
	Slangs         []*SlangPrompt
	Analyses       []*Analysis
	Speech         [][]byte
	Encouragements []string
	Translations   []string

	PromptCalls        []PromptRequest
	SlangCalls         []SlangRequest
	AnalysisCalls      []AnalysisRequest
	SpeechCalls        []SpeechRequest
	EncouragementCalls []EncouragementRequest
	TranslateCalls     []string
}

// NewMock creates an empty mock gateway
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) GeneratePrompt(_ context.Context, req PromptRequest) (*PracticePrompt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PromptCalls = append(m.PromptCalls, req)
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.Prompts) == 0 {
		return nil, unavailable("generate-prompt", nil)
	}
	out := m.Prompts[0]
	m.Prompts = m.Prompts[1:]
	return out, nil
}

func (m *Mock) GenerateSlang(_ context.Context, req SlangRequest) (*SlangPrompt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SlangCalls = append(m.SlangCalls, req)
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.Slangs) == 0 {
		return nil, unavailable("generate-slang", nil)
	}
	out := m.Slangs[0]
	m.Slangs = m.Slangs[1:]
	return out, nil
}

func (m *Mock) AnalyzeRecording(_ context.Context, req AnalysisRequest) (*Analysis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.AnalysisCalls = append(m.AnalysisCalls, req)
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.Analyses) == 0 {
		return nil, unavailable("analyze-recording", nil)
	}
	out := m.Analyses[0]
	m.Analyses = m.Analyses[1:]
	return out, nil
}

func (m *Mock) SynthesizeSpeech(_ context.Context, req SpeechRequest) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SpeechCalls = append(m.SpeechCalls, req)
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.Speech) == 0 {
		return nil, unavailable("synthesize-speech", nil)
	}
	out := m.Speech[0]
	m.Speech = m.Speech[1:]
	return out, nil
}

func (m *Mock) GenerateEncouragement(_ context.Context, req EncouragementRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.EncouragementCalls = append(m.EncouragementCalls, req)
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Encouragements) == 0 {
		return "", unavailable("generate-encouragement", nil)
	}
	out := m.Encouragements[0]
	m.Encouragements = m.Encouragements[1:]
	return out, nil
}

func (m *Mock) TranslateText(_ context.Context, text string, _ models.Language) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TranslateCalls = append(m.TranslateCalls, text)
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Translations) == 0 {
		return "", unavailable("translate-text", nil)
	}
	out := m.Translations[0]
	m.Translations = m.Translations[1:]
	return out, nil
}
