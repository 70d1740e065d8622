package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/drewham94/AMai-Code/internal/models"
)

// Gemini implements Gateway against the Google Gemini API
type Gemini struct {
	client      *genai.Client
	textModel   string
	speechModel string
}

// GeminiConfig configures the Gemini gateway
type GeminiConfig struct {
	APIKey      string
	TextModel   string
	SpeechModel string
}

// NewGemini creates a Gemini-backed gateway
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	return &Gemini{
		client:      client,
		textModel:   cfg.TextModel,
		speechModel: cfg.SpeechModel,
	}, nil
}

func (g *Gemini) GeneratePrompt(ctx context.Context, req PromptRequest) (*PracticePrompt, error) {
	const op = "generate-prompt"

	raw, err := g.generateJSON(ctx, op, buildPracticePrompt(req), practicePromptSchema)
	if err != nil {
		return nil, err
	}

	var prompt PracticePrompt
	if err := json.Unmarshal(raw, &prompt); err != nil {
		return nil, invalidResponse(op, raw, err)
	}
	return &prompt, nil
}

func (g *Gemini) GenerateSlang(ctx context.Context, req SlangRequest) (*SlangPrompt, error) {
	const op = "generate-slang"

	raw, err := g.generateJSON(ctx, op, buildSlangPrompt(req), slangPromptSchema)
	if err != nil {
		return nil, err
	}

	var slang SlangPrompt
	if err := json.Unmarshal(raw, &slang); err != nil {
		return nil, invalidResponse(op, raw, err)
	}
	return &slang, nil
}

func (g *Gemini) AnalyzeRecording(ctx context.Context, req AnalysisRequest) (*Analysis, error) {
	const op = "analyze-recording"

	mimeType := req.MIMEType
	if mimeType == "" {
		mimeType = "audio/webm"
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: buildAnalysisInstruction(req)}},
		},
		ResponseMIMEType: "application/json",
		ResponseSchema:   buildGenaiSchema(speechAnalysisSchema.Definition),
	}

	contents := []*genai.Content{{
		Role: "user",
		Parts: []*genai.Part{
			{InlineData: &genai.Blob{MIMEType: mimeType, Data: req.Audio}},
			{Text: "Analyze this speech recording."},
		},
	}}

	result, err := g.client.Models.GenerateContent(ctx, g.textModel, contents, config)
	if err != nil {
		return nil, mapGeminiError(op, err)
	}

	raw := json.RawMessage(result.Text())
	if err := validateResponse(op, speechAnalysisSchema, raw); err != nil {
		return nil, err
	}

	var analysis Analysis
	if err := json.Unmarshal(raw, &analysis); err != nil {
		return nil, invalidResponse(op, raw, err)
	}
	return &analysis, nil
}

func (g *Gemini) SynthesizeSpeech(ctx context.Context, req SpeechRequest) ([]byte, error) {
	const op = "synthesize-speech"

	voice := req.Voice
	if voice == "" {
		voice = "Kore"
	}

	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: voice},
			},
		},
	}

	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: buildSpeechPrompt(req)}},
	}}

	result, err := g.client.Models.GenerateContent(ctx, g.speechModel, contents, config)
	if err != nil {
		return nil, mapGeminiError(op, err)
	}

	pcm := extractAudio(result)
	if len(pcm) == 0 {
		return nil, invalidResponse(op, nil, errors.New("no audio in response"))
	}
	return pcm, nil
}

func (g *Gemini) GenerateEncouragement(ctx context.Context, req EncouragementRequest) (string, error) {
	const op = "generate-encouragement"

	text, err := g.generateText(ctx, op, buildEncouragementPrompt(req))
	if err != nil {
		return "", err
	}
	if text == "" {
		text = "Good job on your practice!"
	}
	return text, nil
}

func (g *Gemini) TranslateText(ctx context.Context, text string, target models.Language) (string, error) {
	const op = "translate-text"

	translated, err := g.generateText(ctx, op, buildTranslatePrompt(text, target))
	if err != nil {
		return "", err
	}
	if translated == "" {
		return "", invalidResponse(op, nil, errors.New("empty translation"))
	}
	return translated, nil
}

// generateJSON runs a single-turn structured-output request and
// validates the result against the schema
func (g *Gemini) generateJSON(ctx context.Context, op, prompt string, schema schemaDef) (json.RawMessage, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   buildGenaiSchema(schema.Definition),
	}

	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: prompt}},
	}}

	result, err := g.client.Models.GenerateContent(ctx, g.textModel, contents, config)
	if err != nil {
		return nil, mapGeminiError(op, err)
	}

	raw := json.RawMessage(result.Text())
	if err := validateResponse(op, schema, raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// generateText runs a single-turn plain-text request
func (g *Gemini) generateText(ctx context.Context, op, prompt string) (string, error) {
	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: prompt}},
	}}

	result, err := g.client.Models.GenerateContent(ctx, g.textModel, contents, nil)
	if err != nil {
		return "", mapGeminiError(op, err)
	}
	return strings.TrimSpace(result.Text()), nil
}

// extractAudio pulls the inline audio bytes from a speech response
func extractAudio(result *genai.GenerateContentResponse) []byte {
	for _, cand := range result.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data
			}
		}
	}
	return nil
}

// buildGenaiSchema converts a JSON Schema definition map to a genai.Schema
func buildGenaiSchema(def map[string]any) *genai.Schema {
	schema := &genai.Schema{}

	if t, ok := def["type"].(string); ok {
		schema.Type = mapGenaiType(t)
	}
	if desc, ok := def["description"].(string); ok {
		schema.Description = desc
	}

	if props, ok := def["properties"].(map[string]any); ok {
		schema.Properties = make(map[string]*genai.Schema)
		for k, v := range props {
			if propDef, ok := v.(map[string]any); ok {
				schema.Properties[k] = buildGenaiSchema(propDef)
			}
		}
	}

	if req, ok := def["required"].([]any); ok {
		for _, r := range req {
			if s, ok := r.(string); ok {
				schema.Required = append(schema.Required, s)
			}
		}
	}

	if enums, ok := def["enum"].([]any); ok {
		for _, e := range enums {
			if s, ok := e.(string); ok {
				schema.Enum = append(schema.Enum, s)
			}
		}
	}

	if items, ok := def["items"].(map[string]any); ok {
		schema.Items = buildGenaiSchema(items)
	}

	return schema
}

func mapGenaiType(t string) genai.Type {
	switch t {
	case "string":
		return genai.TypeString
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	case "object":
		return genai.TypeObject
	default:
		return genai.TypeString
	}
}

func mapGeminiError(op string, err error) error {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusTooManyRequests:
			return rateLimited(op, err)
		case apiErr.Code >= 500:
			return unavailable(op, err)
		}
	}
	return unavailable(op, err)
}
