package gateway

import (
	"fmt"
	"strings"

	"github.com/drewham94/AMai-Code/internal/models"
)

// levelDescriptions guides the model on sentence complexity per level
var levelDescriptions = map[models.SkillLevel]string{
	models.SkillNovice:       "no experience, very simple words, very short phrases (3-5 words), basic sentence structure",
	models.SkillBeginner:     "basic experience, common vocabulary, simple sentences (5-8 words), clear pronunciation",
	models.SkillIntermediate: "decent experience, varied vocabulary, moderate sentence structures (8-12 words), natural flow",
	models.SkillAdvanced:     "a lot of experience, sophisticated vocabulary, complex sentences (12-18 words), idiomatic expressions",
	models.SkillExpert:       "near-native fluency, highly technical or literary vocabulary, complex structures (18-25 words), subtle nuances",
}

func buildPracticePrompt(req PromptRequest) string {
	task := "phrase to read aloud"
	if req.Mode == models.ModeRespond {
		task = "open-ended question"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate a %s in %s for a %s learner.\n", task, req.Language, req.SkillLevel)
	fmt.Fprintf(&b, "The learner's level is %s (%s).\n", req.SkillLevel, levelDescriptions[req.SkillLevel])
	b.WriteString("IMPORTANT: Keep the sentence relatively short and slightly easier than the typical level to ensure success.\n")
	fmt.Fprintf(&b, "The context should be %s.\n", req.Flavor)
	if len(req.PriorityWords) > 0 {
		fmt.Fprintf(&b, "Try to naturally incorporate some of these words the learner is studying: %s.\n", strings.Join(req.PriorityWords, ", "))
	}
	if scenario := truncateWords(req.Context, maxContextWords); scenario != "" {
		fmt.Fprintf(&b, "The scenario is: %s.\n", scenario)
	}
	b.WriteString("\nReturn the response in JSON format with:\n")
	fmt.Fprintf(&b, "- text: the %s text.\n", req.Language)
	b.WriteString("- translation: English translation. IMPORTANT: Highlight the English equivalents of the vocabulary words below by wrapping them in **bold** text within this translation string.\n")
	b.WriteString("- vocabulary: an array of 2-3 advanced or interesting words from the text, each with 'word', 'definition' (in English), 'englishEquivalent' (the specific word or phrase used in the translation), and 'wordType' (noun, verb, adjective, or expression).")
	return b.String()
}

func buildSlangPrompt(req SlangRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a short, natural sentence in %s that uses 1-2 slang terms specific to the %s accent (Region: %s).\n", req.Language, req.Accent, req.Region)
	fmt.Fprintf(&b, "If the accent is very specific, use local slang. If not, use common %s slang.\n", req.Language)
	if scenario := truncateWords(req.Context, maxContextWords); scenario != "" {
		fmt.Fprintf(&b, "The scenario is: %s.\n", scenario)
	}
	b.WriteString("Highlight the slang terms in the sentence using **bold** text.\n")
	b.WriteString("\nReturn the response in JSON format with:\n")
	b.WriteString("- sentence: the full sentence with bolded slang.\n")
	b.WriteString("- terms: an array of objects, each with 'term' (the slang word), 'meaning' (simple explanation in English), and 'wordType' (noun, verb, adjective, or expression).")
	return b.String()
}

func buildAnalysisInstruction(req AnalysisRequest) string {
	activity := "reading"
	if req.Mode != models.ModeRead {
		activity = "responding to"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert accent coach for %s.\n", req.Language)
	fmt.Fprintf(&b, "You are analyzing a student's recording of them %s the prompt: %q.\n", activity, req.Prompt)
	fmt.Fprintf(&b, "The student is a %s learner aiming for a %s accent.\n", req.SkillLevel, req.Accent)
	b.WriteString("\nAnalyze the audio for:\n")
	fmt.Fprintf(&b, "1. Pronunciation accuracy (relative to a %s level).\n", req.SkillLevel)
	b.WriteString("2. Intonation and rhythm (prosody).\n")
	fmt.Fprintf(&b, "3. Specific accent features of %s.\n", req.Accent)
	b.WriteString("\nProvide feedback in JSON format with:\n")
	b.WriteString("- score: a number from 0 to 100.\n")
	b.WriteString("- strengths: an array of 2-3 things they did well.\n")
	b.WriteString("- improvements: an array of 2-3 specific areas to work on.\n")
	b.WriteString("- detailedAnalysis: a markdown string explaining the phonetics and rhythm issues.")
	return b.String()
}

func buildEncouragementPrompt(req EncouragementRequest) string {
	responseLanguage := string(req.TargetLanguage)
	if req.Language == models.AssistantEnglish {
		responseLanguage = fmt.Sprintf("English with a %s accent style", req.EnglishAccent)
	}

	var b strings.Builder
	b.WriteString("You are a friendly accent tutor.\n")
	fmt.Fprintf(&b, "The student just completed a practice session in %s and got a score of %d/100.\n", req.TargetLanguage, req.Score)
	fmt.Fprintf(&b, "Strengths: %s\n", strings.Join(req.Feedback.Strengths, ", "))
	fmt.Fprintf(&b, "Improvements: %s\n", strings.Join(req.Feedback.Improvements, ", "))
	b.WriteString("\nGenerate a short, encouraging conversational response (2-3 sentences) summarizing this feedback.\n")
	fmt.Fprintf(&b, "The response MUST be in %s.\n", responseLanguage)
	b.WriteString("Provide ONLY the response text.")
	return b.String()
}

func buildSpeechPrompt(req SpeechRequest) string {
	if req.Accent == "" {
		return req.Text
	}
	return fmt.Sprintf("Say this in a natural %s accent: %s", req.Accent, req.Text)
}

func buildTranslatePrompt(text string, target models.Language) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Translate the following English text to %s.\n", target)
	b.WriteString("Provide ONLY the translation, no commentary.\n\n")
	b.WriteString(text)
	return b.String()
}

// maxContextWords bounds user-supplied scenario text fed into prompts
const maxContextWords = 20

func truncateWords(s string, max int) string {
	words := strings.Fields(s)
	if len(words) <= max {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:max], " ")
}
