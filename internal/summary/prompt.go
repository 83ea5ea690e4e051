package summary

import (
	"fmt"

	"github.com/xxxsen/legalease/internal/ai"
)

const (
	firstAttemptSystem = "You are an expert legal simplification engine."
	retryAttemptSystem = "Strict multilingual rewriting engine."
)

var (
	FirstAttemptOptions = ai.ChatOptions{MaxTokens: 350, Temperature: 0.12}
	RetryAttemptOptions = ai.ChatOptions{MaxTokens: 320, Temperature: 0.05}
)

func BuildPrompt(text string, lang Language) string {
	return fmt.Sprintf(`
You are LegalEase AI, an expert judicial-simplification and translation engine.

MISSION:
Convert the judgment text into a simple, citizen-friendly summary.

INSTRUCTIONS:
1. Extract ONLY the final judgment outcome.
2. Remove all legal jargon and case history.
3. Produce EXACTLY 3 bullet points.
4. Write ONLY in %[2]s. ZERO English allowed if language is not English.
5. Each bullet must be 1-2 very short sentences.
6. No extra headings. No disclaimers.

TEXT TO ANALYZE:
%[1]s

OUTPUT REQUIRED:
- 3 bullet points in %[2]s only
`, text, lang)
}

func BuildRetryPrompt(text string, lang Language) string {
	return fmt.Sprintf(`
Your previous answer included English. Now STRICTLY produce the answer ONLY in %[2]s.

REQUIREMENTS:
- Exactly 3 bullet points
- VERY simple %[2]s
- No English at all
- No introductions, headings, or explanations

TEXT:
%[1]s

OUTPUT NOW:
3 bullet points in %[2]s only.
`, text, lang)
}

// InitialMessages is the chat payload for the first attempt.
func InitialMessages(text string, lang Language) []ai.Message {
	return []ai.Message{
		{Role: ai.RoleSystem, Content: firstAttemptSystem},
		{Role: ai.RoleUser, Content: BuildPrompt(text, lang)},
	}
}

// RetryMessages is the chat payload used after leakage was detected.
func RetryMessages(text string, lang Language) []ai.Message {
	return []ai.Message{
		{Role: ai.RoleSystem, Content: retryAttemptSystem},
		{Role: ai.RoleUser, Content: BuildRetryPrompt(text, lang)},
	}
}
