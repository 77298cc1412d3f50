package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/velamalamk2016-ui/aisaathi/internal/genai"
)

// TranslationAgent translates educational content between languages.
type TranslationAgent struct {
	gen Generator
}

// Name returns the registry key.
func (a *TranslationAgent) Name() string { return "translation" }

// Execute translates the payload text.
func (a *TranslationAgent) Execute(ctx context.Context, payload map[string]any) (map[string]any, error) {
	var req TranslationRequest
	if err := decodePayload(payload, &req); err != nil {
		return nil, err
	}

	if a.gen == nil {
		return a.demo(req, demoNote), nil
	}

	// Low temperature keeps translations stable.
	temp := 0.3
	text, err := a.gen.Generate(ctx, a.prompt(req), genai.GenerateOptions{MaxTokens: 1024, Temperature: &temp})
	if err != nil {
		return a.demo(req, fmt.Sprintf("Demo content due to API error: %v", err)), nil
	}

	result, err := genai.ParseModelJSON(text)
	if err != nil {
		return a.demo(req, fmt.Sprintf("Demo content due to unparseable model output: %v", err)), nil
	}

	result["aiGenerated"] = true
	result["model"] = a.gen.ModelName()
	return result, nil
}

func (a *TranslationAgent) prompt(req TranslationRequest) string {
	return fmt.Sprintf(`Translate the following text from %s to %s.

Provide accurate, culturally appropriate translation suitable for Indian educational context.

**Requirements:**
1. Maintain educational meaning and context
2. Preserve technical terms where appropriate
3. Include pronunciation guide if helpful

Text to translate: "%s"

**Output Format (JSON):**
{
  "originalText": "original text",
  "translatedText": "accurately translated text",
  "fromLanguage": "%s",
  "toLanguage": "%s",
  "culturalNotes": "any cultural adaptation notes if relevant",
  "pronunciationGuide": "pronunciation help if needed"
}

Respond with ONLY the JSON object.`,
		req.SourceLanguage, req.TargetLanguage, req.Text, req.SourceLanguage, req.TargetLanguage)
}

func (a *TranslationAgent) demo(req TranslationRequest, note string) map[string]any {
	return map[string]any{
		"success": true,
		"translated_text": fmt.Sprintf("[TRANSLATED FROM %s TO %s] %s",
			strings.ToUpper(req.SourceLanguage), strings.ToUpper(req.TargetLanguage), req.Text),
		"original_text":   req.Text,
		"source_language": req.SourceLanguage,
		"target_language": req.TargetLanguage,
		"note":            note,
	}
}
