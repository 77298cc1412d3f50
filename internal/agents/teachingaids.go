package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/velamalamk2016-ui/aisaathi/internal/genai"
)

// demoNote is attached to demo results produced when no API client is configured.
const demoNote = "This is demo content. Configure an Anthropic API key to generate real content."

// TeachingAidsAgent generates worksheets, flashcards, and visual learning materials.
type TeachingAidsAgent struct {
	gen Generator
}

// Name returns the registry key.
func (a *TeachingAidsAgent) Name() string { return "teaching_aids" }

// Execute generates the requested teaching aid.
func (a *TeachingAidsAgent) Execute(ctx context.Context, payload map[string]any) (map[string]any, error) {
	var req TeachingAidRequest
	if err := decodePayload(payload, &req); err != nil {
		return nil, err
	}

	if a.gen == nil {
		return a.demo(req, demoNote), nil
	}

	temp := 0.7
	text, err := a.gen.Generate(ctx, a.prompt(req), genai.GenerateOptions{MaxTokens: 2048, Temperature: &temp})
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

func (a *TeachingAidsAgent) prompt(req TeachingAidRequest) string {
	return fmt.Sprintf(`Create a %s for %s grade %s on "%s" in %s language.

Make it suitable for a low-resource Indian classroom and culturally relevant
(Indian names, examples, festivals, food).

**Output Format (JSON):**
{
  "title": "Title of the %s",
  "type": "%s",
  "subject": "%s",
  "topic": "%s",
  "content": "Complete %s content ready to use",
  "instructions": "How the teacher should use this material",
  "answerKey": "Answers where applicable",
  "materials": ["any physical materials needed"]
}

Respond with ONLY the JSON object.`,
		req.AidType, req.Subject, req.Grade, req.Topic, req.Language,
		req.AidType, req.AidType, req.Subject, req.Topic, req.AidType)
}

func (a *TeachingAidsAgent) demo(req TeachingAidRequest, note string) map[string]any {
	result := map[string]any{
		"success": true,
		"content": fmt.Sprintf("Generated %s for %s - %s (Grade %s)", req.AidType, req.Subject, req.Topic, req.Grade),
		"type":    req.AidType,
		"subject": req.Subject,
		"topic":   req.Topic,
		"note":    note,
	}
	if req.AidType == "flashcard" {
		if cards := topicFlashcards(req); len(cards) > 0 {
			result["flashcards"] = cards
		}
	}
	return result
}

// topicFlashcards returns canned flashcards with inline SVG visuals for a few
// well-known topics, matching the original demo behavior.
func topicFlashcards(req TeachingAidRequest) []map[string]any {
	topic := strings.ToLower(req.Topic)
	subject := strings.ToLower(req.Subject)

	if strings.Contains(subject, "math") {
		switch {
		case strings.Contains(topic, "shape"):
			return []map[string]any{
				{
					"frontImage":       shapeSVG("circle"),
					"frontText":        "Circle",
					"backText":         "वृत्त",
					"imageType":        "svg",
					"realWorldExample": "Sun, orange, wheel, clock face",
				},
				{
					"frontImage":       shapeSVG("triangle"),
					"frontText":        "Triangle",
					"backText":         "त्रिकोण",
					"imageType":        "svg",
					"realWorldExample": "Mountain, samosa, tent, roof",
				},
				{
					"frontImage":       shapeSVG("square"),
					"frontText":        "Square",
					"backText":         "वर्ग",
					"imageType":        "svg",
					"realWorldExample": "House window, book, tile, box",
				},
			}
		case strings.Contains(topic, "add"):
			return []map[string]any{
				{
					"frontImage":       applesSVG(2, 3),
					"backImage":        applesSVG(5, 0),
					"frontText":        "2 + 3",
					"backText":         "5",
					"imageType":        "svg",
					"realWorldExample": "Count and add real fruits",
				},
				{
					"frontImage":       applesSVG(1, 4),
					"backImage":        applesSVG(5, 0),
					"frontText":        "1 + 4",
					"backText":         "5",
					"imageType":        "svg",
					"realWorldExample": "Use real objects to count",
				},
			}
		}
	}

	return nil
}
