package agents

import (
	"context"
	"fmt"

	"github.com/velamalamk2016-ui/aisaathi/internal/genai"
)

// AssessmentAgent creates quizzes, tests and assignments with answer keys.
type AssessmentAgent struct {
	gen Generator
}

// Name returns the registry key.
func (a *AssessmentAgent) Name() string { return "assessment" }

// Execute generates an assessment for the requested subject and topic.
func (a *AssessmentAgent) Execute(ctx context.Context, payload map[string]any) (map[string]any, error) {
	var req AssessmentRequest
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

func (a *AssessmentAgent) prompt(req AssessmentRequest) string {
	return fmt.Sprintf(`Create %d comprehensive %s questions for %s grade %s on "%s" in %s language.

Make questions appropriate for Indian students. Consider different learning
styles and cultural context.

**Requirements:**
1. Culturally relevant for Indian students (use Indian names, examples, festivals, food)
2. Mix of question types (multiple choice, short answer, verbal, practical)
3. Clear Hindi/English language mix as appropriate
4. Immediate feedback and explanations

**Output Format (JSON):**
{
  "title": "Assessment title",
  "description": "Brief description of the assessment",
  "questions": [
    {
      "question": "Question text",
      "type": "multiple-choice|short-answer|verbal|practical",
      "options": ["option1", "option2", "option3", "option4"],
      "correctAnswer": "correct answer",
      "explanation": "detailed explanation for correct answer"
    }
  ],
  "instructions": "Instructions for conducting assessment",
  "timeRequired": "estimated time",
  "scoringGuide": "how to score and interpret results"
}

Respond with ONLY the JSON object.`,
		req.QuestionCount, req.AssessmentType, req.Subject, req.Grade, req.Topic, req.Language)
}

func (a *AssessmentAgent) demo(req AssessmentRequest, note string) map[string]any {
	questions := make([]map[string]any, 0, req.QuestionCount)
	for i := 0; i < req.QuestionCount; i++ {
		questions = append(questions, map[string]any{
			"question":      fmt.Sprintf("Sample question %d about %s", i+1, req.Topic),
			"type":          "multiple-choice",
			"options":       []string{"Option A", "Option B", "Option C", "Option D"},
			"correctAnswer": "Option A",
			"explanation":   "Sample explanation for correct answer",
		})
	}

	return map[string]any{
		"success":      true,
		"title":        fmt.Sprintf("%s Assessment - %s", req.Subject, req.Topic),
		"content":      fmt.Sprintf("Generated %s for %s - %s", req.AssessmentType, req.Subject, req.Topic),
		"type":         req.AssessmentType,
		"questions":    questions,
		"instructions": "Instructions for conducting the assessment",
		"note":         note,
	}
}
