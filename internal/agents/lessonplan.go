package agents

import (
	"context"
	"fmt"

	"github.com/velamalamk2016-ui/aisaathi/internal/genai"
)

// LessonPlanAgent creates lesson plans for multi-grade classrooms.
type LessonPlanAgent struct {
	gen Generator
}

// Name returns the registry key.
func (a *LessonPlanAgent) Name() string { return "lesson_plan" }

// Execute generates a lesson plan for the requested subject and topic.
func (a *LessonPlanAgent) Execute(ctx context.Context, payload map[string]any) (map[string]any, error) {
	var req LessonPlanRequest
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

func (a *LessonPlanAgent) prompt(req LessonPlanRequest) string {
	return fmt.Sprintf(`Create a comprehensive lesson plan for %s grade %s for %d minutes on "%s" in %s language.

Design it for a multi-grade Indian classroom with students of different ages learning together. Include activities that can be adapted for different skill levels.

**Requirements:**
1. Culturally relevant for Indian students (use Indian names, examples, festivals, food)
2. Low-resource classroom friendly
3. Multi-sensory learning approach
4. Clear Hindi/English language mix as appropriate
5. Real-world connections to Indian rural life

**Output Format (JSON):**
{
  "title": "Engaging lesson title",
  "objective": "Clear learning objectives",
  "timeBreakdown": [
    {"activity": "Activity name", "duration": minutes, "description": "detailed activity description", "instructions": "step-by-step instructions"}
  ],
  "materials": ["all materials needed"],
  "instructions": "Overall teaching instructions",
  "adaptations": "How to adapt for different grades and learning styles",
  "assessmentStrategies": ["ways to assess student understanding"],
  "culturalConnections": "Indian cultural elements and real-world connections",
  "extensions": ["follow-up activities", "homework ideas"]
}

Respond with ONLY the JSON object. Make it practical and immediately usable by teachers in Indian rural classrooms!`,
		req.Subject, req.Grade, req.Duration, req.Topic, req.Language)
}

func (a *LessonPlanAgent) demo(req LessonPlanRequest, note string) map[string]any {
	main := req.Duration - 15
	if main < 5 {
		main = 5
	}
	return map[string]any{
		"success":   true,
		"title":     fmt.Sprintf("%s Lesson Plan - %s", req.Subject, req.Topic),
		"content":   fmt.Sprintf("Generated lesson plan for %s - %s (%d mins)", req.Subject, req.Topic, req.Duration),
		"objective": fmt.Sprintf("Students will learn about %s through hands-on activities", req.Topic),
		"duration":  req.Duration,
		"timeBreakdown": []map[string]any{
			{"activity": "Introduction", "duration": 5},
			{"activity": "Main Activity", "duration": main},
			{"activity": "Wrap-up", "duration": 10},
		},
		"activities":  []string{"Introduction", "Main Activity", "Assessment", "Conclusion"},
		"adaptations": "Activities can be adapted for different skill levels",
		"note":        note,
	}
}
