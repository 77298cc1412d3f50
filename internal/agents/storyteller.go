package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/velamalamk2016-ui/aisaathi/internal/genai"
)

// StorytellerAgent creates educational stories with moral lessons.
type StorytellerAgent struct {
	gen Generator
}

// Name returns the registry key.
func (a *StorytellerAgent) Name() string { return "storyteller" }

// Execute generates a story for the requested topic.
func (a *StorytellerAgent) Execute(ctx context.Context, payload map[string]any) (map[string]any, error) {
	var req StoryRequest
	if err := decodePayload(payload, &req); err != nil {
		return nil, err
	}

	if a.gen == nil {
		return a.demo(req, demoNote), nil
	}

	// Stories benefit from a higher temperature than the other agents.
	temp := 0.8
	text, err := a.gen.Generate(ctx, a.prompt(req), genai.GenerateOptions{MaxTokens: 3072, Temperature: &temp})
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

func (a *StorytellerAgent) prompt(req StoryRequest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Create an engaging educational story for grade %s in %s language about %s.\n\n",
		req.Grade, req.Language, req.Topic)
	if len(req.Characters) > 0 {
		fmt.Fprintf(&sb, "Include these characters: %s\n", strings.Join(req.Characters, ", "))
	}
	if req.Moral != "" {
		fmt.Fprintf(&sb, "Moral lesson: %s\n", req.Moral)
	}
	sb.WriteString(`
Make it culturally relevant for Indian children with familiar settings and situations.

**Requirements:**
1. Culturally relevant for Indian students (Indian names, festivals, food, traditions)
2. Age-appropriate language and concepts
3. Clear moral message woven naturally into the story
4. Include discussion points and activities

**Output Format (JSON):**
{
  "title": "Engaging story title",
  "content": "Complete story text with dialogue and descriptions",
  "moral": "clear moral lesson",
  "characters": ["character names and brief descriptions"],
  "setting": "detailed story setting",
  "vocabularyWords": ["new words students will learn"],
  "discussionQuestions": ["thought-provoking questions for students"],
  "activities": ["follow-up activities for students"]
}

Respond with ONLY the JSON object. Create a rich, engaging story that students will remember and learn from!`)
	return sb.String()
}

func (a *StorytellerAgent) demo(req StoryRequest, note string) map[string]any {
	moral := req.Moral
	if moral == "" {
		moral = "Learning is fun!"
	}
	return map[string]any{
		"success":    true,
		"title":      fmt.Sprintf("The Adventures of %s", req.Topic),
		"content":    fmt.Sprintf("Generated educational story about %s for Grade %s", req.Topic, req.Grade),
		"moral":      moral,
		"characters": req.Characters,
		"activities": []string{"Discussion questions", "Role-play activity", "Art activity"},
		"note":       note,
	}
}
