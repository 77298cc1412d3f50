package genai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseModelJSON parses a JSON object out of a model response, tolerating the
// markdown code fences models often wrap structured output in.
func ParseModelJSON(content string) (map[string]any, error) {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.ReplaceAll(content, "```", "")
		content = strings.TrimSpace(content)
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}

	// Some models add prose around the object; fall back to the outermost braces.
	if !strings.HasPrefix(content, "{") {
		start := strings.Index(content, "{")
		end := strings.LastIndex(content, "}")
		if start == -1 || end <= start {
			return nil, fmt.Errorf("no JSON object found in response")
		}
		content = content[start : end+1]
	}

	var result map[string]any
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("parse model response: %w", err)
	}
	return result, nil
}
