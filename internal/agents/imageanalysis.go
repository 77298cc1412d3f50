package agents

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/velamalamk2016-ui/aisaathi/internal/genai"
)

// ImageAnalysisAgent analyzes educational images with the model's vision input.
type ImageAnalysisAgent struct {
	gen Generator
}

// Name returns the registry key.
func (a *ImageAnalysisAgent) Name() string { return "image_analysis" }

// Execute analyzes the submitted image for educational content.
func (a *ImageAnalysisAgent) Execute(ctx context.Context, payload map[string]any) (map[string]any, error) {
	var req ImageAnalysisRequest
	if err := decodePayload(payload, &req); err != nil {
		return nil, err
	}

	if a.gen == nil {
		return a.demo(req, demoNote), nil
	}

	data := req.ImageData
	if data == "" {
		raw, err := os.ReadFile(req.ImagePath)
		if err != nil {
			return nil, fmt.Errorf("read image: %w", err)
		}
		data = base64.StdEncoding.EncodeToString(raw)
	}

	text, err := a.gen.GenerateWithImage(ctx, analysisPrompt, "image/jpeg", data, genai.GenerateOptions{MaxTokens: 2048})
	if err != nil {
		return a.demo(req, fmt.Sprintf("Demo content due to API error: %v", err)), nil
	}

	result, err := genai.ParseModelJSON(text)
	if err != nil {
		return a.demo(req, fmt.Sprintf("Demo content due to unparseable model output: %v", err)), nil
	}

	result["aiGenerated"] = true
	result["model"] = a.gen.ModelName()
	result["analysisType"] = "educational_image_analysis"
	return result, nil
}

const analysisPrompt = `Analyze this image for educational purposes. Provide a comprehensive analysis suitable for Indian educational context.

**Requirements:**
1. Identify all visible objects, people, or scenes
2. Suggest educational concepts that could be taught
3. Provide age-appropriate questions for different grade levels
4. Suggest hands-on activities based on the image

**Output Format (JSON):**
{
  "description": "detailed description of the image",
  "elements": ["list of key elements visible"],
  "educationalConcepts": ["concepts that can be taught"],
  "gradeLevel": "suggested grade levels for this content",
  "subjectAreas": ["subjects this image relates to"],
  "discussionQuestions": {
    "beginner": ["questions for younger students"],
    "intermediate": ["questions for middle grade students"],
    "advanced": ["questions for older students"]
  },
  "activities": ["hands-on activities inspired by this image"],
  "vocabularyWords": ["new words students can learn"]
}

Respond with ONLY the JSON object.`

func (a *ImageAnalysisAgent) demo(req ImageAnalysisRequest, note string) map[string]any {
	source := req.ImagePath
	if source == "" {
		source = "inline image data"
	}
	return map[string]any{
		"success":          true,
		"analysis":         fmt.Sprintf("Image analysis for %s", source),
		"objects_detected": []string{"educational content", "text"},
		"text_extracted":   "Sample educational text",
		"note":             note,
	}
}
