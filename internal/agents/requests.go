package agents

import (
	"encoding/json"
	"fmt"
)

// Each agent accepts its own request shape. The opaque task payload is decoded
// into the agent's request struct and validated before the capability body
// runs, so invalid submissions fail at the dispatch boundary.

// TeachingAidRequest is the payload for the teaching_aids agent.
type TeachingAidRequest struct {
	Subject  string `json:"subject"`
	Topic    string `json:"topic"`
	Grade    string `json:"grade"`
	Language string `json:"language"`
	AidType  string `json:"aid_type"`
}

// Validate checks required fields and applies defaults.
func (r *TeachingAidRequest) Validate() error {
	if r.Subject == "" || r.Topic == "" || r.Grade == "" {
		return fmt.Errorf("teaching_aids requires subject, topic and grade")
	}
	if r.Language == "" {
		r.Language = "english"
	}
	if r.AidType == "" {
		r.AidType = "worksheet"
	}
	return nil
}

// LessonPlanRequest is the payload for the lesson_plan agent.
type LessonPlanRequest struct {
	Subject  string `json:"subject"`
	Topic    string `json:"topic"`
	Grade    string `json:"grade"`
	Duration int    `json:"duration"`
	Language string `json:"language"`
}

// Validate checks required fields and applies defaults.
func (r *LessonPlanRequest) Validate() error {
	if r.Subject == "" || r.Topic == "" || r.Grade == "" {
		return fmt.Errorf("lesson_plan requires subject, topic and grade")
	}
	if r.Duration <= 0 {
		r.Duration = 45
	}
	if r.Language == "" {
		r.Language = "english"
	}
	return nil
}

// AssessmentRequest is the payload for the assessment agent.
type AssessmentRequest struct {
	Subject        string `json:"subject"`
	Topic          string `json:"topic"`
	Grade          string `json:"grade"`
	Language       string `json:"language"`
	AssessmentType string `json:"assessment_type"`
	QuestionCount  int    `json:"question_count"`
}

// Validate checks required fields and applies defaults.
func (r *AssessmentRequest) Validate() error {
	if r.Subject == "" || r.Topic == "" || r.Grade == "" {
		return fmt.Errorf("assessment requires subject, topic and grade")
	}
	if r.Language == "" {
		r.Language = "english"
	}
	if r.AssessmentType == "" {
		r.AssessmentType = "quiz"
	}
	if r.QuestionCount <= 0 {
		r.QuestionCount = 5
	}
	return nil
}

// TranslationRequest is the payload for the translation agent.
type TranslationRequest struct {
	Text           string `json:"text"`
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
}

// Validate checks required fields.
func (r *TranslationRequest) Validate() error {
	if r.Text == "" {
		return fmt.Errorf("translation requires text")
	}
	if r.SourceLanguage == "" || r.TargetLanguage == "" {
		return fmt.Errorf("translation requires source_language and target_language")
	}
	return nil
}

// StoryRequest is the payload for the storyteller agent.
type StoryRequest struct {
	Topic      string   `json:"topic"`
	Grade      string   `json:"grade"`
	Language   string   `json:"language"`
	Moral      string   `json:"moral"`
	Characters []string `json:"characters"`
}

// Validate checks required fields and applies defaults.
func (r *StoryRequest) Validate() error {
	if r.Topic == "" || r.Grade == "" {
		return fmt.Errorf("storyteller requires topic and grade")
	}
	if r.Language == "" {
		r.Language = "english"
	}
	return nil
}

// ImageAnalysisRequest is the payload for the image_analysis agent.
// Exactly one of ImagePath or ImageData must be provided; ImageData may be a
// bare base64 string or a data: URL.
type ImageAnalysisRequest struct {
	ImagePath string `json:"image_path"`
	ImageData string `json:"image_data"`
}

// Validate checks that an image source is present.
func (r *ImageAnalysisRequest) Validate() error {
	if r.ImagePath == "" && r.ImageData == "" {
		return fmt.Errorf("image_analysis requires image_path or image_data")
	}
	return nil
}

// decodePayload converts the opaque payload mapping into the agent's request
// struct via a JSON round-trip, then validates it.
func decodePayload(payload map[string]any, target interface{ Validate() error }) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return target.Validate()
}
