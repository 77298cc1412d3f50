package templates

import "github.com/velamalamk2016-ui/aisaathi/pkg/models"

// builtins are the workflow templates that ship with Saathi.
var builtins = map[string]Template{
	"complete_lesson_creation": {
		Name:        "complete_lesson_creation",
		Description: "Complete lesson creation workflow with supporting materials",
		Tasks: []models.TaskSpec{
			{
				ID:    "lesson_plan",
				Type:  "education",
				Agent: "lesson_plan",
				InputData: map[string]any{
					"subject":  "Mathematics",
					"topic":    "Fractions",
					"grade":    "5",
					"duration": 45,
					"language": "english",
				},
			},
			{
				ID:    "teaching_materials",
				Type:  "education",
				Agent: "teaching_aids",
				InputData: map[string]any{
					"subject":  "Mathematics",
					"topic":    "Fractions",
					"grade":    "5",
					"language": "english",
					"aid_type": "worksheet",
				},
				Dependencies: []string{"lesson_plan"},
			},
			{
				ID:    "assessment",
				Type:  "education",
				Agent: "assessment",
				InputData: map[string]any{
					"subject":         "Mathematics",
					"topic":           "Fractions",
					"grade":           "5",
					"language":        "english",
					"assessment_type": "quiz",
				},
				Dependencies: []string{"lesson_plan"},
			},
		},
	},

	"content_localization": {
		Name:        "content_localization",
		Description: "Multi-language content creation workflow",
		Tasks: []models.TaskSpec{
			{
				ID:    "story_creation",
				Type:  "education",
				Agent: "storyteller",
				InputData: map[string]any{
					"topic":    "Environmental Conservation",
					"grade":    "4",
					"language": "english",
					"moral":    "Protect our environment",
				},
			},
			{
				ID:    "translate_to_hindi",
				Type:  "translation",
				Agent: "translation",
				InputData: map[string]any{
					"text":            "Story content will be populated from story_creation",
					"source_language": "english",
					"target_language": "hindi",
				},
				Dependencies: []string{"story_creation"},
			},
			{
				ID:    "translate_to_tamil",
				Type:  "translation",
				Agent: "translation",
				InputData: map[string]any{
					"text":            "Story content will be populated from story_creation",
					"source_language": "english",
					"target_language": "tamil",
				},
				Dependencies: []string{"story_creation"},
			},
		},
	},

	"assessment_workflow": {
		Name:        "assessment_workflow",
		Description: "Comprehensive assessment creation workflow",
		Tasks: []models.TaskSpec{
			{
				ID:    "quiz_creation",
				Type:  "education",
				Agent: "assessment",
				InputData: map[string]any{
					"subject":         "Science",
					"topic":           "Solar System",
					"grade":           "6",
					"language":        "english",
					"assessment_type": "quiz",
				},
			},
			{
				ID:    "supporting_materials",
				Type:  "education",
				Agent: "teaching_aids",
				InputData: map[string]any{
					"subject":  "Science",
					"topic":    "Solar System",
					"grade":    "6",
					"language": "english",
					"aid_type": "flashcard",
				},
				Dependencies: []string{"quiz_creation"},
			},
		},
	},
}
