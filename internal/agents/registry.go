// Package agents implements the Saathi agent capabilities and the dispatch
// registry that maps agent names to them.
package agents

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/velamalamk2016-ui/aisaathi/internal/genai"
)

// ErrUnknownAgent indicates a task named an agent that is not registered.
var ErrUnknownAgent = errors.New("unknown agent")

// Capability transforms an input payload into a result mapping.
// Capabilities are independent and side-effect-free with respect to each other.
type Capability interface {
	// Name returns the registry key for this capability.
	Name() string
	// Execute runs the capability against the payload. Payload validation
	// happens here, at the dispatch boundary, before any model call.
	Execute(ctx context.Context, payload map[string]any) (map[string]any, error)
}

// Generator is the slice of genai.Client the agents consume.
// A nil Generator puts every agent in demo mode.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts genai.GenerateOptions) (string, error)
	GenerateWithImage(ctx context.Context, prompt, mediaType, data string, opts genai.GenerateOptions) (string, error)
	ModelName() string
}

// Info describes a registered agent for the /agents endpoint and the CLI.
type Info struct {
	// Name is the registry key.
	Name string `json:"name"`
	// DisplayName is the human-readable agent name.
	DisplayName string `json:"display_name"`
	// Description summarizes what the agent produces.
	Description string `json:"description"`
	// Inputs lists the payload fields the agent accepts.
	Inputs []string `json:"inputs"`
}

// Registry maps agent names to capabilities. The registration table is fixed
// at construction; Registry is safe for concurrent use after that.
type Registry struct {
	capabilities map[string]Capability
	infos        map[string]Info
}

// NewRegistry builds the registry with the six Saathi agents.
// gen may be nil, in which case agents produce demo content.
func NewRegistry(gen Generator) *Registry {
	r := &Registry{
		capabilities: make(map[string]Capability),
		infos:        make(map[string]Info),
	}

	r.register(&TeachingAidsAgent{gen: gen}, Info{
		DisplayName: "Teaching Aids Agent",
		Description: "Generate worksheets, flashcards, and educational materials",
		Inputs:      []string{"subject", "topic", "grade", "language", "aid_type"},
	})
	r.register(&LessonPlanAgent{gen: gen}, Info{
		DisplayName: "Lesson Plan Agent",
		Description: "Create detailed lesson plans with activities",
		Inputs:      []string{"subject", "topic", "grade", "duration", "language"},
	})
	r.register(&AssessmentAgent{gen: gen}, Info{
		DisplayName: "Assessment Agent",
		Description: "Generate quizzes, tests, and assignments",
		Inputs:      []string{"subject", "topic", "grade", "language", "assessment_type", "question_count"},
	})
	r.register(&TranslationAgent{gen: gen}, Info{
		DisplayName: "Translation Agent",
		Description: "Translate content between languages",
		Inputs:      []string{"text", "source_language", "target_language"},
	})
	r.register(&StorytellerAgent{gen: gen}, Info{
		DisplayName: "Storyteller Agent",
		Description: "Create educational stories with moral lessons",
		Inputs:      []string{"topic", "grade", "language", "moral", "characters"},
	})
	r.register(&ImageAnalysisAgent{gen: gen}, Info{
		DisplayName: "Image Analysis Agent",
		Description: "Analyze educational images and extract content",
		Inputs:      []string{"image_path", "image_data"},
	})

	return r
}

func (r *Registry) register(c Capability, info Info) {
	info.Name = c.Name()
	r.capabilities[c.Name()] = c
	r.infos[c.Name()] = info
}

// Resolve returns the capability for the given agent name.
// Returns ErrUnknownAgent (wrapped with the name) if not registered.
func (r *Registry) Resolve(name string) (Capability, error) {
	c, ok := r.capabilities[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAgent, name)
	}
	return c, nil
}

// Invoke resolves and executes the named agent against the payload.
func (r *Registry) Invoke(ctx context.Context, name string, payload map[string]any) (map[string]any, error) {
	c, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}
	return c.Execute(ctx, payload)
}

// Names returns the registered agent names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.capabilities))
	for name := range r.capabilities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns metadata for every registered agent, sorted by name.
func (r *Registry) Describe() []Info {
	infos := make([]Info, 0, len(r.infos))
	for _, name := range r.Names() {
		infos = append(infos, r.infos[name])
	}
	return infos
}
