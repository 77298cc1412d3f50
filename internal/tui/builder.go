// Package tui implements the interactive workflow builder used by
// `saathi create`. It walks the user through naming a workflow and adding
// tasks one field at a time, then hands the assembled task specs back to
// the caller for execution.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/velamalamk2016-ui/aisaathi/pkg/models"
)

// step identifies where the builder is in the prompt sequence.
type step int

const (
	stepWorkflowID step = iota
	stepTaskID
	stepAgent
	stepField
	stepDependencies
)

// fieldPrompt describes one input field collected for an agent.
type fieldPrompt struct {
	key     string
	prompt  string
	def     string
	numeric bool
	list    bool
}

// agentFields maps each agent to the payload fields the builder collects,
// mirroring what the agents validate.
var agentFields = map[string][]fieldPrompt{
	"teaching_aids": {
		{key: "subject", prompt: "Subject"},
		{key: "topic", prompt: "Topic"},
		{key: "grade", prompt: "Grade"},
		{key: "language", prompt: "Language", def: "english"},
		{key: "aid_type", prompt: "Aid type (worksheet/flashcard/poster)", def: "worksheet"},
	},
	"lesson_plan": {
		{key: "subject", prompt: "Subject"},
		{key: "topic", prompt: "Topic"},
		{key: "grade", prompt: "Grade"},
		{key: "duration", prompt: "Duration (minutes)", def: "45", numeric: true},
		{key: "language", prompt: "Language", def: "english"},
	},
	"assessment": {
		{key: "subject", prompt: "Subject"},
		{key: "topic", prompt: "Topic"},
		{key: "grade", prompt: "Grade"},
		{key: "language", prompt: "Language", def: "english"},
		{key: "assessment_type", prompt: "Assessment type (quiz/test/assignment)", def: "quiz"},
	},
	"translation": {
		{key: "text", prompt: "Text to translate"},
		{key: "source_language", prompt: "Source language", def: "english"},
		{key: "target_language", prompt: "Target language"},
	},
	"storyteller": {
		{key: "topic", prompt: "Topic"},
		{key: "grade", prompt: "Grade"},
		{key: "language", prompt: "Language", def: "english"},
		{key: "moral", prompt: "Moral of the story"},
		{key: "characters", prompt: "Characters (comma separated)", list: true},
	},
	"image_analysis": {
		{key: "image_path", prompt: "Image path"},
	},
}

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	taskStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	inputBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// Builder is the bubbletea model for the interactive workflow creator.
type Builder struct {
	agents []string
	input  textinput.Model
	width  int

	step       step
	fieldIndex int
	errMsg     string

	workflowID string
	current    models.TaskSpec
	payload    map[string]any
	tasks      []models.TaskSpec

	done     bool
	canceled bool
}

// NewBuilder creates a Builder offering the given agent names.
func NewBuilder(agentNames []string) *Builder {
	ti := textinput.New()
	ti.Placeholder = "leave blank for a generated ID"
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	return &Builder{
		agents:  agentNames,
		input:   ti,
		width:   80,
		payload: make(map[string]any),
	}
}

// WorkflowID returns the workflow ID the user entered, possibly empty.
func (b *Builder) WorkflowID() string { return b.workflowID }

// Tasks returns the assembled task specs.
func (b *Builder) Tasks() []models.TaskSpec { return b.tasks }

// Canceled reports whether the user aborted the builder.
func (b *Builder) Canceled() bool { return b.canceled }

// Init implements tea.Model.
func (b *Builder) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (b *Builder) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.input.Width = msg.Width - 6
		return b, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			b.canceled = true
			return b, tea.Quit
		case "enter":
			return b.submit()
		}
	}

	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)
	return b, cmd
}

// submit consumes the current input value and advances the prompt sequence.
func (b *Builder) submit() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(b.input.Value())
	b.input.Reset()
	b.errMsg = ""

	switch b.step {
	case stepWorkflowID:
		b.workflowID = value
		b.toTaskID()

	case stepTaskID:
		if value == "done" {
			if len(b.tasks) == 0 {
				b.errMsg = "add at least one task before finishing"
				return b, nil
			}
			b.done = true
			return b, tea.Quit
		}
		if value == "" {
			value = models.DefaultTaskID(len(b.tasks))
		}
		b.current = models.TaskSpec{ID: value, Type: "custom"}
		b.payload = make(map[string]any)
		b.toAgent()

	case stepAgent:
		if _, ok := agentFields[value]; !ok {
			b.errMsg = fmt.Sprintf("unknown agent %q", value)
			return b, nil
		}
		b.current.Agent = value
		b.fieldIndex = 0
		b.toField()

	case stepField:
		fields := agentFields[b.current.Agent]
		f := fields[b.fieldIndex]
		if value == "" {
			value = f.def
		}
		if value != "" {
			switch {
			case f.numeric:
				n, err := strconv.Atoi(value)
				if err != nil {
					b.errMsg = fmt.Sprintf("%s must be a number", f.key)
					return b, nil
				}
				b.payload[f.key] = n
			case f.list:
				parts := strings.Split(value, ",")
				items := make([]string, 0, len(parts))
				for _, part := range parts {
					if trimmed := strings.TrimSpace(part); trimmed != "" {
						items = append(items, trimmed)
					}
				}
				if len(items) > 0 {
					b.payload[f.key] = items
				}
			default:
				b.payload[f.key] = value
			}
		}
		b.fieldIndex++
		if b.fieldIndex < len(fields) {
			b.toField()
		} else {
			b.toDependencies()
		}

	case stepDependencies:
		if value != "" {
			for _, part := range strings.Split(value, ",") {
				if trimmed := strings.TrimSpace(part); trimmed != "" {
					b.current.Dependencies = append(b.current.Dependencies, trimmed)
				}
			}
		}
		b.current.InputData = b.payload
		b.tasks = append(b.tasks, b.current)
		b.toTaskID()
	}

	return b, nil
}

func (b *Builder) toTaskID() {
	b.step = stepTaskID
	b.input.Placeholder = fmt.Sprintf("blank for %s, or 'done' to finish", models.DefaultTaskID(len(b.tasks)))
}

func (b *Builder) toAgent() {
	b.step = stepAgent
	b.input.Placeholder = strings.Join(b.agents, "/")
}

func (b *Builder) toField() {
	b.step = stepField
	f := agentFields[b.current.Agent][b.fieldIndex]
	if f.def != "" {
		b.input.Placeholder = fmt.Sprintf("default: %s", f.def)
	} else {
		b.input.Placeholder = ""
	}
}

func (b *Builder) toDependencies() {
	b.step = stepDependencies
	b.input.Placeholder = "comma separated task IDs, blank for none"
}

// prompt returns the label for the current step.
func (b *Builder) prompt() string {
	switch b.step {
	case stepWorkflowID:
		return "Workflow ID"
	case stepTaskID:
		return fmt.Sprintf("Task %d ID", len(b.tasks)+1)
	case stepAgent:
		return "Agent"
	case stepField:
		return agentFields[b.current.Agent][b.fieldIndex].prompt
	case stepDependencies:
		return "Dependencies"
	}
	return ""
}

// View implements tea.Model.
func (b *Builder) View() string {
	if b.done || b.canceled {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Saathi Workflow Builder"))
	sb.WriteString("\n\n")

	for _, task := range b.tasks {
		line := fmt.Sprintf("  %s  %s", task.ID, task.Agent)
		if len(task.Dependencies) > 0 {
			line += labelStyle.Render(fmt.Sprintf("  (after %s)", strings.Join(task.Dependencies, ", ")))
		}
		sb.WriteString(taskStyle.Render(line))
		sb.WriteString("\n")
	}
	if len(b.tasks) > 0 {
		sb.WriteString("\n")
	}

	sb.WriteString(labelStyle.Render(b.prompt()))
	sb.WriteString("\n")
	sb.WriteString(inputBorder.Width(b.width - 4).Render(b.input.View()))
	sb.WriteString("\n")

	if b.errMsg != "" {
		sb.WriteString(errorStyle.Render(b.errMsg))
		sb.WriteString("\n")
	}

	sb.WriteString(labelStyle.Render("enter to confirm, esc to cancel"))
	sb.WriteString("\n")

	return sb.String()
}

// Run starts the builder and blocks until the user finishes or cancels.
func Run(agentNames []string) (*Builder, error) {
	b := NewBuilder(agentNames)
	p := tea.NewProgram(b)
	if _, err := p.Run(); err != nil {
		return nil, err
	}
	return b, nil
}
