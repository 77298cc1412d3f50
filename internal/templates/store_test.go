package templates

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltinTemplates(t *testing.T) {
	s := NewStore()
	defer s.Close()

	names := s.Names()
	want := []string{"assessment_workflow", "complete_lesson_creation", "content_localization"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], name)
		}
	}
}

func TestBuiltinLessonCreation(t *testing.T) {
	s := NewStore()
	defer s.Close()

	tpl, ok := s.Get("complete_lesson_creation")
	if !ok {
		t.Fatal("complete_lesson_creation not found")
	}
	if len(tpl.Tasks) != 3 {
		t.Fatalf("got %d tasks, want 3", len(tpl.Tasks))
	}
	if tpl.Tasks[0].ID != "lesson_plan" || tpl.Tasks[0].Agent != "lesson_plan" {
		t.Errorf("first task = %+v", tpl.Tasks[0])
	}
	for _, task := range tpl.Tasks[1:] {
		if len(task.Dependencies) != 1 || task.Dependencies[0] != "lesson_plan" {
			t.Errorf("task %s dependencies = %v, want [lesson_plan]", task.ID, task.Dependencies)
		}
	}
}

func TestGetUnknown(t *testing.T) {
	s := NewStore()
	defer s.Close()

	if _, ok := s.Get("no_such_template"); ok {
		t.Error("Get returned ok for unknown template")
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	content := `name: custom_review
description: Review generated content
tasks:
  - id: draft
    type: education
    agent: storyteller
    input_data:
      topic: Rivers
      grade: "3"
  - id: translate
    type: translation
    agent: translation
    input_data:
      text: placeholder
      source_language: english
      target_language: hindi
    dependencies: [draft]
`
	if err := os.WriteFile(filepath.Join(dir, "review.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("writing template: %v", err)
	}
	// Non-YAML files are ignored
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore"), 0o644); err != nil {
		t.Fatalf("writing notes: %v", err)
	}

	s := NewStore()
	defer s.Close()
	if err := s.LoadDir(dir); err != nil {
		t.Fatalf("LoadDir: %v", err)
	}

	tpl, ok := s.Get("custom_review")
	if !ok {
		t.Fatal("custom_review not found")
	}
	if len(tpl.Tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tpl.Tasks))
	}
	if tpl.Tasks[1].Dependencies[0] != "draft" {
		t.Errorf("dependencies = %v", tpl.Tasks[1].Dependencies)
	}
	if tpl.Tasks[0].InputData["topic"] != "Rivers" {
		t.Errorf("input_data = %v", tpl.Tasks[0].InputData)
	}
}

func TestLoadDirNameFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `description: unnamed template
tasks:
  - agent: storyteller
    input_data:
      topic: Oceans
      grade: "2"
`
	if err := os.WriteFile(filepath.Join(dir, "ocean_story.yml"), []byte(content), 0o644); err != nil {
		t.Fatalf("writing template: %v", err)
	}

	s := NewStore()
	defer s.Close()
	if err := s.LoadDir(dir); err != nil {
		t.Fatalf("LoadDir: %v", err)
	}

	if _, ok := s.Get("ocean_story"); !ok {
		t.Error("template named after file not found")
	}
}

func TestLoadDirSkipsBroken(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte(":\n  - not valid"), 0o644); err != nil {
		t.Fatalf("writing bad template: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "empty.yaml"), []byte("name: empty\ntasks: []\n"), 0o644); err != nil {
		t.Fatalf("writing empty template: %v", err)
	}

	s := NewStore()
	defer s.Close()
	if err := s.LoadDir(dir); err != nil {
		t.Fatalf("LoadDir: %v", err)
	}

	// Builtins survive a directory of broken files
	if _, ok := s.Get("assessment_workflow"); !ok {
		t.Error("builtin missing after loading broken dir")
	}
	if _, ok := s.Get("empty"); ok {
		t.Error("template with no tasks should be skipped")
	}
}

func TestCustomShadowsBuiltin(t *testing.T) {
	dir := t.TempDir()
	content := `name: assessment_workflow
description: replaced
tasks:
  - agent: assessment
    input_data:
      subject: History
      topic: Mughal Empire
      grade: "7"
`
	if err := os.WriteFile(filepath.Join(dir, "override.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("writing template: %v", err)
	}

	s := NewStore()
	defer s.Close()
	if err := s.LoadDir(dir); err != nil {
		t.Fatalf("LoadDir: %v", err)
	}

	tpl, ok := s.Get("assessment_workflow")
	if !ok {
		t.Fatal("assessment_workflow not found")
	}
	if tpl.Description != "replaced" {
		t.Errorf("Description = %q, want replaced", tpl.Description)
	}
	if len(tpl.Tasks) != 1 {
		t.Errorf("got %d tasks, want 1", len(tpl.Tasks))
	}

	// Names must not list the shadowed name twice
	names := s.Names()
	count := 0
	for _, name := range names {
		if name == "assessment_workflow" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("assessment_workflow appears %d times in Names()", count)
	}
}
