// Package templates provides reusable workflow definitions. A Store serves
// the built-in templates and can overlay custom ones loaded from a directory
// of YAML files, reloading them when the directory changes.
package templates

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/velamalamk2016-ui/aisaathi/pkg/models"
)

// Template is a named, reusable workflow definition.
type Template struct {
	Name        string            `yaml:"name" json:"name"`
	Description string            `yaml:"description" json:"description"`
	Tasks       []models.TaskSpec `yaml:"tasks" json:"tasks"`
}

// Store holds workflow templates keyed by name. Built-in templates are
// always present; templates loaded from a directory shadow built-ins with
// the same name.
type Store struct {
	mu     sync.RWMutex
	custom map[string]Template
	dir    string

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewStore creates a Store serving only the built-in templates.
func NewStore() *Store {
	return &Store{
		custom: make(map[string]Template),
		done:   make(chan struct{}),
	}
}

// LoadDir loads every *.yaml and *.yml file under dir as a template and
// begins watching the directory for changes. Files that fail to parse are
// skipped so one bad template cannot take down the rest.
func (s *Store) LoadDir(dir string) error {
	if err := s.reload(dir); err != nil {
		return err
	}

	s.mu.Lock()
	s.dir = dir
	s.mu.Unlock()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		// Continue without hot reload
		return nil
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil
	}
	s.watcher = watcher

	go s.watchDir()

	return nil
}

// watchDir reloads the template directory when files change.
func (s *Store) watchDir() {
	for {
		select {
		case <-s.done:
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				s.mu.RLock()
				dir := s.dir
				s.mu.RUnlock()
				s.reload(dir)
			}
		case <-s.watcher.Errors:
			// Ignore errors, keep watching
		}
	}
}

// reload replaces the custom template set from the files in dir.
func (s *Store) reload(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading template dir: %w", err)
	}

	loaded := make(map[string]Template)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		tpl, err := loadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		loaded[tpl.Name] = tpl
	}

	s.mu.Lock()
	s.custom = loaded
	s.mu.Unlock()

	return nil
}

// loadFile parses a single YAML template file. A template with no name
// takes its file name, minus the extension.
func loadFile(path string) (Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Template{}, err
	}

	var tpl Template
	if err := yaml.Unmarshal(data, &tpl); err != nil {
		return Template{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if tpl.Name == "" {
		base := filepath.Base(path)
		tpl.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if len(tpl.Tasks) == 0 {
		return Template{}, fmt.Errorf("template %s has no tasks", tpl.Name)
	}

	return tpl, nil
}

// Get returns the template with the given name.
func (s *Store) Get(name string) (Template, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if tpl, ok := s.custom[name]; ok {
		return tpl, true
	}
	tpl, ok := builtins[name]
	return tpl, ok
}

// Names returns all template names in sorted order.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	names := make([]string, 0, len(builtins)+len(s.custom))
	for name := range builtins {
		seen[name] = true
		names = append(names, name)
	}
	for name := range s.custom {
		if !seen[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Describe returns every available template, sorted by name.
func (s *Store) Describe() []Template {
	names := s.Names()
	out := make([]Template, 0, len(names))
	for _, name := range names {
		tpl, _ := s.Get(name)
		out = append(out, tpl)
	}
	return out
}

// Close stops the directory watcher.
func (s *Store) Close() {
	close(s.done)
	if s.watcher != nil {
		s.watcher.Close()
	}
}
