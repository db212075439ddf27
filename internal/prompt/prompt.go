package prompt

import (
	"fmt"
	"strings"
)

// Task numbers a generation task. Tasks 1-5 take an image alone; tasks 6-8
// also take the text paired with the image.
type Task int

// NeedsText reports whether the task requires the paired text file.
func (t Task) NeedsText() bool { return t >= 6 }

// Example is the 1-shot demonstration prepended to every prompt. The English
// examples are shared across languages for cross-lingual transfer.
type Example struct {
	Question string
	Response string
}

// Language bundles everything needed to prompt one language: the system
// prompt, the two user-prompt templates and the task descriptions.
type Language struct {
	Name              string
	Code              string
	SystemPrompt      string
	ImageOnlyTemplate string
	ImageTextTemplate string
	Tasks             map[Task]string
}

// Render builds the user prompt for the task, substituting the 1-shot
// example, the task description and, for image-text tasks, the text content.
func (l Language) Render(task Task, textContent string) (string, error) {
	desc, ok := l.Tasks[task]
	if !ok {
		return "", fmt.Errorf("language %s has no task %d", l.Name, task)
	}
	ex, ok := Examples[task]
	if !ok {
		return "", fmt.Errorf("no 1-shot example for task %d", task)
	}

	tmpl := l.ImageOnlyTemplate
	if task.NeedsText() {
		tmpl = l.ImageTextTemplate
	}
	return strings.NewReplacer(
		"{example_question}", ex.Question,
		"{example_response}", ex.Response,
		"{task_description}", desc,
		"{text_content}", textContent,
	).Replace(tmpl), nil
}

// Get returns the configuration for a language by name.
func Get(name string) (Language, bool) {
	l, ok := languages[name]
	return l, ok
}

// Names lists the configured languages in their canonical order.
func Names() []string {
	return []string{"English", "Japanese", "Swahili", "Urdu"}
}
