// Package template scaffolds new skill directories from a built-in
// SKILL.md template.
package template

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/klauern/skillref/internal/parser"
	"github.com/klauern/skillref/internal/validation"
)

// Data holds the values substituted into the skill template.
type Data struct {
	Name        string
	Description string
	License     string
}

// Scaffold creates a new skill directory named after data.Name under
// parentDir and writes a templated SKILL.md into it. The name must already
// conform to the naming convention; Scaffold refuses to create skills that
// would fail validation out of the box.
func Scaffold(parentDir string, data Data) (string, error) {
	if data.Name == "" {
		return "", fmt.Errorf("skill name is required")
	}
	if suggestion := validation.SuggestName(data.Name); suggestion != data.Name {
		return "", fmt.Errorf("invalid skill name %q: names are lowercase kebab-case (did you mean %q?)",
			data.Name, suggestion)
	}
	if data.Description == "" {
		data.Description = "Describe what this skill does and when an agent should use it."
	}

	tmpl, err := template.New("skill").Parse(skillTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse skill template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render skill template: %w", err)
	}

	skillDir := filepath.Join(parentDir, data.Name)
	skillFile := filepath.Join(skillDir, parser.SkillFileName)

	if _, err := os.Stat(skillFile); err == nil {
		return "", fmt.Errorf("skill already exists: %s", skillFile)
	}

	if err := os.MkdirAll(skillDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create skill directory %q: %w", skillDir, err)
	}
	if err := os.WriteFile(skillFile, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %q: %w", skillFile, err)
	}

	return skillDir, nil
}
