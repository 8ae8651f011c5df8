package template

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauern/skillref/internal/parser"
	"github.com/klauern/skillref/internal/validation"
)

func TestScaffold(t *testing.T) {
	parent := t.TempDir()

	dir, err := Scaffold(parent, Data{
		Name:        "pdf-reader",
		Description: "Read and extract text from PDF files",
		License:     "MIT",
	})
	if err != nil {
		t.Fatalf("Scaffold() error = %v", err)
	}
	if dir != filepath.Join(parent, "pdf-reader") {
		t.Errorf("Scaffold() dir = %q", dir)
	}

	props, err := parser.ReadProperties(dir)
	if err != nil {
		t.Fatalf("ReadProperties() on scaffolded skill error = %v", err)
	}
	if props.Name != "pdf-reader" {
		t.Errorf("Name = %q, want %q", props.Name, "pdf-reader")
	}
	if props.Description != "Read and extract text from PDF files" {
		t.Errorf("Description = %q", props.Description)
	}
	if props.License != "MIT" {
		t.Errorf("License = %q, want %q", props.License, "MIT")
	}

	// A freshly scaffolded skill passes the strictest checks
	violations, err := validation.Validate(dir, validation.Options{StrictName: true, RequireLicense: true})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(violations) != 0 {
		t.Errorf("scaffolded skill has violations: %v", violations)
	}
}

func TestScaffoldDefaultDescription(t *testing.T) {
	dir, err := Scaffold(t.TempDir(), Data{Name: "bare-skill"})
	if err != nil {
		t.Fatalf("Scaffold() error = %v", err)
	}

	props, err := parser.ReadProperties(dir)
	if err != nil {
		t.Fatalf("ReadProperties() error = %v", err)
	}
	if props.Description == "" {
		t.Error("scaffold left description empty")
	}
}

func TestScaffoldRejectsInvalidName(t *testing.T) {
	tests := map[string]string{
		"empty":      "",
		"uppercase":  "My_Skill",
		"whitespace": "my skill",
		"edge dash":  "-skill-",
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			parent := t.TempDir()
			if _, err := Scaffold(parent, Data{Name: input, Description: "x"}); err == nil {
				t.Fatalf("Scaffold(%q) = nil error, want rejection", input)
			}
			entries, err := os.ReadDir(parent)
			if err != nil {
				t.Fatal(err)
			}
			if len(entries) != 0 {
				t.Errorf("Scaffold(%q) left files behind: %v", input, entries)
			}
		})
	}
}

func TestScaffoldRejectsInvalidNameWithSuggestion(t *testing.T) {
	_, err := Scaffold(t.TempDir(), Data{Name: "My Cool Skill", Description: "x"})
	if err == nil {
		t.Fatal("expected error for invalid name")
	}
	if !strings.Contains(err.Error(), `"my-cool-skill"`) {
		t.Errorf("error %q does not carry the suggested name", err)
	}
}

func TestScaffoldRefusesExisting(t *testing.T) {
	parent := t.TempDir()
	if _, err := Scaffold(parent, Data{Name: "dup-skill", Description: "x"}); err != nil {
		t.Fatalf("first Scaffold() error = %v", err)
	}
	if _, err := Scaffold(parent, Data{Name: "dup-skill", Description: "x"}); err == nil {
		t.Fatal("second Scaffold() over existing skill = nil error, want refusal")
	}
}
