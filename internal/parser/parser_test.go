package parser

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeSkill(t *testing.T, dir, content string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create directory %q: %v", dir, err)
	}
	path := filepath.Join(dir, SkillFileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %q: %v", path, err)
	}
	return path
}

func TestFindSkillFile(t *testing.T) {
	tmpDir := t.TempDir()
	skillDir := filepath.Join(tmpDir, "my-skill")
	want := writeSkill(t, skillDir, "---\nname: my-skill\n---\n")

	got, err := FindSkillFile(skillDir)
	if err != nil {
		t.Fatalf("FindSkillFile() error = %v", err)
	}
	if got != want {
		t.Errorf("FindSkillFile() = %q, want %q", got, want)
	}
}

func TestFindSkillFileMissing(t *testing.T) {
	emptyDir := t.TempDir()

	_, err := FindSkillFile(emptyDir)
	if err == nil {
		t.Fatal("expected error for missing SKILL.md, got nil")
	}

	var missing *MissingSkillFileError
	if !errors.As(err, &missing) {
		t.Fatalf("expected *MissingSkillFileError, got %T: %v", err, err)
	}
	if missing.Dir != emptyDir {
		t.Errorf("MissingSkillFileError.Dir = %q, want %q", missing.Dir, emptyDir)
	}
}

func TestHasSkillFile(t *testing.T) {
	tmpDir := t.TempDir()
	skillDir := filepath.Join(tmpDir, "with-skill")
	writeSkill(t, skillDir, "---\nname: with-skill\n---\n")

	if !HasSkillFile(skillDir) {
		t.Error("HasSkillFile() = false for directory with SKILL.md")
	}
	if HasSkillFile(tmpDir) {
		t.Error("HasSkillFile() = true for directory without SKILL.md")
	}
}

func TestReadProperties(t *testing.T) {
	tmpDir := t.TempDir()
	skillDir := filepath.Join(tmpDir, "foo-bar")
	writeSkill(t, skillDir, `---
name: foo-bar
description: does a thing
---
# foo-bar

Body content here.`)

	props, err := ReadProperties(skillDir)
	if err != nil {
		t.Fatalf("ReadProperties() error = %v", err)
	}
	if props.Name != "foo-bar" {
		t.Errorf("Name = %q, want %q", props.Name, "foo-bar")
	}
	if props.Description != "does a thing" {
		t.Errorf("Description = %q, want %q", props.Description, "does a thing")
	}
}

func TestParseSkillFileKeepsBody(t *testing.T) {
	tmpDir := t.TempDir()
	skillDir := filepath.Join(tmpDir, "body-skill")
	path := writeSkill(t, skillDir, "---\nname: body-skill\ndescription: keeps body\n---\n# Title\n\nInstructions live here.\n")

	props, body, err := ParseSkillFile(path)
	if err != nil {
		t.Fatalf("ParseSkillFile() error = %v", err)
	}
	if props.Name != "body-skill" {
		t.Errorf("Name = %q, want %q", props.Name, "body-skill")
	}
	// The body passes through uninterpreted
	want := "# Title\n\nInstructions live here.\n"
	if body != want {
		t.Errorf("body = %q, want %q", body, want)
	}
}

func TestReadPropertiesParseFailure(t *testing.T) {
	tmpDir := t.TempDir()
	skillDir := filepath.Join(tmpDir, "broken")
	writeSkill(t, skillDir, "no frontmatter here\n")

	_, err := ReadProperties(skillDir)
	if err == nil {
		t.Fatal("expected error for missing frontmatter, got nil")
	}
	if !IsContentError(err) {
		t.Errorf("IsContentError() = false for %v", err)
	}
}

func TestIsContentError(t *testing.T) {
	tests := map[string]struct {
		err  error
		want bool
	}{
		"missing skill file": {err: &MissingSkillFileError{Dir: "/x"}, want: true},
		"parse error":        {err: &ParseError{Path: "/x/SKILL.md", Reason: "bad"}, want: true},
		"duplicate field":    {err: &DuplicateFieldError{Path: "/x/SKILL.md", Key: "name"}, want: true},
		"wrapped parse":      {err: errors.Join(errors.New("context"), &ParseError{Path: "p", Reason: "r"}), want: true},
		"plain error":        {err: errors.New("permission denied"), want: false},
		"nil":                {err: nil, want: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := IsContentError(tt.err); got != tt.want {
				t.Errorf("IsContentError() = %v, want %v", got, tt.want)
			}
		})
	}
}
