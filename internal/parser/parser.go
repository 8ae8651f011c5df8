// Package parser locates and parses SKILL.md metadata documents.
//
// A skill is a directory containing a SKILL.md file whose YAML frontmatter
// carries the skill's properties. The parser separates the frontmatter from
// the free-form body, extracts the recognized fields, and preserves everything
// else in an open metadata map. Malformed content surfaces as the typed
// errors in errors.go; filesystem failures propagate as ordinary errors.
package parser

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauern/skillref/internal/model"
)

// SkillFileName is the fixed, case-sensitive name of the metadata document
// at a skill directory's top level.
const SkillFileName = "SKILL.md"

// Recognized frontmatter fields; everything else lands in Metadata.
var knownFields = map[string]bool{
	"name":        true,
	"description": true,
	"license":     true,
}

// FindSkillFile returns the path to the SKILL.md inside dir.
// Returns a *MissingSkillFileError if the file is absent.
func FindSkillFile(dir string) (string, error) {
	path := filepath.Join(dir, SkillFileName)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &MissingSkillFileError{Dir: dir}
		}
		return "", fmt.Errorf("failed to stat %q: %w", path, err)
	}
	if info.IsDir() {
		return "", &MissingSkillFileError{Dir: dir}
	}
	return path, nil
}

// HasSkillFile reports whether dir contains a SKILL.md at its top level.
func HasSkillFile(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, SkillFileName))
	return err == nil && !info.IsDir()
}

// ParseSkillFile reads and parses a single SKILL.md file, returning the
// extracted properties and the uninterpreted body text.
func ParseSkillFile(path string) (*model.SkillProperties, string, error) {
	// #nosec G304 - path comes from directory discovery under a caller-chosen root
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %q: %w", path, err)
	}

	result, err := SplitFrontmatter(path, content)
	if err != nil {
		return nil, "", err
	}

	fields, err := ParseFrontmatter(path, result.Frontmatter)
	if err != nil {
		return nil, "", err
	}

	return PropertiesFromFields(fields), result.Body, nil
}

// ReadProperties parses the SKILL.md in a skill directory into properties.
// The body is discarded; use ParseSkillFile to keep it.
func ReadProperties(dir string) (*model.SkillProperties, error) {
	path, err := FindSkillFile(dir)
	if err != nil {
		return nil, err
	}

	props, _, err := ParseSkillFile(path)
	if err != nil {
		return nil, err
	}
	return props, nil
}

// ReadFields parses the SKILL.md in a skill directory into the raw
// frontmatter map. The validator works on this form so it can distinguish
// an absent field from an empty one.
func ReadFields(dir string) (map[string]string, error) {
	path, err := FindSkillFile(dir)
	if err != nil {
		return nil, err
	}

	// #nosec G304 - path derived from dir via FindSkillFile
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}

	result, err := SplitFrontmatter(path, content)
	if err != nil {
		return nil, err
	}

	return ParseFrontmatter(path, result.Frontmatter)
}

// PropertiesFromFields builds SkillProperties from a parsed frontmatter map,
// routing unrecognized keys into the open Metadata mapping.
func PropertiesFromFields(fields map[string]string) *model.SkillProperties {
	props := &model.SkillProperties{
		Name:        fields["name"],
		Description: fields["description"],
		License:     fields["license"],
	}

	for key, val := range fields {
		if !knownFields[key] {
			if props.Metadata == nil {
				props.Metadata = make(map[string]string)
			}
			props.Metadata[key] = val
		}
	}

	return props
}
