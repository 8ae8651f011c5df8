// Package validation applies the skill-format rule checklist to skill
// directories. Rules accumulate violations in a fixed order and never raise
// for malformed content; only environment failures (I/O, permissions) are
// returned as errors.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/klauern/skillref/internal/parser"
)

// Field length limits from the Agent Skills format.
const (
	MaxNameLength        = 64
	MaxDescriptionLength = 1024
)

var namePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Options configures which optional rules are active. The zero value is the
// permissive setting: only directory structure and required-field presence
// are enforced.
type Options struct {
	// StrictName enforces the lowercase kebab-case naming convention and
	// requires the directory name to match the skill name.
	StrictName bool
	// RequireLicense makes the license field mandatory.
	RequireLicense bool
}

// DefaultOptions returns the permissive defaults.
func DefaultOptions() Options {
	return Options{}
}

// Error aggregates one or more violations for callers that prefer an
// error-based flow over inspecting the violation list.
type Error struct {
	Dir        string
	Violations []string
}

// Error returns the formatted aggregate message.
func (e *Error) Error() string {
	if len(e.Violations) == 1 {
		return fmt.Sprintf("validation failed for %q: %s", e.Dir, e.Violations[0])
	}
	return fmt.Sprintf("validation failed for %q: %d violations:\n- %s",
		e.Dir, len(e.Violations), strings.Join(e.Violations, "\n- "))
}

// Validate runs the ordered rule checklist against a skill directory and
// returns every violation found. An empty list is the sole success signal.
// The returned error is reserved for environment failures; malformed skill
// content is always reported, never raised.
func Validate(dir string, opts Options) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{fmt.Sprintf("path does not exist: %s", dir)}, nil
		}
		return nil, fmt.Errorf("cannot access %q: %w", dir, err)
	}
	if !info.IsDir() {
		return []string{fmt.Sprintf("not a directory: %s", dir)}, nil
	}

	fields, err := parser.ReadFields(dir)
	if err != nil {
		if parser.IsContentError(err) {
			// A missing or unparseable SKILL.md is the skill's own problem;
			// the remaining rules cannot run without parsed fields.
			return []string{err.Error()}, nil
		}
		return nil, err
	}

	var violations []string
	violations = append(violations, checkName(fields, dir, opts)...)
	violations = append(violations, checkDescription(fields)...)
	violations = append(violations, checkLicense(fields, opts)...)
	return violations, nil
}

// Check is like Validate but wraps a non-empty violation list in a *Error.
func Check(dir string, opts Options) error {
	violations, err := Validate(dir, opts)
	if err != nil {
		return err
	}
	if len(violations) > 0 {
		return &Error{Dir: dir, Violations: violations}
	}
	return nil
}

func checkName(fields map[string]string, dir string, opts Options) []string {
	name, present := fields["name"]
	if !present {
		return []string{"missing required field in frontmatter: name"}
	}
	if strings.TrimSpace(name) == "" {
		return []string{"field 'name' must be a non-empty string"}
	}

	var violations []string
	name = norm.NFKC.String(strings.TrimSpace(name))

	if opts.StrictName {
		if n := len([]rune(name)); n > MaxNameLength {
			violations = append(violations, fmt.Sprintf(
				"skill name %q exceeds %d character limit (%d chars)", name, MaxNameLength, n))
		}

		if !namePattern.MatchString(name) {
			violations = append(violations, fmt.Sprintf(
				"skill name %q must be lowercase kebab-case (lowercase letters, digits, and hyphens; "+
					"no leading, trailing, or consecutive hyphens). Suggestion: %q", name, SuggestName(name)))
		} else if dirName := norm.NFKC.String(filepath.Base(dir)); dirName != name {
			violations = append(violations, fmt.Sprintf(
				"directory name %q must match skill name %q; rename the directory or update the 'name' field in %s",
				filepath.Base(dir), name, parser.SkillFileName))
		}
	}

	return violations
}

func checkDescription(fields map[string]string) []string {
	description, present := fields["description"]
	if !present {
		return []string{"missing required field in frontmatter: description"}
	}
	if strings.TrimSpace(description) == "" {
		return []string{"field 'description' must be a non-empty string"}
	}
	if n := len([]rune(description)); n > MaxDescriptionLength {
		return []string{fmt.Sprintf(
			"description exceeds %d character limit (%d chars)", MaxDescriptionLength, n)}
	}
	return nil
}

func checkLicense(fields map[string]string, opts Options) []string {
	license, present := fields["license"]
	if !present {
		if opts.RequireLicense {
			return []string{"missing required field in frontmatter: license"}
		}
		return nil
	}
	if strings.TrimSpace(license) == "" {
		return []string{"field 'license' must be a non-empty string when present"}
	}
	return nil
}

// SuggestName derives a conforming skill name from an invalid one: NFKC
// normalization, lowercasing, invalid runes replaced with hyphens, hyphen
// runs collapsed, and edge hyphens trimmed. The result always passes the
// naming rule so automated fix tooling can apply it directly.
func SuggestName(name string) string {
	name = strings.ToLower(norm.NFKC.String(strings.TrimSpace(name)))

	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}

	suggestion := b.String()
	for strings.Contains(suggestion, "--") {
		suggestion = strings.ReplaceAll(suggestion, "--", "-")
	}
	suggestion = strings.Trim(suggestion, "-")

	if suggestion == "" {
		return "skill"
	}
	return suggestion
}
