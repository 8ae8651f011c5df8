package parser

import (
	"errors"
	"fmt"
)

// MissingSkillFileError indicates a directory has no SKILL.md at its top level.
type MissingSkillFileError struct {
	Dir string
}

// Error returns the formatted error message.
func (e *MissingSkillFileError) Error() string {
	return fmt.Sprintf("missing required file %s in %q", SkillFileName, e.Dir)
}

// ParseError indicates malformed frontmatter in a SKILL.md file.
type ParseError struct {
	// Path is the SKILL.md file that failed to parse
	Path string
	// Reason is a human-readable description of the failure
	Reason string
	// Err is the underlying error (if any)
	Err error
}

// Error returns the formatted error message.
func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to parse %q: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("failed to parse %q: %s", e.Path, e.Reason)
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// DuplicateFieldError indicates a frontmatter key appears more than once.
type DuplicateFieldError struct {
	Path string
	Key  string
}

// Error returns the formatted error message.
func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("duplicate frontmatter field %q in %q", e.Key, e.Path)
}

// IsContentError reports whether err describes malformed skill content as
// opposed to an environment failure (I/O, permissions). Content errors are
// reported as validation violations; environment errors propagate.
func IsContentError(err error) bool {
	var missing *MissingSkillFileError
	var parse *ParseError
	var dup *DuplicateFieldError
	return errors.As(err, &missing) || errors.As(err, &parse) || errors.As(err, &dup)
}
