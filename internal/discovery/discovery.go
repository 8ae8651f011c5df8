// Package discovery walks directory trees to locate candidate skill
// directories and feeds them through the parse+validate pipeline.
package discovery

import (
	"fmt"
	"iter"
	"os"
	"path/filepath"

	"github.com/klauern/skillref/internal/logging"
	"github.com/klauern/skillref/internal/model"
	"github.com/klauern/skillref/internal/parser"
	"github.com/klauern/skillref/internal/validation"
)

// Discover returns a lazy sequence of skill directory paths under root.
//
// Non-recursive mode yields immediate child directories containing a
// SKILL.md. Recursive mode walks the subtree depth-first and yields every
// directory containing a SKILL.md, without descending into it further;
// skills are never nested inside other skills for discovery purposes.
// Symlink cycles are broken by tracking resolved paths, and unreadable
// entries are skipped rather than failing the walk.
//
// The sequence is finite and forward-only; callers needing multiple passes
// must call Discover again.
func Discover(root string, recursive bool) iter.Seq[string] {
	return func(yield func(string) bool) {
		if recursive {
			visited := make(map[string]bool)
			walk(root, visited, yield)
			return
		}

		entries, err := os.ReadDir(root)
		if err != nil {
			logging.Warn("cannot read discovery root", logging.Root(root), logging.Err(err))
			return
		}
		for _, entry := range entries {
			dir := filepath.Join(root, entry.Name())
			info, err := os.Stat(dir) // follows symlinked directories
			if err != nil || !info.IsDir() {
				continue
			}
			if parser.HasSkillFile(dir) {
				if !yield(dir) {
					return
				}
			}
		}
	}
}

// walk performs the depth-first traversal for recursive discovery.
// Returns false when the consumer stopped the sequence.
func walk(dir string, visited map[string]bool, yield func(string) bool) bool {
	real, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return true
	}
	if visited[real] {
		return true
	}
	visited[real] = true

	if parser.HasSkillFile(dir) {
		// A skill's auxiliary files are not searched for nested skills.
		return yield(dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		logging.Debug("skipping unreadable directory", logging.Path(dir), logging.Err(err))
		return true
	}
	for _, entry := range entries {
		child := filepath.Join(dir, entry.Name())
		info, err := os.Stat(child)
		if err != nil || !info.IsDir() {
			continue
		}
		if !walk(child, visited, yield) {
			return false
		}
	}
	return true
}

// Count returns the number of skill directories Discover would yield,
// without parsing or validating any of them.
func Count(root string, recursive bool) int {
	n := 0
	for range Discover(root, recursive) {
		n++
	}
	return n
}

// Inspect runs the parse+validate pipeline for a single skill directory.
// Content problems land in the returned SkillInfo; only environment
// failures produce an error.
func Inspect(dir string, opts validation.Options) (*model.SkillInfo, error) {
	info := &model.SkillInfo{
		Location: model.SkillLocation{
			Dir:       dir,
			SkillFile: filepath.Join(dir, parser.SkillFileName),
		},
	}

	props, err := parser.ReadProperties(dir)
	switch {
	case err == nil:
		info.Properties = props
	case parser.IsContentError(err):
		// Reported below through validation
	default:
		return nil, fmt.Errorf("failed to inspect %q: %w", dir, err)
	}

	violations, err := validation.Validate(dir, opts)
	if err != nil {
		return nil, err
	}
	info.Violations = violations
	info.Valid = len(violations) == 0
	return info, nil
}

// Collect materializes a discovery pass into SkillInfo values, preserving
// the traversal order.
func Collect(root string, recursive bool, opts validation.Options) ([]model.SkillInfo, error) {
	var infos []model.SkillInfo
	for dir := range Discover(root, recursive) {
		info, err := Inspect(dir, opts)
		if err != nil {
			return nil, err
		}
		infos = append(infos, *info)
	}

	logging.Debug("discovery pass complete",
		logging.Root(root),
		logging.Recursive(recursive),
		logging.Count(len(infos)),
	)
	return infos, nil
}
