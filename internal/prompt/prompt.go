// Package prompt serializes skills into the <available_skills> block that
// agent system prompts consume.
package prompt

import (
	"fmt"
	"html"
	"path/filepath"
	"strings"

	"github.com/klauern/skillref/internal/model"
	"github.com/klauern/skillref/internal/parser"
)

// Render serializes already-parsed skills into the <available_skills> block.
// Entries render in input order, which the caller controls and may use to
// express priority. Identical input produces byte-identical output.
//
// Every entry must carry parsed properties; an entry without them is a
// caller error and fails fast rather than rendering a hole.
func Render(infos []model.SkillInfo) (string, error) {
	if len(infos) == 0 {
		return "<available_skills>\n</available_skills>", nil
	}

	lines := []string{"<available_skills>"}
	for _, info := range infos {
		if info.Properties == nil {
			return "", fmt.Errorf("cannot render skill at %q: properties were never parsed", info.Location.Dir)
		}

		lines = append(lines,
			"<skill>",
			"<name>",
			html.EscapeString(info.Properties.Name),
			"</name>",
			"<description>",
			html.EscapeString(info.Properties.Description),
			"</description>",
			"<location>",
			info.Location.SkillFile,
			"</location>",
			"</skill>",
		)
	}
	lines = append(lines, "</available_skills>")

	return strings.Join(lines, "\n"), nil
}

// ToPrompt parses each skill directory and renders the combined block.
// Directories resolve to absolute, symlink-free paths so the emitted
// <location> values are usable from any working directory. Any unparseable
// skill aborts rendering.
func ToPrompt(skillDirs []string) (string, error) {
	infos := make([]model.SkillInfo, 0, len(skillDirs))
	for _, dir := range skillDirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return "", fmt.Errorf("failed to resolve %q: %w", dir, err)
		}
		// Best effort: a dangling path surfaces below as a missing skill file
		if resolved, err := filepath.EvalSymlinks(abs); err == nil {
			abs = resolved
		}

		props, err := parser.ReadProperties(abs)
		if err != nil {
			return "", err
		}

		skillFile, err := parser.FindSkillFile(abs)
		if err != nil {
			return "", err
		}

		infos = append(infos, model.SkillInfo{
			Location:   model.SkillLocation{Dir: abs, SkillFile: skillFile},
			Properties: props,
			Valid:      true,
		})
	}

	return Render(infos)
}
