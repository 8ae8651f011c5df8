// Package model defines the value types shared across skillref.
// All types are constructed fresh per invocation and never mutated afterwards.
package model

// SkillProperties holds the parsed frontmatter of a skill's SKILL.md.
// Name and Description are always present after a successful parse; their
// absence is a parse or validation failure, never a defaulted value.
type SkillProperties struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	License     string `json:"license,omitempty"`

	// Metadata carries unrecognized frontmatter fields, preserved verbatim
	// but not validated.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// SkillLocation identifies a skill directory and the SKILL.md file within it.
type SkillLocation struct {
	Dir       string `json:"dir"`
	SkillFile string `json:"skill_file"`
}

// SkillInfo is the unit produced by the discover+parse+validate pipeline.
// Properties is nil when parsing failed; Violations holds the ordered
// validation output (empty means valid).
type SkillInfo struct {
	Location   SkillLocation    `json:"location"`
	Properties *SkillProperties `json:"properties,omitempty"`
	Valid      bool             `json:"valid"`
	Violations []string         `json:"violations"`
}
