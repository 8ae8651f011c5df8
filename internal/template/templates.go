package template

// skillTemplate is the built-in SKILL.md scaffold. The frontmatter it
// produces passes validation under strict options.
const skillTemplate = `---
name: {{ .Name }}
description: {{ .Description }}
{{- if .License }}
license: {{ .License }}
{{- end }}
---

# {{ .Name }}

Explain what this skill does and when an agent should reach for it.

## Instructions

1. Describe the steps the agent should follow.
2. Reference supporting files with paths relative to this directory.

## Resources

Place scripts under scripts/, reference material under references/, and
static assets under assets/.
`
