package parser

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// FrontmatterResult contains the raw frontmatter block and the remaining body.
type FrontmatterResult struct {
	// Frontmatter contains the raw YAML between the --- delimiters
	Frontmatter []byte
	// Body contains the free-form content after the closing delimiter,
	// passed through uninterpreted
	Body string
}

var delimiter = []byte("---")

// SplitFrontmatter splits SKILL.md content into its frontmatter block and
// trailing body. The frontmatter must open with a --- marker line at the very
// start of the file and close with a matching marker line; anything else is a
// *ParseError. A line merely starting with --- (a ---- rule, "--- trailing")
// is header content, not a delimiter. path is used for error reporting only.
func SplitFrontmatter(path string, content []byte) (FrontmatterResult, error) {
	opening, remaining, ok := nextLine(content)
	if !ok || !isDelimiterLine(opening) {
		return FrontmatterResult{}, &ParseError{
			Path:   path,
			Reason: "missing opening frontmatter delimiter (file must start with ---)",
		}
	}

	var headerLines [][]byte
	closed := false
	for len(remaining) > 0 {
		var line []byte
		line, remaining, _ = nextLine(remaining)
		if isDelimiterLine(line) {
			closed = true
			break
		}
		headerLines = append(headerLines, line)
	}

	if !closed {
		return FrontmatterResult{}, &ParseError{
			Path:   path,
			Reason: "missing closing frontmatter delimiter (---)",
		}
	}

	return FrontmatterResult{
		Frontmatter: bytes.Join(headerLines, []byte("\n")),
		Body:        string(remaining),
	}, nil
}

// isDelimiterLine reports whether line is a --- marker line. The line
// terminator must already be stripped; trailing blanks are tolerated, any
// other trailing content is not.
func isDelimiterLine(line []byte) bool {
	return bytes.Equal(bytes.TrimRight(line, " \t"), delimiter)
}

// nextLine returns the first line of content without its terminator and the
// content following it. ok is false only for empty input.
func nextLine(content []byte) (line, rest []byte, ok bool) {
	if len(content) == 0 {
		return nil, nil, false
	}
	idx := bytes.IndexByte(content, '\n')
	if idx == -1 {
		return bytes.TrimSuffix(content, []byte("\r")), nil, true
	}
	return bytes.TrimSuffix(content[:idx], []byte("\r")), content[idx+1:], true
}

// ParseFrontmatter parses a frontmatter block into a flat key-value map.
// Keys are case-sensitive; a repeated key is a *DuplicateFieldError and
// malformed YAML or a non-mapping header is a *ParseError. Non-string scalar
// values are rendered with their YAML representation.
func ParseFrontmatter(path string, frontmatter []byte) (map[string]string, error) {
	if len(bytes.TrimSpace(frontmatter)) == 0 {
		return map[string]string{}, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(frontmatter, &doc); err != nil {
		return nil, &ParseError{Path: path, Reason: "invalid YAML in frontmatter", Err: err}
	}

	if len(doc.Content) == 0 {
		return map[string]string{}, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, &ParseError{Path: path, Reason: "frontmatter must be a key-value mapping"}
	}

	fields := make(map[string]string, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode := root.Content[i]
		valNode := root.Content[i+1]

		if keyNode.Kind != yaml.ScalarNode {
			return nil, &ParseError{
				Path:   path,
				Reason: fmt.Sprintf("frontmatter key at line %d is not a scalar", keyNode.Line),
			}
		}

		key := keyNode.Value
		if _, exists := fields[key]; exists {
			return nil, &DuplicateFieldError{Path: path, Key: key}
		}

		fields[key] = scalarValue(valNode)
	}

	return fields, nil
}

// scalarValue renders a frontmatter value node as a string. Scalars are
// returned verbatim; nested structures fall back to their decoded Go
// representation so unrecognized fields survive round-trips.
func scalarValue(node *yaml.Node) string {
	if node.Kind == yaml.ScalarNode {
		return node.Value
	}

	var v any
	if err := node.Decode(&v); err != nil {
		return node.Value
	}
	return fmt.Sprintf("%v", v)
}
