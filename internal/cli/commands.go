// Package cli provides command definitions for skillref.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/klauern/skillref/internal/discovery"
	"github.com/klauern/skillref/internal/parser"
	"github.com/klauern/skillref/internal/progress"
	"github.com/klauern/skillref/internal/prompt"
	"github.com/klauern/skillref/internal/ui"
	"github.com/klauern/skillref/internal/validation"
)

// resolveSkillPath maps a path pointing at a SKILL.md file to its parent
// directory, so commands accept either form.
func resolveSkillPath(path string) string {
	info, err := os.Stat(path)
	if err == nil && !info.IsDir() && filepath.Base(path) == parser.SkillFileName {
		return filepath.Dir(path)
	}
	return path
}

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "Validate one or more skill directories",
		UsageText: "skillref validate [options] <path>...",
		Description: `Checks that each skill has a SKILL.md with well-formed frontmatter
   and the required fields. All rule violations are reported in one pass.

   Exit codes:
     0: All skills valid
     1: One or more validation errors found`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output results as JSON",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Only output violations (no success messages)",
			},
			&cli.BoolFlag{
				Name:  "strict-name",
				Usage: "Enforce the lowercase kebab-case naming convention",
			},
			&cli.BoolFlag{
				Name:  "require-license",
				Usage: "Require the license frontmatter field",
			},
		},
		Action: runValidate,
	}
}

func runValidate(_ context.Context, cmd *cli.Command) error {
	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		return errors.New("validate requires at least one <path> argument")
	}

	opts := currentConfig().Options()
	if cmd.Bool("strict-name") {
		opts.StrictName = true
	}
	if cmd.Bool("require-license") {
		opts.RequireLicense = true
	}

	type result struct {
		Valid  bool     `json:"valid"`
		Errors []string `json:"errors"`
	}

	results := make(map[string]result, len(paths))
	order := make([]string, 0, len(paths))

	var bar *progress.Bar
	if len(paths) > 1 && !cmd.Bool("json") {
		bar = progress.Simple(int64(len(paths)), "Validating skills")
	}

	for _, raw := range paths {
		dir := resolveSkillPath(raw)
		violations, err := validation.Validate(dir, opts)
		if err != nil {
			// Environment failure, not a content problem: abort loudly
			if bar != nil {
				_ = bar.Clear()
			}
			return err
		}

		if violations == nil {
			violations = []string{}
		}
		if _, seen := results[dir]; !seen {
			order = append(order, dir)
		}
		results[dir] = result{Valid: len(violations) == 0, Errors: violations}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	// Counted over unique dirs so repeated arguments don't inflate the tally
	invalid := 0
	for _, res := range results {
		if !res.Valid {
			invalid++
		}
	}

	if cmd.Bool("json") {
		out, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode results: %w", err)
		}
		fmt.Println(string(out))
	} else {
		for _, dir := range order {
			res := results[dir]
			if res.Valid {
				if !cmd.Bool("quiet") {
					fmt.Println(ui.StatusValid("Valid skill: " + dir))
				}
				continue
			}
			fmt.Fprintln(os.Stderr, ui.StatusInvalid("Validation failed for "+dir+":"))
			for _, v := range res.Errors {
				fmt.Fprintf(os.Stderr, "  - %s\n", v)
			}
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d skill(s) failed validation", invalid, len(order))
	}
	return nil
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Usage:     "List skills found in a directory",
		UsageText: "skillref list [options] [<root>]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output results as JSON",
			},
			&cli.BoolFlag{
				Name:    "recursive",
				Aliases: []string{"r"},
				Usage:   "Search the whole subtree for skills",
			},
		},
		Action: runList,
	}
}

func runList(_ context.Context, cmd *cli.Command) error {
	root := cmd.Args().First()
	if root == "" {
		root = "."
	}

	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("cannot access %q: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", root)
	}

	recursive := cmd.Bool("recursive")

	if cmd.Bool("json") {
		type entry struct {
			Name        string `json:"name"`
			Path        string `json:"path"`
			Description string `json:"description"`
		}

		entries := []entry{}
		for dir := range discovery.Discover(root, recursive) {
			props, err := parser.ReadProperties(dir)
			if err != nil {
				if parser.IsContentError(err) {
					// Unreadable skills are omitted from machine output
					continue
				}
				return err
			}
			entries = append(entries, entry{Name: props.Name, Path: dir, Description: props.Description})
		}

		out, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode skills: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	dirs := slices.Collect(discovery.Discover(root, recursive))
	if len(dirs) == 0 {
		fmt.Printf("No skills found in %s\n", root)
		return nil
	}

	fmt.Printf("Found %d skill(s) in %s:\n\n", len(dirs), root)
	for _, dir := range dirs {
		props, err := parser.ReadProperties(dir)
		if err != nil {
			if parser.IsContentError(err) {
				fmt.Printf("  %s (%s)\n\n", dir, ui.Failure(err.Error()))
				continue
			}
			return err
		}
		fmt.Printf("  %s\n", ui.Bold(props.Name))
		fmt.Printf("    Path: %s\n", ui.Dim(dir))
		fmt.Printf("    Description: %s\n\n", ui.Truncate(props.Description, 80))
	}
	return nil
}

func countCommand() *cli.Command {
	return &cli.Command{
		Name:      "count",
		Usage:     "Count skills found in a directory",
		UsageText: "skillref count [options] [<root>]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "recursive",
				Aliases: []string{"r"},
				Usage:   "Search the whole subtree for skills",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			root := cmd.Args().First()
			if root == "" {
				root = "."
			}
			if info, err := os.Stat(root); err != nil {
				return fmt.Errorf("cannot access %q: %w", root, err)
			} else if !info.IsDir() {
				return fmt.Errorf("not a directory: %s", root)
			}
			fmt.Println(discovery.Count(root, cmd.Bool("recursive")))
			return nil
		},
	}
}

func toPromptCommand() *cli.Command {
	return &cli.Command{
		Name:      "to-prompt",
		Usage:     "Generate the <available_skills> block for agent prompts",
		UsageText: "skillref to-prompt <path>...",
		Description: `Accepts one or more skill directories and prints the XML block to
   standard output for redirection into a prompt file. Skills render in
   argument order.`,
		Action: func(_ context.Context, cmd *cli.Command) error {
			paths := cmd.Args().Slice()
			if len(paths) == 0 {
				return errors.New("to-prompt requires at least one <path> argument")
			}

			dirs := make([]string, len(paths))
			for i, p := range paths {
				dirs[i] = resolveSkillPath(p)
			}

			output, err := prompt.ToPrompt(dirs)
			if err != nil {
				return err
			}
			fmt.Println(output)
			return nil
		},
	}
}

func readPropertiesCommand() *cli.Command {
	return &cli.Command{
		Name:      "read-properties",
		Usage:     "Read and print skill properties as JSON",
		UsageText: "skillref read-properties <path>",
		Action: func(_ context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return errors.New("read-properties requires a <path> argument")
			}

			props, err := parser.ReadProperties(resolveSkillPath(path))
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(props, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode properties: %w", err)
			}
			fmt.Println(string(out))
			return nil
		},
	}
}
