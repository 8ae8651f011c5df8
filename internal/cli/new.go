package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/klauern/skillref/internal/template"
	"github.com/klauern/skillref/internal/ui"
)

func newCommand() *cli.Command {
	return &cli.Command{
		Name:      "new",
		Usage:     "Scaffold a new skill directory",
		UsageText: "skillref new [options] <name>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Value:   ".",
				Usage:   "Parent directory for the new skill",
			},
			&cli.StringFlag{
				Name:  "description",
				Usage: "Description for the skill frontmatter",
			},
			&cli.StringFlag{
				Name:  "license",
				Usage: "License identifier for the skill frontmatter",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				return errors.New("new requires a <name> argument")
			}

			skillDir, err := template.Scaffold(cmd.String("dir"), template.Data{
				Name:        name,
				Description: cmd.String("description"),
				License:     cmd.String("license"),
			})
			if err != nil {
				return err
			}

			fmt.Println(ui.StatusValid("Created skill: " + skillDir))
			return nil
		},
	}
}
