package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/klauern/skillref/internal/discovery"
	"github.com/klauern/skillref/internal/ui"
	"github.com/klauern/skillref/internal/ui/tui"
)

func browseCommand() *cli.Command {
	return &cli.Command{
		Name:      "browse",
		Usage:     "Browse discovered skills interactively",
		UsageText: "skillref browse [options] [<root>]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "recursive",
				Aliases: []string{"r"},
				Usage:   "Search the whole subtree for skills",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if !ui.IsTerminal(os.Stdout) {
				return errors.New("browse requires an interactive terminal")
			}

			root := cmd.Args().First()
			if root == "" {
				root = "."
			}
			if info, err := os.Stat(root); err != nil {
				return fmt.Errorf("cannot access %q: %w", root, err)
			} else if !info.IsDir() {
				return fmt.Errorf("not a directory: %s", root)
			}

			infos, err := discovery.Collect(root, cmd.Bool("recursive"), currentConfig().Options())
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				fmt.Printf("No skills found in %s\n", root)
				return nil
			}

			_, err = tui.Run(tui.NewSkillListModel(infos))
			return err
		},
	}
}
