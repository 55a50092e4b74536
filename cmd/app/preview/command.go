package preview

import (
	"io"

	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	cliapp "exusiai.dev/todoist-readme/cmd/app/cli"
	"exusiai.dev/todoist-readme/internal/service"
)

type CommandDeps struct {
	fx.In

	Updater *service.Updater
}

func Command() *cli.Command {
	return &cli.Command{
		Name:  "preview",
		Usage: "print the updated document to stdout without writing it",
		Action: func(c *cli.Context) error {
			deps, stop, err := cliapp.Deps[CommandDeps](c.Context)
			if err != nil {
				return cliapp.Exit(err)
			}
			defer stop()

			result, err := deps.Updater.Run(c.Context, service.UpdateOptions{DryRun: true})
			if err != nil {
				return cliapp.Exit(err)
			}

			_, err = io.WriteString(c.App.Writer, result.Decision.Content)
			return err
		},
	}
}
