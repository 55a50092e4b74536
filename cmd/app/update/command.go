package update

import (
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	cliapp "exusiai.dev/todoist-readme/cmd/app/cli"
	"exusiai.dev/todoist-readme/internal/app/appconfig"
	"exusiai.dev/todoist-readme/internal/core/render"
	"exusiai.dev/todoist-readme/internal/pkg/observability"
	"exusiai.dev/todoist-readme/internal/service"
)

// ExitCodeUpdated is returned with --detailed-exitcode when the document changed.
const ExitCodeUpdated = 2

type CommandDeps struct {
	fx.In

	Config  *appconfig.Config
	Updater *service.Updater
}

func Command() *cli.Command {
	return &cli.Command{
		Name:  "update",
		Usage: "fetch the stats and update the document",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "render the document without writing or committing it",
			},
			&cli.BoolFlag{
				Name:  "detailed-exitcode",
				Usage: "exit with status 2 when the document was updated",
			},
		},
		Action: func(c *cli.Context) error {
			deps, stop, err := cliapp.Deps[CommandDeps](c.Context)
			if err != nil {
				return cliapp.Exit(err)
			}
			defer stop()

			result, err := deps.Updater.Run(c.Context, service.UpdateOptions{
				DryRun: c.Bool("dry-run"),
			})
			if werr := observability.WriteTextfile(deps.Config.MetricsTextfile); werr != nil {
				log.Warn().Err(werr).Str("path", deps.Config.MetricsTextfile).Msg("failed to write metrics textfile")
			}
			if err != nil {
				return cliapp.Exit(err)
			}

			if c.Bool("detailed-exitcode") && result.Decision.Outcome == render.Updated {
				return cli.Exit("", ExitCodeUpdated)
			}
			return nil
		},
	}
}
