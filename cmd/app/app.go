package app

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"exusiai.dev/todoist-readme/cmd/app/inspect"
	"exusiai.dev/todoist-readme/cmd/app/preview"
	"exusiai.dev/todoist-readme/cmd/app/update"
	"exusiai.dev/todoist-readme/internal/pkg/bininfo"
)

func Run() {
	app := &cli.App{
		Name:           "todoist-readme",
		Usage:          "keep the Todoist stats in a README up to date",
		Description:    "Fetches productivity stats from the Todoist Sync API and renders them between comment markers of a README, committing the file only when it changed.",
		Version:        bininfo.Version,
		DefaultCommand: "update",
		Commands: []*cli.Command{
			update.Command(),
			preview.Command(),
			inspect.Command(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run app")
	}
}
