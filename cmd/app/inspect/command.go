package inspect

import (
	"fmt"
	"io"

	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	cliapp "exusiai.dev/todoist-readme/cmd/app/cli"
	"exusiai.dev/todoist-readme/internal/core/marker"
	"exusiai.dev/todoist-readme/internal/pkg/runerr"
	"exusiai.dev/todoist-readme/internal/repo"
)

type CommandDeps struct {
	fx.In

	Readme *repo.Readme
}

func Command() *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "report the markers found in the document without fetching any stats",
		Action: func(c *cli.Context) error {
			deps, stop, err := cliapp.Deps[CommandDeps](c.Context)
			if err != nil {
				return cliapp.Exit(err)
			}
			defer stop()

			doc, err := deps.Readme.Read(c.Context)
			if err != nil {
				return cliapp.Exit(runerr.ErrDocumentIOFailure.Msg("failed to read %s", deps.Readme.Path()).Wrap(err))
			}

			return report(c.App.Writer, deps.Readme.Path(), doc)
		},
	}
}

func report(w io.Writer, path, doc string) error {
	mode := marker.Detect(doc)
	if _, err := fmt.Fprintf(w, "document: %s\nmode: %s\n\n", path, mode); err != nil {
		return err
	}

	for _, s := range marker.Survey(doc) {
		state := "absent"
		switch {
		case s.Usable():
			state = "ok"
		case s.Present:
			state = s.Err.Error()
		}
		if _, err := fmt.Fprintf(w, "%-24s %s\n", s.Region, state); err != nil {
			return err
		}
	}

	for _, tag := range marker.UnknownTags(doc) {
		if _, err := fmt.Fprintf(w, "unknown tag %q, possibly a typo\n", tag); err != nil {
			return err
		}
	}

	if mode == marker.ModeNone {
		_, err := fmt.Fprintf(w, "\nno supported markers found, use the %s", marker.SupportedFormats())
		return err
	}
	return nil
}
