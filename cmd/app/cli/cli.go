package cli

import (
	"context"

	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	"exusiai.dev/todoist-readme/internal/app"
	"exusiai.dev/todoist-readme/internal/app/appcontext"
	"exusiai.dev/todoist-readme/internal/pkg/runerr"
)

// Deps builds the application graph, populates T from it and starts it. The
// returned stop func must be called once the command is done.
func Deps[T any](ctx context.Context) (T, func(), error) {
	var deps T

	fxApp, err := app.New(appcontext.Detect(), fx.Populate(&deps))
	if err != nil {
		return deps, nil, err
	}
	if err := fxApp.Start(ctx); err != nil {
		return deps, nil, err
	}

	stop := func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), fxApp.StopTimeout())
		defer cancel()
		if err := fxApp.Stop(stopCtx); err != nil {
			log.Warn().Err(err).Msg("failed to stop app gracefully")
		}
	}
	return deps, stop, nil
}

// Exit reports a fatal run error and turns it into exit status 1.
func Exit(err error) error {
	evt := log.Error().Err(err)

	var runErr *runerr.RunError
	if errors.As(err, &runErr) {
		evt = evt.Str("code", runErr.ErrorCode)
		if runErr.Extras != nil {
			evt = evt.Interface("extras", *runErr.Extras)
		}
	}
	evt.Msg("update run failed")

	sentry.CaptureException(err)
	return cli.Exit("", 1)
}
