package infra

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"exusiai.dev/todoist-readme/internal/app/appconfig"
	"exusiai.dev/todoist-readme/internal/pkg/bininfo"
)

// SentryInit initializes sentry with side-effect, and flushes pending events when the app stops.
func SentryInit(conf *appconfig.Config, lc fx.Lifecycle) error {
	if conf.SentryDSN == "" {
		log.Debug().Msg("Sentry is disabled due to missing DSN.")
		return nil
	}

	log.Info().Msg("Initializing Sentry...")
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              conf.SentryDSN,
		Release:          "todoist-readme@" + bininfo.Version,
		Environment:      conf.AppContext.Env.String(),
		Debug:            conf.DevMode,
		AttachStacktrace: true,
	})
	if err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			sentry.Flush(2 * time.Second)
			return nil
		},
	})
	return nil
}
