package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"

	"exusiai.dev/todoist-readme/internal/app/appconfig"
	"exusiai.dev/todoist-readme/internal/app/appcontext"
	"exusiai.dev/todoist-readme/internal/pkg/bininfo"
)

func Configure(conf *appconfig.Config) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	var level zerolog.Level
	if conf.DevMode {
		level = zerolog.TraceLevel
	} else {
		level = zerolog.InfoLevel
	}

	var writers []io.Writer
	if conf.LogJsonStdout {
		writers = append(writers, os.Stdout)
	} else {
		// stdout is reserved for command output such as `preview`
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
			NoColor:    conf.AppContext.Env == appcontext.EnvAction,
		})
	}

	if conf.LogFile != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   conf.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			Compress:   true,
		})
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		With().
		Timestamp().
		Logger().
		Level(level)

	log.Debug().
		Str("version", bininfo.Version).
		Str("buildTime", bininfo.BuildTime).
		Str("env", conf.AppContext.Env.String()).
		Msg("logger configured")
}
