package appconfig

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"

	"exusiai.dev/todoist-readme/internal/app/appcontext"
	"exusiai.dev/todoist-readme/internal/pkg/runerr"
)

// actionInputPrefix is the prefix GitHub Actions puts in front of `with:` inputs.
const actionInputPrefix = "INPUT_"

func Parse(ctx appcontext.Ctx) (*Config, error) {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("failed to load .env file")
	}

	promoteActionInputs()

	var config ConfigSpec
	err = envconfig.Process("", &config)
	if err != nil {
		_ = envconfig.Usage("", &config)
		return nil, runerr.ErrInvalidConfig.Msg("failed to parse configuration: %s", err.Error())
	}

	if err = validator.New().Struct(config); err != nil {
		return nil, runerr.ErrInvalidConfig.Msg("configuration is invalid: %s", err.Error())
	}

	return &Config{
		ConfigSpec: config,
		AppContext: ctx,
	}, nil
}

// promoteActionInputs exposes INPUT_FOO as FOO unless FOO is already set, so
// the same binary can be configured from an action's `with:` block.
func promoteActionInputs() {
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, actionInputPrefix) || value == "" {
			continue
		}
		name := strings.ToUpper(strings.TrimPrefix(key, actionInputPrefix))
		name = strings.ReplaceAll(name, "-", "_")
		if _, set := os.LookupEnv(name); set {
			continue
		}
		_ = os.Setenv(name, value)
	}
}
