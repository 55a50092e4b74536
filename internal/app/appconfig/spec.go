package appconfig

import (
	"time"

	"exusiai.dev/todoist-readme/internal/app/appcontext"
)

type ConfigSpec struct {
	// TodoistAPIKey is the personal API token used as the bearer token against the Todoist API.
	// It is only required by commands that fetch stats.
	TodoistAPIKey string `envconfig:"TODOIST_API_KEY"`

	// Premium indicates the Todoist account has a premium entitlement. Weekly stats are only
	// rendered when this is true.
	Premium bool `envconfig:"PREMIUM" default:"false"`

	// ReadmePath is the path of the document to update.
	ReadmePath string `split_words:"true" default:"./README.md" validate:"required"`

	// TodoistEndpoint is the Sync API endpoint stats are fetched from.
	TodoistEndpoint string `split_words:"true" default:"https://api.todoist.com/api/v1/sync" validate:"required,url"`

	// RequestTimeout bounds a single request to the Todoist API.
	RequestTimeout time.Duration `split_words:"true" default:"10s" validate:"gt=0"`

	// RetryAttempts is the total number of attempts made when Todoist rate limits or errors.
	RetryAttempts uint `split_words:"true" default:"3" validate:"min=1,max=10"`

	// RetryDelay is the base delay of the exponential backoff in-between attempts.
	RetryDelay time.Duration `split_words:"true" default:"1s"`

	// RetryMaxDelay caps any single wait, including waits requested by a Retry-After header.
	RetryMaxDelay time.Duration `split_words:"true" default:"30s"`

	// CommitEnabled is whether to commit and push the document after it changed.
	CommitEnabled bool `split_words:"true" default:"true"`

	CommitterName  string `split_words:"true" default:"todoist-readme-bot" validate:"required"`
	CommitterEmail string `split_words:"true" default:"todoist-readme-bot@users.noreply.github.com" validate:"required,email"`
	CommitMessage  string `split_words:"true" default:"Todoist updated." validate:"required"`

	// TestMode writes the document but never commits, regardless of CommitEnabled.
	TestMode bool `split_words:"true"`

	// DevMode lowers the log level to trace.
	DevMode bool `split_words:"true"`

	// LogJsonStdout is whether to log JSON logs (instead of pretty-print logs) to stdout for the ease of log collection.
	LogJsonStdout bool `split_words:"true" default:"false"`

	// LogFile, when set, additionally writes JSON logs to a size-rotated file.
	LogFile string `split_words:"true"`

	// SentryDSN is the DSN of the Sentry server. Fatal run errors are reported when set.
	SentryDSN string `split_words:"true"`

	// MetricsTextfile, when set, is the path run metrics are written to in the Prometheus text
	// format, e.g. for the node_exporter textfile collector.
	MetricsTextfile string `split_words:"true"`
}

type Config struct {
	// ConfigSpec is the configuration specification injected to the config.
	ConfigSpec

	// AppContext is the application context
	AppContext appcontext.Ctx
}
