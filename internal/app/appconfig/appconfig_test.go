package appconfig

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exusiai.dev/todoist-readme/internal/app/appcontext"
	"exusiai.dev/todoist-readme/internal/pkg/runerr"
)

func TestParseDefaults(t *testing.T) {
	conf, err := Parse(appcontext.Declare(appcontext.EnvCLI))
	require.NoError(t, err)

	assert.Equal(t, "./README.md", conf.ReadmePath)
	assert.Equal(t, "https://api.todoist.com/api/v1/sync", conf.TodoistEndpoint)
	assert.Equal(t, 10*time.Second, conf.RequestTimeout)
	assert.Equal(t, uint(3), conf.RetryAttempts)
	assert.Equal(t, "Todoist updated.", conf.CommitMessage)
	assert.True(t, conf.CommitEnabled)
	assert.False(t, conf.Premium)
	assert.Equal(t, appcontext.EnvCLI, conf.AppContext.Env)
}

func TestParsePromotesActionInputs(t *testing.T) {
	t.Setenv("INPUT_TODOIST_API_KEY", "from-input")
	t.Setenv("INPUT_PREMIUM", "true")
	t.Setenv("INPUT_README_PATH", "docs/README.md")
	t.Setenv("README_PATH", "explicit.md")
	t.Cleanup(func() {
		_ = os.Unsetenv("TODOIST_API_KEY")
		_ = os.Unsetenv("PREMIUM")
	})

	conf, err := Parse(appcontext.Declare(appcontext.EnvAction))
	require.NoError(t, err)

	assert.Equal(t, "from-input", conf.TodoistAPIKey)
	assert.True(t, conf.Premium)
	// an explicitly set variable wins over the action input
	assert.Equal(t, "explicit.md", conf.ReadmePath)
}

func TestParseRejectsInvalidConfig(t *testing.T) {
	t.Setenv("COMMITTER_EMAIL", "not-an-email")

	_, err := Parse(appcontext.Declare(appcontext.EnvCLI))
	require.Error(t, err)
	assert.True(t, errors.Is(err, runerr.ErrInvalidConfig))
}
