package service

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exusiai.dev/todoist-readme/internal/app/appconfig"
	"exusiai.dev/todoist-readme/internal/pkg/runerr"
)

type recordedGit struct {
	dirs  []string
	calls []string
	// failOn makes the runner fail on the first call starting with this subcommand
	failOn string
}

func (r *recordedGit) run(ctx context.Context, dir string, args ...string) (string, error) {
	r.dirs = append(r.dirs, dir)
	r.calls = append(r.calls, strings.Join(args, " "))
	if r.failOn != "" && args[0] == r.failOn {
		return "rejected: non-fast-forward", errors.New("exit status 1")
	}
	return "", nil
}

func newTestGit(rec *recordedGit) *Git {
	g := NewGit(&appconfig.Config{ConfigSpec: appconfig.ConfigSpec{
		CommitterName:  "bot",
		CommitterEmail: "bot@example.com",
		CommitMessage:  "Todoist updated.",
	}})
	g.run = rec.run
	return g
}

func TestGitCommit(t *testing.T) {
	rec := &recordedGit{}

	require.NoError(t, newTestGit(rec).Commit(context.Background(), "/work/repo/README.md"))
	assert.Equal(t, []string{
		"config user.email bot@example.com",
		"config user.name bot",
		"add -- README.md",
		"commit -m Todoist updated. -- README.md",
		"push",
	}, rec.calls)
	for _, dir := range rec.dirs {
		assert.Equal(t, "/work/repo", dir)
	}
}

func TestGitCommitStopsOnFailure(t *testing.T) {
	rec := &recordedGit{failOn: "push"}

	err := newTestGit(rec).Commit(context.Background(), "README.md")
	require.Error(t, err)
	assert.True(t, errors.Is(err, runerr.ErrCommitFailure))
	assert.Contains(t, err.Error(), "non-fast-forward")
	assert.Len(t, rec.calls, 5)

	rec = &recordedGit{failOn: "add"}
	require.Error(t, newTestGit(rec).Commit(context.Background(), "README.md"))
	assert.Len(t, rec.calls, 3)
}
