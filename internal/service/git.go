package service

import (
	"bytes"
	"context"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"exusiai.dev/todoist-readme/internal/app/appconfig"
	"exusiai.dev/todoist-readme/internal/pkg/runerr"
)

// Committer persists a changed document to version control.
type Committer interface {
	Commit(ctx context.Context, path string) error
}

// gitRunner runs git with args in dir and returns its combined output.
type gitRunner func(ctx context.Context, dir string, args ...string) (string, error)

type Git struct {
	name    string
	email   string
	message string

	run gitRunner
}

func NewGit(conf *appconfig.Config) *Git {
	return &Git{
		name:    conf.CommitterName,
		email:   conf.CommitterEmail,
		message: conf.CommitMessage,
		run:     execGit,
	}
}

// Commit stages path, commits it with the configured identity and pushes the
// current branch. The identity is set on the repository, not globally.
func (g *Git) Commit(ctx context.Context, path string) error {
	dir := filepath.Dir(path)
	file := filepath.Base(path)

	steps := [][]string{
		{"config", "user.email", g.email},
		{"config", "user.name", g.name},
		{"add", "--", file},
		{"commit", "-m", g.message, "--", file},
		{"push"},
	}

	for _, args := range steps {
		log.Ctx(ctx).Debug().Strs("args", args).Str("dir", dir).Msg("running git")
		if out, err := g.run(ctx, dir, args...); err != nil {
			return runerr.ErrCommitFailure.
				Msg("git %s failed: %s", args[0], out).
				Wrap(err)
		}
	}

	log.Ctx(ctx).Info().Str("path", path).Msg("Readme updated successfully.")
	return nil
}

func execGit(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		return strings.TrimSpace(out.String()), errors.Wrap(err, "command 'git "+strings.Join(args, " ")+"' failed")
	}
	return strings.TrimSpace(out.String()), nil
}
