package repo

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"exusiai.dev/todoist-readme/internal/app/appconfig"
)

// Readme is the file backed document the stats are rendered into.
type Readme struct {
	path string
}

func NewReadme(conf *appconfig.Config) *Readme {
	return &Readme{path: conf.ReadmePath}
}

func (r *Readme) Path() string {
	return r.path
}

func (r *Readme) Read(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	content, err := os.ReadFile(r.path)
	if err != nil {
		return "", errors.Wrap(err, "failed to read "+r.path)
	}
	return string(content), nil
}

// Write replaces the document through a temporary file in the same directory,
// so a failed write never leaves a truncated document behind. The original
// file mode is kept.
func (r *Readme) Write(ctx context.Context, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(r.path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), "."+filepath.Base(r.path)+".*")
	if err != nil {
		return errors.Wrap(err, "failed to create temporary file")
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "failed to write temporary file")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "failed to close temporary file")
	}
	if err = os.Chmod(tmp.Name(), mode); err != nil {
		return errors.Wrap(err, "failed to set file mode")
	}

	if err = os.Rename(tmp.Name(), r.path); err != nil {
		return errors.Wrap(err, "failed to replace "+r.path)
	}
	return nil
}
