package repo

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exusiai.dev/todoist-readme/internal/app/appconfig"
)

func newTestReadme(t *testing.T, content string, mode os.FileMode) *Readme {
	t.Helper()
	path := filepath.Join(t.TempDir(), "README.md")
	require.NoError(t, os.WriteFile(path, []byte(content), mode))
	require.NoError(t, os.Chmod(path, mode))
	return NewReadme(&appconfig.Config{ConfigSpec: appconfig.ConfigSpec{ReadmePath: path}})
}

func TestReadmeReadWrite(t *testing.T) {
	ctx := context.Background()
	r := newTestReadme(t, "before\n", 0o600)

	got, err := r.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "before\n", got)

	require.NoError(t, r.Write(ctx, "after\n"))

	got, err = r.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "after\n", got)

	info, err := os.Stat(r.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(r.Path()))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestReadmeReadMissing(t *testing.T) {
	r := NewReadme(&appconfig.Config{ConfigSpec: appconfig.ConfigSpec{ReadmePath: filepath.Join(t.TempDir(), "missing.md")}})

	_, err := r.Read(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
