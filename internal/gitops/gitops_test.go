package gitops

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCommitAndStatus(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	dir := t.TempDir()
	assert.False(t, IsRepo(dir))

	require.NoError(t, Init(dir))
	assert.True(t, IsRepo(dir))

	changed, err := HasChanges(dir)
	require.NoError(t, err)
	assert.False(t, changed, "fresh repo has nothing to commit")

	path := filepath.Join(dir, "accounts.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,name,type,description\n"), 0o644))

	changed, err = HasChanges(dir)
	require.NoError(t, err)
	assert.True(t, changed)

	hash, err := CommitAll(dir, "init: books", "Propbooks", "books@propbooks.dev")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)

	changed, err = HasChanges(dir)
	require.NoError(t, err)
	assert.False(t, changed)
}
