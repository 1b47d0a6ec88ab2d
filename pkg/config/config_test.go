package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minigit-vcs/minigit/pkg/repository/mgpath"
)

func newTestMiniGit(t *testing.T) mgpath.MiniGitPath {
	t.Helper()
	root, err := mgpath.NewRepositoryPath(t.TempDir())
	require.NoError(t, err)

	minigit := root.MiniGitPath()
	require.NoError(t, os.MkdirAll(minigit.String(), 0755))
	return minigit
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(newTestMiniGit(t))
	require.NoError(t, err)

	assert.Equal(t, DefaultBranch, cfg.Core.DefaultBranch)
	assert.Empty(t, cfg.User.Name)
	assert.Empty(t, cfg.User.Email)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	minigit := newTestMiniGit(t)

	cfg := Default()
	cfg.User.Name = "Ada Lovelace"
	cfg.User.Email = "ada@example.com"
	cfg.Core.DefaultBranch = "trunk"
	require.NoError(t, Save(minigit, cfg))

	loaded, err := Load(minigit)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadBackfillsDefaultBranch(t *testing.T) {
	minigit := newTestMiniGit(t)

	path := minigit.ConfigPath().ToAbsolutePath().String()
	content := "[user]\nname = \"Ada\"\nemail = \"ada@example.com\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(minigit)
	require.NoError(t, err)
	assert.Equal(t, "Ada", cfg.User.Name)
	assert.Equal(t, DefaultBranch, cfg.Core.DefaultBranch)
}

func TestLoadRejectsInvalidTOML(t *testing.T) {
	minigit := newTestMiniGit(t)

	path := minigit.ConfigPath().ToAbsolutePath().String()
	require.NoError(t, os.WriteFile(path, []byte("not = [valid"), 0644))

	_, err := Load(minigit)
	assert.Error(t, err)
}
