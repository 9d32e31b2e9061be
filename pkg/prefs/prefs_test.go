package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSidebar_DefaultsOpen(t *testing.T) {
	t.Parallel()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	assert.True(t, s.SidebarOpen())
}

func TestSidebar_TogglePersists(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)

	open, err := s.ToggleSidebar()
	require.NoError(t, err)
	assert.False(t, open)

	b, err := os.ReadFile(filepath.Join(dir, sidebarKey))
	require.NoError(t, err)
	assert.JSONEq(t, "false", string(b))

	reopened, err := Open(dir)
	require.NoError(t, err)
	assert.False(t, reopened.SidebarOpen())

	open, err = reopened.ToggleSidebar()
	require.NoError(t, err)
	assert.True(t, open)
}

func TestSidebar_CorruptValueFallsBack(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, sidebarKey), []byte("not json"), 0o600))
	s, err := Open(dir)
	require.NoError(t, err)
	assert.True(t, s.SidebarOpen())
}

func TestOpen_EnvAndHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("JOURNAL_PREFS_DIR", dir)
	s, err := Open("")
	require.NoError(t, err)
	assert.Equal(t, dir, s.Dir())

	s, err = Open("~/journal-prefs")
	require.NoError(t, err)
	assert.NotContains(t, s.Dir(), "~")
}
