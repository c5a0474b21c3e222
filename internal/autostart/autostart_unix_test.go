//go:build !windows && !darwin

package autostart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLifecycle(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	m := NewManagerFor("/opt/notion presence/notion-presence", "1.2.3")

	registered, err := m.IsRegistered()
	require.NoError(t, err)
	assert.False(t, registered)

	require.NoError(t, m.Register())

	registered, err = m.IsRegistered()
	require.NoError(t, err)
	assert.True(t, registered)

	data, err := os.ReadFile(filepath.Join(configHome, "autostart", "notion-presence.desktop"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `Exec="/opt/notion presence/notion-presence" run`)
	assert.Contains(t, string(data), "X-GNOME-Autostart-enabled=true")

	require.NoError(t, m.Unregister())
	registered, err = m.IsRegistered()
	require.NoError(t, err)
	assert.False(t, registered)

	assert.ErrorIs(t, m.Unregister(), ErrNotRegistered)
}

func TestCreateAppEntries(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)

	m := NewManagerFor("/usr/local/bin/notion-presence", "1.2.3")
	require.NoError(t, m.CreateAppEntries())

	data, err := os.ReadFile(filepath.Join(dataHome, "applications", "notion-presence.desktop"))
	require.NoError(t, err)
	assert.Equal(t, `[Desktop Entry]
Type=Application
Name=Notion Discord Auto RPC
Exec=/usr/local/bin/notion-presence run
Terminal=false
NoDisplay=false
`, string(data))
}
