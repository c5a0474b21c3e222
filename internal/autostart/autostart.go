// Package autostart registers the presence daemon to start at login.
package autostart

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// AppName is the registry value and uninstall key name
	AppName = "NotionPresence"
	// DisplayName is shown in the OS application list
	DisplayName = "Notion Discord Auto RPC"
	// Publisher is shown in the OS application list
	Publisher = "longkey1"

	// launchAgentLabel identifies the macOS LaunchAgent
	launchAgentLabel = "com.notionpresence.agent"
	// desktopFileName is the XDG autostart and application entry name
	desktopFileName = "notion-presence.desktop"
)

// ErrNotRegistered is returned when removing an entry that does not exist
var ErrNotRegistered = errors.New("app not found in startup entries")

// Manager manages the login entry for one executable
type Manager struct {
	exePath string
	args    []string
	version string
}

// NewManager creates a manager for the running executable
func NewManager(version string) (*Manager, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return NewManagerFor(exe, version), nil
}

// NewManagerFor creates a manager for an explicit executable path. The
// daemon is started with the "run" subcommand.
func NewManagerFor(exePath, version string) *Manager {
	return &Manager{
		exePath: exePath,
		args:    []string{"run"},
		version: version,
	}
}

// ExePath returns the registered executable
func (m *Manager) ExePath() string {
	return m.exePath
}

// Command returns the command line started at login, quoting the
// executable when it contains spaces.
func (m *Manager) Command() string {
	exe := m.exePath
	if strings.ContainsAny(exe, " \t") {
		exe = `"` + exe + `"`
	}
	return strings.Join(append([]string{exe}, m.args...), " ")
}
