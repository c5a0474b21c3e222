//go:build !windows

package autostart

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// entryPath returns the login entry file for the current OS
func (m *Manager) entryPath() (string, error) {
	if runtime.GOOS == "darwin" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "LaunchAgents", launchAgentLabel+".plist"), nil
	}

	dir, err := xdgDir("XDG_CONFIG_HOME", ".config")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "autostart", desktopFileName), nil
}

func (m *Manager) entryContent() string {
	if runtime.GOOS == "darwin" {
		return launchAgentPlist(m.exePath, m.args)
	}
	return desktopEntry(m.Command(), true)
}

// Register writes the login entry
func (m *Manager) Register() error {
	path, err := m.entryPath()
	if err != nil {
		return fmt.Errorf("failed to locate autostart directory: %w", err)
	}
	if err := writeEntry(path, m.entryContent()); err != nil {
		return fmt.Errorf("failed to register startup: %w", err)
	}
	return nil
}

// Unregister removes the login entry
func (m *Manager) Unregister() error {
	path, err := m.entryPath()
	if err != nil {
		return fmt.Errorf("failed to locate autostart directory: %w", err)
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotRegistered
		}
		return fmt.Errorf("failed to unregister startup: %w", err)
	}
	return nil
}

// IsRegistered reports whether the login entry exists
func (m *Manager) IsRegistered() (bool, error) {
	path, err := m.entryPath()
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

// CreateAppEntries writes an XDG application entry so desktop launchers
// list the daemon. macOS has no per-user equivalent.
func (m *Manager) CreateAppEntries() error {
	if runtime.GOOS == "darwin" {
		return nil
	}
	dir, err := xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
	if err != nil {
		return fmt.Errorf("failed to locate applications directory: %w", err)
	}
	path := filepath.Join(dir, "applications", desktopFileName)
	if err := writeEntry(path, desktopEntry(m.Command(), false)); err != nil {
		return fmt.Errorf("failed to create application entry: %w", err)
	}
	return nil
}

func xdgDir(env, fallback string) (string, error) {
	if dir := os.Getenv(env); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback), nil
}

func writeEntry(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}

func desktopEntry(command string, autostart bool) string {
	lines := []string{
		"[Desktop Entry]",
		"Type=Application",
		"Name=" + DisplayName,
		"Exec=" + command,
		"Terminal=false",
		"NoDisplay=" + fmt.Sprint(autostart),
	}
	if autostart {
		lines = append(lines, "X-GNOME-Autostart-enabled=true")
	}
	return strings.Join(lines, "\n") + "\n"
}

func launchAgentPlist(exe string, args []string) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>` + launchAgentLabel + `</string>
	<key>ProgramArguments</key>
	<array>
`)
	for _, arg := range append([]string{exe}, args...) {
		sb.WriteString("\t\t<string>" + xmlEscape(arg) + "</string>\n")
	}
	sb.WriteString(`	</array>
	<key>RunAtLoad</key>
	<true/>
</dict>
</plist>
`)
	return sb.String()
}

var xmlReplacer = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;", "'", "&apos;")

func xmlEscape(s string) string {
	return xmlReplacer.Replace(s)
}
