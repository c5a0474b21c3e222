//go:build windows

package autostart

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"
)

const (
	runKeyPath       = `Software\Microsoft\Windows\CurrentVersion\Run`
	uninstallKeyPath = `Software\Microsoft\Windows\CurrentVersion\Uninstall\` + AppName
)

// Register adds the Run value under HKCU
func (m *Manager) Register() error {
	k, _, err := registry.CreateKey(registry.CURRENT_USER, runKeyPath, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("failed to open run key: %w", err)
	}
	defer k.Close()

	if err := k.SetStringValue(AppName, m.Command()); err != nil {
		return fmt.Errorf("failed to register startup: %w", err)
	}
	return nil
}

// Unregister removes the Run value and the uninstall entry
func (m *Manager) Unregister() error {
	k, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.SET_VALUE)
	if errors.Is(err, registry.ErrNotExist) {
		return ErrNotRegistered
	}
	if err != nil {
		return fmt.Errorf("failed to open run key: %w", err)
	}
	defer k.Close()

	if err := k.DeleteValue(AppName); err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return ErrNotRegistered
		}
		return fmt.Errorf("failed to unregister startup: %w", err)
	}

	if err := registry.DeleteKey(registry.CURRENT_USER, uninstallKeyPath); err != nil && !errors.Is(err, registry.ErrNotExist) {
		return fmt.Errorf("failed to remove uninstall entry: %w", err)
	}
	return nil
}

// IsRegistered reports whether the Run value exists
func (m *Manager) IsRegistered() (bool, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.QUERY_VALUE)
	if errors.Is(err, registry.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to open run key: %w", err)
	}
	defer k.Close()

	if _, _, err := k.GetStringValue(AppName); err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// CreateAppEntries writes the per-user uninstall entry shown in
// "Apps & features"
func (m *Manager) CreateAppEntries() error {
	k, _, err := registry.CreateKey(registry.CURRENT_USER, uninstallKeyPath, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("failed to create uninstall key: %w", err)
	}
	defer k.Close()

	values := []struct{ name, value string }{
		{"DisplayName", DisplayName},
		{"DisplayVersion", m.version},
		{"Publisher", Publisher},
		{"DisplayIcon", m.exePath},
		{"UninstallString", m.uninstallCommand()},
	}
	for _, v := range values {
		if err := k.SetStringValue(v.name, v.value); err != nil {
			return fmt.Errorf("failed to set %s: %w", v.name, err)
		}
	}
	return nil
}

func (m *Manager) uninstallCommand() string {
	return fmt.Sprintf(`"%s" autostart disable`, m.exePath)
}
