// Package config loads the daemon's two configuration documents: a
// flat TOML settings block (log level, device override — the ambient
// daemon settings the teacher's own config package modeled) and the
// YAML-shaped modmap/keymap rule tree described in the keymap schema.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Settings holds the flat daemon-level settings, independent of the
// remap rule tree.
type Settings struct {
	Device   string `toml:"device"`    // evdev device path override, "" auto-detects
	LogLevel string `toml:"log_level"` // "debug" enables verbose logging
}

// DefaultSettings returns a Settings populated with default values.
func DefaultSettings() *Settings {
	return &Settings{
		Device:   "",
		LogLevel: "info",
	}
}

// DefaultSettingsPath returns ~/.config/xremap-core/settings.toml.
func DefaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "xremap-core", "settings.toml")
}

// DefaultRulesPath returns ~/.config/xremap-core/config.yml.
func DefaultRulesPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "xremap-core", "config.yml")
}

// SaveSettings writes settings as TOML to path atomically: written to
// a temp file in the same directory, then renamed into place so a
// crash mid-write cannot corrupt the existing file.
func SaveSettings(path string, s *Settings) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".xremap-settings-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if err := toml.NewEncoder(tmp).Encode(s); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, path)
}

// LoadSettings reads daemon settings from path. A missing file yields
// defaults without error.
func LoadSettings(path string) (*Settings, error) {
	s := DefaultSettings()

	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}

	if _, err := toml.DecodeFile(path, s); err != nil {
		return nil, err
	}
	return s, nil
}
