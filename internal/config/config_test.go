package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.Device != "" {
		t.Errorf("expected empty device, got %s", s.Device)
	}
	if s.LogLevel != "info" {
		t.Errorf("expected log level info, got %s", s.LogLevel)
	}
}

func TestLoadSettingsMissingFile(t *testing.T) {
	s, err := LoadSettings("/nonexistent/path/settings.toml")
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if s.LogLevel != "info" {
		t.Errorf("expected default log level, got %s", s.LogLevel)
	}
}

func TestLoadSettingsOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")

	content := `
device = "/dev/input/event5"
log_level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Device != "/dev/input/event5" {
		t.Errorf("expected /dev/input/event5, got %s", s.Device)
	}
	if s.LogLevel != "debug" {
		t.Errorf("expected debug, got %s", s.LogLevel)
	}
}

func TestSaveSettingsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")

	s := DefaultSettings()
	s.Device = "/dev/input/event3"
	s.LogLevel = "debug"

	if err := SaveSettings(path, s); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	loaded, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings after SaveSettings failed: %v", err)
	}
	if loaded.Device != "/dev/input/event3" {
		t.Errorf("expected /dev/input/event3, got %s", loaded.Device)
	}
	if loaded.LogLevel != "debug" {
		t.Errorf("expected debug, got %s", loaded.LogLevel)
	}
}

func TestSaveSettingsCreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "dir", "settings.toml")

	if err := SaveSettings(path, DefaultSettings()); err != nil {
		t.Fatalf("SaveSettings failed to create nested dirs: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file to exist at %s: %v", path, err)
	}
}

func TestDefaultPaths(t *testing.T) {
	if filepath.Base(DefaultSettingsPath()) != "settings.toml" {
		t.Errorf("expected settings.toml, got %s", DefaultSettingsPath())
	}
	if filepath.Base(DefaultRulesPath()) != "config.yml" {
		t.Errorf("expected config.yml, got %s", DefaultRulesPath())
	}
}
