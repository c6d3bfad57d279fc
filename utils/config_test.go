package utils

import (
	"path/filepath"
	"testing"
)

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	original := DefaultConfig()
	original.Endpoint.Model = "test/model"
	original.UI.WindowWidth = 999

	if err := SaveConfig(path, original); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.Endpoint.Model != "test/model" {
		t.Errorf("expected model test/model, got %s", loaded.Endpoint.Model)
	}
	if loaded.Endpoint.BaseURL != original.Endpoint.BaseURL {
		t.Errorf("base URL mismatch: %s", loaded.Endpoint.BaseURL)
	}
	if loaded.UI.WindowWidth != 999 {
		t.Errorf("expected window width 999, got %d", loaded.UI.WindowWidth)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestExpandPathHome(t *testing.T) {
	expanded := expandPath("~/settings.db")
	if expanded == "~/settings.db" {
		t.Error("expected ~ to be expanded")
	}
	if !filepath.IsAbs(expanded) {
		t.Errorf("expected absolute path, got %s", expanded)
	}
}
