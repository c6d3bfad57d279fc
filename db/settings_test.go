package db

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	database, err := New(filepath.Join(t.TempDir(), "settings.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func TestSettingRoundTrip(t *testing.T) {
	database := openTestDB(t)

	if err := database.SetSetting(KeyAPIKey, "sk-test"); err != nil {
		t.Fatalf("failed to set: %v", err)
	}

	value, err := database.GetSetting(KeyAPIKey)
	if err != nil {
		t.Fatalf("failed to get: %v", err)
	}
	if value != "sk-test" {
		t.Errorf("expected sk-test, got %q", value)
	}
}

func TestSettingUnsetReturnsEmpty(t *testing.T) {
	database := openTestDB(t)

	value, err := database.GetSetting("missing_key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != "" {
		t.Errorf("expected empty value for unset key, got %q", value)
	}
}

func TestSettingOverwrite(t *testing.T) {
	database := openTestDB(t)

	if err := database.SetSetting(KeySystemPrompt, "first"); err != nil {
		t.Fatalf("failed to set: %v", err)
	}
	if err := database.SetSetting(KeySystemPrompt, "second"); err != nil {
		t.Fatalf("failed to overwrite: %v", err)
	}

	value, _ := database.GetSetting(KeySystemPrompt)
	if value != "second" {
		t.Errorf("expected second, got %q", value)
	}
}

func TestSettingsStoreFreshRead(t *testing.T) {
	database := openTestDB(t)
	store := NewSettingsStore(database)

	if store.APIKey() != "" {
		t.Error("expected empty key before configuration")
	}

	if err := store.SetAPIKey("sk-live"); err != nil {
		t.Fatalf("failed to set key: %v", err)
	}
	if store.APIKey() != "sk-live" {
		t.Error("store must observe a newly written key without reopening")
	}

	if err := store.SetSystemPrompt("be terse"); err != nil {
		t.Fatalf("failed to set prompt: %v", err)
	}
	if store.SystemPrompt() != "be terse" {
		t.Errorf("expected prompt to round-trip, got %q", store.SystemPrompt())
	}

	if err := store.SetReasoningEffort("high"); err != nil {
		t.Fatalf("failed to set effort: %v", err)
	}
	if store.ReasoningEffort() != "high" {
		t.Errorf("expected effort to round-trip, got %q", store.ReasoningEffort())
	}
}
