package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Setting keys
const (
	KeyAPIKey          = "api_key"
	KeySystemPrompt    = "system_prompt"
	KeyReasoningEffort = "reasoning_effort"
)

// GetSetting returns the value for a key, or empty string when unset
func (db *DB) GetSetting(key string) (string, error) {
	var value string
	err := db.conn.QueryRow(
		"SELECT value FROM settings WHERE key = ?",
		key,
	).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get setting %q: %w", key, err)
	}

	return value, nil
}

// SetSetting stores or replaces the value for a key
func (db *DB) SetSetting(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at",
		key, value, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to set setting %q: %w", key, err)
	}

	return nil
}

// SettingsStore exposes the settings table as the configuration surface the
// streaming client consumes. Every read hits the database so changes made
// in the settings dialog take effect on the next send.
type SettingsStore struct {
	db *DB
}

// NewSettingsStore creates a settings store over an open database
func NewSettingsStore(db *DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// APIKey returns the configured API credential, empty when unset
func (s *SettingsStore) APIKey() string {
	value, err := s.db.GetSetting(KeyAPIKey)
	if err != nil {
		return ""
	}
	return value
}

// SystemPrompt returns the configured system prompt, empty when unset
func (s *SettingsStore) SystemPrompt() string {
	value, err := s.db.GetSetting(KeySystemPrompt)
	if err != nil {
		return ""
	}
	return value
}

// ReasoningEffort returns the stored effort preference as a raw string
func (s *SettingsStore) ReasoningEffort() string {
	value, err := s.db.GetSetting(KeyReasoningEffort)
	if err != nil {
		return ""
	}
	return value
}

// SetAPIKey stores the API credential
func (s *SettingsStore) SetAPIKey(value string) error {
	return s.db.SetSetting(KeyAPIKey, value)
}

// SetSystemPrompt stores the system prompt
func (s *SettingsStore) SetSystemPrompt(value string) error {
	return s.db.SetSetting(KeySystemPrompt, value)
}

// SetReasoningEffort stores the effort preference
func (s *SettingsStore) SetReasoningEffort(value string) error {
	return s.db.SetSetting(KeyReasoningEffort, value)
}
