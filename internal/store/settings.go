package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nmurthy/posecam/internal/config"
)

// Settings persists key-value settings, including the runtime
// configuration snapshot between sessions.
type Settings struct {
	db *sql.DB
}

// ErrNotFound is returned when a setting key has no stored value.
var ErrNotFound = errors.New("setting not found")

const runtimeConfigKey = "runtime_config"

// Set stores a raw setting value under key.
func (s *Settings) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	if err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}

// Get returns the raw setting value stored under key.
func (s *Settings) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get setting %s: %w", key, err)
	}
	return value, nil
}

// SaveRuntimeConfig persists a runtime configuration snapshot.
func (s *Settings) SaveRuntimeConfig(snap config.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal runtime config: %w", err)
	}
	return s.Set(runtimeConfigKey, string(data))
}

// LoadRuntimeConfig returns the persisted runtime configuration
// snapshot, or ErrNotFound when none has been saved yet.
func (s *Settings) LoadRuntimeConfig() (config.Snapshot, error) {
	var snap config.Snapshot

	data, err := s.Get(runtimeConfigKey)
	if err != nil {
		return snap, err
	}

	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return snap, fmt.Errorf("parse runtime config: %w", err)
	}
	return snap, nil
}
