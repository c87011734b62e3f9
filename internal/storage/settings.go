package storage

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/fast-bird/internal/settings"
)

const (
	keySound     = "sound_enabled"
	keyVibration = "vibration_enabled"
	keyPrivacy   = "privacy_accepted"
)

// LoadSettings reads the stored preferences. Keys that were never written
// or hold an unparsable value keep the corresponding default.
func (s *Store) LoadSettings(defaults settings.Settings) (settings.Settings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return defaults, fmt.Errorf("storage: cannot query settings: %w", err)
	}
	defer rows.Close()

	out := defaults
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return defaults, fmt.Errorf("storage: cannot scan setting: %w", err)
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			continue
		}
		switch key {
		case keySound:
			out.SoundEnabled = b
		case keyVibration:
			out.VibrationEnabled = b
		case keyPrivacy:
			out.PrivacyAccepted = b
		}
	}

	if err := rows.Err(); err != nil {
		return defaults, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return out, nil
}

// SaveSettings writes every preference in one transaction.
func (s *Store) SaveSettings(st settings.Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin settings update: %w", err)
	}

	values := map[string]bool{
		keySound:     st.SoundEnabled,
		keyVibration: st.VibrationEnabled,
		keyPrivacy:   st.PrivacyAccepted,
	}
	for key, v := range values {
		_, err := tx.Exec(
			`INSERT INTO settings (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			key, strconv.FormatBool(v),
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("storage: cannot save setting %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit settings: %w", err)
	}
	return nil
}

// Ensure Store implements settings.Backend
var _ settings.Backend = (*Store)(nil)
