// Package settings holds the user preferences that survive restarts.
package settings

import (
	"fmt"
	"sync"
)

// Settings are the persisted user preferences.
type Settings struct {
	SoundEnabled     bool `json:"sound_enabled"`
	VibrationEnabled bool `json:"vibration_enabled"`
	PrivacyAccepted  bool `json:"privacy_accepted"`
}

// Defaults returns the preferences of a fresh install.
func Defaults() Settings {
	return Settings{
		SoundEnabled:     true,
		VibrationEnabled: true,
		PrivacyAccepted:  false,
	}
}

// Backend persists settings. Missing values are taken from defaults.
type Backend interface {
	LoadSettings(defaults Settings) (Settings, error)
	SaveSettings(s Settings) error
}

// Manager caches the current settings and writes every change through
// to its backend. Safe for concurrent use; SSH sessions share one manager.
type Manager struct {
	mu      sync.RWMutex
	backend Backend
	current Settings
}

// NewManager creates a manager holding the defaults. A nil backend keeps
// settings in memory only.
func NewManager(backend Backend) *Manager {
	return &Manager{
		backend: backend,
		current: Defaults(),
	}
}

// Load reads the persisted settings, falling back to the defaults for
// anything not stored yet.
func (m *Manager) Load() error {
	if m.backend == nil {
		return nil
	}
	s, err := m.backend.LoadSettings(Defaults())
	if err != nil {
		return fmt.Errorf("settings: load: %w", err)
	}

	m.mu.Lock()
	m.current = s
	m.mu.Unlock()
	return nil
}

// Get returns a copy of the current settings.
func (m *Manager) Get() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// VibrationEnabled reports whether haptic feedback is allowed.
func (m *Manager) VibrationEnabled() bool {
	return m.Get().VibrationEnabled
}

// SoundEnabled reports whether sound cues are allowed.
func (m *Manager) SoundEnabled() bool {
	return m.Get().SoundEnabled
}

// SetSound turns sound on or off.
func (m *Manager) SetSound(on bool) error {
	return m.update(func(s *Settings) { s.SoundEnabled = on })
}

// SetVibration turns haptic feedback on or off.
func (m *Manager) SetVibration(on bool) error {
	return m.update(func(s *Settings) { s.VibrationEnabled = on })
}

// AcceptPrivacy records that the privacy policy was accepted.
func (m *Manager) AcceptPrivacy() error {
	return m.update(func(s *Settings) { s.PrivacyAccepted = true })
}

// update applies fn and persists the result. The in-memory value only
// changes when the write succeeds.
func (m *Manager) update(fn func(*Settings)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.current
	fn(&next)
	if m.backend != nil {
		if err := m.backend.SaveSettings(next); err != nil {
			return fmt.Errorf("settings: save: %w", err)
		}
	}
	m.current = next
	return nil
}
