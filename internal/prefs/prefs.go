package prefs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/huimingz/prgen/internal/log"
	"github.com/huimingz/prgen/internal/store"
	"github.com/huimingz/prgen/pkg/lang"
)

// Preference is the single persisted user preference
type Preference struct {
	APIKey string      `json:"apiKey,omitempty"`
	Locale lang.Locale `json:"language,omitempty"`
}

// IsEmpty reports whether no field is set
func (p Preference) IsEmpty() bool {
	return p.APIKey == "" && p.Locale == ""
}

// Manager reads and writes the Preference through a store
type Manager struct {
	store store.Store
}

// NewManager creates a new preference manager
func NewManager(s store.Store) *Manager {
	return &Manager{store: s}
}

// Load returns the saved preference. A missing document yields an empty
// preference and no error. An unreadable document yields an empty preference
// together with the persistence error so the caller can report it.
func (m *Manager) Load() (Preference, error) {
	var p Preference
	if err := m.store.Load(&p); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Preference{}, nil
		}
		return Preference{}, err
	}
	if p.Locale != "" && !p.Locale.IsValid() {
		p.Locale = ""
	}
	return p, nil
}

// current loads the preference for a read-modify-write. An unreadable
// document is reported and treated as empty.
func (m *Manager) current() Preference {
	p, err := m.Load()
	if err != nil {
		log.Warn("Could not read saved preferences, starting from empty: %v", err)
	}
	return p
}

// SaveAPIKey stores the credential, keeping the saved locale
func (m *Manager) SaveAPIKey(apiKey string) error {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return fmt.Errorf("api key cannot be empty")
	}

	p := m.current()
	p.APIKey = apiKey
	if err := m.store.Save(p); err != nil {
		return fmt.Errorf("failed to save API key: %w", err)
	}
	return nil
}

// SaveLocale stores the locale, keeping the saved credential
func (m *Manager) SaveLocale(l lang.Locale) error {
	if !l.IsValid() {
		return fmt.Errorf("unsupported language: %s", l)
	}

	p := m.current()
	p.Locale = l
	if err := m.store.Save(p); err != nil {
		return fmt.Errorf("failed to save language: %w", err)
	}
	return nil
}

// ClearAPIKey removes the saved credential and reports whether one existed.
// The document is deleted when nothing else remains in it.
func (m *Manager) ClearAPIKey() (bool, error) {
	p := m.current()
	if p.APIKey == "" {
		return false, nil
	}

	p.APIKey = ""
	var err error
	if p.IsEmpty() {
		err = m.store.Clear()
	} else {
		err = m.store.Save(p)
	}
	if err != nil {
		return false, fmt.Errorf("failed to clear API key: %w", err)
	}
	return true, nil
}
