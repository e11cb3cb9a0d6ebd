package prefs

import (
	"errors"
	"strings"
	"sync"
)

// Theme is the visual mode preference. System defers to whatever the client
// environment reports.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

var ErrInvalidTheme = errors.New("invalid theme")

// ParseTheme normalises a theme label. Unknown values are an error rather
// than a silent fallback.
func ParseTheme(raw string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(raw))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	case ThemeSystem:
		return ThemeSystem, nil
	}
	return "", ErrInvalidTheme
}

// Store persists the theme preference across restarts.
type Store interface {
	Load() (Theme, bool, error)
	Save(theme Theme) error
}

// MemoryStore keeps the preference in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	theme Theme
	set   bool
}

func (s *MemoryStore) Load() (Theme, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme, s.set, nil
}

func (s *MemoryStore) Save(theme Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = theme
	s.set = true
	return nil
}

// Service resolves the effective theme: the stored preference when one was
// saved, the configured default otherwise. The store is read once at
// construction and written through on every change.
type Service struct {
	store   Store
	def     Theme
	mu      sync.RWMutex
	current Theme
}

func NewService(store Store, def Theme) (*Service, error) {
	if def == "" {
		def = ThemeSystem
	}
	s := &Service{store: store, def: def, current: def}
	if store != nil {
		stored, ok, err := store.Load()
		if err != nil {
			return nil, err
		}
		if ok {
			s.current = stored
		}
	}
	return s, nil
}

func (s *Service) Current() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set validates and persists a new preference.
func (s *Service) Set(raw string) (Theme, error) {
	theme, err := ParseTheme(raw)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store != nil {
		if err := s.store.Save(theme); err != nil {
			return "", err
		}
	}
	s.current = theme
	return theme, nil
}
