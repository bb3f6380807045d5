package gallery

import (
	"fmt"

	"github.com/alexisbeaulieu97/mosaic/internal/logger"
)

// DarkModeKey is the preference key holding the dark mode flag.
const DarkModeKey = "darkModePreference"

// Theme is the persisted light/dark preference.
type Theme struct {
	store PreferenceStore
	log   *logger.Logger
	dark  bool
}

// LoadTheme reads the flag. Any stored value other than "true" means light.
func LoadTheme(store PreferenceStore, log *logger.Logger) (*Theme, error) {
	t := &Theme{store: store, log: log}
	return t, t.Reload()
}

// Reload re-reads the flag, e.g. after another process changed it.
func (t *Theme) Reload() error {
	raw, ok, err := t.store.Get(DarkModeKey)
	if err != nil {
		return fmt.Errorf("load theme: %w", err)
	}
	if ok && raw != "true" && raw != "false" {
		t.log.WithFields(map[string]any{"value": raw}).Warn("unrecognised dark mode preference, using light")
	}
	t.dark = ok && raw == "true"
	return nil
}

// Dark reports whether dark mode is on.
func (t *Theme) Dark() bool { return t.dark }

// SetDark sets and persists the flag. Setting the current value changes
// nothing and writes nothing.
func (t *Theme) SetDark(enabled bool) (bool, error) {
	if enabled == t.dark {
		return false, nil
	}
	value := "false"
	if enabled {
		value = "true"
	}
	if err := t.store.Set(DarkModeKey, value); err != nil {
		return false, fmt.Errorf("save theme: %w", err)
	}
	t.dark = enabled
	return true, nil
}

// Toggle flips the flag.
func (t *Theme) Toggle() error {
	_, err := t.SetDark(!t.dark)
	return err
}

// ToggleTitle is the hint shown on the theme switch.
func (t *Theme) ToggleTitle() string {
	if t.dark {
		return "Switch to Light Mode"
	}
	return "Switch to Dark Mode"
}
