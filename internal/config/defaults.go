package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultDir returns the directory holding mosaic state (~/.mosaic).
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".mosaic"), nil
}

// DefaultConfigPath returns ~/.mosaic/config.yaml.
func DefaultConfigPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Default builds a configuration rooted at the given state directory.
func Default(dir string) *Config {
	downloads := filepath.Join(dir, "downloads")
	if home, err := os.UserHomeDir(); err == nil {
		downloads = filepath.Join(home, "Downloads")
	}

	return &Config{
		API: APIConfig{
			Endpoint: DefaultEndpoint,
			PerPage:  DefaultPerPage,
			Timeout:  15 * time.Second,
		},
		Search: SearchConfig{
			Debounce: MaxDebounce,
		},
		Grid: GridConfig{
			Heights: append([]int(nil), DefaultHeights...),
		},
		Store: StoreConfig{
			Driver: DriverFile,
			Path:   filepath.Join(dir, "preferences.json"),
		},
		Downloads: DownloadsConfig{
			Dir: downloads,
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(dir, "mosaic.log"),
		},
	}
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
