package config

import (
	"time"
)

// Config represents the full mosaic configuration document.
type Config struct {
	API       APIConfig       `yaml:"api"`
	Search    SearchConfig    `yaml:"search"`
	Grid      GridConfig      `yaml:"grid"`
	Store     StoreConfig     `yaml:"store"`
	Downloads DownloadsConfig `yaml:"downloads"`
	Log       LogConfig       `yaml:"log"`
}

// APIConfig configures the remote image search endpoint.
type APIConfig struct {
	Endpoint  string        `yaml:"endpoint" validate:"required,url"`
	AccessKey string        `yaml:"access_key"`
	PerPage   int           `yaml:"per_page" validate:"min=1,max=30"`
	Timeout   time.Duration `yaml:"timeout" validate:"gt=0"`
}

// SearchConfig tunes the search controller.
type SearchConfig struct {
	Debounce     time.Duration `yaml:"debounce" validate:"debounce_window"`
	DefaultQuery string        `yaml:"default_query,omitempty"`
}

// GridConfig holds the grid item height presets.
type GridConfig struct {
	Heights []int `yaml:"heights" validate:"required,min=1,dive,gt=0"`
}

// StoreConfig selects the preference store backend.
type StoreConfig struct {
	Driver string `yaml:"driver" validate:"required,store_driver"`
	Path   string `yaml:"path" validate:"required"`
}

// DownloadsConfig sets where downloaded images are written.
type DownloadsConfig struct {
	Dir string `yaml:"dir" validate:"required"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=trace debug info warn error"`
	File  string `yaml:"file,omitempty"`
}

const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"

	DefaultEndpoint = "https://api.unsplash.com/search/photos"
	DefaultPerPage  = 30

	MinDebounce = 500 * time.Millisecond
	MaxDebounce = time.Second
)

// DefaultHeights are the grid item height presets in pixels.
var DefaultHeights = []int{250, 300, 350, 400}
