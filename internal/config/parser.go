package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	mosaicerrors "github.com/alexisbeaulieu97/mosaic/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// Environment variables that override file values.
const (
	EnvAccessKey = "UNSPLASH_ACCESS_KEY"
	EnvLogLevel  = "MOSAIC_LOG_LEVEL"
)

// Load reads the configuration at path on top of Default(dir). A missing file
// is only an error when required is true.
func Load(path, dir string, required bool) (*Config, error) {
	cfg := Default(dir)

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, mosaicerrors.NewParseError(path, extractLine(err), err)
		}
	case errors.Is(err, fs.ErrNotExist) && !required:
	default:
		return nil, mosaicerrors.NewParseError(path, 0, err)
	}

	applyEnv(cfg, os.LookupEnv)
	cfg.Store.Path = expandHome(cfg.Store.Path)
	cfg.Downloads.Dir = expandHome(cfg.Downloads.Dir)
	cfg.Log.File = expandHome(cfg.Log.File)
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvAccessKey); ok && strings.TrimSpace(v) != "" {
		cfg.API.AccessKey = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		cfg.Log.Level = strings.TrimSpace(v)
	}
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
