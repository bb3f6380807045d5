package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	mosaicerrors "github.com/alexisbeaulieu97/mosaic/pkg/errors"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		field   string
		message string
	}{
		{
			name:    "debounce too short",
			mutate:  func(c *Config) { c.Search.Debounce = 100 * time.Millisecond },
			field:   "search.debounce",
			message: "between 500ms and 1s",
		},
		{
			name:    "debounce too long",
			mutate:  func(c *Config) { c.Search.Debounce = 2 * time.Second },
			field:   "search.debounce",
			message: "between 500ms and 1s",
		},
		{
			name:   "per page above api limit",
			mutate: func(c *Config) { c.API.PerPage = 31 },
			field:  "api.per_page",
		},
		{
			name:   "empty heights",
			mutate: func(c *Config) { c.Grid.Heights = nil },
			field:  "grid.heights",
		},
		{
			name:   "non positive height",
			mutate: func(c *Config) { c.Grid.Heights = []int{250, 0} },
			field:  "grid.heights[1]",
		},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.Store.Driver = "redis" },
			field:   "store.driver",
			message: "unknown store driver",
		},
		{
			name:   "bad endpoint",
			mutate: func(c *Config) { c.API.Endpoint = "not a url" },
			field:  "api.endpoint",
		},
		{
			name:   "bad log level",
			mutate: func(c *Config) { c.Log.Level = "chatty" },
			field:  "log.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default(t.TempDir())
			tt.mutate(cfg)

			err := ValidateConfig(cfg)
			var validationErr *mosaicerrors.ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.Equal(t, tt.field, validationErr.Field)
			if tt.message != "" {
				require.Contains(t, validationErr.Message, tt.message)
			}
		})
	}
}

func TestValidateDefaultConfig(t *testing.T) {
	require.NoError(t, ValidateConfig(Default(t.TempDir())))
}

func TestValidateNilConfig(t *testing.T) {
	require.Error(t, ValidateConfig(nil))
}
