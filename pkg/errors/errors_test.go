package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("unexpected token")
	err := NewParseError("config.yaml", 12, underlying)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "config.yaml", parseErr.Path)
	require.Equal(t, 12, parseErr.Line)
	require.True(t, stdErrors.Is(err, underlying))
	require.Contains(t, err.Error(), "config.yaml:12")
}

func TestValidationErrorIncludesField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("search.debounce", "must be between 500ms and 1s", nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "search.debounce", validationErr.Field)
	require.Contains(t, err.Error(), "must be between 500ms and 1s")
}

func TestFetchErrorIncludesStatus(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("rate limited")
	err := NewFetchError("winter", 3, 403, underlying)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	require.Equal(t, "winter", fetchErr.Query)
	require.Equal(t, 3, fetchErr.Page)
	require.Equal(t, 403, fetchErr.Status)
	require.True(t, stdErrors.Is(err, underlying))
	require.Contains(t, err.Error(), "status 403")
}

func TestFetchErrorWithoutStatus(t *testing.T) {
	t.Parallel()

	err := NewFetchError("cats", 1, 0, stdErrors.New("connection refused"))
	require.NotContains(t, err.Error(), "status")
	require.Contains(t, err.Error(), "connection refused")
}

func TestStoreErrorIncludesKey(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("disk full")
	err := NewStoreError("favorites", "set", underlying)

	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	require.Equal(t, "favorites", storeErr.Key)
	require.True(t, stdErrors.Is(err, underlying))
	require.Equal(t, "store error [set favorites]: disk full", err.Error())
}
