package gallery

import "errors"

var (
	// ErrIndexOutOfRange is returned when an index is not part of the active sequence.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrNoFavorites is returned when the favorites view is requested with an empty set.
	ErrNoFavorites = errors.New("no favorites saved")
	// ErrDetailClosed is returned by detail operations while no item is open.
	ErrDetailClosed = errors.New("detail view is closed")
)
