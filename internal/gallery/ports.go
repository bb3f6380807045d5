package gallery

import (
	"context"
)

// ImageSource is the remote paginated image search service.
type ImageSource interface {
	Search(ctx context.Context, query string, page, perPage int) ([]ImageRecord, error)
}

// PreferenceStore is the persistent key/value store backing favorites and
// the theme flag. A missing key reports ok=false without an error.
type PreferenceStore interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// LayoutEngine arranges grid items into columns. It returns, for every
// column, the positions (indices into items) placed in it from top to bottom.
type LayoutEngine interface {
	Layout(items []GridItem, columns int) [][]int
}

// Sequence is the read side of a loaded grid sequence.
type Sequence interface {
	Len() int
	Item(index int) (GridItem, bool)
	Paginated() bool
}
