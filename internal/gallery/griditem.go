package gallery

import (
	"math/rand/v2"
)

// DefaultHeights are the display height presets, in pixels, a grid item may take.
var DefaultHeights = []int{250, 300, 350, 400}

// Hooks are the interactions a grid item can trigger. Each receives the
// item's own index or record by value so nothing is captured from the
// caller's loop.
type Hooks struct {
	OnOpen           func(index int) error
	OnFavoriteToggle func(record ImageRecord) (bool, error)
}

// FavoriteLookup reports whether an image id is currently favorited.
type FavoriteLookup interface {
	Contains(id string) bool
}

// GridItem is one renderable gallery entry.
type GridItem struct {
	Index     int
	Record    ImageRecord
	Favorited bool
	Height    int

	hooks *Hooks
}

// Open triggers the open interaction for this item.
func (g GridItem) Open() error {
	if g.hooks == nil || g.hooks.OnOpen == nil {
		return nil
	}
	return g.hooks.OnOpen(g.Index)
}

// ToggleFavorite flips the favorite state through the favorite hook only;
// it never triggers Open.
func (g *GridItem) ToggleFavorite() error {
	if g.hooks == nil || g.hooks.OnFavoriteToggle == nil {
		g.Favorited = !g.Favorited
		return nil
	}
	favorited, err := g.hooks.OnFavoriteToggle(g.Record)
	if err != nil {
		return err
	}
	g.Favorited = favorited
	return nil
}

// ItemFactory builds grid items from image records.
type ItemFactory struct {
	heights   []int
	rng       *rand.Rand
	favorites FavoriteLookup
	hooks     *Hooks
}

// NewItemFactory returns a factory picking heights from the given presets
// (DefaultHeights when empty) with a PCG source seeded by seed.
func NewItemFactory(heights []int, seed uint64, favorites FavoriteLookup) *ItemFactory {
	if len(heights) == 0 {
		heights = DefaultHeights
	}
	return &ItemFactory{
		heights:   append([]int(nil), heights...),
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		favorites: favorites,
		hooks:     &Hooks{},
	}
}

// SetHooks replaces the interaction hooks. Items already built see the change.
func (f *ItemFactory) SetHooks(h Hooks) {
	*f.hooks = h
}

// Build creates the grid item for record at index.
func (f *ItemFactory) Build(record ImageRecord, index int) GridItem {
	favorited := false
	if f.favorites != nil {
		favorited = f.favorites.Contains(record.ID)
	}
	return GridItem{
		Index:     index,
		Record:    record,
		Favorited: favorited,
		Height:    f.heights[f.rng.IntN(len(f.heights))],
		hooks:     f.hooks,
	}
}
