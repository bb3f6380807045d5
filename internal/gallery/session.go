package gallery

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexisbeaulieu97/mosaic/internal/logger"
)

// Mode is the top-level view state.
type Mode int

const (
	ModeBrowsing Mode = iota
	ModeFavorites
	ModeDetail
)

func (m Mode) String() string {
	switch m {
	case ModeBrowsing:
		return "browsing"
	case ModeFavorites:
		return "favorites"
	case ModeDetail:
		return "detail"
	default:
		return "unknown"
	}
}

// ViewState is exactly one of Browsing(Query, Filtering), Favorites, or
// Detail(Index) with the mode Detail returns to.
type ViewState struct {
	Mode      Mode
	Query     string
	Filtering bool
	Index     int
	Return    Mode
}

// SessionOptions configures a Session.
type SessionOptions struct {
	PerPage      int
	Heights      []int
	Seed         uint64
	DefaultQuery string
	Debounce     time.Duration
	Now          func() time.Time
	Logger       *logger.Logger
}

// Session is the browsing state of one gallery run. It performs no I/O:
// operations that need a page return a FetchRequest, and the caller feeds
// the PageResult back through Complete. It must only be used from a single
// goroutine.
type Session struct {
	log       *logger.Logger
	favorites *Favorites
	theme     *Theme
	factory   *ItemFactory
	debouncer *Debouncer

	browse         *Paginator
	browseComments *CommentLedger
	favGrid        *Paginator
	favComments    *CommentLedger
	detail         DetailView

	mode         Mode
	query        string
	filtering    bool
	noContent    bool
	defaultQuery string
	now          func() time.Time
}

// NewSession wires the controllers together.
func NewSession(opts SessionOptions, favorites *Favorites, theme *Theme) *Session {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	factory := NewItemFactory(opts.Heights, opts.Seed, favorites)
	s := &Session{
		log:            opts.Logger,
		favorites:      favorites,
		theme:          theme,
		factory:        factory,
		debouncer:      NewDebouncer(opts.Debounce),
		browse:         NewPaginator(factory, opts.PerPage, opts.Logger),
		browseComments: NewCommentLedger(),
		favGrid:        NewPaginator(factory, opts.PerPage, opts.Logger),
		favComments:    NewCommentLedger(),
		defaultQuery:   strings.TrimSpace(opts.DefaultQuery),
		now:            now,
	}
	factory.SetHooks(Hooks{
		OnOpen:           s.OpenDetail,
		OnFavoriteToggle: favorites.Toggle,
	})
	return s
}

// DefaultQuery is the configured default or the current season.
func (s *Session) DefaultQuery() string {
	if s.defaultQuery != "" {
		return s.defaultQuery
	}
	return SeasonFor(s.now())
}

// State returns the current view state.
func (s *Session) State() ViewState {
	if s.detail.IsOpen() {
		return ViewState{Mode: ModeDetail, Query: s.query, Filtering: s.filtering, Index: s.detail.Index(), Return: s.detail.Return()}
	}
	if s.mode == ModeFavorites {
		return ViewState{Mode: ModeFavorites}
	}
	return ViewState{Mode: ModeBrowsing, Query: s.query, Filtering: s.filtering}
}

// Mode returns the current top-level mode.
func (s *Session) Mode() Mode { return s.State().Mode }

// Grid returns the sequence currently shown in the grid.
func (s *Session) Grid() *Paginator {
	if s.gridMode() == ModeFavorites {
		return s.favGrid
	}
	return s.browse
}

// Browse returns the paginated browsing sequence.
func (s *Session) Browse() *Paginator { return s.browse }

func (s *Session) gridMode() Mode {
	if s.detail.IsOpen() {
		return s.detail.Return()
	}
	return s.mode
}

func (s *Session) ledger() *CommentLedger {
	if s.gridMode() == ModeFavorites {
		return s.favComments
	}
	return s.browseComments
}

// Favorites returns the favorites controller.
func (s *Session) Favorites() *Favorites { return s.favorites }

// Theme returns the theme controller.
func (s *Session) Theme() *Theme { return s.theme }

// Debouncer returns the search debouncer.
func (s *Session) Debouncer() *Debouncer { return s.debouncer }

// Start loads the default query.
func (s *Session) Start() (FetchRequest, bool) {
	return s.Search("")
}

// Search switches the active query and returns the page 1 request. Blank
// text reverts to the default query and clears the filtering flag.
func (s *Session) Search(text string) (FetchRequest, bool) {
	text = strings.TrimSpace(text)
	s.debouncer.Cancel()
	if s.detail.IsOpen() {
		s.detail.Close()
	}
	s.mode = ModeBrowsing
	s.filtering = text != ""
	s.query = text
	if !s.filtering {
		s.query = s.DefaultQuery()
	}
	s.noContent = false
	s.browse.Reset(s.query)
	s.browseComments.Reset()
	s.log.WithFields(map[string]any{"query": s.query, "filtering": s.filtering}).Info("search")
	return s.browse.Begin()
}

// ClearSearch reverts to the default query.
func (s *Session) ClearSearch() (FetchRequest, bool) {
	return s.Search("")
}

// TypeQuery records search input; schedule a timer for the debounce delay
// and pass the token to FireSearch when it expires.
func (s *Session) TypeQuery(text string) Token {
	return s.debouncer.Touch(text)
}

// FireSearch runs the debounced search if token is still the latest input.
func (s *Session) FireSearch(token Token) (FetchRequest, bool) {
	text, ok := s.debouncer.Fire(token)
	if !ok {
		return FetchRequest{}, false
	}
	return s.Search(text)
}

// Complete applies a fetched page to the browsing sequence.
func (s *Session) Complete(res PageResult) Outcome {
	out := s.browse.Complete(res)
	if out.Stale {
		return out
	}
	if out.Err != nil || out.Exhausted {
		s.detail.CancelPending()
	}
	if s.detail.IsOpen() && s.gridMode() == ModeBrowsing {
		out.Advanced = s.detail.OnAppend(s.browse)
		if !out.Advanced && s.detail.Pending() {
			// The page held only records already loaded; keep going.
			out.Next, out.HasNext = s.browse.Begin()
			if !out.HasNext {
				s.detail.CancelPending()
			}
		}
	}
	s.noContent = s.filtering && res.Request.Page == 1 && s.browse.Len() == 0 && out.Err == nil
	return out
}

// AutoLoad is the viewport trigger: lastVisible is the highest grid index
// currently on screen.
func (s *Session) AutoLoad(lastVisible int) (FetchRequest, bool) {
	if s.Mode() != ModeBrowsing || !s.browse.ShouldAutoLoad(lastVisible) {
		return FetchRequest{}, false
	}
	return s.browse.Begin()
}

// LoadMore requests the next page explicitly, e.g. to retry after a failed
// fetch left the auto-load trigger disarmed.
func (s *Session) LoadMore() (FetchRequest, bool) {
	if s.Mode() != ModeBrowsing {
		return FetchRequest{}, false
	}
	return s.browse.Begin()
}

// NoContent reports whether the first page of a filtered search was empty.
func (s *Session) NoContent() bool { return s.noContent && s.Mode() == ModeBrowsing }

// ToggleFavorite flips the favorite state of the grid item at index.
func (s *Session) ToggleFavorite(index int) (bool, error) {
	item, ok := s.Grid().item(index)
	if !ok {
		return false, fmt.Errorf("toggle favorite %d: %w", index, ErrIndexOutOfRange)
	}
	if err := item.ToggleFavorite(); err != nil {
		return item.Favorited, err
	}
	s.syncFavorites()
	if s.mode == ModeFavorites && !s.detail.IsOpen() {
		s.refreshFavoritesGrid()
	}
	return item.Favorited, nil
}

// ReloadFavorites re-reads the favorite set after an external change.
func (s *Session) ReloadFavorites() error {
	if err := s.favorites.Reload(); err != nil {
		return err
	}
	s.syncFavorites()
	if s.mode == ModeFavorites && !s.detail.IsOpen() {
		s.refreshFavoritesGrid()
	}
	return nil
}

func (s *Session) syncFavorites() {
	s.browse.syncFavorites(s.favorites)
	s.favGrid.syncFavorites(s.favorites)
}

// refreshFavoritesGrid rebuilds the favorites snapshot. Comments are kept
// only when the snapshot is unchanged since indices would shift otherwise.
func (s *Session) refreshFavoritesGrid() {
	next := s.favorites.List()
	if sameIDs(s.favGrid.Items(), next) {
		return
	}
	s.favGrid.Fix(next)
	s.favComments.Reset()
}

func sameIDs(items []GridItem, records []ImageRecord) bool {
	if len(items) != len(records) {
		return false
	}
	for i := range items {
		if items[i].Record.ID != records[i].ID {
			return false
		}
	}
	return true
}

// EnterFavorites shows the favorites as a fixed, non-paginated grid.
func (s *Session) EnterFavorites() error {
	if s.favorites.Len() == 0 {
		return ErrNoFavorites
	}
	if s.detail.IsOpen() {
		s.detail.Close()
	}
	s.debouncer.Cancel()
	s.mode = ModeFavorites
	s.favGrid.Fix(s.favorites.List())
	s.favComments.Reset()
	return nil
}

// LeaveFavorites returns home: browsing the default query.
func (s *Session) LeaveFavorites() (FetchRequest, bool) {
	return s.Search("")
}

// FavoritesEntryVisible reports whether the favorites view can be entered.
func (s *Session) FavoritesEntryVisible() bool {
	return s.favorites.Len() > 0 && s.gridMode() != ModeFavorites
}

// HomeEntryVisible reports whether the home entry is shown.
func (s *Session) HomeEntryVisible() bool {
	return s.gridMode() == ModeFavorites
}

// FavoritesEmpty reports whether the favorites view has nothing to show.
func (s *Session) FavoritesEmpty() bool {
	return s.gridMode() == ModeFavorites && s.favGrid.Len() == 0
}

// OpenDetail opens the grid item at index.
func (s *Session) OpenDetail(index int) error {
	ret := s.gridMode()
	return s.detail.Open(s.Grid(), index, ret)
}

// Navigate moves the detail view. When it needs the next page, the
// returned request is valid and must be fetched.
func (s *Session) Navigate(dir Direction) (NavResult, FetchRequest, bool) {
	res := s.detail.Navigate(s.Grid(), dir)
	if !res.NeedLoad {
		return res, FetchRequest{}, false
	}
	req, ok := s.browse.Begin()
	if !ok && !s.browse.InFlight() {
		s.detail.CancelPending()
	}
	return res, req, ok
}

// CloseDetail closes the detail view and restores the previous mode.
func (s *Session) CloseDetail() Mode {
	if !s.detail.IsOpen() {
		return s.mode
	}
	s.mode = s.detail.Close()
	if s.mode == ModeFavorites {
		s.refreshFavoritesGrid()
	}
	return s.mode
}

// Detail returns the open item's content.
func (s *Session) Detail() (DetailContent, error) {
	return s.detail.Content(s.Grid(), s.ledger())
}

// DetailItem returns the open grid item.
func (s *Session) DetailItem() (GridItem, bool) {
	if !s.detail.IsOpen() {
		return GridItem{}, false
	}
	return s.Grid().Item(s.detail.Index())
}

// ToggleDetailFavorite flips the favorite state of the open item.
func (s *Session) ToggleDetailFavorite() (bool, error) {
	if !s.detail.IsOpen() {
		return false, ErrDetailClosed
	}
	return s.ToggleFavorite(s.detail.Index())
}

// SetCommentInput mirrors the comment input buffer.
func (s *Session) SetCommentInput(text string) { s.detail.SetInput(text) }

// CanSendComment reports whether the buffer holds a non-blank comment.
func (s *Session) CanSendComment() bool { return s.detail.IsOpen() && s.detail.CanSend() }

// SubmitComment adds the buffered comment to the open item and clears the
// buffer on success.
func (s *Session) SubmitComment() bool {
	if !s.detail.IsOpen() {
		return false
	}
	if !s.ledger().Add(s.detail.Index(), s.detail.Input()) {
		return false
	}
	s.detail.SetInput("")
	return true
}

// RemoveComment deletes one comment of the open item.
func (s *Session) RemoveComment(position int) bool {
	if !s.detail.IsOpen() {
		return false
	}
	return s.ledger().Remove(s.detail.Index(), position)
}

// SearchTag closes the detail view and searches for the chip at position.
func (s *Session) SearchTag(position int) (FetchRequest, bool, error) {
	content, err := s.Detail()
	if err != nil {
		return FetchRequest{}, false, err
	}
	if position < 0 || position >= len(content.Chips) {
		return FetchRequest{}, false, fmt.Errorf("tag %d: %w", position, ErrIndexOutOfRange)
	}
	tag := strings.TrimPrefix(content.Chips[position], "#")
	req, ok := s.Search(tag)
	return req, ok, nil
}
