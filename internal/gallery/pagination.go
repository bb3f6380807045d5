package gallery

import (
	"context"

	"github.com/alexisbeaulieu97/mosaic/internal/logger"
)

// DefaultPerPage is the page size requested from the image source.
const DefaultPerPage = 30

// Cursor tracks which page of which query is fetched next.
type Cursor struct {
	Page      int
	Query     string
	Exhausted bool
}

// FetchRequest describes one page fetch. Generation identifies the query
// epoch the request was issued in; results from an older epoch are stale.
type FetchRequest struct {
	Query      string
	Page       int
	PerPage    int
	Generation uint64
}

// PageResult is the completion of a FetchRequest.
type PageResult struct {
	Request FetchRequest
	Records []ImageRecord
	Err     error
}

// Outcome reports what applying a PageResult did.
type Outcome struct {
	Request   FetchRequest
	Appended  int
	Dropped   int
	Skipped   bool
	Stale     bool
	Exhausted bool
	Relayout  bool
	// Advanced is set by Session when a pending detail navigation moved
	// onto a newly appended item.
	Advanced bool
	// Next is set by Session when a pending detail navigation got only
	// repeats and the following page was requested in its place.
	Next    FetchRequest
	HasNext bool
	Err     error
}

// Paginator owns a loaded sequence and its pagination cursor. It allows at
// most one fetch in flight and drops results issued for a previous query.
type Paginator struct {
	factory *ItemFactory
	perPage int
	log     *logger.Logger

	items      []GridItem
	seen       map[string]struct{}
	cursor     Cursor
	generation uint64
	pending    FetchRequest
	inFlight   bool
	armed      bool
	fixed      bool
}

// NewPaginator creates an empty paginator. Reset must be called before the
// first fetch.
func NewPaginator(factory *ItemFactory, perPage int, log *logger.Logger) *Paginator {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return &Paginator{
		factory: factory,
		perPage: perPage,
		log:     log,
		seen:    make(map[string]struct{}),
	}
}

// Reset starts a new sequence for query at page 1.
func (p *Paginator) Reset(query string) {
	p.items = nil
	p.seen = make(map[string]struct{})
	p.cursor = Cursor{Page: 1, Query: query}
	p.generation++
	p.inFlight = false
	p.armed = false
	p.fixed = false
}

// Fix replaces the sequence with a fixed, non-paginated collection.
func (p *Paginator) Fix(records []ImageRecord) {
	p.Reset("")
	p.fixed = true
	p.cursor.Exhausted = true
	p.appendRecords(records)
}

// Begin returns the next request and marks it in flight. It reports false
// while another fetch is in flight, after exhaustion, and for fixed sequences.
func (p *Paginator) Begin() (FetchRequest, bool) {
	if p.fixed || p.inFlight || p.cursor.Exhausted || p.cursor.Page < 1 {
		return FetchRequest{}, false
	}
	p.inFlight = true
	p.armed = false
	p.pending = FetchRequest{
		Query:      p.cursor.Query,
		Page:       p.cursor.Page,
		PerPage:    p.perPage,
		Generation: p.generation,
	}
	return p.pending, true
}

// Pending returns the request currently in flight.
func (p *Paginator) Pending() (FetchRequest, bool) {
	if !p.inFlight {
		return FetchRequest{}, false
	}
	return p.pending, true
}

// Complete applies a finished fetch.
func (p *Paginator) Complete(res PageResult) Outcome {
	out := Outcome{Request: res.Request}
	req := res.Request

	if req.Generation != p.generation || !p.inFlight || req.Page != p.cursor.Page {
		out.Stale = true
		p.log.WithFields(map[string]any{"query": req.Query, "page": req.Page}).Debug("discarding stale page")
		return out
	}
	p.inFlight = false

	if res.Err != nil {
		out.Err = res.Err
		p.log.WithFields(map[string]any{"query": req.Query, "page": req.Page}).Error(res.Err, "page fetch failed")
		return out
	}

	if len(res.Records) == 0 {
		p.cursor.Exhausted = true
		out.Exhausted = true
		p.log.WithFields(map[string]any{"query": req.Query, "page": req.Page}).Info("results exhausted")
		return out
	}

	out.Appended, out.Dropped = p.appendRecords(res.Records)
	p.cursor.Page++
	p.armed = true
	out.Relayout = out.Appended > 0
	p.log.WithFields(map[string]any{
		"query":    req.Query,
		"page":     req.Page,
		"appended": out.Appended,
		"dropped":  out.Dropped,
		"total":    len(p.items),
	}).Debug("page appended")
	return out
}

// LoadNext fetches and applies the next page synchronously. Fetch failures
// are logged and reported in the Outcome, never returned.
func (p *Paginator) LoadNext(ctx context.Context, source ImageSource) Outcome {
	req, ok := p.Begin()
	if !ok {
		return Outcome{Skipped: true}
	}
	records, err := source.Search(ctx, req.Query, req.Page, req.PerPage)
	return p.Complete(PageResult{Request: req, Records: records, Err: err})
}

// ShouldAutoLoad reports whether the last loaded item being visible (its
// index reaching lastVisible) should trigger the next page.
func (p *Paginator) ShouldAutoLoad(lastVisible int) bool {
	if !p.armed || p.inFlight || p.fixed || p.cursor.Exhausted || len(p.items) == 0 {
		return false
	}
	return lastVisible >= len(p.items)-1
}

func (p *Paginator) appendRecords(records []ImageRecord) (appended, dropped int) {
	for _, record := range records {
		if _, dup := p.seen[record.ID]; dup {
			dropped++
			continue
		}
		p.seen[record.ID] = struct{}{}
		p.items = append(p.items, p.factory.Build(record, len(p.items)))
		appended++
	}
	return appended, dropped
}

// syncFavorites refreshes every item's favorite flag.
func (p *Paginator) syncFavorites(lookup FavoriteLookup) {
	for i := range p.items {
		p.items[i].Favorited = lookup.Contains(p.items[i].Record.ID)
	}
}

// item returns a pointer to the stored item for in-place updates.
func (p *Paginator) item(index int) (*GridItem, bool) {
	if index < 0 || index >= len(p.items) {
		return nil, false
	}
	return &p.items[index], true
}

// Item returns the item at index.
func (p *Paginator) Item(index int) (GridItem, bool) {
	it, ok := p.item(index)
	if !ok {
		return GridItem{}, false
	}
	return *it, true
}

// Items returns a copy of the loaded sequence.
func (p *Paginator) Items() []GridItem {
	return append([]GridItem(nil), p.items...)
}

// Len returns the number of loaded items.
func (p *Paginator) Len() int { return len(p.items) }

// Cursor returns the pagination cursor.
func (p *Paginator) Cursor() Cursor { return p.cursor }

// InFlight reports whether a fetch is outstanding.
func (p *Paginator) InFlight() bool { return p.inFlight }

// Armed reports whether the auto-load trigger watches the last item.
func (p *Paginator) Armed() bool { return p.armed }

// Paginated reports whether more pages may still be requested.
func (p *Paginator) Paginated() bool { return !p.fixed && !p.cursor.Exhausted }
