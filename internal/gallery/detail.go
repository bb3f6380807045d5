package gallery

import (
	"fmt"
	"strings"
)

// Direction is a detail view navigation step.
type Direction int

const (
	Prev Direction = -1
	Next Direction = 1
)

// NavResult reports the effect of a navigation request.
type NavResult struct {
	Moved    bool
	NeedLoad bool
	Index    int
}

// DetailContent is everything the detail view displays for one item.
type DetailContent struct {
	Index       int
	Title       string
	Caption     string
	Commentary  string
	Author      string
	URL         string
	Chips       []string
	Comments    []string
	HasComments bool
	Favorited   bool
	PrevEnabled bool
	NextEnabled bool
	Loading     bool
}

// DetailView is the Closed -> Open(index) -> Closed state machine.
type DetailView struct {
	open    bool
	index   int
	ret     Mode
	pending bool
	input   string
}

// Open shows the item at index of seq, remembering the mode to return to.
func (d *DetailView) Open(seq Sequence, index int, ret Mode) error {
	if index < 0 || index >= seq.Len() {
		return fmt.Errorf("open detail %d of %d: %w", index, seq.Len(), ErrIndexOutOfRange)
	}
	d.open = true
	d.index = index
	d.ret = ret
	d.pending = false
	return nil
}

// Navigate moves one position in direction. Next from the last item of a
// paginated sequence asks for the next page once and advances when it lands.
func (d *DetailView) Navigate(seq Sequence, dir Direction) NavResult {
	if !d.open {
		return NavResult{}
	}
	target := d.index + int(dir)
	if target >= 0 && target < seq.Len() {
		d.index = target
		d.pending = false
		return NavResult{Moved: true, Index: target}
	}
	if dir == Next && seq.Paginated() && !d.pending {
		d.pending = true
		return NavResult{NeedLoad: true, Index: d.index}
	}
	return NavResult{Index: d.index}
}

// OnAppend completes a pending Next once seq has grown.
func (d *DetailView) OnAppend(seq Sequence) bool {
	if !d.open || !d.pending || d.index+1 >= seq.Len() {
		return false
	}
	d.index++
	d.pending = false
	return true
}

// CancelPending drops a pending Next, e.g. after a failed or empty fetch.
func (d *DetailView) CancelPending() { d.pending = false }

// Close clears transient state and returns the mode to restore.
func (d *DetailView) Close() Mode {
	d.open = false
	d.pending = false
	d.input = ""
	return d.ret
}

// IsOpen reports whether an item is displayed.
func (d *DetailView) IsOpen() bool { return d.open }

// Index returns the displayed index.
func (d *DetailView) Index() int { return d.index }

// Return is the mode Close will restore.
func (d *DetailView) Return() Mode { return d.ret }

// Pending reports whether a Next is waiting on the next page.
func (d *DetailView) Pending() bool { return d.pending }

// SetInput replaces the comment input buffer.
func (d *DetailView) SetInput(text string) { d.input = text }

// Input returns the comment input buffer.
func (d *DetailView) Input() string { return d.input }

// CanSend reports whether the input buffer holds a non-blank comment.
func (d *DetailView) CanSend() bool { return strings.TrimSpace(d.input) != "" }

// Content builds the displayed content for the open item.
func (d *DetailView) Content(seq Sequence, ledger *CommentLedger) (DetailContent, error) {
	if !d.open {
		return DetailContent{}, ErrDetailClosed
	}
	item, ok := seq.Item(d.index)
	if !ok {
		return DetailContent{}, fmt.Errorf("detail content %d: %w", d.index, ErrIndexOutOfRange)
	}
	comments := ledger.Comments(d.index)
	return DetailContent{
		Index:       d.index,
		Title:       fmt.Sprintf("Image %d", d.index+1),
		Caption:     item.Record.Caption(d.index),
		Commentary:  item.Record.Commentary(),
		Author:      item.Record.Author,
		URL:         item.Record.URL,
		Chips:       item.Record.TagChips(),
		Comments:    ledger.Render(d.index),
		HasComments: len(comments) > 0,
		Favorited:   item.Favorited,
		PrevEnabled: d.index > 0,
		NextEnabled: d.index+1 < seq.Len() || seq.Paginated(),
		Loading:     d.pending,
	}, nil
}
