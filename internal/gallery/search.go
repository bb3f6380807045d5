package gallery

import (
	"time"
)

// DefaultDebounce is the quiet period before a typed search executes.
const DefaultDebounce = time.Second

// Token identifies one scheduled debounced search.
type Token uint64

// Debouncer keeps only the most recent pending search. Callers schedule a
// timer per Touch and call Fire when it expires; superseded tokens are
// rejected.
type Debouncer struct {
	delay   time.Duration
	seq     uint64
	pending bool
	text    string
}

// NewDebouncer returns a debouncer with the given delay.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay}
}

// Delay is the quiet period to wait before calling Fire.
func (d *Debouncer) Delay() time.Duration { return d.delay }

// Touch records new input and supersedes any pending search.
func (d *Debouncer) Touch(text string) Token {
	d.seq++
	d.pending = true
	d.text = text
	return Token(d.seq)
}

// Fire returns the pending text if token is still the latest one.
func (d *Debouncer) Fire(token Token) (string, bool) {
	if !d.pending || uint64(token) != d.seq {
		return "", false
	}
	d.pending = false
	return d.text, true
}

// Cancel drops the pending search.
func (d *Debouncer) Cancel() {
	d.seq++
	d.pending = false
}

// Pending reports whether a search is waiting to fire.
func (d *Debouncer) Pending() bool { return d.pending }

// SeasonFor returns the meteorological season of t's month, used as the
// default query.
func SeasonFor(t time.Time) string {
	switch t.Month() {
	case time.December, time.January, time.February:
		return "winter"
	case time.March, time.April, time.May:
		return "spring"
	case time.June, time.July, time.August:
		return "summer"
	default:
		return "autumn"
	}
}
