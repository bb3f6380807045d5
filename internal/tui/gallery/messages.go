package gallery

import (
	core "github.com/alexisbeaulieu97/mosaic/internal/gallery"
)

// pageLoadedMsg carries a finished page fetch.
type pageLoadedMsg struct {
	Result core.PageResult
}

// searchDebounceMsg fires when the search quiet period for Token expires.
type searchDebounceMsg struct {
	Token core.Token
}

// downloadDoneMsg reports a finished image download.
type downloadDoneMsg struct {
	ID   string
	Path string
	Err  error
}

// urlOpenedMsg reports the result of handing a URL to the system browser.
type urlOpenedMsg struct {
	URL string
	Err error
}

// preferencesChangedMsg means the preference store was changed externally.
type preferencesChangedMsg struct{}
