package gallery

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	core "github.com/alexisbeaulieu97/mosaic/internal/gallery"
)

// fetchPageCmd performs one page fetch for req.
func fetchPageCmd(ctx context.Context, source core.ImageSource, req core.FetchRequest) tea.Cmd {
	return func() tea.Msg {
		records, err := source.Search(ctx, req.Query, req.Page, req.PerPage)
		return pageLoadedMsg{Result: core.PageResult{Request: req, Records: records, Err: err}}
	}
}

// debounceCmd waits out the search quiet period for token.
func debounceCmd(token core.Token, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return searchDebounceMsg{Token: token}
	})
}

// downloadCmd saves record into dir.
func downloadCmd(ctx context.Context, d Downloader, record core.ImageRecord, dir string) tea.Cmd {
	return func() tea.Msg {
		path, err := d.Download(ctx, record, dir)
		return downloadDoneMsg{ID: record.ID, Path: path, Err: err}
	}
}

// openURLCmd hands url to the system browser.
func openURLCmd(open func(string) error, url string) tea.Cmd {
	return func() tea.Msg {
		return urlOpenedMsg{URL: url, Err: open(url)}
	}
}

// watchPreferencesCmd waits for the next external preference change. It
// returns nil once the channel is closed.
func watchPreferencesCmd(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return preferencesChangedMsg{}
	}
}
