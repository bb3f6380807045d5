// Package unsplash implements the image source over the Unsplash search API.
package unsplash

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/alexisbeaulieu97/mosaic/internal/gallery"
	"github.com/alexisbeaulieu97/mosaic/internal/logger"
	mosaicerrors "github.com/alexisbeaulieu97/mosaic/pkg/errors"
)

// ErrMissingAccessKey is returned when a search is attempted without a key.
var ErrMissingAccessKey = errors.New("unsplash access key is not configured")

const (
	maxErrorBody   = 512
	defaultTimeout = 15 * time.Second
)

// Options configures a Client.
type Options struct {
	Endpoint   string
	AccessKey  string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *logger.Logger
}

// Client searches photos. Identical concurrent searches share one request.
type Client struct {
	endpoint  string
	accessKey string
	http      *http.Client
	downloads *http.Client
	log       *logger.Logger
	group     singleflight.Group
}

var _ gallery.ImageSource = (*Client)(nil)

// NewClient creates a client for opts.Endpoint.
func NewClient(opts Options) (*Client, error) {
	if _, err := url.ParseRequestURI(opts.Endpoint); err != nil {
		return nil, fmt.Errorf("invalid unsplash endpoint %q: %w", opts.Endpoint, err)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		endpoint:  opts.Endpoint,
		accessKey: strings.TrimSpace(opts.AccessKey),
		http:      httpClient,
		downloads: downloadClient(httpClient, timeout),
		log:       opts.Logger.WithFields(map[string]any{"component": "unsplash"}),
	}, nil
}

type searchResponse struct {
	Total      int      `json:"total"`
	TotalPages int      `json:"total_pages"`
	Results    []result `json:"results"`
}

type result struct {
	ID             string `json:"id"`
	Description    string `json:"description"`
	AltDescription string `json:"alt_description"`
	URLs           struct {
		Regular string `json:"regular"`
	} `json:"urls"`
	User struct {
		Name string `json:"name"`
	} `json:"user"`
	Tags []struct {
		Title string `json:"title"`
	} `json:"tags"`
}

func (r result) record() gallery.ImageRecord {
	description := r.AltDescription
	if description == "" {
		description = r.Description
	}
	tags := make([]string, 0, len(r.Tags))
	for _, tag := range r.Tags {
		if tag.Title != "" {
			tags = append(tags, tag.Title)
		}
	}
	return gallery.ImageRecord{
		ID:          r.ID,
		URL:         r.URLs.Regular,
		Author:      r.User.Name,
		Description: description,
		Tags:        tags,
	}
}

// Search returns one page of results for query. An empty slice means the
// results are exhausted.
func (c *Client) Search(ctx context.Context, query string, page, perPage int) ([]gallery.ImageRecord, error) {
	if c.accessKey == "" {
		return nil, mosaicerrors.NewFetchError(query, page, 0, ErrMissingAccessKey)
	}

	key := fmt.Sprintf("%s\x00%d\x00%d", query, page, perPage)
	v, err, shared := c.group.Do(key, func() (any, error) {
		return c.search(ctx, query, page, perPage)
	})
	if shared {
		c.log.WithFields(map[string]any{"query": query, "page": page}).Debug("shared in-flight search")
	}
	if err != nil {
		return nil, err
	}
	return v.([]gallery.ImageRecord), nil
}

func (c *Client) search(ctx context.Context, query string, page, perPage int) ([]gallery.ImageRecord, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, mosaicerrors.NewFetchError(query, page, 0, err)
	}
	params := u.Query()
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, mosaicerrors.NewFetchError(query, page, 0, err)
	}
	req.Header.Set("Authorization", "Client-ID "+c.accessKey)
	req.Header.Set("Accept-Version", "v1")
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, mosaicerrors.NewFetchError(query, page, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, mosaicerrors.NewFetchError(query, page, resp.StatusCode,
			fmt.Errorf("%s: %s", http.StatusText(resp.StatusCode), strings.TrimSpace(string(body))))
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, mosaicerrors.NewFetchError(query, page, resp.StatusCode, fmt.Errorf("decode response: %w", err))
	}

	records := make([]gallery.ImageRecord, 0, len(payload.Results))
	for _, r := range payload.Results {
		rec := r.record()
		if rec.ID == "" || rec.URL == "" {
			continue
		}
		records = append(records, rec)
	}

	c.log.WithFields(map[string]any{
		"query":    query,
		"page":     page,
		"results":  len(records),
		"duration": time.Since(started).String(),
	}).Debug("search completed")
	return records, nil
}
