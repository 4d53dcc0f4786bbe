// Reference source [Source] implementation for an HTML station table
package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/desertthunder/stationer/internal/models"
	"github.com/desertthunder/stationer/internal/shared"
)

// WikiSource implements [Source] by scraping a station table from a web page.
type WikiSource struct {
	url        string
	charset    string
	names      *NameDecoder
	httpClient *http.Client
}

// WikiOpts configures a [WikiSource].
type WikiOpts struct {
	URL          string
	Charset      string // Charset of the page body; empty means UTF-8
	NameCodepage string // Code page used to repair names; empty disables the repair
	Timeout      time.Duration
	HTTPClient   *http.Client
}

// NewWikiSource creates a WikiSource. The HTTP client defaults to one with opts.Timeout.
func NewWikiSource(opts WikiOpts) (*WikiSource, error) {
	if opts.URL == "" {
		return nil, fmt.Errorf("%w: source url is empty", shared.ErrInvalidConfig)
	}

	names, err := NewNameDecoder(opts.NameCodepage)
	if err != nil {
		return nil, err
	}
	if opts.Charset != "" {
		if _, err := lookupEncoding(opts.Charset); err != nil {
			return nil, err
		}
	}

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	return &WikiSource{
		url:        opts.URL,
		charset:    opts.Charset,
		names:      names,
		httpClient: client,
	}, nil
}

// Name returns the source label.
func (w *WikiSource) Name() string {
	return "wiki"
}

// Fetch downloads the page and parses its station table.
func (w *WikiSource) Fetch(ctx context.Context) ([]models.Station, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", shared.ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %w", shared.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s returned status %d", shared.ErrFetchFailed, w.url, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", shared.ErrFetchFailed, err)
	}

	body, err := decodeBody(bytes.NewReader(raw), w.charset)
	if err != nil {
		return nil, err
	}

	stations, err := ParseStations(body, w.names)
	if err != nil {
		return nil, fmt.Errorf("failed to read stations from %s: %w", w.url, err)
	}

	return stations, nil
}
