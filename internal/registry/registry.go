// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package registry looks up bibliographic records by DOI or ISBN in the
// Crossref REST API and converts them to types.Record.
// Implements: Registry Client (fetch, batch fetch, identifier
// normalisation).
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/happyref/internal/httputil"
	"github.com/pdiddy/happyref/internal/logger"
	"github.com/pdiddy/happyref/pkg/types"
)

// crossrefAPIBase is a var so tests can substitute an httptest server.
var crossrefAPIBase = "https://api.crossref.org/"

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "happyref/0.1"
)

// IdentifierKind selects how an identifier is looked up.
type IdentifierKind int

const (
	KindDOI IdentifierKind = iota
	KindISBN
)

func (k IdentifierKind) String() string {
	switch k {
	case KindDOI:
		return "doi"
	case KindISBN:
		return "isbn"
	default:
		return "unknown"
	}
}

// ErrNotFound is returned when the registry has no record for an
// identifier.
var ErrNotFound = errors.New("no record found")

// HTTPError reports a non-2xx response other than 404.
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("registry returned HTTP %d for %s", e.StatusCode, e.URL)
}

// Client fetches records from Crossref.
type Client struct {
	HTTP   *http.Client
	Config types.RegistryConfig
	Log    logger.Logger

	limiter *rate.Limiter
}

// NewClient returns a Client. A nil httpClient gets one with the configured
// timeout (30s by default). Lookups are spaced at least
// cfg.RequestInterval apart.
func NewClient(httpClient *http.Client, cfg types.RegistryConfig) *Client {
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	limit := rate.Inf
	if cfg.RequestInterval > 0 {
		limit = rate.Every(cfg.RequestInterval)
	}
	return &Client{
		HTTP:    httpClient,
		Config:  cfg,
		Log:     logger.NewNoOpLogger(),
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Fetch looks up a single identifier. The value is normalised first.
func (c *Client) Fetch(ctx context.Context, kind IdentifierKind, value string) (types.Record, error) {
	switch kind {
	case KindDOI:
		return c.FetchDOI(ctx, value)
	case KindISBN:
		return c.FetchISBN(ctx, value)
	default:
		return types.Record{}, fmt.Errorf("unsupported identifier kind %d", int(kind))
	}
}

// FetchDOI looks up a work by DOI.
func (c *Client) FetchDOI(ctx context.Context, doi string) (types.Record, error) {
	doi = NormalizeDOI(doi)
	if doi == "" {
		return types.Record{}, errors.New("empty doi")
	}
	endpoint := crossrefAPIBase + "works/" + (&url.URL{Path: doi}).EscapedPath()

	var resp workResponse
	if err := c.get(ctx, endpoint, nil, &resp); err != nil {
		return types.Record{}, fmt.Errorf("fetching doi %s: %w", doi, err)
	}
	rec := resp.Message.record()
	if rec.DOI == "" {
		rec.DOI = doi
	}
	return rec, nil
}

// FetchISBN looks up the first work carrying isbn.
func (c *Client) FetchISBN(ctx context.Context, isbn string) (types.Record, error) {
	isbn = NormalizeISBN(isbn)
	if isbn == "" {
		return types.Record{}, errors.New("empty isbn")
	}
	params := url.Values{}
	params.Set("filter", "isbn:"+isbn)
	params.Set("rows", "1")

	var resp listResponse
	if err := c.get(ctx, crossrefAPIBase+"works", params, &resp); err != nil {
		return types.Record{}, fmt.Errorf("fetching isbn %s: %w", isbn, err)
	}
	if len(resp.Message.Items) == 0 {
		return types.Record{}, fmt.Errorf("fetching isbn %s: %w", isbn, ErrNotFound)
	}
	rec := resp.Message.Items[0].record()
	if len(rec.ISBN) == 0 {
		rec.ISBN = []string{isbn}
	}
	return rec, nil
}

// FetchAll looks up each value in order, calling fn with the outcome.
// Lookups are paced by the client's request interval. It stops early and
// returns ctx.Err() when ctx is cancelled.
func (c *Client) FetchAll(ctx context.Context, kind IdentifierKind, values []string, fn func(value string, rec types.Record, err error)) error {
	for _, v := range values {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec, err := c.Fetch(ctx, kind, v)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		fn(v, rec, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	if c.Config.Mailto != "" {
		params.Set("mailto", c.Config.Mailto)
	}
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent())
	req.Header.Set("Accept", "application/json")
	if c.Config.PlusToken != "" {
		req.Header.Set("Crossref-Plus-API-Token", "Bearer "+c.Config.PlusToken)
	}

	c.logger().Debug("GET %s", endpoint)
	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, c.Config.MaxRetries, c.logger())
	if err != nil {
		return fmt.Errorf("registry request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &HTTPError{StatusCode: resp.StatusCode, URL: endpoint}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing registry response: %w", err)
	}
	return nil
}

func (c *Client) userAgent() string {
	ua := c.Config.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	if c.Config.Mailto != "" {
		ua += " (mailto:" + c.Config.Mailto + ")"
	}
	return ua
}

func (c *Client) logger() logger.Logger {
	if c.Log == nil {
		return logger.NewNoOpLogger()
	}
	return c.Log
}
