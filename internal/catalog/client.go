package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// API defines the catalog calls the scan session depends on.
// This interface is implemented by *Client and can be replaced in tests.
type API interface {
	ImportBook(ctx context.Context, isbn string) (*Book, error)
	FetchShelfOptions(ctx context.Context) ([]ShelfOption, error)
	PlaceOnShelf(ctx context.Context, bookID, shelfID int64) (*Placement, error)
	SearchByISBN(ctx context.Context, isbn string) (json.RawMessage, error)
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Client talks to the catalog HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultAPIURL         = "http://127.0.0.1:8080"
	defaultUserAgent      = "shelfscan/0.1"
	defaultRequestTimeout = 30 * time.Second

	// maxErrorBody caps how much of an error response is kept for display.
	maxErrorBody = 4 << 10
)

// Endpoint paths.
const (
	importPath       = "/import/books"
	shelfOptionsPath = "/api/v1/shelves/options"
	placePathFormat  = "/api/v1/books/%d/shelf"
	searchPathPrefix = "/api/v1/books/search/"
)

// Option customizes a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// NewClient builds a Client for the catalog at apiURL. A bare host:port is
// treated as http.
func NewClient(apiURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: defaultRequestTimeout,
		},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// ImportBook posts an ISBN to the import endpoint and returns the stored book.
func (c *Client) ImportBook(ctx context.Context, isbn string) (*Book, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var book Book
	req := importRequest{ISBN: isbn}
	if err := c.do(ctx, OpImport, http.MethodPost, &url.URL{Path: importPath}, req, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// FetchShelfOptions retrieves the current shelf snapshot with capacities.
func (c *Client) FetchShelfOptions(ctx context.Context) ([]ShelfOption, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var options []ShelfOption
	if err := c.do(ctx, OpShelfOptions, http.MethodGet, &url.URL{Path: shelfOptionsPath}, nil, &options); err != nil {
		return nil, err
	}
	return options, nil
}

// PlaceOnShelf assigns a book to a shelf.
func (c *Client) PlaceOnShelf(ctx context.Context, bookID, shelfID int64) (*Placement, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var placement Placement
	rel := &url.URL{Path: fmt.Sprintf(placePathFormat, bookID)}
	if err := c.do(ctx, OpPlace, http.MethodPost, rel, placeRequest{ShelfID: shelfID}, &placement); err != nil {
		return nil, err
	}
	return &placement, nil
}

// SearchByISBN looks up a stored book. A 404 yields a nil record and no error.
// The record is returned as sent so callers can display it verbatim.
func (c *Client) SearchByISBN(ctx context.Context, isbn string) (json.RawMessage, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	rel := &url.URL{
		Path:    searchPathPrefix + isbn,
		RawPath: searchPathPrefix + url.PathEscape(isbn),
	}
	var record json.RawMessage
	err := c.do(ctx, OpSearch, http.MethodGet, rel, nil, &record)
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (c *Client) do(ctx context.Context, op, method string, rel *url.URL, body, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)

	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), payload)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrTransport, method, rel.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{
			Op:     op,
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(text)),
		}
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		trimmed = defaultAPIURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_url %q: %w", apiURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api_url %q: missing host", apiURL)
	}
	u.Path = ""
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
