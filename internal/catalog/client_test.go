package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != defaultAPIURL {
		t.Fatalf("base = %q, want %q", u.String(), defaultAPIURL)
	}

	u, err = parseBaseURL("  catalog.local:9090  ")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Host != "catalog.local:9090" {
		t.Fatalf("base = %q, want http://catalog.local:9090", u.String())
	}

	u, err = parseBaseURL("https://example.com:1234/app?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestParseBaseURL_MissingHostFails(t *testing.T) {
	if _, err := parseBaseURL("http://"); err == nil {
		t.Fatalf("parseBaseURL returned nil error, want missing host error")
	}
}

func TestClient_ImportBookPostsISBN(t *testing.T) {
	t.Parallel()

	var gotMethod, gotContentType, gotUserAgent string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/import/books" {
			http.NotFound(w, r)
			return
		}
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		gotUserAgent = r.Header.Get("User-Agent")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"bookId":7,"title":"Dune","isbn":"9780441013593","authors":["Frank Herbert"],"publisher":null,"description":"Spice."}`)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	book, err := c.ImportBook(context.Background(), "9780441013593")
	if err != nil {
		t.Fatalf("ImportBook returned error: %v", err)
	}
	if gotMethod != http.MethodPost {
		t.Fatalf("method = %q, want POST", gotMethod)
	}
	if gotContentType != "application/json" {
		t.Fatalf("Content-Type = %q, want application/json", gotContentType)
	}
	if !strings.HasPrefix(gotUserAgent, "shelfscan/") {
		t.Fatalf("User-Agent = %q, want shelfscan/*", gotUserAgent)
	}
	if gotBody["isbn"] != "9780441013593" || len(gotBody) != 1 {
		t.Fatalf("request body = %#v, want only isbn", gotBody)
	}
	if book.BookID != 7 || book.Title != "Dune" || len(book.Authors) != 1 || book.Publisher != "" {
		t.Fatalf("book = %#v, want id=7 Dune by one author, no publisher", book)
	}
}

func TestClient_FetchShelfOptionsAndPlace(t *testing.T) {
	t.Parallel()

	var placeBody map[string]any
	var placePath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/shelves/options":
			_, _ = io.WriteString(w, `[
				{"shelfId":1,"shelfLabel":"Top","bookcaseLabel":"Hall","bookCapacity":5,"bookCount":5,"hasSpace":false},
				{"shelfId":2,"shelfLabel":"Middle","bookcaseLabel":"Hall","bookCapacity":10,"bookCount":3,"hasSpace":true}
			]`)
		case r.Method == http.MethodPost && strings.HasPrefix(r.URL.Path, "/api/v1/books/"):
			placePath = r.URL.Path
			_ = json.NewDecoder(r.Body).Decode(&placeBody)
			_, _ = io.WriteString(w, `{"bookId":7,"title":"Dune","shelfId":2,"shelfLabel":"Middle","bookcaseLabel":"Hall"}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, WithTimeout(2*time.Second))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	options, err := c.FetchShelfOptions(context.Background())
	if err != nil {
		t.Fatalf("FetchShelfOptions returned error: %v", err)
	}
	if len(options) != 2 || options[0].HasSpace() || !options[1].HasSpace() {
		t.Fatalf("options = %#v, want [full, open]", options)
	}

	placement, err := c.PlaceOnShelf(context.Background(), 7, 2)
	if err != nil {
		t.Fatalf("PlaceOnShelf returned error: %v", err)
	}
	if placePath != "/api/v1/books/7/shelf" {
		t.Fatalf("place path = %q, want /api/v1/books/7/shelf", placePath)
	}
	if placeBody["shelfId"] != float64(2) {
		t.Fatalf("place body = %#v, want shelfId=2", placeBody)
	}
	if placement.BookcaseLabel != "Hall" || placement.ShelfLabel != "Middle" {
		t.Fatalf("placement = %#v, want Hall/Middle", placement)
	}
}

func TestClient_SearchByISBN(t *testing.T) {
	t.Parallel()

	var gotRawPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRawPath = r.URL.EscapedPath()
		switch r.URL.Path {
		case "/api/v1/books/search/9780134190440":
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"id":3,"title":"Effective Java","isbn":"9780134190440"}`)
		case "/api/v1/books/search/0000000000":
			w.WriteHeader(http.StatusNotFound)
		case "/api/v1/books/search/bad/isbn":
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"title":"escaped"}`)
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	record, err := c.SearchByISBN(ctx, "9780134190440")
	if err != nil {
		t.Fatalf("SearchByISBN returned error: %v", err)
	}
	if !strings.Contains(string(record), "Effective Java") {
		t.Fatalf("record = %s, want raw payload", record)
	}

	record, err = c.SearchByISBN(ctx, "0000000000")
	if err != nil {
		t.Fatalf("SearchByISBN 404 returned error: %v", err)
	}
	if record != nil {
		t.Fatalf("SearchByISBN 404 record = %s, want nil", record)
	}

	if _, err := c.SearchByISBN(ctx, "bad/isbn"); err != nil {
		t.Fatalf("SearchByISBN escaped returned error: %v", err)
	}
	if gotRawPath != "/api/v1/books/search/bad%2Fisbn" {
		t.Fatalf("escaped path = %q, want slash encoded", gotRawPath)
	}

	_, err = c.SearchByISBN(ctx, "1111111111")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusInternalServerError {
		t.Fatalf("SearchByISBN 500 error = %v, want APIError 500", err)
	}
}

func TestClient_ErrorKinds(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/import/books":
			http.Error(w, "  No book found for ISBN 123  ", http.StatusNotFound)
		case "/api/v1/shelves/options":
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, "{not-json")
		default:
			w.WriteHeader(http.StatusConflict)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	_, err = c.ImportBook(ctx, "123")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("ImportBook error = %v, want APIError", err)
	}
	if apiErr.Message() != "No book found for ISBN 123" {
		t.Fatalf("Message = %q, want trimmed body", apiErr.Message())
	}

	_, err = c.PlaceOnShelf(ctx, 7, 1)
	if !errors.As(err, &apiErr) || apiErr.Message() != "Shelf update failed (409)" {
		t.Fatalf("PlaceOnShelf error = %v, want generic 409 message", err)
	}

	_, err = c.FetchShelfOptions(ctx)
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("FetchShelfOptions error = %v, want ErrDecode", err)
	}
}

func TestClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := server.URL
	server.Close()

	c, err := NewClient(addr)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.ImportBook(context.Background(), "123")
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("ImportBook error = %v, want ErrTransport", err)
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Fatalf("transport failure should not be an APIError")
	}
}

func TestShelfOption_Space(t *testing.T) {
	cases := []struct {
		name      string
		opt       ShelfOption
		wantSpace bool
		wantOpen  int
	}{
		{"empty", ShelfOption{BookCapacity: 5}, true, 5},
		{"partial", ShelfOption{BookCapacity: 5, BookCount: 4}, true, 1},
		{"full", ShelfOption{BookCapacity: 5, BookCount: 5}, false, 0},
		{"over", ShelfOption{BookCapacity: 5, BookCount: 7}, false, 0},
		{"no capacity", ShelfOption{}, false, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.opt.HasSpace(); got != tc.wantSpace {
				t.Fatalf("HasSpace = %v, want %v", got, tc.wantSpace)
			}
			if got := tc.opt.OpenSlots(); got != tc.wantOpen {
				t.Fatalf("OpenSlots = %d, want %d", got, tc.wantOpen)
			}
		})
	}
}

func TestBookClone_DoesNotShareAuthors(t *testing.T) {
	orig := &Book{Title: "Dune", Authors: []string{"Frank Herbert"}}
	dup := orig.Clone()
	dup.Authors[0] = "changed"
	if orig.Authors[0] != "Frank Herbert" {
		t.Fatalf("Clone shares authors slice")
	}
	var nilBook *Book
	if nilBook.Clone() != nil {
		t.Fatalf("Clone of nil = non-nil")
	}
}
