package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/shelfscan/internal/session"
)

func newCatalog(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/import/books":
			_, _ = io.WriteString(w, `{"bookId":7,"title":"Dune","isbn":"9780441013593","authors":["Frank Herbert"],"publisher":"Chilton"}`)
		case r.URL.Path == "/api/v1/shelves/options":
			_, _ = io.WriteString(w, `[
				{"shelfId":1,"shelfLabel":"Top","bookcaseLabel":"Hall","bookCapacity":5,"bookCount":5},
				{"shelfId":2,"shelfLabel":"Middle","bookcaseLabel":"Hall","bookCapacity":10,"bookCount":3}
			]`)
		case r.URL.Path == "/api/v1/books/7/shelf":
			_, _ = io.WriteString(w, `{"bookId":7,"shelfId":2,"shelfLabel":"Middle","bookcaseLabel":"Hall"}`)
		case r.URL.Path == "/api/v1/books/search/9780134190440":
			_, _ = io.WriteString(w, `{"title":"Effective Java","isbn":"9780134190440","authors":["Joshua Bloch"],"pages":412}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SHELFSCAN_API_URL", "")
	t.Setenv("SHELFSCAN_SCAN_DEVICE", "")
	t.Setenv("SHELFSCAN_LOG_LEVEL", "")

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "missing.toml")))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestImportCmd_PrintsCardAndPlaces(t *testing.T) {
	server := newCatalog(t)

	out, err := execute(t, "import", "9780441013593", "--shelf", "2", "--api", server.URL)
	if err != nil {
		t.Fatalf("import returned error: %v", err)
	}
	for _, want := range []string{"Dune (9780441013593)", "Frank Herbert", "Publisher: Chilton", "Book placed on Hall / Middle."} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestImportCmd_FullShelfFails(t *testing.T) {
	server := newCatalog(t)

	_, err := execute(t, "import", "9780441013593", "--shelf", "1", "--api", server.URL)
	if err == nil || !strings.Contains(err.Error(), "shelf 1 is full") {
		t.Fatalf("import error = %v, want full shelf error", err)
	}
}

func TestShelvesCmd(t *testing.T) {
	server := newCatalog(t)

	out, err := execute(t, "shelves", "--api", server.URL)
	if err != nil {
		t.Fatalf("shelves returned error: %v", err)
	}
	for _, want := range []string{"x      1  Hall • Top (5/5)", "▸      2  Hall • Middle (3/10)", "Hall → Middle"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSearchCmd_Formats(t *testing.T) {
	server := newCatalog(t)

	out, err := execute(t, "search", "9780134190440", "--api", server.URL)
	if err != nil {
		t.Fatalf("search returned error: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("json output does not parse: %v\n%s", err, out)
	}
	if decoded["title"] != "Effective Java" {
		t.Fatalf("title = %v, want Effective Java", decoded["title"])
	}

	out, err = execute(t, "search", "9780134190440", "--format", "yaml", "--api", server.URL)
	if err != nil {
		t.Fatalf("search yaml returned error: %v", err)
	}
	want := "title: Effective Java\nisbn: \"9780134190440\"\nauthors:\n  - Joshua Bloch\npages: 412\n"
	if out != want {
		t.Fatalf("yaml output = %q, want %q", out, want)
	}

	out, err = execute(t, "search", "0000000000", "--api", server.URL)
	if err != nil {
		t.Fatalf("search miss returned error: %v", err)
	}
	if strings.TrimSpace(out) != session.MsgNotFound {
		t.Fatalf("search miss output = %q, want %q", out, session.MsgNotFound)
	}
}

func TestSearchCmd_UsageErrors(t *testing.T) {
	if _, err := execute(t, "search", "   "); !errors.Is(err, errBlankISBN) {
		t.Fatalf("blank search error = %v, want errBlankISBN", err)
	}
	if _, err := execute(t, "search", "123", "--format", "xml"); err == nil {
		t.Fatalf("search with xml format returned nil error")
	}
	if _, err := execute(t, "search"); err == nil {
		t.Fatalf("search without ISBN returned nil error")
	}
}

func TestScanCmd_ReadsStdin(t *testing.T) {
	server := newCatalog(t)
	t.Setenv("SHELFSCAN_API_URL", "")
	t.Setenv("SHELFSCAN_SCAN_DEVICE", "")
	t.Setenv("SHELFSCAN_LOG_LEVEL", "")

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader("9780441013593\n9780441013593\n"))
	cmd.SetArgs([]string{"scan", "--shelf", "2", "--api", server.URL, "--config", filepath.Join(t.TempDir(), "missing.toml")})
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("scan returned error: %v", err)
	}
	if !strings.Contains(out.String(), "1 scanned, 1 imported, 1 placed, 0 failed") {
		t.Fatalf("scan output missing summary:\n%s", out.String())
	}
}

func TestGlobalFlags_RefreshOption(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0s"},
		{10, "10s"},
		{-5, "-1ns"},
	}
	for _, tt := range tests {
		g := &globalFlags{refreshSeconds: tt.seconds}
		if got := g.options().RefreshEvery.String(); got != tt.want {
			t.Fatalf("refresh %d -> %s, want %s", tt.seconds, got, tt.want)
		}
	}
}
