package catalog

import (
	"errors"
	"fmt"
	"net/http"
)

// Operation names used in generic failure messages.
const (
	OpImport       = "Import"
	OpShelfOptions = "Shelf options"
	OpPlace        = "Shelf update"
	OpSearch       = "Search"
)

var (
	// ErrTransport marks requests that never produced an HTTP response.
	ErrTransport = errors.New("catalog request failed")
	// ErrDecode marks 2xx responses whose body could not be parsed.
	ErrDecode = errors.New("decode response")
)

// APIError is returned for any non-2xx response.
type APIError struct {
	Op     string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s returned status %d: %s", e.Op, e.Status, e.Body)
	}
	return fmt.Sprintf("%s returned status %d", e.Op, e.Status)
}

// Message is the operator-facing text: the server's body verbatim, or a
// generic line naming the operation and status.
func (e *APIError) Message() string {
	if e.Body != "" {
		return e.Body
	}
	return fmt.Sprintf("%s failed (%d)", e.Op, e.Status)
}

// IsNotFound reports whether err is a 404 from the catalog.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}
