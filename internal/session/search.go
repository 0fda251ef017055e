package session

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
)

// SearchOutcome is the result of a manual ISBN lookup.
type SearchOutcome struct {
	ISBN   string
	Found  bool
	Record json.RawMessage
}

// Text renders the record as indented JSON, or MsgNotFound.
func (o SearchOutcome) Text() string {
	if !o.Found {
		return MsgNotFound
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, o.Record, "", "  "); err != nil {
		return string(o.Record)
	}
	return buf.String()
}

// Search looks up isbn. A 404 and any request failure both yield a
// not-found outcome; failures are only logged.
func (c *Controller) Search(ctx context.Context, isbn string) (SearchOutcome, error) {
	isbn = strings.TrimSpace(isbn)
	if isbn == "" {
		return SearchOutcome{}, ErrBlankISBN
	}

	outcome := SearchOutcome{ISBN: isbn}
	record, err := c.api.SearchByISBN(ctx, isbn)
	c.store.RecordResult(err, isTransport(err))
	if err != nil {
		c.logger.Warn("Search failed", "isbn", isbn, "error", err)
		return outcome, nil
	}
	if len(record) == 0 || string(record) == "null" {
		c.logger.Debug("Search found nothing", "isbn", isbn)
		return outcome, nil
	}
	outcome.Found = true
	outcome.Record = record
	return outcome, nil
}
