// Package catalog provides an HTTP client for the book catalog API.
//
// # Overview
//
// The catalog backend owns every book, bookcase and shelf. shelfscan only
// calls four of its endpoints:
//
//	POST /import/books                  {"isbn": "..."}      -> Book
//	GET  /api/v1/shelves/options                             -> []ShelfOption
//	POST /api/v1/books/{bookId}/shelf   {"shelfId": 3}       -> Placement
//	GET  /api/v1/books/search/{isbn}                         -> raw record or 404
//
// # Architecture
//
//   - client.go: HTTP client, request encoding and response handling
//   - types.go: data structures mirroring the API payloads
//   - errors.go: APIError and the transport/decode sentinels
//
// # Client Usage
//
//	client, err := catalog.NewClient("http://127.0.0.1:8080", catalog.WithTimeout(10*time.Second))
//	if err != nil {
//		return err
//	}
//	book, err := client.ImportBook(ctx, "9780134190440")
//
// # Error Handling
//
// Three kinds of failure are distinguished:
//
//   - *APIError: the server answered with a non-2xx status. Message() returns
//     the response body verbatim, or "<Op> failed (<status>)" when the body is empty.
//   - ErrTransport: the request never completed (refused, timeout, cancelled).
//   - ErrDecode: a 2xx response carried a body that is not the expected JSON.
//
// SearchByISBN maps 404 to a nil record with a nil error; a missing book is an
// expected outcome, not a failure.
//
// # Shelf Capacity
//
// ShelfOption.HasSpace is derived from BookCount < BookCapacity rather than
// trusting a server flag, so a stale or missing flag cannot enable placement
// on a full shelf.
//
// # Testing
//
// The API interface lists the four calls. Session tests use a fake; client
// tests run against httptest servers.
package catalog
