package catalog

// Book mirrors the record returned by the import endpoint.
type Book struct {
	BookID      int64    `json:"bookId"`
	Title       string   `json:"title"`
	ISBN        string   `json:"isbn"`
	Authors     []string `json:"authors"`
	Publisher   string   `json:"publisher,omitempty"`
	Description string   `json:"description,omitempty"`
}

// Clone returns a copy that does not share the authors slice.
func (b *Book) Clone() *Book {
	if b == nil {
		return nil
	}
	dup := *b
	if b.Authors != nil {
		dup.Authors = append([]string(nil), b.Authors...)
	}
	return &dup
}

// ShelfOption is one candidate shelf from /api/v1/shelves/options.
type ShelfOption struct {
	ShelfID       int64  `json:"shelfId"`
	ShelfLabel    string `json:"shelfLabel"`
	BookcaseLabel string `json:"bookcaseLabel"`
	BookCapacity  int    `json:"bookCapacity"`
	BookCount     int    `json:"bookCount"`
}

// HasSpace reports whether the shelf can take another book.
func (o ShelfOption) HasSpace() bool {
	return o.BookCount < o.BookCapacity
}

// OpenSlots returns how many more books fit on the shelf.
func (o ShelfOption) OpenSlots() int {
	if n := o.BookCapacity - o.BookCount; n > 0 {
		return n
	}
	return 0
}

// FindShelf returns the option with the given id.
func FindShelf(options []ShelfOption, shelfID int64) (ShelfOption, bool) {
	for _, opt := range options {
		if opt.ShelfID == shelfID {
			return opt, true
		}
	}
	return ShelfOption{}, false
}

// Placement mirrors the response of a shelf assignment.
type Placement struct {
	BookID        int64  `json:"bookId"`
	Title         string `json:"title"`
	ShelfID       int64  `json:"shelfId"`
	ShelfLabel    string `json:"shelfLabel"`
	BookcaseLabel string `json:"bookcaseLabel"`
}

type importRequest struct {
	ISBN string `json:"isbn"`
}

type placeRequest struct {
	ShelfID int64 `json:"shelfId"`
}
