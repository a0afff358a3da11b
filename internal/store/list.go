package store

// DefaultPageSize is the page size applied when a query does not set one.
const DefaultPageSize = 20

// ListParams carries pagination and search for list queries.
type ListParams struct {
	Page     int
	PageSize int
	Search   string
}

// Offset returns the zero-based row offset for the page.
func (p ListParams) Offset() int {
	page := p.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * p.Limit()
}

// Limit returns the effective page size.
func (p ListParams) Limit() int {
	if p.PageSize <= 0 {
		return DefaultPageSize
	}
	return p.PageSize
}

// ListShape tags which response shape a list result was resolved from.
// Backends always produce ShapePaged; the REST client resolves whatever the
// remote API returns into one of the three shapes exactly once, at the
// service boundary.
type ListShape int

const (
	// ShapeUnknown marks an unrecognized response, treated as empty.
	ShapeUnknown ListShape = iota
	// ShapeArray marks a bare JSON array; total equals the array length.
	ShapeArray
	// ShapePaged marks a {results, count} envelope.
	ShapePaged
)

// ListResult is a normalized page of records.
type ListResult struct {
	Shape ListShape
	Items []*Record
	Total int
}
