package pagination

const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// Params carries normalized page/per-page values parsed from a request.
type Params struct {
	Page    int
	PerPage int
}

// Normalize clamps page and per-page into valid ranges.
func Normalize(page, perPage int) Params {
	if page < 1 {
		page = DefaultPage
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return Params{Page: page, PerPage: perPage}
}

// Offset returns the row offset for the current page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Pages returns the number of pages needed for total rows.
func (p Params) Pages(total int64) int {
	if total == 0 {
		return 0
	}
	pages := int(total) / p.PerPage
	if int(total)%p.PerPage != 0 {
		pages++
	}
	return pages
}

// Envelope is the paginated list response shape.
type Envelope struct {
	Items interface{} `json:"items"`
	Total int64       `json:"total"`
	Pages int         `json:"pages"`
	Page  int         `json:"page"`
}

// NewEnvelope builds the standard paginated response.
func NewEnvelope(items interface{}, total int64, p Params) Envelope {
	return Envelope{
		Items: items,
		Total: total,
		Pages: p.Pages(total),
		Page:  p.Page,
	}
}
