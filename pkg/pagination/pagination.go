package pagination

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 2000
	// MaxLimit caps how many rows any catalog query can request.
	MaxLimit = 5000
)

// Page holds offset pagination inputs from controllers or services.
type Page struct {
	Limit  int
	Offset int
}

// NormalizeLimit enforces the supplied default and maximum limits. Zero
// bounds fall back to the package defaults.
func NormalizeLimit(limit, defaultLimit, maxLimit int) int {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

// NormalizeOffset clamps negative offsets to zero.
func NormalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

// Normalize applies both limit and offset rules to the page.
func Normalize(page Page, defaultLimit, maxLimit int) Page {
	return Page{
		Limit:  NormalizeLimit(page.Limit, defaultLimit, maxLimit),
		Offset: NormalizeOffset(page.Offset),
	}
}

// NextOffset returns the offset for the following page.
func (p Page) NextOffset() int {
	return p.Offset + p.Limit
}
