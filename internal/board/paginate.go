package board

// PerPage is the fixed page size for card listings
const PerPage = 10

// Paginate converts a 1-based page number into offset and limit values.
// Pages below 1 are clamped to the first page.
func Paginate(page int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	return (page - 1) * PerPage, PerPage
}

// TotalPages computes the page count for a number of matching cards.
// Zero matches still render as a single empty page.
func TotalPages(total int64) int {
	pages := int((total + PerPage - 1) / PerPage)
	if pages < 1 {
		pages = 1
	}
	return pages
}
