// Package paginate slices ordered collections into pages.
package paginate

import "github.com/magabrotheeeer/fashion-admin/internal/models"

// Paginate returns page number page of items with limit items per page.
// Pages past the end are empty rather than an error.
func Paginate[T any](items []T, page, limit int) (models.Page[T], error) {
	if page < 1 {
		return models.Page[T]{}, models.InvalidArgument("page must be at least 1")
	}
	if limit < 1 {
		return models.Page[T]{}, models.InvalidArgument("limit must be at least 1")
	}

	total := len(items)
	pages := total / limit
	if total%limit != 0 {
		pages++
	}

	out := []T{}
	// page-1 < pages keeps (page-1)*limit below total, so nothing overflows.
	if page-1 < pages {
		start := (page - 1) * limit
		end := min(start+limit, total)
		out = append(out, items[start:end]...)
	}

	return models.Page[T]{
		Items:       out,
		Total:       total,
		TotalPages:  pages,
		CurrentPage: page,
	}, nil
}
