// Package bulk applies a single-entity mutation to a batch of ids.
package bulk

import (
	"errors"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/fashion-admin/internal/models"
)

// Apply calls fn for every id independently. Failures are collected as messages and
// never undo the mutations that already succeeded. entity names the record type
// ("User") and summary builds the closing message from the success count.
func Apply[T any](ids []int, entity string, fn func(id int) (T, error), summary func(n int) string) models.BulkResult[T] {
	res := models.BulkResult[T]{
		Updated: []T{},
		Errors:  []string{},
	}

	for _, id := range ids {
		item, err := fn(id)
		switch {
		case err == nil:
			res.Updated = append(res.Updated, item)
		case errors.Is(err, models.ErrNotFound):
			res.Errors = append(res.Errors, fmt.Sprintf("%s with ID %d not found", entity, id))
		default:
			res.Errors = append(res.Errors, fmt.Sprintf("Error updating %s %d: %s", strings.ToLower(entity), id, err))
		}
	}

	res.Success = len(res.Errors) == 0
	res.Message = summary(len(res.Updated))
	if n := len(res.Errors); n > 0 {
		res.Message += fmt.Sprintf(", %d errors occurred", n)
	}
	return res
}
