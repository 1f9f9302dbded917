package models

// Page is one slice of an ordered collection.
type Page[T any] struct {
	Items       []T `json:"items"`
	Total       int `json:"total"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
}

// ActionResult reports a single-entity mutation.
type ActionResult[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Item    T      `json:"item"`
}

// Succeeded wraps item in a successful ActionResult.
func Succeeded[T any](message string, item T) ActionResult[T] {
	return ActionResult[T]{Success: true, Message: message, Item: item}
}

// BulkResult reports a batch mutation. Failed ids never undo earlier successes.
type BulkResult[T any] struct {
	Success bool     `json:"success"`
	Updated []T      `json:"updated"`
	Errors  []string `json:"errors"`
	Message string   `json:"message"`
}
