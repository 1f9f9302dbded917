// Package params reads typed values from URL paths and query strings.
package params

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/fashion-admin/internal/models"
)

// ID parses the URL parameter name as an integer id.
func ID(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, models.InvalidArgument("invalid %s %q", name, raw)
	}
	return id, nil
}

// Int parses the query parameter name, returning def when it is absent.
func Int(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, models.InvalidArgument("query parameter %s must be an integer", name)
	}
	return v, nil
}

// String returns the query parameter name.
func String(r *http.Request, name string) string {
	return r.URL.Query().Get(name)
}
