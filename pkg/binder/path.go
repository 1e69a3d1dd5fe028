package binder

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// PathValue reads a chi path parameter by name. Missing parameters return
// the empty string.
func PathValue(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}
