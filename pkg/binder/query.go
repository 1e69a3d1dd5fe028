package binder

import "net/http"

// Query creates a binder populating struct fields from URL query parameters
// via `query` struct tags. Multi-value parameters bind to slices; missing
// parameters leave fields at their zero value.
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		return bindToStruct(v, "query", r.URL.Query(), ErrInvalidQuery)
	}
}
