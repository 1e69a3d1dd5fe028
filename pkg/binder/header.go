package binder

import (
	"net/http"
	"strings"
)

// HeaderValue reads a request header matching the given parameter name.
// Underscores translate to hyphens, so a parameter named user_agent reads
// the User-Agent header. Missing headers return the empty string.
func HeaderValue(r *http.Request, param string) string {
	return r.Header.Get(HeaderName(param))
}

// HeaderName converts a snake_case parameter name to its kebab-case header
// name.
func HeaderName(param string) string {
	return strings.ReplaceAll(param, "_", "-")
}

// CookieValue reads a cookie value by name. Missing cookies return the empty
// string, matching the zero-default behavior of the other single-value
// extractors.
func CookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
