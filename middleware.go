package routekit

import "net/http"

// Chain composes controller middleware into a single Middleware. The chain
// preserves declaration order: the first middleware listed becomes the
// outermost wrapper, so it sees the request first. Identical references are
// not deduplicated; a middleware listed twice runs twice.
func Chain(middleware []Middleware) Middleware {
	// Copy so later mutation of the declaration slice cannot affect an
	// already assembled chain.
	chain := make([]Middleware, len(middleware))
	copy(chain, middleware)

	return func(next http.Handler) http.Handler {
		h := next
		for i := len(chain) - 1; i >= 0; i-- {
			h = chain[i](h)
		}
		return h
	}
}
