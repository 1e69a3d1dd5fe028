package routekit

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Table is the final routing artifact: a conflict-free mapping from
// (method, full path) to route descriptors. It is immutable after assembly
// and safe for unsynchronized concurrent reads.
type Table struct {
	entries  map[routeKey]*RouteDescriptor
	order    []routeKey
	sessions SessionStore
}

// Len returns the number of routes in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// Routes returns all route descriptors sorted by full path, then method.
// The order is deterministic across assemblies of the same declarations.
func (t *Table) Routes() []*RouteDescriptor {
	out := make([]*RouteDescriptor, len(t.order))
	for i, key := range t.order {
		out[i] = t.entries[key]
	}
	return out
}

// Lookup returns the descriptor registered for (method, path) after
// normalizing path the same way assembly did.
func (t *Table) Lookup(method, path string) (*RouteDescriptor, bool) {
	path = joinFullPath("", normalizePathSuffix(path))
	rd, ok := t.entries[routeKey{method: strings.ToUpper(method), path: path}]
	return rd, ok
}

// Handler mounts the whole table onto a chi router: every entry gets a
// dispatch adapter that runs its extractor bindings, invokes the handler,
// and applies the merged response metadata. Controller middleware wraps each
// of the controller's routes.
func (t *Table) Handler() http.Handler {
	r := chi.NewRouter()
	for _, key := range t.order {
		rd := t.entries[key]
		r.With(rd.owner.Middleware).Method(rd.Method, rd.FullPath, t.invoker(rd))
	}
	return r
}
