package routekit

import (
	"log/slog"
	"sort"
)

// Option configures an Assembler.
type Option func(*Assembler)

// WithLogger enables the registration trace: every resolved route is logged
// at debug level during assembly. Diagnostic only, no behavioral effect.
func WithLogger(l *slog.Logger) Option {
	return func(a *Assembler) {
		if l != nil {
			a.log = l
		}
	}
}

// WithSessionStore supplies the store backing SessionParam bindings.
// Assembling a route that binds SessionParam without a store configured is a
// registration error.
func WithSessionStore(s SessionStore) Option {
	return func(a *Assembler) {
		if s != nil {
			a.sessions = s
		}
	}
}

// Assembler aggregates controller declarations into a routing table. It
// performs a one-shot, synchronous transformation at registration time: no
// I/O, no suspension points, nothing retained between calls.
type Assembler struct {
	catalog  *Catalog
	log      *slog.Logger
	sessions SessionStore
}

// New creates an Assembler resolving extractor kinds against catalog.
func New(catalog *Catalog, opts ...Option) *Assembler {
	a := &Assembler{catalog: catalog}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

type routeKey struct {
	method string
	path   string
}

// Assemble resolves every controller and merges their routes into one
// conflict-free table. Any failure aborts the whole assembly; a partially
// usable table is never returned. Assembly is deterministic and idempotent:
// the same declarations always produce an identical table or the same error.
func (a *Assembler) Assemble(controllers ...Controller) (*Table, error) {
	t := &Table{
		entries:  make(map[routeKey]*RouteDescriptor),
		sessions: a.sessions,
	}

	for i, c := range controllers {
		cd, err := buildController(a.catalog, c, i, a.sessions != nil)
		if err != nil {
			return nil, err
		}

		for _, rd := range cd.Routes {
			rd.FullPath = joinFullPath(cd.BasePath, rd.PathSuffix)
			key := routeKey{method: rd.Method, path: rd.FullPath}
			if existing, ok := t.entries[key]; ok {
				return nil, &ConflictError{
					Method:   rd.Method,
					FullPath: rd.FullPath,
					First:    existing.Origin(),
					Second:   rd.Origin(),
				}
			}
			t.entries[key] = rd
			t.order = append(t.order, key)

			if a.log != nil {
				a.log.Debug("route resolved",
					slog.String("controller", cd.Name),
					slog.String("controller_id", cd.ID.String()),
					slog.String("route", rd.Name),
					slog.String("method", rd.Method),
					slog.String("path", rd.FullPath),
					slog.Any("bindings", bindingKinds(rd.Bindings)),
				)
			}
		}
	}

	// Deterministic order irrespective of map iteration, so repeated
	// assemblies of the same input produce identical tables.
	sort.Slice(t.order, func(i, j int) bool {
		if t.order[i].path != t.order[j].path {
			return t.order[i].path < t.order[j].path
		}
		return t.order[i].method < t.order[j].method
	})

	return t, nil
}

func bindingKinds(bindings []ParameterBinding) []string {
	kinds := make([]string, len(bindings))
	for i, b := range bindings {
		kinds[i] = b.Param + "=" + b.Kind.Name
	}
	return kinds
}
