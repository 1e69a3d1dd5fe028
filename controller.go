package routekit

import (
	"context"
	"net/http"
)

// Handler is the invocable form of a route handler. The dispatch adapter
// calls it with one argument per handler parameter, in parameter order, each
// produced by that parameter's extractor. The returned value is rendered to
// the response; see Table.Handler for the rendering rules.
type Handler func(ctx context.Context, args []any) (any, error)

// Middleware wraps an http.Handler with cross-cutting behavior. Controller
// middleware is applied in declaration order: the first middleware listed is
// the outermost wrapper.
type Middleware func(http.Handler) http.Handler

// SessionStore supplies values for SessionParam bindings. Implementations
// typically read a session resolved earlier in the middleware chain.
type SessionStore interface {
	// Get returns the session value stored under key for this request, and
	// whether it was present.
	Get(r *http.Request, key string) (any, bool)
}

// Response lets handler return values control their own rendering, following
// the render-yourself pattern. Returned values implementing Response are
// rendered verbatim after the merged headers are applied.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// Header is a single response header directive. Within one scope, repeated
// declarations of the same name overwrite in source order; across scopes the
// route declaration wins over the controller declaration.
type Header struct {
	Name  string
	Value string
}

// Binding associates one handler parameter name with an extractor kind.
// Declaration order is irrelevant: bindings are matched to handler
// parameters by name.
type Binding struct {
	// Param is the handler parameter name this binding resolves.
	Param string

	// Kind is the extractor kind name, resolved against the catalog.
	Kind string

	// New optionally supplies a fresh decode target for body and query
	// kinds (typically func() any { return &MyRequest{} }). The handler
	// receives the populated value. When nil, Json decodes into
	// map[string]any and Form/Query yield map[string][]string.
	New func() any
}

// Route is the raw declaration of one endpoint as handed over by the
// attribute front-end. It is input only; assembly turns it into an immutable
// RouteDescriptor.
type Route struct {
	// Method is a single HTTP verb. Declarations with multiple verbs are
	// not supported; declare one Route per verb.
	Method string

	// Path is the route's path suffix below the controller base path.
	// Empty means "/". Path parameters use {name} or :name segments.
	Path string

	// Name identifies the route in errors and traces, typically the
	// handler function name.
	Name string

	// Bindings declares how each handler parameter is extracted. Order
	// does not matter.
	Bindings []Binding

	// Headers are route-level response headers. They override
	// controller-level headers of the same name.
	Headers []Header

	// ContentType overrides the controller-level content type when set.
	ContentType string

	// Handler is invoked by the dispatch adapter with extracted arguments.
	Handler Handler

	// Params lists the handler's formal parameter names in declared order.
	Params []string
}

// Controller groups routes sharing a base path, response headers, a
// middleware chain, and an optional shared state value.
type Controller struct {
	// Name identifies the controller in errors and traces.
	Name string

	// BasePath prefixes every route path. Empty means root.
	BasePath string

	// Headers apply to every route unless overridden per route.
	Headers []Header

	// ContentType applies to every route unless overridden per route.
	ContentType string

	// Middleware runs in declaration order around every route of this
	// controller. Listing the same middleware twice runs it twice.
	Middleware []Middleware

	// Routes are the controller's endpoint declarations.
	Routes []Route

	// State is the value served by State bindings. A route binding State
	// on a controller with nil State fails assembly.
	State any
}
