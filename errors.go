package routekit

import (
	"errors"
	"fmt"
)

// Registration-time errors. Nothing here ever surfaces at request time; a
// table that assembled successfully is trusted and exhaustive.
var (
	// ErrUnknownExtractor indicates a binding references an extractor kind
	// that is not registered in the catalog.
	ErrUnknownExtractor = errors.New("routekit: unknown extractor kind")

	// ErrFeatureNotEnabled indicates a binding references a feature-gated
	// extractor kind whose feature toggle is off.
	ErrFeatureNotEnabled = errors.New("routekit: extractor feature not enabled")

	// ErrUnboundParameter indicates a handler parameter has no binding and
	// no implicit default applies.
	ErrUnboundParameter = errors.New("routekit: unbound handler parameter")

	// ErrDuplicateBindingName indicates the same parameter name is bound
	// more than once within a single route.
	ErrDuplicateBindingName = errors.New("routekit: duplicate binding name")

	// ErrUnmatchedBinding indicates a binding was declared for a parameter
	// name that does not exist in the handler signature.
	ErrUnmatchedBinding = errors.New("routekit: binding has no matching handler parameter")

	// ErrMultipleBodyBindings indicates more than one body-consuming
	// extractor is bound on a single route.
	ErrMultipleBodyBindings = errors.New("routekit: multiple body-consuming bindings")

	// ErrInvalidMethod indicates a route declares an unknown HTTP method.
	ErrInvalidMethod = errors.New("routekit: invalid HTTP method")

	// ErrMissingHandler indicates a route declaration has a nil handler.
	ErrMissingHandler = errors.New("routekit: route has no handler")

	// ErrPathParamNotBound indicates the route path contains a parameter
	// segment with no Path binding of that name.
	ErrPathParamNotBound = errors.New("routekit: path parameter has no Path binding")

	// ErrPathBindingNotInPath indicates a Path binding names a parameter
	// that does not appear in the route path.
	ErrPathBindingNotInPath = errors.New("routekit: Path binding not present in route path")

	// ErrMissingState indicates a route binds State but the controller
	// declares no state value.
	ErrMissingState = errors.New("routekit: State binding without controller state")

	// ErrMissingSessionStore indicates a route binds SessionParam but the
	// assembler has no session store configured.
	ErrMissingSessionStore = errors.New("routekit: SessionParam binding without session store")

	// ErrRouteConflict indicates two routes resolved to the same
	// (method, full path) pair.
	ErrRouteConflict = errors.New("routekit: route conflict")
)

// RouteOrigin identifies where a route was declared, used in conflict
// reporting so the caller can disambiguate.
type RouteOrigin struct {
	Controller string
	Route      string
}

func (o RouteOrigin) String() string {
	return fmt.Sprintf("%s.%s", o.Controller, o.Route)
}

// ConflictError reports two routes colliding on the same (method, full path)
// entry. It wraps ErrRouteConflict so callers can match with errors.Is.
type ConflictError struct {
	Method   string
	FullPath string
	First    RouteOrigin
	Second   RouteOrigin
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: %s %s declared by both %s and %s",
		ErrRouteConflict, e.Method, e.FullPath, e.First, e.Second)
}

func (e *ConflictError) Unwrap() error {
	return ErrRouteConflict
}
