package routekit

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// RouteDescriptor is the fully resolved specification of one (method, path)
// endpoint: ordered parameter bindings, merged response metadata, and the
// handler reference. Descriptors are owned by the controller that declared
// them and are immutable after assembly.
type RouteDescriptor struct {
	// Method is the single HTTP verb, uppercased.
	Method string

	// PathSuffix is the normalized route path below the controller base.
	PathSuffix string

	// FullPath is the normalized base path + suffix, set during assembly.
	FullPath string

	// Name is the route's diagnostic name from the declaration.
	Name string

	// Bindings are the resolved parameter bindings in handler parameter
	// order.
	Bindings []ParameterBinding

	// Headers are the merged controller + route response headers.
	Headers map[string]string

	// ContentType is the effective content type after merge, empty when
	// neither scope declared one.
	ContentType string

	// Handler is the opaque handler reference.
	Handler Handler

	owner *ControllerDescriptor
}

// Origin identifies where this route was declared.
func (rd *RouteDescriptor) Origin() RouteOrigin {
	return RouteOrigin{Controller: rd.owner.Name, Route: rd.Name}
}

// Controller returns the descriptor of the controller that declared this
// route.
func (rd *RouteDescriptor) Controller() *ControllerDescriptor {
	return rd.owner
}

// ControllerDescriptor is the resolved form of one controller: normalized
// base path, folded headers, composed middleware, and its route descriptors.
// Built once at registration time and read-only thereafter.
type ControllerDescriptor struct {
	// ID identifies this registration in diagnostics, so two controllers
	// that happen to share a name remain distinguishable. Derived
	// deterministically from the declaration so repeated assemblies of the
	// same input produce identical descriptors.
	ID uuid.UUID

	// Name is the controller's diagnostic name from the declaration.
	Name string

	// BasePath is the normalized base path, empty for root.
	BasePath string

	// Headers are the folded controller-level headers.
	Headers map[string]string

	// ContentType is the controller-level content type, possibly empty.
	ContentType string

	// Middleware is the composed controller chain.
	Middleware Middleware

	// Routes are the controller's resolved routes in declaration order.
	Routes []*RouteDescriptor

	// State is the value served by State bindings.
	State any
}

// httpMethods is the set of verbs a route declaration may use.
var httpMethods = map[string]struct{}{
	http.MethodGet:     {},
	http.MethodPost:    {},
	http.MethodPut:     {},
	http.MethodPatch:   {},
	http.MethodDelete:  {},
	http.MethodHead:    {},
	http.MethodOptions: {},
	http.MethodTrace:   {},
	http.MethodConnect: {},
}

// buildController resolves one controller declaration into a descriptor.
// ordinal is the controller's position in the Assemble call, part of the ID
// derivation. Any failure aborts the whole controller: there is no partial
// registration.
func buildController(catalog *Catalog, c Controller, ordinal int, hasSessions bool) (*ControllerDescriptor, error) {
	cd := &ControllerDescriptor{
		ID:          uuid.NewSHA1(uuid.NameSpaceOID, fmt.Appendf(nil, "%s|%s|%d", c.Name, c.BasePath, ordinal)),
		Name:        c.Name,
		BasePath:    normalizeBasePath(c.BasePath),
		Headers:     foldHeaders(c.Headers),
		ContentType: c.ContentType,
		Middleware:  Chain(c.Middleware),
		State:       c.State,
	}

	cd.Routes = make([]*RouteDescriptor, 0, len(c.Routes))
	for _, r := range c.Routes {
		rd, err := buildRoute(catalog, cd, r, hasSessions)
		if err != nil {
			return nil, fmt.Errorf("controller %q route %q: %w", c.Name, r.Name, err)
		}
		cd.Routes = append(cd.Routes, rd)
	}
	return cd, nil
}

// buildRoute resolves one route declaration against the catalog and the
// owning controller. Headers and content type come out merged; the full path
// is filled in later by the assembler.
func buildRoute(catalog *Catalog, owner *ControllerDescriptor, r Route, hasSessions bool) (*RouteDescriptor, error) {
	method := strings.ToUpper(r.Method)
	if _, ok := httpMethods[method]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMethod, r.Method)
	}
	if r.Handler == nil {
		return nil, ErrMissingHandler
	}

	suffix := normalizePathSuffix(r.Path)

	declared, err := foldBindings(catalog, r.Bindings)
	if err != nil {
		return nil, err
	}
	bindings, err := resolveBindings(catalog, declared, r.Params)
	if err != nil {
		return nil, err
	}
	if err := validatePathBindings(suffix, bindings); err != nil {
		return nil, err
	}
	for _, b := range bindings {
		if b.Kind.Name == KindState && owner.State == nil {
			return nil, fmt.Errorf("%w: parameter %q", ErrMissingState, b.Param)
		}
		if b.Kind.Name == KindSession && !hasSessions {
			return nil, fmt.Errorf("%w: parameter %q", ErrMissingSessionStore, b.Param)
		}
	}

	return &RouteDescriptor{
		Method:      method,
		PathSuffix:  suffix,
		Name:        r.Name,
		Bindings:    bindings,
		Headers:     MergeHeaders(owner.Headers, foldHeaders(r.Headers)),
		ContentType: MergeContentType(owner.ContentType, r.ContentType),
		Handler:     r.Handler,
		owner:       owner,
	}, nil
}

// validatePathBindings cross-checks path parameter segments against Path
// bindings: every {name} or :name segment needs a Path binding of that name,
// and every Path binding must appear as a segment.
func validatePathBindings(path string, bindings []ParameterBinding) error {
	segments := pathParams(path)

	byName := make(map[string]ExtractorKind, len(bindings))
	for _, b := range bindings {
		byName[b.Param] = b.Kind
	}

	for name := range segments {
		kind, ok := byName[name]
		if !ok {
			return fmt.Errorf("%w: %q in %q", ErrPathParamNotBound, name, path)
		}
		if kind.Name != KindPath {
			return fmt.Errorf("%w: %q in %q is bound to %s", ErrPathParamNotBound, name, path, kind.Name)
		}
	}
	for _, b := range bindings {
		if b.Kind.Name != KindPath {
			continue
		}
		if _, ok := segments[b.Param]; !ok {
			return fmt.Errorf("%w: %q not in %q", ErrPathBindingNotInPath, b.Param, path)
		}
	}
	return nil
}

// pathParams extracts parameter names from {name} and :name path segments.
func pathParams(path string) map[string]struct{} {
	params := make(map[string]struct{})
	for _, seg := range strings.Split(path, "/") {
		if name, ok := strings.CutPrefix(seg, ":"); ok && name != "" {
			params[name] = struct{}{}
			continue
		}
		if inner, ok := strings.CutPrefix(seg, "{"); ok {
			if name, ok := strings.CutSuffix(inner, "}"); ok && name != "" {
				params[name] = struct{}{}
			}
		}
	}
	return params
}
