package routekit

import "fmt"

// ParameterBinding is a resolved binding: one handler parameter matched to
// one extractor kind. Index is the parameter's position in the handler
// signature, so a resolved binding sequence can drive positional invocation.
type ParameterBinding struct {
	Param string
	Kind  ExtractorKind
	Index int
	New   func() any
}

// foldBindings collapses the declared binding list into a name-keyed map,
// resolving each kind name through the catalog. Declaring the same parameter
// name twice is an error rather than last-wins, to avoid silent shadowing.
func foldBindings(catalog *Catalog, declared []Binding) (map[string]ParameterBinding, error) {
	folded := make(map[string]ParameterBinding, len(declared))
	for _, b := range declared {
		if _, dup := folded[b.Param]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateBindingName, b.Param)
		}
		kind, err := catalog.Lookup(b.Kind)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", b.Param, err)
		}
		folded[b.Param] = ParameterBinding{Param: b.Param, Kind: kind, New: b.New}
	}
	return folded, nil
}

// resolveBindings joins the declared bindings against the handler's formal
// parameter names. The join is name-keyed, so the declaration order never
// matters; the result is sorted into parameter order. Every parameter must
// resolve to exactly one binding and every binding must match a parameter.
//
// The single-implicit-body fallback applies before the join: a route with no
// declared bindings and exactly one handler parameter binds that parameter
// to Json, the default body extractor. State never participates in implicit
// defaults; with two or more parameters every binding must be explicit.
func resolveBindings(catalog *Catalog, declared map[string]ParameterBinding, params []string) ([]ParameterBinding, error) {
	if len(declared) == 0 && len(params) == 1 {
		jsonKind, err := catalog.Lookup(KindJSON)
		if err != nil {
			return nil, err
		}
		return []ParameterBinding{{Param: params[0], Kind: jsonKind, Index: 0}}, nil
	}

	resolved := make([]ParameterBinding, 0, len(params))
	matched := make(map[string]struct{}, len(params))
	for i, name := range params {
		b, ok := declared[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnboundParameter, name)
		}
		b.Index = i
		resolved = append(resolved, b)
		matched[name] = struct{}{}
	}

	for name := range declared {
		if _, ok := matched[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnmatchedBinding, name)
		}
	}

	var body string
	for _, b := range resolved {
		if !b.Kind.ConsumesBody {
			continue
		}
		if body != "" {
			return nil, fmt.Errorf("%w: %q and %q", ErrMultipleBodyBindings, body, b.Param)
		}
		body = b.Param
	}

	return resolved, nil
}
