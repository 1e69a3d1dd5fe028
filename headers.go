package routekit

// MergeHeaders combines controller-level and route-level header maps with
// name-keyed, right-biased override: the route value wins wherever both
// scopes declare the same name. Both inputs are left untouched; the result
// is always a fresh map.
func MergeHeaders(controller, route map[string]string) map[string]string {
	merged := make(map[string]string, len(controller)+len(route))
	for name, value := range controller {
		merged[name] = value
	}
	for name, value := range route {
		merged[name] = value
	}
	return merged
}

// MergeContentType picks the effective content type: the route-level value
// when set, otherwise the controller-level value. Empty means no explicit
// content type was declared at either scope.
func MergeContentType(controller, route string) string {
	if route != "" {
		return route
	}
	return controller
}

// foldHeaders collapses an ordered header directive list into a name-keyed
// map. Within a single scope the last declaration of a name wins, so
// repeated declarations overwrite rather than duplicate.
func foldHeaders(directives []Header) map[string]string {
	if len(directives) == 0 {
		return nil
	}
	folded := make(map[string]string, len(directives))
	for _, h := range directives {
		folded[h.Name] = h.Value
	}
	return folded
}
