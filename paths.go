package routekit

import "strings"

// Path normalization rules: duplicate slashes collapse, parameter segments
// canonicalize to {name}, and trailing slashes are insignificant except for
// root. A base path never ends in a slash; a suffix always starts with one.

func normalizeBasePath(base string) string {
	base = canonicalizeSegments(base)
	base = strings.TrimRight(base, "/")
	if base == "" {
		return ""
	}
	if !strings.HasPrefix(base, "/") {
		base = "/" + base
	}
	return base
}

func normalizePathSuffix(path string) string {
	path = canonicalizeSegments(path)
	if path == "" || path == "/" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimRight(path, "/")
}

// joinFullPath concatenates a normalized base path and suffix.
func joinFullPath(base, suffix string) string {
	if suffix == "/" {
		if base == "" {
			return "/"
		}
		return base
	}
	return base + suffix
}

// canonicalizeSegments collapses duplicate slashes and rewrites :name
// parameter segments to the canonical {name} form.
func canonicalizeSegments(path string) string {
	if path == "" {
		return ""
	}
	segments := strings.Split(path, "/")
	out := make([]string, 0, len(segments))
	for i, seg := range segments {
		if seg == "" {
			// Keep a single leading empty segment so the join re-creates
			// the leading slash; drop the rest (duplicate slashes).
			if i == 0 {
				out = append(out, "")
			}
			continue
		}
		if name, ok := strings.CutPrefix(seg, ":"); ok && name != "" {
			seg = "{" + name + "}"
		}
		out = append(out, seg)
	}
	joined := strings.Join(out, "/")
	if strings.HasSuffix(path, "/") && !strings.HasSuffix(joined, "/") {
		joined += "/"
	}
	return joined
}
