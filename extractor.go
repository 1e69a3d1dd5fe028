package routekit

import (
	"fmt"
	"sort"
	"strings"
)

// Extractor kind names accepted in Binding declarations. The names match the
// declaration syntax of the attribute front-end, so they read like types
// rather than Go constants.
const (
	// Body-consuming kinds. At most one of these may be bound per route.
	KindJSON       = "Json"
	KindForm       = "Form"
	KindBytes      = "Bytes"
	KindText       = "Text"
	KindHTML       = "Html"
	KindXML        = "Xml"
	KindJavaScript = "JavaScript"

	// URL kinds.
	KindPath  = "Path"
	KindQuery = "Query"

	// KindState serves the controller's shared state value.
	KindState = "State"

	// Feature-gated kinds, present in the catalog only when the matching
	// Features toggle is on.
	KindHeader  = "HeaderParam"
	KindCookie  = "CookieParam"
	KindSession = "SessionParam"
)

// Features controls which optional extractor kinds are registered in a
// catalog. The zero value enables only the always-available kinds.
//
// Env tags allow loading the toggles with config.Load or FeaturesFromEnv.
type Features struct {
	// Headers enables the HeaderParam extractor kind.
	Headers bool `env:"ROUTEKIT_HEADERS" envDefault:"false"`
	// Cookies enables the CookieParam extractor kind.
	Cookies bool `env:"ROUTEKIT_COOKIES" envDefault:"false"`
	// Sessions enables the SessionParam extractor kind.
	Sessions bool `env:"ROUTEKIT_SESSIONS" envDefault:"false"`
}

// ExtractorKind describes one registered extraction strategy: its name, and
// whether running it consumes the request body. Values are immutable once
// the catalog is built.
type ExtractorKind struct {
	Name         string
	ConsumesBody bool

	// feature is the Features toggle guarding this kind, empty for
	// always-available kinds. Kept for error reporting.
	feature string
}

// Catalog is the process-wide registry of extractor kinds. It is populated
// once by NewCatalog and read-only thereafter, so lookups need no locking.
type Catalog struct {
	kinds   map[string]ExtractorKind
	enabled map[string]bool
	names   []string // sorted, for error messages
}

// NewCatalog builds a catalog containing the always-available extractor
// kinds plus any optional kinds enabled by f. Looking up a known but
// disabled kind fails with ErrFeatureNotEnabled rather than silently
// ignoring the binding.
func NewCatalog(f Features) *Catalog {
	all := []ExtractorKind{
		{Name: KindJSON, ConsumesBody: true},
		{Name: KindForm, ConsumesBody: true},
		{Name: KindBytes, ConsumesBody: true},
		{Name: KindText, ConsumesBody: true},
		{Name: KindHTML, ConsumesBody: true},
		{Name: KindXML, ConsumesBody: true},
		{Name: KindJavaScript, ConsumesBody: true},
		{Name: KindPath},
		{Name: KindQuery},
		{Name: KindState},
		{Name: KindHeader, feature: "headers"},
		{Name: KindCookie, feature: "cookies"},
		{Name: KindSession, feature: "sessions"},
	}

	c := &Catalog{
		kinds:   make(map[string]ExtractorKind, len(all)),
		enabled: make(map[string]bool, len(all)),
	}
	for _, k := range all {
		c.kinds[k.Name] = k
		switch k.Name {
		case KindHeader:
			c.enabled[k.Name] = f.Headers
		case KindCookie:
			c.enabled[k.Name] = f.Cookies
		case KindSession:
			c.enabled[k.Name] = f.Sessions
		default:
			c.enabled[k.Name] = true
		}
		if c.enabled[k.Name] {
			c.names = append(c.names, k.Name)
		}
	}
	sort.Strings(c.names)
	return c
}

// Lookup resolves an extractor kind by name. Unknown names fail with
// ErrUnknownExtractor; known but disabled kinds fail with
// ErrFeatureNotEnabled naming the toggle that would enable them.
func (c *Catalog) Lookup(name string) (ExtractorKind, error) {
	k, ok := c.kinds[name]
	if !ok {
		return ExtractorKind{}, fmt.Errorf("%w: %q (valid kinds: %s)",
			ErrUnknownExtractor, name, strings.Join(c.names, ", "))
	}
	if !c.enabled[name] {
		return ExtractorKind{}, fmt.Errorf("%w: %q requires the %s feature",
			ErrFeatureNotEnabled, name, k.feature)
	}
	return k, nil
}

// Kinds returns the names of all enabled extractor kinds in sorted order.
func (c *Catalog) Kinds() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}
