package routekit_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/routekit"
)

func okHandler(ctx context.Context, args []any) (any, error) {
	return "ok", nil
}

// assembleOne is a shorthand for assembling a single controller with a
// default catalog.
func assembleOne(t *testing.T, c routekit.Controller, opts ...routekit.Option) (*routekit.Table, error) {
	t.Helper()
	catalog := routekit.NewCatalog(routekit.Features{Headers: true, Cookies: true, Sessions: true})
	return routekit.New(catalog, opts...).Assemble(c)
}

func TestAssembleBindingResolution(t *testing.T) {
	t.Parallel()

	t.Run("order independence", func(t *testing.T) {
		t.Parallel()

		declarations := [][]routekit.Binding{
			{
				{Param: "id", Kind: routekit.KindPath},
				{Param: "filters", Kind: routekit.KindQuery},
				{Param: "payload", Kind: routekit.KindJSON},
			},
			{
				{Param: "payload", Kind: routekit.KindJSON},
				{Param: "id", Kind: routekit.KindPath},
				{Param: "filters", Kind: routekit.KindQuery},
			},
			{
				{Param: "filters", Kind: routekit.KindQuery},
				{Param: "payload", Kind: routekit.KindJSON},
				{Param: "id", Kind: routekit.KindPath},
			},
		}

		for _, bindings := range declarations {
			table, err := assembleOne(t, routekit.Controller{
				Name: "Users",
				Routes: []routekit.Route{{
					Method:   http.MethodPost,
					Path:     "/{id}",
					Name:     "update",
					Bindings: bindings,
					Params:   []string{"id", "payload", "filters"},
					Handler:  okHandler,
				}},
			})
			require.NoError(t, err)

			routes := table.Routes()
			require.Len(t, routes, 1)

			resolved := routes[0].Bindings
			require.Len(t, resolved, 3)
			// Sorted into handler parameter order regardless of declaration order.
			assert.Equal(t, "id", resolved[0].Param)
			assert.Equal(t, routekit.KindPath, resolved[0].Kind.Name)
			assert.Equal(t, 0, resolved[0].Index)
			assert.Equal(t, "payload", resolved[1].Param)
			assert.Equal(t, routekit.KindJSON, resolved[1].Kind.Name)
			assert.Equal(t, 1, resolved[1].Index)
			assert.Equal(t, "filters", resolved[2].Param)
			assert.Equal(t, routekit.KindQuery, resolved[2].Kind.Name)
			assert.Equal(t, 2, resolved[2].Index)
		}
	})

	t.Run("duplicate binding name", func(t *testing.T) {
		t.Parallel()
		_, err := assembleOne(t, routekit.Controller{
			Name: "Users",
			Routes: []routekit.Route{{
				Method: http.MethodGet,
				Path:   "/{a}",
				Name:   "dup",
				Bindings: []routekit.Binding{
					{Param: "a", Kind: routekit.KindPath},
					{Param: "a", Kind: routekit.KindQuery},
				},
				Params:  []string{"a"},
				Handler: okHandler,
			}},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, routekit.ErrDuplicateBindingName)
		assert.Contains(t, err.Error(), `"a"`)
	})

	t.Run("binding without matching parameter", func(t *testing.T) {
		t.Parallel()
		_, err := assembleOne(t, routekit.Controller{
			Name: "Users",
			Routes: []routekit.Route{{
				Method: http.MethodGet,
				Name:   "orphan",
				Bindings: []routekit.Binding{
					{Param: "q", Kind: routekit.KindQuery},
					{Param: "ghost", Kind: routekit.KindQuery},
				},
				Params:  []string{"q"},
				Handler: okHandler,
			}},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, routekit.ErrUnmatchedBinding)
		assert.Contains(t, err.Error(), `"ghost"`)
	})

	t.Run("unbound handler parameter", func(t *testing.T) {
		t.Parallel()
		_, err := assembleOne(t, routekit.Controller{
			Name: "Users",
			Routes: []routekit.Route{{
				Method: http.MethodGet,
				Name:   "partial",
				Bindings: []routekit.Binding{
					{Param: "q", Kind: routekit.KindQuery},
				},
				Params:  []string{"q", "missing"},
				Handler: okHandler,
			}},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, routekit.ErrUnboundParameter)
		assert.Contains(t, err.Error(), `"missing"`)
	})

	t.Run("multiple body bindings", func(t *testing.T) {
		t.Parallel()
		_, err := assembleOne(t, routekit.Controller{
			Name: "Users",
			Routes: []routekit.Route{{
				Method: http.MethodPost,
				Name:   "twobodies",
				Bindings: []routekit.Binding{
					{Param: "a", Kind: routekit.KindJSON},
					{Param: "b", Kind: routekit.KindForm},
				},
				Params:  []string{"a", "b"},
				Handler: okHandler,
			}},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, routekit.ErrMultipleBodyBindings)
	})

	t.Run("body plus non-body succeeds", func(t *testing.T) {
		t.Parallel()
		_, err := assembleOne(t, routekit.Controller{
			Name: "Users",
			Routes: []routekit.Route{{
				Method: http.MethodPost,
				Path:   "/{b}",
				Name:   "mixed",
				Bindings: []routekit.Binding{
					{Param: "a", Kind: routekit.KindJSON},
					{Param: "b", Kind: routekit.KindPath},
				},
				Params:  []string{"a", "b"},
				Handler: okHandler,
			}},
		})
		require.NoError(t, err)
	})

	t.Run("implicit single-body fallback", func(t *testing.T) {
		t.Parallel()
		table, err := assembleOne(t, routekit.Controller{
			Name: "Users",
			Routes: []routekit.Route{{
				Method:  http.MethodPost,
				Name:    "create",
				Params:  []string{"user"},
				Handler: okHandler,
			}},
		})
		require.NoError(t, err)

		resolved := table.Routes()[0].Bindings
		require.Len(t, resolved, 1)
		assert.Equal(t, "user", resolved[0].Param)
		assert.Equal(t, routekit.KindJSON, resolved[0].Kind.Name)
		assert.True(t, resolved[0].Kind.ConsumesBody)
	})

	t.Run("no fallback for two unbound parameters", func(t *testing.T) {
		t.Parallel()
		_, err := assembleOne(t, routekit.Controller{
			Name: "Users",
			Routes: []routekit.Route{{
				Method:  http.MethodPost,
				Name:    "ambiguous",
				Params:  []string{"user", "extra"},
				Handler: okHandler,
			}},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, routekit.ErrUnboundParameter)
	})

	t.Run("zero parameters need no bindings", func(t *testing.T) {
		t.Parallel()
		table, err := assembleOne(t, routekit.Controller{
			Name: "Users",
			Routes: []routekit.Route{{
				Method:  http.MethodGet,
				Name:    "list",
				Handler: okHandler,
			}},
		})
		require.NoError(t, err)
		assert.Empty(t, table.Routes()[0].Bindings)
	})

	t.Run("unknown extractor kind", func(t *testing.T) {
		t.Parallel()
		_, err := assembleOne(t, routekit.Controller{
			Name: "Users",
			Routes: []routekit.Route{{
				Method: http.MethodGet,
				Name:   "bad",
				Bindings: []routekit.Binding{
					{Param: "x", Kind: "Blob"},
				},
				Params:  []string{"x"},
				Handler: okHandler,
			}},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, routekit.ErrUnknownExtractor)
	})

	t.Run("feature-gated kind without feature", func(t *testing.T) {
		t.Parallel()
		catalog := routekit.NewCatalog(routekit.Features{})
		_, err := routekit.New(catalog).Assemble(routekit.Controller{
			Name: "Users",
			Routes: []routekit.Route{{
				Method: http.MethodGet,
				Name:   "profile",
				Bindings: []routekit.Binding{
					{Param: "session_id", Kind: routekit.KindCookie},
				},
				Params:  []string{"session_id"},
				Handler: okHandler,
			}},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, routekit.ErrFeatureNotEnabled)
	})
}

func TestAssembleRouteValidation(t *testing.T) {
	t.Parallel()

	t.Run("invalid method", func(t *testing.T) {
		t.Parallel()
		_, err := assembleOne(t, routekit.Controller{
			Name: "Users",
			Routes: []routekit.Route{{
				Method:  "FETCH",
				Name:    "bad",
				Handler: okHandler,
			}},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, routekit.ErrInvalidMethod)
	})

	t.Run("method case is normalized", func(t *testing.T) {
		t.Parallel()
		table, err := assembleOne(t, routekit.Controller{
			Name: "Users",
			Routes: []routekit.Route{{
				Method:  "get",
				Name:    "list",
				Handler: okHandler,
			}},
		})
		require.NoError(t, err)
		assert.Equal(t, http.MethodGet, table.Routes()[0].Method)
	})

	t.Run("missing handler", func(t *testing.T) {
		t.Parallel()
		_, err := assembleOne(t, routekit.Controller{
			Name:   "Users",
			Routes: []routekit.Route{{Method: http.MethodGet, Name: "nil"}},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, routekit.ErrMissingHandler)
	})

	t.Run("path parameter without Path binding", func(t *testing.T) {
		t.Parallel()
		_, err := assembleOne(t, routekit.Controller{
			Name: "Users",
			Routes: []routekit.Route{{
				Method:  http.MethodGet,
				Path:    "/{id}",
				Name:    "get_one",
				Handler: okHandler,
			}},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, routekit.ErrPathParamNotBound)
	})

	t.Run("path parameter bound to wrong kind", func(t *testing.T) {
		t.Parallel()
		_, err := assembleOne(t, routekit.Controller{
			Name: "Users",
			Routes: []routekit.Route{{
				Method: http.MethodGet,
				Path:   "/{id}",
				Name:   "get_one",
				Bindings: []routekit.Binding{
					{Param: "id", Kind: routekit.KindQuery},
				},
				Params:  []string{"id"},
				Handler: okHandler,
			}},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, routekit.ErrPathParamNotBound)
	})

	t.Run("Path binding absent from path", func(t *testing.T) {
		t.Parallel()
		_, err := assembleOne(t, routekit.Controller{
			Name: "Users",
			Routes: []routekit.Route{{
				Method: http.MethodGet,
				Path:   "/all",
				Name:   "list",
				Bindings: []routekit.Binding{
					{Param: "id", Kind: routekit.KindPath},
				},
				Params:  []string{"id"},
				Handler: okHandler,
			}},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, routekit.ErrPathBindingNotInPath)
	})

	t.Run("State binding without controller state", func(t *testing.T) {
		t.Parallel()
		_, err := assembleOne(t, routekit.Controller{
			Name: "Users",
			Routes: []routekit.Route{{
				Method: http.MethodGet,
				Name:   "stats",
				Bindings: []routekit.Binding{
					{Param: "db", Kind: routekit.KindState},
				},
				Params:  []string{"db"},
				Handler: okHandler,
			}},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, routekit.ErrMissingState)
	})

	t.Run("SessionParam without session store", func(t *testing.T) {
		t.Parallel()
		_, err := assembleOne(t, routekit.Controller{
			Name: "Users",
			Routes: []routekit.Route{{
				Method: http.MethodGet,
				Name:   "me",
				Bindings: []routekit.Binding{
					{Param: "user_id", Kind: routekit.KindSession},
				},
				Params:  []string{"user_id"},
				Handler: okHandler,
			}},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, routekit.ErrMissingSessionStore)
	})

	t.Run("error names controller and route", func(t *testing.T) {
		t.Parallel()
		_, err := assembleOne(t, routekit.Controller{
			Name: "UserController",
			Routes: []routekit.Route{{
				Method:  "BOGUS",
				Name:    "broken_route",
				Handler: okHandler,
			}},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "UserController")
		assert.Contains(t, err.Error(), "broken_route")
	})
}

func TestAssembleConflicts(t *testing.T) {
	t.Parallel()

	route := func(name, method, path string) routekit.Route {
		return routekit.Route{Method: method, Path: path, Name: name, Handler: okHandler}
	}

	t.Run("same method and path across controllers", func(t *testing.T) {
		t.Parallel()
		catalog := routekit.NewCatalog(routekit.Features{})
		_, err := routekit.New(catalog).Assemble(
			routekit.Controller{
				Name:     "A",
				BasePath: "/api",
				Routes:   []routekit.Route{route("list_a", http.MethodGet, "/users")},
			},
			routekit.Controller{
				Name:     "B",
				BasePath: "/api",
				Routes:   []routekit.Route{route("list_b", http.MethodGet, "/users")},
			},
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, routekit.ErrRouteConflict)

		var conflict *routekit.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, http.MethodGet, conflict.Method)
		assert.Equal(t, "/api/users", conflict.FullPath)
		assert.Equal(t, "A", conflict.First.Controller)
		assert.Equal(t, "list_a", conflict.First.Route)
		assert.Equal(t, "B", conflict.Second.Controller)
		assert.Equal(t, "list_b", conflict.Second.Route)
	})

	t.Run("same suffix under disjoint base paths", func(t *testing.T) {
		t.Parallel()
		catalog := routekit.NewCatalog(routekit.Features{})
		table, err := routekit.New(catalog).Assemble(
			routekit.Controller{Name: "A", BasePath: "/a", Routes: []routekit.Route{route("x_a", http.MethodGet, "/x")}},
			routekit.Controller{Name: "B", BasePath: "/b", Routes: []routekit.Route{route("x_b", http.MethodGet, "/x")}},
		)
		require.NoError(t, err)
		assert.Equal(t, 2, table.Len())
	})

	t.Run("same path different methods", func(t *testing.T) {
		t.Parallel()
		table, err := assembleOne(t, routekit.Controller{
			Name:     "Users",
			BasePath: "/users",
			Routes: []routekit.Route{
				route("list", http.MethodGet, "/"),
				route("create", http.MethodPost, "/"),
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, table.Len())
	})

	t.Run("conflict within one controller", func(t *testing.T) {
		t.Parallel()
		_, err := assembleOne(t, routekit.Controller{
			Name: "Users",
			Routes: []routekit.Route{
				route("one", http.MethodGet, "/dup"),
				route("two", http.MethodGet, "/dup"),
			},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, routekit.ErrRouteConflict)
	})

	t.Run("normalization makes slash variants collide", func(t *testing.T) {
		t.Parallel()
		_, err := assembleOne(t, routekit.Controller{
			Name:     "Users",
			BasePath: "/api/",
			Routes: []routekit.Route{
				route("one", http.MethodGet, "users"),
				route("two", http.MethodGet, "//users/"),
			},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, routekit.ErrRouteConflict)
	})

	t.Run("colon and brace parameter syntax collide", func(t *testing.T) {
		t.Parallel()
		binding := []routekit.Binding{{Param: "id", Kind: routekit.KindPath}}
		_, err := assembleOne(t, routekit.Controller{
			Name: "Users",
			Routes: []routekit.Route{
				{Method: http.MethodGet, Path: "/{id}", Name: "brace", Bindings: binding, Params: []string{"id"}, Handler: okHandler},
				{Method: http.MethodGet, Path: "/:id", Name: "colon", Bindings: binding, Params: []string{"id"}, Handler: okHandler},
			},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, routekit.ErrRouteConflict)
	})
}

func TestAssemblePathNormalization(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		basePath string
		path     string
		want     string
	}{
		{"plain join", "/api", "/users", "/api/users"},
		{"trailing slash on base", "/api/", "/users", "/api/users"},
		{"trailing slash on suffix", "/api", "/users/", "/api/users"},
		{"duplicate slashes", "//api//v1", "//users", "/api/v1/users"},
		{"missing leading slashes", "api", "users", "/api/users"},
		{"empty suffix defaults to base", "/api", "", "/api"},
		{"root suffix on empty base", "", "/", "/"},
		{"empty everything", "", "", "/"},
		{"colon parameter canonicalized", "/api", "/:id/items", "/api/{id}/items"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r := routekit.Route{
				Method:  http.MethodGet,
				Path:    tc.path,
				Name:    "r",
				Handler: okHandler,
			}
			if tc.name == "colon parameter canonicalized" {
				r.Bindings = []routekit.Binding{{Param: "id", Kind: routekit.KindPath}}
				r.Params = []string{"id"}
			}
			table, err := assembleOne(t, routekit.Controller{
				Name:     "C",
				BasePath: tc.basePath,
				Routes:   []routekit.Route{r},
			})
			require.NoError(t, err)
			assert.Equal(t, tc.want, table.Routes()[0].FullPath)

			rd, ok := table.Lookup(http.MethodGet, tc.want)
			require.True(t, ok)
			assert.Equal(t, "r", rd.Name)
		})
	}
}

func TestAssembleHeaderMerging(t *testing.T) {
	t.Parallel()

	t.Run("route overrides controller", func(t *testing.T) {
		t.Parallel()
		table, err := assembleOne(t, routekit.Controller{
			Name:        "Users",
			Headers:     []routekit.Header{{Name: "x-service", Value: "users"}, {Name: "cache-control", Value: "no-store"}},
			ContentType: "application/json",
			Routes: []routekit.Route{{
				Method:      http.MethodGet,
				Name:        "page",
				Headers:     []routekit.Header{{Name: "cache-control", Value: "max-age=60"}},
				ContentType: "text/html",
				Handler:     okHandler,
			}},
		})
		require.NoError(t, err)

		rd := table.Routes()[0]
		assert.Equal(t, map[string]string{
			"x-service":     "users",
			"cache-control": "max-age=60",
		}, rd.Headers)
		assert.Equal(t, "text/html", rd.ContentType)
	})

	t.Run("controller values fill gaps", func(t *testing.T) {
		t.Parallel()
		table, err := assembleOne(t, routekit.Controller{
			Name:        "Users",
			Headers:     []routekit.Header{{Name: "x-service", Value: "users"}},
			ContentType: "application/json",
			Routes:      []routekit.Route{{Method: http.MethodGet, Name: "list", Handler: okHandler}},
		})
		require.NoError(t, err)

		rd := table.Routes()[0]
		assert.Equal(t, map[string]string{"x-service": "users"}, rd.Headers)
		assert.Equal(t, "application/json", rd.ContentType)
	})

	t.Run("within one scope the last declaration wins", func(t *testing.T) {
		t.Parallel()
		table, err := assembleOne(t, routekit.Controller{
			Name: "Users",
			Routes: []routekit.Route{{
				Method: http.MethodGet,
				Name:   "list",
				Headers: []routekit.Header{
					{Name: "x-flag", Value: "first"},
					{Name: "x-flag", Value: "second"},
				},
				Handler: okHandler,
			}},
		})
		require.NoError(t, err)
		assert.Equal(t, "second", table.Routes()[0].Headers["x-flag"])
	})
}

func TestAssembleDeterminism(t *testing.T) {
	t.Parallel()

	controllers := []routekit.Controller{
		{
			Name:     "Users",
			BasePath: "/users",
			Headers:  []routekit.Header{{Name: "x-service", Value: "users"}},
			Routes: []routekit.Route{
				{Method: http.MethodGet, Name: "list", Handler: okHandler},
				{Method: http.MethodPost, Name: "create", Params: []string{"user"}, Handler: okHandler},
				{
					Method:   http.MethodGet,
					Path:     "/{id}",
					Name:     "get_one",
					Bindings: []routekit.Binding{{Param: "id", Kind: routekit.KindPath}},
					Params:   []string{"id"},
					Handler:  okHandler,
				},
			},
		},
		{
			Name:     "Health",
			BasePath: "/",
			Routes:   []routekit.Route{{Method: http.MethodGet, Path: "/healthz", Name: "check", Handler: okHandler}},
		},
	}

	catalog := routekit.NewCatalog(routekit.Features{})

	first, err := routekit.New(catalog).Assemble(controllers...)
	require.NoError(t, err)
	second, err := routekit.New(catalog).Assemble(controllers...)
	require.NoError(t, err)

	a, b := first.Routes(), second.Routes()
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Controller().ID, b[i].Controller().ID)
		assert.Equal(t, a[i].Method, b[i].Method)
		assert.Equal(t, a[i].FullPath, b[i].FullPath)
		assert.Equal(t, a[i].Name, b[i].Name)
		assert.Equal(t, a[i].Headers, b[i].Headers)
		assert.Equal(t, a[i].ContentType, b[i].ContentType)
		require.Equal(t, len(a[i].Bindings), len(b[i].Bindings))
		for j := range a[i].Bindings {
			assert.Equal(t, a[i].Bindings[j].Param, b[i].Bindings[j].Param)
			assert.Equal(t, a[i].Bindings[j].Kind, b[i].Bindings[j].Kind)
			assert.Equal(t, a[i].Bindings[j].Index, b[i].Bindings[j].Index)
		}
	}

	// Sorted by path, then method.
	assert.Equal(t, "/healthz", a[0].FullPath)
	assert.Equal(t, "/users", a[1].FullPath)
	assert.Equal(t, http.MethodGet, a[1].Method)
	assert.Equal(t, http.MethodPost, a[2].Method)
	assert.Equal(t, "/users/{id}", a[3].FullPath)
}

func TestAssembleTrace(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	catalog := routekit.NewCatalog(routekit.Features{})
	_, err := routekit.New(catalog, routekit.WithLogger(log)).Assemble(routekit.Controller{
		Name:     "Users",
		BasePath: "/users",
		Routes: []routekit.Route{{
			Method:   http.MethodGet,
			Path:     "/{id}",
			Name:     "get_one",
			Bindings: []routekit.Binding{{Param: "id", Kind: routekit.KindPath}},
			Params:   []string{"id"},
			Handler:  okHandler,
		}},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "route resolved")
	assert.Contains(t, out, "Users")
	assert.Contains(t, out, "get_one")
	assert.Contains(t, out, "/users/{id}")
	assert.Contains(t, out, "id=Path")
}
