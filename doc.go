// Package routekit resolves declarative controller definitions into a fully
// wired HTTP routing table.
//
// A controller is a named group of routes sharing a base path, response
// headers, and a middleware chain. Each route declares its HTTP method, path
// suffix, and a set of named extractor bindings that describe how every
// handler argument is produced from an incoming request. RouteKit validates
// the declarations, merges controller-level and route-level response
// metadata, and produces an immutable Table that can be mounted on a
// chi router or consumed by any other dispatch runtime.
//
// All validation happens at registration time: unknown extractor kinds,
// unbound parameters, duplicate binding names, multiple body-consuming
// bindings on one route, and (method, path) conflicts across controllers all
// fail assembly outright. Once assembled, the table is read-only and safe to
// share across concurrent request handlers without synchronization.
//
// Basic Usage:
//
//	catalog := routekit.NewCatalog(routekit.Features{})
//
//	users := routekit.Controller{
//		Name:     "UserController",
//		BasePath: "/users",
//		Headers:  []routekit.Header{{Name: "x-service", Value: "users"}},
//		Routes: []routekit.Route{
//			{
//				Method: http.MethodGet,
//				Path:   "/{id}",
//				Name:   "get_one",
//				Bindings: []routekit.Binding{
//					{Param: "id", Kind: routekit.KindPath},
//				},
//				Params: []string{"id"},
//				Handler: func(ctx context.Context, args []any) (any, error) {
//					id := args[0].(string)
//					return lookupUser(id)
//				},
//			},
//		},
//	}
//
//	table, err := routekit.New(catalog).Assemble(users)
//	if err != nil {
//		log.Fatal(err)
//	}
//	http.ListenAndServe(":8080", table.Handler())
//
// Extractor kinds that read request headers, cookies, or session values are
// feature-gated. They are only present in the catalog when explicitly
// enabled, matching the optional nature of those integrations:
//
//	catalog := routekit.NewCatalog(routekit.Features{Headers: true, Cookies: true})
//
// Binding declarations are matched against handler parameter names, not
// positions, so the declaration order never matters. The resolved bindings
// are re-sorted into the handler's parameter order so the dispatch adapter
// can pass arguments positionally.
package routekit
