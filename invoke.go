package routekit

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dmitrymomot/routekit/pkg/binder"
)

// Binder funcs are stateless; build them once.
var (
	bindJSON  = binder.JSON()
	bindForm  = binder.Form()
	bindQuery = binder.Query()
)

// invoker builds the dispatch adapter for one route: run every binding's
// extractor in parameter order, call the handler positionally, then apply
// the merged response metadata and render the result.
func (t *Table) invoker(rd *RouteDescriptor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		args := make([]any, len(rd.Bindings))
		for i, b := range rd.Bindings {
			v, err := t.extract(rd, b, r)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			args[i] = v
		}

		result, err := rd.Handler(r.Context(), args)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		writeResult(w, r, rd, result)
	}
}

// extract produces one handler argument from the request according to the
// binding's extractor kind.
func (t *Table) extract(rd *RouteDescriptor, b ParameterBinding, r *http.Request) (any, error) {
	switch b.Kind.Name {
	case KindJSON:
		if b.New != nil {
			v := b.New()
			if err := bindJSON(r, v); err != nil {
				return nil, err
			}
			return v, nil
		}
		var m map[string]any
		if err := bindJSON(r, &m); err != nil {
			return nil, err
		}
		return m, nil

	case KindForm:
		if b.New != nil {
			v := b.New()
			if err := bindForm(r, v); err != nil {
				return nil, err
			}
			return v, nil
		}
		values, err := binder.FormValues(r)
		if err != nil {
			return nil, err
		}
		return map[string][]string(values), nil

	case KindQuery:
		if b.New != nil {
			v := b.New()
			if err := bindQuery(r, v); err != nil {
				return nil, err
			}
			return v, nil
		}
		return map[string][]string(r.URL.Query()), nil

	case KindBytes:
		return binder.Bytes(r)

	case KindText, KindHTML, KindXML, KindJavaScript:
		return binder.Text(r)

	case KindPath:
		return binder.PathValue(r, b.Param), nil

	case KindState:
		return rd.owner.State, nil

	case KindHeader:
		return binder.HeaderValue(r, b.Param), nil

	case KindCookie:
		return binder.CookieValue(r, b.Param), nil

	case KindSession:
		v, _ := t.sessions.Get(r, b.Param)
		return v, nil

	default:
		// Unreachable: the catalog rejects unknown kinds at assembly.
		return nil, fmt.Errorf("%w: %q", ErrUnknownExtractor, b.Kind.Name)
	}
}

// writeResult applies the route's merged headers and content type, then
// renders the handler's return value: Response values render themselves,
// strings and byte slices write as-is, anything else encodes as JSON, and
// nil yields 204 No Content.
func writeResult(w http.ResponseWriter, r *http.Request, rd *RouteDescriptor, result any) {
	header := w.Header()
	for name, value := range rd.Headers {
		header.Set(name, value)
	}
	if rd.ContentType != "" {
		header.Set("Content-Type", rd.ContentType)
	}

	switch v := result.(type) {
	case nil:
		w.WriteHeader(http.StatusNoContent)

	case Response:
		if err := v.Render(w, r); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}

	case string:
		if header.Get("Content-Type") == "" {
			header.Set("Content-Type", "text/plain; charset=utf-8")
		}
		_, _ = w.Write([]byte(v))

	case []byte:
		if header.Get("Content-Type") == "" {
			header.Set("Content-Type", "application/octet-stream")
		}
		_, _ = w.Write(v)

	default:
		if header.Get("Content-Type") == "" {
			header.Set("Content-Type", "application/json")
		}
		if err := json.NewEncoder(w).Encode(v); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}
