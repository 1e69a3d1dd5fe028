// Package binder provides the runtime extraction functions behind routekit's
// extractor kinds: decoding request bodies into typed values, reading path,
// query, header, and cookie parameters, and folding multi-value sources into
// structs via reflection.
//
// Body decoders validate the request content type before decoding and wrap
// failures in the package sentinel errors, so callers can classify problems
// with errors.Is:
//
//	var req CreateUserRequest
//	if err := binder.JSON()(r, &req); err != nil {
//		if errors.Is(err, binder.ErrUnsupportedMediaType) {
//			// respond 415
//		}
//	}
//
// Struct decoding supports `query:"name"` and `form:"name"` tags; a tag of
// "-" skips the field, and untagged fields bind by lowercased field name.
package binder
