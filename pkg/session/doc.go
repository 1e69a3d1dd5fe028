// Package session provides a minimal in-memory session store implementing
// routekit's SessionStore interface. Sessions are identified by a token
// carried in a request cookie; values are looked up per key for SessionParam
// bindings.
//
// The store is intended for development and tests. Production deployments
// typically implement routekit.SessionStore over their own session backend.
package session
