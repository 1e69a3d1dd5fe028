// Package logger builds configured *slog.Logger instances with a small
// option surface: level, output format (text or json), destination, and
// static attributes. RouteKit itself only consumes a *slog.Logger, so any
// other construction path works equally well.
package logger
