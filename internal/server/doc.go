// Package server provides the HTTP side of the launcher: routing, middleware, the static file handler and the
// blocking server lifecycle.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally. Routes are registered with method patterns
// ("GET /"), so the mux answers 405 for other methods and a GET route also serves HEAD.
//
// # Static Files
//
// [StaticHandler] wraps [http.FileServer] for a root directory. Before delegating it sets Content-Type from a
// [MIMETable], which layers the launcher's overrides (.js, .css, .svg, .json, .lrc) over the platform's default
// extension table and falls back to content sniffing for unknown extensions. Everything else (directory listings,
// range requests, 404s, index.html redirects) is the file server's default behavior.
//
// # Middleware
//
// [RequestID] tags each request with a UUID, [Logging] writes one log line per request and [Journal] hands each
// request to a [Recorder] (the launcher's in-memory request journal).
//
// # Lifecycle
//
// [Server] splits startup into [Server.Listen], which binds the socket so startup failures surface before the browser
// is opened, and [Server.Serve], which blocks until its context is cancelled and then shuts down gracefully.
package server
