// Package server provides HTTP routing, middleware and the read-only preview site served by `mwl preview`.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] runs in the order it was added: the first one added sees the request first.
//
// The [BasicRouter] implementation uses [http.ServeMux] method patterns, so a request with the wrong method
// gets 405 from the mux itself.
//
// # Preview
//
// [PreviewHandler] renders the watchlist with the same card markup as `mwl export --format html` and lets
// the filter be picked with ?filter=all|watched|unwatched. It never writes to the backend.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
