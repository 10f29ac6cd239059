// Package services is the command layer of the watchlist client.
//
// # Raw transport
//
// [APIService] sends a single HTTP request to the backend and returns the status, headers and body untouched.
// Every request carries an X-Request-ID header. It backs the `mwl api` debugging commands directly.
//
// # Typed client
//
// [WatchlistService] implements the [Watchlist] interface on top of [APIService]:
//
//	POST   /movie/{id}   CreateMovie
//	GET    /movie/{id}   FetchMovie
//	PUT    /movie/{id}   UpdateMovie
//	DELETE /movie/{id}   DeleteMovie
//	GET    /movies       FetchAllMovies
//	GET    /movie        FetchMovieIDs
//	GET    /app-metrics  FetchMetrics
//	GET    /health       Health
//
// Each call is fire-once: no retries, no in-flight deduplication, no caching.
//
// # Error Handling
//
// Two error kinds are returned:
//   - [*TransportError] : the request could not be completed or its body could not be read or decoded; matches [shared.ErrTransport]
//   - [*ApplicationError] : a non-2xx reply; matches [shared.ErrAPIRequest], and [shared.ErrMovieNotFound] for 404
//
// [ErrorMessage] pulls the server's "error" field (or its "errors" validation list) out of a reply body with gjson.
package services
