// Package models defines the watchlist entities exchanged with the backend REST API.
//
// The package contains:
//   - [MovieRecord] : a stored movie as returned by GET /movie/{id} and GET /movies
//   - [MovieFields] : the JSON body sent by create (POST) and update (PUT)
//   - [Metrics] : aggregate counts from GET /app-metrics
//   - [Health] : backend status from GET /health
//
// Optional numeric fields use [null.Int] and [null.Float] so an unset year or rating is encoded as JSON null rather than 0.
// Ids are always supplied by the caller; nothing in this module generates them.
package models
