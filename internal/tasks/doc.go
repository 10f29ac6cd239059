// Package tasks runs multi-request watchlist operations with progress reporting.
//
// # Operations
//
// [Engine] provides two operations over a [services.Watchlist]:
//
//  1. [Engine.Dump] : Snapshot everything the backend serves
//     - Fetches health, movies, ids and metrics concurrently
//     - Records a failed endpoint in the result instead of aborting
//     - Fails only when every endpoint fails
//
//  2. [Engine.Import] : Create movies from parsed CSV rows
//     - Sends one create per row, in file order
//     - Paces requests with a token-bucket limiter
//     - Reports a per-row outcome; one failed row never stops the rest
//
// # Progress Reporting
//
// Both operations accept an optional channel of [ProgressUpdate]. Sends use select with default
// so a slow reader never blocks the operation.
package tasks
