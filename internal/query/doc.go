// Package query compiles expr-lang predicates over movie records.
//
// Expressions see one record at a time through lower-case variables named after its JSON fields
// (id, title, genre, year, rating, watched, notes) plus status, hasYear and hasRating. An unset year
// or rating reads as 0. A few case-insensitive string helpers are available: contains, startsWith,
// endsWith, lower and upper.
//
//	rating >= 8 && !watched
//	contains(genre, "horror") || year < 1980
package query
