// Package render turns movie records into display cards.
//
// A [Renderer] rebuilds the whole card list from scratch on every call; nothing is diffed or patched.
// [Apply] toggles card visibility for a [Filter] without touching anything else, and [WriteHTML]
// writes the cards as markup for export.
package render
