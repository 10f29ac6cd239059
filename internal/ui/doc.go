// Package ui implements an interactive terminal interface for the watchlist using bubbletea's Elm architecture.
//
// The screen has three panes that take turns receiving keys:
//  1. [ListPane] : Browse cards, switch filters, start an edit or a delete, copy an id
//  2. [FormPane] : Fill in the movie form and submit it
//  3. [ConfirmPane] : Confirm or decline a pending delete
//
// The [Form] is either in Add mode or in Edit mode bound to one id ([FormMode]). Submitting in Add
// mode creates the movie under the id field; submitting in Edit mode always updates the bound id.
// A successful submit clears the form and returns it to Add mode; a failed one leaves it as it was.
//
// All network calls run as commands off the update loop and report back through the [Msg] union.
// Nothing guards against overlapping calls, so the last reply to arrive decides what is shown.
//
// Results are reported on a single [Notifier] line that hides itself after a delay. Only the
// newest message's timer can hide it.
package ui
