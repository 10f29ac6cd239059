package tasks

import (
	"fmt"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	FetchHealth Phase = iota
	FetchMovies
	FetchIDs
	FetchMetrics
	ImportMovie
	ImportFailed
)

func (p Phase) String() string {
	switch p {
	case FetchHealth:
		return "fetch_health"
	case FetchMovies:
		return "fetch_movies"
	case FetchIDs:
		return "fetch_ids"
	case FetchMetrics:
		return "fetch_metrics"
	case ImportMovie:
		return "import_movie"
	case ImportFailed:
		return "import_failed"
	default:
		return ""
	}
}

func endpointUpdate(op endpointOperation, step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   op.phase,
		Step:    step,
		Total:   total,
		Message: op.message,
	}
}

func importedUpdate(step, total int, res ImportRowResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ImportMovie,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Imported %s", res.ID),
		Data:    res,
	}
}

func importFailedUpdate(step, total int, res ImportRowResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ImportFailed,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Failed to import %s (line %d): %v", res.ID, res.Line, res.Error),
		Data:    res,
	}
}
