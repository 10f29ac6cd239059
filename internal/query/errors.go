package query

import (
	"fmt"

	"github.com/desertthunder/mwl/internal/shared"
)

type (
	// CompilationError indicates an expression could not be compiled
	CompilationError struct {
		Expression string
		Reason     string
		Err        error
	}

	// EvaluationError indicates an expression failed at run time for one record
	EvaluationError struct {
		Expression string
		MovieID    string
		Err        error
	}
)

func (e *CompilationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("compilation error in '%s': %s: %v", e.Expression, e.Reason, e.Err)
	}
	return fmt.Sprintf("compilation error in '%s': %s", e.Expression, e.Reason)
}

// Unwrap exposes [shared.ErrInvalidInput] and the compiler error.
func (e *CompilationError) Unwrap() []error {
	if e.Err == nil {
		return []error{shared.ErrInvalidInput}
	}
	return []error{shared.ErrInvalidInput, e.Err}
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluation error for '%s' on movie '%s': %v", e.Expression, e.MovieID, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}
