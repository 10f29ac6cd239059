package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// API and transport errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrTransport          = fmt.Errorf("transport failure")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrMovieNotFound      = fmt.Errorf("movie not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")

	// Terminal errors
	ErrNotTerminal = fmt.Errorf("stdout is not a terminal")
)
