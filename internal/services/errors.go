package services

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/desertthunder/mwl/internal/shared"
	"github.com/tidwall/gjson"
)

// TransportError is a failure to complete an exchange: the network call, reading the body, or decoding it.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	if e == nil {
		return "transport failure"
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap exposes both [shared.ErrTransport] and the cause to [errors.Is].
func (e *TransportError) Unwrap() []error {
	return []error{shared.ErrTransport, e.Err}
}

// ApplicationError is a non-2xx reply, optionally carrying the server's message.
type ApplicationError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *ApplicationError) Error() string {
	if e == nil {
		return "application error"
	}
	if e.Message == "" {
		return fmt.Sprintf("%s %s: HTTP %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// Unwrap exposes [shared.ErrAPIRequest], plus [shared.ErrMovieNotFound] for 404s.
func (e *ApplicationError) Unwrap() []error {
	if e.StatusCode == http.StatusNotFound {
		return []error{shared.ErrAPIRequest, shared.ErrMovieNotFound}
	}
	return []error{shared.ErrAPIRequest}
}

// newApplicationError builds an [ApplicationError] from a non-2xx response.
func newApplicationError(method, path string, resp *APIResponse) *ApplicationError {
	return &ApplicationError{
		Method:     method,
		Path:       path,
		StatusCode: resp.StatusCode,
		Message:    ErrorMessage(resp.Body),
	}
}

// ErrorMessage extracts a server-supplied message from a JSON error body.
//
// The "error" string is preferred; a validation list under "errors" is joined with "; ".
// Returns "" when neither is present or the body is not JSON.
func ErrorMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}

	if msg := gjson.GetBytes(body, "error"); msg.Type == gjson.String && msg.String() != "" {
		return msg.String()
	}

	list := gjson.GetBytes(body, "errors")
	if !list.IsArray() {
		return ""
	}

	var parts []string
	for _, item := range list.Array() {
		if s := strings.TrimSpace(item.String()); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "; ")
}
