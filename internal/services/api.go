// API service for making raw HTTP requests to the watchlist backend
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/desertthunder/mwl/internal/shared"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://127.0.0.1:5000"

// APIService provides methods for making raw HTTP requests to the backend.
//
// It never interprets status codes; that is left to [WatchlistService].
type APIService struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIService creates a new API service instance for the backend at baseURL.
func NewAPIService(baseURL string, client *http.Client) *APIService {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &APIService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
	}
}

// BaseURL returns the backend root the service sends requests to.
func (a *APIService) BaseURL() string {
	return a.baseURL
}

// APIResponse represents a raw API response with status and body.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
	JSONData   any
}

// OK reports whether the status code is 2xx.
func (r *APIResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Get performs a GET request to the specified path and returns the raw response.
func (a *APIService) Get(ctx context.Context, path string) (*APIResponse, error) {
	return a.Do(ctx, http.MethodGet, path, nil)
}

// Post performs a POST request with the given JSON data and returns the raw response.
func (a *APIService) Post(ctx context.Context, path string, data []byte) (*APIResponse, error) {
	return a.Do(ctx, http.MethodPost, path, data)
}

// Put performs a PUT request with the given JSON data and returns the raw response.
func (a *APIService) Put(ctx context.Context, path string, data []byte) (*APIResponse, error) {
	return a.Do(ctx, http.MethodPut, path, data)
}

// Delete performs a DELETE request and returns the raw response.
func (a *APIService) Delete(ctx context.Context, path string) (*APIResponse, error) {
	return a.Do(ctx, http.MethodDelete, path, nil)
}

// Do sends a single request. A nil body sends no Content-Type.
//
// Failures to reach the server or read its reply are returned as [*TransportError].
func (a *APIService) Do(ctx context.Context, method, path string, data []byte) (*APIResponse, error) {
	fullURL := a.baseURL + path

	var body io.Reader
	if data != nil {
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", shared.GenerateID())

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "request failed", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: "failed to read response", Err: err}
	}

	apiResp := &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       respBody,
	}

	var jsonData any
	if err := json.Unmarshal(respBody, &jsonData); err == nil {
		apiResp.IsJSON = true
		apiResp.JSONData = jsonData
	}

	return apiResp, nil
}
