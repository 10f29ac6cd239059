package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/mwl/internal/shared"
	tu "github.com/desertthunder/mwl/internal/testing"
)

func TestAPIService(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		t.Run("With Custom BaseURL and Client", func(t *testing.T) {
			customClient := &http.Client{}
			srv := NewAPIService("http://example.com/", customClient)

			if srv.baseURL != "http://example.com" {
				t.Errorf("expected trailing slash to be trimmed, got %s", srv.baseURL)
			}
			if srv.httpClient != customClient {
				t.Error("expected custom client to be used")
			}
		})

		t.Run("With Empty BaseURL", func(t *testing.T) {
			srv := NewAPIService("", nil)

			if srv.BaseURL() != DefaultBaseURL {
				t.Errorf("expected default baseURL %s, got %s", DefaultBaseURL, srv.BaseURL())
			}
		})

		t.Run("With Nil Client", func(t *testing.T) {
			srv := NewAPIService("http://example.com", nil)

			if srv.httpClient != http.DefaultClient {
				t.Error("expected http.DefaultClient to be used")
			}
		})
	})

	t.Run("Get", func(t *testing.T) {
		t.Run("Successful Request With JSON Response", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet {
					t.Errorf("expected GET method, got %s", r.Method)
				}
				if r.URL.Path != "/movies" {
					t.Errorf("expected path '/movies', got %s", r.URL.Path)
				}
				if r.Header.Get("X-Request-ID") == "" {
					t.Error("expected X-Request-ID header")
				}
				if r.Header.Get("Content-Type") != "" {
					t.Errorf("expected no Content-Type on GET, got %s", r.Header.Get("Content-Type"))
				}

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				json.NewEncoder(w).Encode([]map[string]string{{"id": "m1"}})
			}))
			defer server.Close()

			srv := NewAPIService(server.URL, nil)
			resp, err := srv.Get(context.Background(), "/movies")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !resp.OK() {
				t.Errorf("expected 2xx, got %d", resp.StatusCode)
			}
			if !resp.IsJSON {
				t.Error("expected response to be JSON")
			}
		})

		t.Run("Successful Request With Non-JSON Response", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/plain")
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("plain text response"))
			}))
			defer server.Close()

			srv := NewAPIService(server.URL, nil)
			resp, err := srv.Get(context.Background(), "/test")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if resp.IsJSON {
				t.Error("expected response to not be JSON")
			}
			if string(resp.Body) != "plain text response" {
				t.Errorf("expected body 'plain text response', got %s", string(resp.Body))
			}
		})

		t.Run("Non-2xx Is Not An Error", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			}))
			defer server.Close()

			srv := NewAPIService(server.URL, nil)
			resp, err := srv.Get(context.Background(), "/missing")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if resp.OK() {
				t.Error("expected OK() to be false for 404")
			}
		})

		t.Run("Failed Request Creation", func(t *testing.T) {
			srv := NewAPIService("http://example.com", nil)
			_, err := srv.Get(context.Background(), "/test\x00invalid")

			if err == nil {
				t.Fatal("expected error for invalid URL")
			}
			if !strings.Contains(err.Error(), "failed to create request") {
				t.Errorf("expected 'failed to create request' error, got %v", err)
			}
		})

		t.Run("Failed HTTP Request", func(t *testing.T) {
			client := &http.Client{
				Transport: tu.NewMockRoundTripper(nil, errors.New("connection failed")),
			}

			srv := NewAPIService("http://example.com", client)
			_, err := srv.Get(context.Background(), "/test")

			if !errors.Is(err, shared.ErrTransport) {
				t.Errorf("expected transport error, got %v", err)
			}
			var te *TransportError
			if !errors.As(err, &te) || te.Op != "request failed" {
				t.Errorf("expected 'request failed' transport error, got %v", err)
			}
		})

		t.Run("Failed Response Body Read", func(t *testing.T) {
			client := &http.Client{
				Transport: tu.NewMockRoundTripper(&http.Response{
					StatusCode: http.StatusOK,
					Body:       &tu.FCloser{},
					Header:     http.Header{},
				}, nil),
			}

			srv := NewAPIService("http://example.com", client)
			_, err := srv.Get(context.Background(), "/test")

			if !errors.Is(err, shared.ErrTransport) {
				t.Errorf("expected transport error, got %v", err)
			}
			if err == nil || !strings.Contains(err.Error(), "failed to read response") {
				t.Errorf("expected 'failed to read response' error, got %v", err)
			}
		})

		t.Run("With Canceled Context", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			srv := NewAPIService(server.URL, nil)
			_, err := srv.Get(ctx, "/test")

			if !errors.Is(err, context.Canceled) {
				t.Errorf("expected context.Canceled, got %v", err)
			}
		})
	})

	t.Run("Post", func(t *testing.T) {
		t.Run("Sends JSON Body", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("expected POST method, got %s", r.Method)
				}
				if r.Header.Get("Content-Type") != "application/json" {
					t.Errorf("expected Content-Type 'application/json', got %s", r.Header.Get("Content-Type"))
				}

				body, _ := io.ReadAll(r.Body)
				var data map[string]string
				if err := json.Unmarshal(body, &data); err != nil {
					t.Errorf("failed to unmarshal request body: %v", err)
				}
				if data["title"] != "Heat" {
					t.Errorf("expected title Heat, got %v", data)
				}

				w.WriteHeader(http.StatusCreated)
				json.NewEncoder(w).Encode(map[string]string{"id": "heat"})
			}))
			defer server.Close()

			srv := NewAPIService(server.URL, nil)
			requestData, _ := json.Marshal(map[string]string{"title": "Heat"})
			resp, err := srv.Post(context.Background(), "/movie/heat", requestData)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if resp.StatusCode != http.StatusCreated {
				t.Errorf("expected status 201, got %d", resp.StatusCode)
			}
		})

		t.Run("Empty Request Body", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				body, _ := io.ReadAll(r.Body)
				if len(body) != 0 {
					t.Errorf("expected empty body, got %d bytes", len(body))
				}
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			srv := NewAPIService(server.URL, nil)
			if _, err := srv.Post(context.Background(), "/test", []byte{}); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	})

	t.Run("Put And Delete", func(t *testing.T) {
		var methods []string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			methods = append(methods, r.Method+" "+r.URL.Path)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		srv := NewAPIService(server.URL, nil)
		if _, err := srv.Put(context.Background(), "/movie/m1", []byte(`{}`)); err != nil {
			t.Fatalf("put failed: %v", err)
		}
		if _, err := srv.Delete(context.Background(), "/movie/m1"); err != nil {
			t.Fatalf("delete failed: %v", err)
		}

		want := []string{"PUT /movie/m1", "DELETE /movie/m1"}
		if strings.Join(methods, ",") != strings.Join(want, ",") {
			t.Errorf("expected %v, got %v", want, methods)
		}
	})

	t.Run("Response Headers Are Preserved", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Custom-Header", "test-value")
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		srv := NewAPIService(server.URL, nil)
		resp, err := srv.Get(context.Background(), "/test")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if resp.Headers.Get("X-Custom-Header") != "test-value" {
			t.Errorf("expected custom header 'test-value', got %s", resp.Headers.Get("X-Custom-Header"))
		}
	})
}
