// Package router tests verify the HTTP routing configuration, middleware
// chain, and the health endpoint.
package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"leadpress/internal/crm"
	"leadpress/internal/forms"
	"leadpress/internal/handlers"
	"leadpress/internal/rag"
	"leadpress/internal/store"
)

// testRouter wires the full route tree over the fixture store and mock CRM.
func testRouter(t *testing.T, allowedOrigins []string) http.Handler {
	t.Helper()

	fixtures := store.NewFixtureStore()
	content := handlers.NewContent(fixtures, nil)
	formHandlers := handlers.NewForms(forms.NewPipeline(""), crm.MockSender{})
	ragHandlers := handlers.NewRag(rag.NewService(fixtures, fixtures, "m", "p"), nil)
	return New(content, formHandlers, ragHandlers, allowedOrigins)
}

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/health", nil)

	healthHandler(w, r)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}

	ct := resp.Header.Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("content-type: got %q, want %q", ct, "application/json")
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field: got %q, want %q", body["status"], "ok")
	}
}

func TestRoutes(t *testing.T) {
	router := testRouter(t, nil)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{"GET", "/api/health", http.StatusOK},
		{"GET", "/api/pages/home", http.StatusOK},
		{"GET", "/api/pages/unknown", http.StatusNotFound},
		{"GET", "/api/services/", http.StatusOK},
		{"GET", "/api/services/revops-activation", http.StatusOK},
		{"GET", "/api/ebooks/", http.StatusOK},
		{"GET", "/api/blog-posts/", http.StatusOK},
		{"GET", "/api/blog-posts/ship-landing-pages", http.StatusOK},
		// Form and rag endpoints are POST-only.
		{"GET", "/api/forms/contact", http.StatusMethodNotAllowed},
		{"GET", "/api/rag/preview", http.StatusMethodNotAllowed},
		{"GET", "/api/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(tt.method, tt.path, nil)
			router.ServeHTTP(w, r)
			if w.Code != tt.want {
				t.Errorf("got %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	router := testRouter(t, []string{"https://example.com"})

	w := httptest.NewRecorder()
	r := httptest.NewRequest("OPTIONS", "/api/forms/contact", nil)
	r.Header.Set("Origin", "https://example.com")
	r.Header.Set("Access-Control-Request-Method", "POST")
	router.ServeHTTP(w, r)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://example.com" {
		t.Errorf("allow-origin: got %q", got)
	}
}

func TestCORSDisallowedOrigin(t *testing.T) {
	router := testRouter(t, []string{"https://example.com"})

	w := httptest.NewRecorder()
	r := httptest.NewRequest("OPTIONS", "/api/forms/contact", nil)
	r.Header.Set("Origin", "https://evil.example")
	r.Header.Set("Access-Control-Request-Method", "POST")
	router.ServeHTTP(w, r)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("allow-origin leaked for disallowed origin: %q", got)
	}
}
