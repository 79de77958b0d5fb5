// handler_test.go provides shared test infrastructure for handler tests.
// Handlers are exercised against the fixture store, so no external service
// is required.
package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"leadpress/internal/crm"
	"leadpress/internal/forms"
	"leadpress/internal/rag"
	"leadpress/internal/store"
)

// captureSender records the last lead it was asked to deliver.
type captureSender struct {
	lead crm.Lead
	err  error
	ack  string
}

func (s *captureSender) CreateLead(_ context.Context, lead crm.Lead) (json.RawMessage, error) {
	s.lead = lead
	if s.err != nil {
		return nil, s.err
	}
	if s.ack == "" {
		s.ack = `{"data":[{"code":"SUCCESS","status":"success"}]}`
	}
	return json.RawMessage(s.ack), nil
}

// testAPI mounts the handler groups on the route tree the server uses.
func testAPI(t *testing.T, sender crm.LeadSender) http.Handler {
	t.Helper()

	fixtures := store.NewFixtureStore()
	content := NewContent(fixtures, nil)
	formHandlers := NewForms(forms.NewPipeline("owner-1"), sender)
	ragHandlers := NewRag(rag.NewService(fixtures, fixtures, "test-model", "test-provider"), nil)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/pages/{slug}", content.GetPage)
		r.Route("/services", func(r chi.Router) {
			r.Get("/", content.ListServices)
			r.Get("/{slug}", content.GetService)
		})
		r.Route("/ebooks", func(r chi.Router) {
			r.Get("/", content.ListEbooks)
			r.Get("/{slug}", content.GetEbook)
		})
		r.Route("/blog-posts", func(r chi.Router) {
			r.Get("/", content.ListBlogPosts)
			r.Get("/{slug}", content.GetBlogPost)
		})
		r.Route("/forms", func(r chi.Router) {
			r.Post("/contact", formHandlers.Contact)
			r.Post("/ebook", formHandlers.EbookDownload)
		})
		r.Route("/rag", func(r chi.Router) {
			r.Post("/preview", ragHandlers.Preview)
			r.Post("/publish", ragHandlers.Publish)
		})
	})
	return r
}

// doJSON issues a request with a JSON body and returns the recorder.
func doJSON(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// decodeBody unmarshals the recorded response body into out.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}
