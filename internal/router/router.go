// Package router sets up the HTTP routes and middleware chain for the
// marketing content API. All routes live under /api, mirroring the paths
// the frontend consumes.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"leadpress/internal/handlers"
	"leadpress/internal/middleware"
)

// New creates the configured chi router. allowedOrigins drives CORS; an
// empty list allows every origin, matching a frontend-less local setup.
func New(content *handlers.Content, forms *handlers.Forms, rag *handlers.Rag, allowedOrigins []string) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	origins := allowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		// Health check — liveness only.
		r.Get("/health", healthHandler)

		// Content reads.
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

		// Lead capture.
		r.Route("/forms", func(r chi.Router) {
			r.Post("/contact", forms.Contact)
			r.Post("/ebook", forms.EbookDownload)
		})

		// Draft/publish workflow.
		r.Route("/rag", func(r chi.Router) {
			r.Post("/preview", rag.Preview)
			r.Post("/publish", rag.Publish)
		})
	})

	return r
}

// healthHandler returns a fixed JSON liveness response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
