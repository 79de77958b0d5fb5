package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"leadpress/internal/cache"
	"leadpress/internal/models"
	"leadpress/internal/store"
)

// Content groups the read-only content endpoints. Page payloads are served
// through the payload cache when one is configured; catalog reads go
// straight to the provider.
type Content struct {
	provider     store.ContentProvider
	payloadCache *cache.PayloadCache
}

// NewContent creates the content handler group. payloadCache may be nil
// when no cache is configured.
func NewContent(provider store.ContentProvider, payloadCache *cache.PayloadCache) *Content {
	return &Content{provider: provider, payloadCache: payloadCache}
}

// GetPage serves a page with its hero, SEO metadata, markup blob, and
// ordered sections.
func (h *Content) GetPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")

	if body, ok := h.payloadCache.GetPage(ctx, slug); ok {
		writeRawJSON(w, http.StatusOK, body)
		return
	}

	page, err := h.provider.GetPage(ctx, models.PageSlug(slug))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Page not found")
		return
	}
	if err != nil {
		slog.Error("get page failed", "slug", slug, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if page.Sections == nil {
		page.Sections = []models.PageSection{}
	}

	body, err := json.Marshal(page)
	if err != nil {
		slog.Error("marshal page failed", "slug", slug, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	h.payloadCache.SetPage(ctx, slug, body)
	writeRawJSON(w, http.StatusOK, body)
}

// ListServices serves the service catalog.
func (h *Content) ListServices(w http.ResponseWriter, r *http.Request) {
	items, err := h.provider.ListServices(r.Context())
	if err != nil {
		slog.Error("list services failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if items == nil {
		items = []models.Service{}
	}
	writeJSON(w, http.StatusOK, items)
}

// GetService serves one service by slug.
func (h *Content) GetService(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	svc, err := h.provider.GetService(r.Context(), slug)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Service not found")
		return
	}
	if err != nil {
		slog.Error("get service failed", "slug", slug, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, svc)
}

// ListEbooks serves the ebook catalog.
func (h *Content) ListEbooks(w http.ResponseWriter, r *http.Request) {
	items, err := h.provider.ListEbooks(r.Context())
	if err != nil {
		slog.Error("list ebooks failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if items == nil {
		items = []models.Ebook{}
	}
	writeJSON(w, http.StatusOK, items)
}

// GetEbook serves one ebook by slug.
func (h *Content) GetEbook(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	ebook, err := h.provider.GetEbook(r.Context(), slug)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Ebook not found")
		return
	}
	if err != nil {
		slog.Error("get ebook failed", "slug", slug, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, ebook)
}

// ListBlogPosts serves published posts, newest-published-first.
func (h *Content) ListBlogPosts(w http.ResponseWriter, r *http.Request) {
	items, err := h.provider.ListBlogPosts(r.Context())
	if err != nil {
		slog.Error("list blog posts failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if items == nil {
		items = []models.BlogPost{}
	}
	writeJSON(w, http.StatusOK, items)
}

// GetBlogPost serves one published post by slug.
func (h *Content) GetBlogPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	post, err := h.provider.GetBlogPost(r.Context(), slug)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Blog post not found")
		return
	}
	if err != nil {
		slog.Error("get blog post failed", "slug", slug, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, post)
}
