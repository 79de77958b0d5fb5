package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"leadpress/internal/cache"
	"leadpress/internal/models"
	"leadpress/internal/rag"
	"leadpress/internal/store"
)

// Rag groups the draft preview and publish endpoints.
type Rag struct {
	service      *rag.Service
	payloadCache *cache.PayloadCache
}

// NewRag creates the rag handler group. payloadCache may be nil; when
// present, a successful publish invalidates the affected page's payload.
func NewRag(service *rag.Service, payloadCache *cache.PayloadCache) *Rag {
	return &Rag{service: service, payloadCache: payloadCache}
}

type previewRequest struct {
	PageSlug string `json:"page_slug"`
	Prompt   string `json:"prompt"`
}

type publishRequest struct {
	PageSlug string                 `json:"page_slug"`
	Sections []models.SectionUpdate `json:"sections"`
}

// Preview returns the page's proposed sections (current content plus one
// AI-drafted section) without persisting anything.
func (h *Rag) Preview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.PageSlug == "" {
		writeError(w, http.StatusBadRequest, "page_slug is required")
		return
	}

	draft, err := h.service.GenerateDraft(r.Context(), models.PageSlug(req.PageSlug), req.Prompt)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Page not found")
		return
	}
	if err != nil {
		slog.Error("draft generation failed", "page", req.PageSlug, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, draft)
}

// Publish reconciles the submitted section updates into the page and
// answers 202 with the page slug.
func (h *Rag) Publish(w http.ResponseWriter, r *http.Request) {
	var req publishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.PageSlug == "" {
		writeError(w, http.StatusBadRequest, "page_slug is required")
		return
	}

	err := h.service.PublishDraft(r.Context(), models.PageSlug(req.PageSlug), req.Sections)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Page not found")
		return
	}
	if err != nil {
		slog.Error("draft publish failed", "page", req.PageSlug, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.payloadCache.InvalidatePage(r.Context(), req.PageSlug)
	writeJSON(w, http.StatusAccepted, map[string]string{"page": req.PageSlug})
}
