// Package rag implements the draft/publish workflow for page sections.
// Generating a draft is read-only: it projects the page's current sections
// and appends one AI-drafted section built from the caller's prompt.
// Publishing hands the proposed updates to the section publisher, which
// reconciles them transactionally.
package rag

import (
	"context"
	"log/slog"

	"leadpress/internal/models"
	"leadpress/internal/store"
)

// DraftHeading is the heading of the section appended to every draft.
const DraftHeading = "AI Draft"

// Service orchestrates draft generation and publishing against the
// configured content provider and publisher.
type Service struct {
	provider  store.ContentProvider
	publisher store.SectionPublisher
	metadata  models.DraftMetadata
}

// NewService creates a Service. model and provider name the drafting
// configuration and are echoed in every draft's metadata.
func NewService(cp store.ContentProvider, sp store.SectionPublisher, model, provider string) *Service {
	return &Service{
		provider:  cp,
		publisher: sp,
		metadata:  models.DraftMetadata{Model: model, Provider: provider},
	}
}

// GenerateDraft reads the page's current sections and returns them with one
// appended AI section whose body is the prompt verbatim. An empty prompt
// yields an empty body, not an error. Nothing is persisted; re-reading the
// page afterwards yields its original sections.
func (s *Service) GenerateDraft(ctx context.Context, slug models.PageSlug, prompt string) (*models.Draft, error) {
	page, err := s.provider.GetPage(ctx, slug)
	if err != nil {
		return nil, err
	}

	sections := make([]models.SectionContent, 0, len(page.Sections)+1)
	for _, sec := range page.Sections {
		sections = append(sections, models.SectionContent{Heading: sec.Heading, Body: sec.Body})
	}
	sections = append(sections, models.SectionContent{Heading: DraftHeading, Body: prompt})

	slog.Info("generated draft", "page", page.Slug, "sections", len(sections))
	return &models.Draft{
		Page:     page.Slug,
		Sections: sections,
		Metadata: s.metadata,
	}, nil
}

// PublishDraft reconciles the section updates into the page. The publisher
// applies the batch atomically; any failure leaves the page untouched.
func (s *Service) PublishDraft(ctx context.Context, slug models.PageSlug, updates []models.SectionUpdate) error {
	if err := s.publisher.PublishSections(ctx, slug, updates); err != nil {
		return err
	}
	slog.Info("published draft", "page", slug, "updates", len(updates))
	return nil
}
