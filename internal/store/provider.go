// Package store provides access to the marketing content: a Postgres-backed
// implementation for normal operation and a static fixture implementation for
// environments without a database. Callers depend on the ContentProvider and
// SectionPublisher interfaces; the implementation is chosen once at startup.
package store

import (
	"context"
	"errors"

	"leadpress/internal/models"
)

// ErrNotFound is returned when a requested page, service, ebook, or blog
// post does not exist. Callers test for it with errors.Is.
var ErrNotFound = errors.New("not found")

// ContentProvider serves read-only marketing content.
type ContentProvider interface {
	// GetPage returns a page with its hero and sections in display order.
	GetPage(ctx context.Context, slug models.PageSlug) (*models.Page, error)

	ListServices(ctx context.Context) ([]models.Service, error)
	GetService(ctx context.Context, slug string) (*models.Service, error)

	ListEbooks(ctx context.Context) ([]models.Ebook, error)
	GetEbook(ctx context.Context, slug string) (*models.Ebook, error)

	// ListBlogPosts returns published posts only, newest-published-first.
	ListBlogPosts(ctx context.Context) ([]models.BlogPost, error)
	// GetBlogPost returns a published post; unpublished posts are invisible.
	GetBlogPost(ctx context.Context, slug string) (*models.BlogPost, error)
}

// SectionPublisher reconciles a batch of section updates into a page.
// The whole batch is applied atomically or not at all.
type SectionPublisher interface {
	PublishSections(ctx context.Context, slug models.PageSlug, updates []models.SectionUpdate) error
}
