package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"leadpress/internal/models"
)

// Defaults applied when a publish update creates a new section without
// supplying the field.
const (
	DefaultSectionHeading = "New Section"
	DefaultSectionBody    = ""
)

// ContentStore is the Postgres-backed ContentProvider and SectionPublisher.
type ContentStore struct {
	db *sql.DB
}

// NewContentStore creates a ContentStore with the given database connection.
func NewContentStore(db *sql.DB) *ContentStore {
	return &ContentStore{db: db}
}

// GetPage retrieves a page by slug, including its hero (if any) and its
// sections in ascending display order.
func (s *ContentStore) GetPage(ctx context.Context, slug models.PageSlug) (*models.Page, error) {
	p := &models.Page{}
	var heroID *uuid.UUID
	err := s.db.QueryRowContext(ctx, `
		SELECT id, slug, hero_id, seo_title, seo_description, schema_markup,
		       created_at, updated_at
		FROM pages WHERE slug = $1
	`, slug).Scan(
		&p.ID, &p.Slug, &heroID, &p.SEOTitle, &p.SEODescription, &p.SchemaMarkup,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("page %q: %w", slug, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find page by slug: %w", err)
	}

	if heroID != nil {
		hero, err := s.getHero(ctx, *heroID)
		if err != nil {
			return nil, err
		}
		p.Hero = hero
	}

	sections, err := s.listSections(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Sections = sections
	return p, nil
}

func (s *ContentStore) getHero(ctx context.Context, id uuid.UUID) (*models.Hero, error) {
	h := &models.Hero{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, subtitle, cta_label, cta_url, created_at, updated_at
		FROM heroes WHERE id = $1
	`, id).Scan(&h.ID, &h.Title, &h.Subtitle, &h.CTALabel, &h.CTAURL, &h.CreatedAt, &h.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		// Hero rows have a standalone lifecycle; a dangling reference is
		// treated the same as no hero.
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find hero: %w", err)
	}
	return h, nil
}

func (s *ContentStore) listSections(ctx context.Context, pageID uuid.UUID) ([]models.PageSection, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, page_id, heading, body, position, created_at, updated_at
		FROM page_sections
		WHERE page_id = $1
		ORDER BY position
	`, pageID)
	if err != nil {
		return nil, fmt.Errorf("list page sections: %w", err)
	}
	defer rows.Close()

	var sections []models.PageSection
	for rows.Next() {
		var sec models.PageSection
		if err := rows.Scan(
			&sec.ID, &sec.PageID, &sec.Heading, &sec.Body, &sec.Order,
			&sec.CreatedAt, &sec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan page section: %w", err)
		}
		sections = append(sections, sec)
	}
	return sections, rows.Err()
}

// ListServices returns all services ordered by name.
func (s *ContentStore) ListServices(ctx context.Context) ([]models.Service, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, slug, description, long_description, created_at, updated_at
		FROM services
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	var items []models.Service
	for rows.Next() {
		var svc models.Service
		if err := rows.Scan(
			&svc.ID, &svc.Name, &svc.Slug, &svc.Description, &svc.LongDescription,
			&svc.CreatedAt, &svc.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		items = append(items, svc)
	}
	return items, rows.Err()
}

// GetService retrieves a service by its slug.
func (s *ContentStore) GetService(ctx context.Context, slug string) (*models.Service, error) {
	svc := &models.Service{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, slug, description, long_description, created_at, updated_at
		FROM services WHERE slug = $1
	`, slug).Scan(
		&svc.ID, &svc.Name, &svc.Slug, &svc.Description, &svc.LongDescription,
		&svc.CreatedAt, &svc.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("service %q: %w", slug, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find service by slug: %w", err)
	}
	return svc, nil
}

// ListEbooks returns all ebooks ordered by title.
func (s *ContentStore) ListEbooks(ctx context.Context) ([]models.Ebook, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, slug, summary, file_url, created_at, updated_at
		FROM ebooks
		ORDER BY title
	`)
	if err != nil {
		return nil, fmt.Errorf("list ebooks: %w", err)
	}
	defer rows.Close()

	var items []models.Ebook
	for rows.Next() {
		var e models.Ebook
		if err := rows.Scan(&e.ID, &e.Title, &e.Slug, &e.Summary, &e.FileURL, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan ebook: %w", err)
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

// GetEbook retrieves an ebook by its slug.
func (s *ContentStore) GetEbook(ctx context.Context, slug string) (*models.Ebook, error) {
	e := &models.Ebook{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, slug, summary, file_url, created_at, updated_at
		FROM ebooks WHERE slug = $1
	`, slug).Scan(&e.ID, &e.Title, &e.Slug, &e.Summary, &e.FileURL, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("ebook %q: %w", slug, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find ebook by slug: %w", err)
	}
	return e, nil
}

// ListBlogPosts returns published posts only, newest-published-first.
func (s *ContentStore) ListBlogPosts(ctx context.Context) ([]models.BlogPost, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, slug, excerpt, content, published_at, is_published,
		       created_at, updated_at
		FROM blog_posts
		WHERE is_published = TRUE
		ORDER BY published_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list blog posts: %w", err)
	}
	defer rows.Close()

	var items []models.BlogPost
	for rows.Next() {
		var post models.BlogPost
		if err := rows.Scan(
			&post.ID, &post.Title, &post.Slug, &post.Excerpt, &post.Content,
			&post.PublishedAt, &post.IsPublished, &post.CreatedAt, &post.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan blog post: %w", err)
		}
		items = append(items, post)
	}
	return items, rows.Err()
}

// GetBlogPost retrieves a published post by slug. Unpublished posts are not
// externally visible and report not found.
func (s *ContentStore) GetBlogPost(ctx context.Context, slug string) (*models.BlogPost, error) {
	post := &models.BlogPost{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, slug, excerpt, content, published_at, is_published,
		       created_at, updated_at
		FROM blog_posts WHERE slug = $1 AND is_published = TRUE
	`, slug).Scan(
		&post.ID, &post.Title, &post.Slug, &post.Excerpt, &post.Content,
		&post.PublishedAt, &post.IsPublished, &post.CreatedAt, &post.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("blog post %q: %w", slug, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find blog post by slug: %w", err)
	}
	return post, nil
}

// PublishSections reconciles a batch of section updates against a page's
// existing sections inside one transaction. The page row is locked with
// SELECT ... FOR UPDATE for the duration, so concurrent publishes against
// the same page serialize while publishes to other pages proceed in
// parallel.
//
// Existing sections are keyed by their position. An update whose order
// matches overwrites only the supplied fields; an unmatched order inserts a
// new section with defaults for any missing field. Updates are applied in
// the order supplied by the caller. Any failure rolls back the whole batch.
func (s *ContentStore) PublishSections(ctx context.Context, slug models.PageSlug, updates []models.SectionUpdate) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("publish begin: %w", err)
	}
	defer tx.Rollback()

	var pageID uuid.UUID
	err = tx.QueryRowContext(ctx, `SELECT id FROM pages WHERE slug = $1 FOR UPDATE`, slug).Scan(&pageID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("page %q: %w", slug, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("publish lock page: %w", err)
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT id, heading, body, position
		FROM page_sections
		WHERE page_id = $1
		ORDER BY position
	`, pageID)
	if err != nil {
		return fmt.Errorf("publish list sections: %w", err)
	}

	// Position is unique per page, so each order value keys at most one row.
	existing := make(map[int]models.PageSection)
	for rows.Next() {
		var sec models.PageSection
		if err := rows.Scan(&sec.ID, &sec.Heading, &sec.Body, &sec.Order); err != nil {
			rows.Close()
			return fmt.Errorf("publish scan section: %w", err)
		}
		existing[sec.Order] = sec
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("publish read sections: %w", err)
	}

	for _, u := range updates {
		if sec, ok := existing[u.Order]; ok {
			heading := sec.Heading
			if u.Heading != nil {
				heading = *u.Heading
			}
			body := sec.Body
			if u.Body != nil {
				body = *u.Body
			}
			if _, err := tx.ExecContext(ctx, `
				UPDATE page_sections SET heading = $1, body = $2, updated_at = NOW()
				WHERE id = $3
			`, heading, body, sec.ID); err != nil {
				return fmt.Errorf("publish update section: %w", err)
			}
		} else {
			heading := DefaultSectionHeading
			if u.Heading != nil {
				heading = *u.Heading
			}
			body := DefaultSectionBody
			if u.Body != nil {
				body = *u.Body
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO page_sections (page_id, heading, body, position)
				VALUES ($1, $2, $3, $4)
			`, pageID, heading, body, u.Order); err != nil {
				return fmt.Errorf("publish insert section: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("publish commit: %w", err)
	}

	slog.Info("published section updates", "page", slug, "updates", len(updates))
	return nil
}
