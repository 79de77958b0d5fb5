package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"leadpress/internal/models"
	"leadpress/internal/store"
)

// Seed populates the database with the demo marketing content used by the
// fixture store, so a fresh development database serves the same data as
// mock mode. It is a no-op if any page already exists.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM pages").Scan(&count); err != nil {
		return fmt.Errorf("seed check pages: %w", err)
	}
	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	fixtures := store.NewFixtureStore()
	ctx := context.Background()

	for _, slug := range models.KnownPageSlugs {
		page, err := fixtures.GetPage(ctx, slug)
		if err != nil {
			// Only the fixture pages exist; the remaining slugs start as
			// bare pages editors fill in later.
			page = &models.Page{Slug: slug, SchemaMarkup: []byte("{}")}
		}
		if err := seedPage(db, page); err != nil {
			return err
		}
	}

	services, _ := fixtures.ListServices(ctx)
	for _, svc := range services {
		if _, err := db.Exec(`
			INSERT INTO services (name, slug, description, long_description)
			VALUES ($1, $2, $3, $4)
		`, svc.Name, svc.Slug, svc.Description, svc.LongDescription); err != nil {
			return fmt.Errorf("seed service %q: %w", svc.Slug, err)
		}
	}

	ebooks, _ := fixtures.ListEbooks(ctx)
	for _, e := range ebooks {
		if _, err := db.Exec(`
			INSERT INTO ebooks (title, slug, summary, file_url)
			VALUES ($1, $2, $3, $4)
		`, e.Title, e.Slug, e.Summary, e.FileURL); err != nil {
			return fmt.Errorf("seed ebook %q: %w", e.Slug, err)
		}
	}

	posts, _ := fixtures.ListBlogPosts(ctx)
	for _, post := range posts {
		if _, err := db.Exec(`
			INSERT INTO blog_posts (title, slug, excerpt, content, published_at, is_published)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, post.Title, post.Slug, post.Excerpt, post.Content, post.PublishedAt, post.IsPublished); err != nil {
			return fmt.Errorf("seed blog post %q: %w", post.Slug, err)
		}
	}

	slog.Info("database seeded with demo marketing content")
	return nil
}

func seedPage(db *sql.DB, page *models.Page) error {
	var heroID *string
	if page.Hero != nil {
		var id string
		err := db.QueryRow(`
			INSERT INTO heroes (title, subtitle, cta_label, cta_url)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, page.Hero.Title, page.Hero.Subtitle, page.Hero.CTALabel, page.Hero.CTAURL).Scan(&id)
		if err != nil {
			return fmt.Errorf("seed hero for %q: %w", page.Slug, err)
		}
		heroID = &id
	}

	markup := page.SchemaMarkup
	if len(markup) == 0 {
		markup = []byte("{}")
	}

	var pageID string
	err := db.QueryRow(`
		INSERT INTO pages (slug, hero_id, seo_title, seo_description, schema_markup)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, page.Slug, heroID, page.SEOTitle, page.SEODescription, []byte(markup)).Scan(&pageID)
	if err != nil {
		return fmt.Errorf("seed page %q: %w", page.Slug, err)
	}

	for _, sec := range page.Sections {
		if _, err := db.Exec(`
			INSERT INTO page_sections (page_id, heading, body, position)
			VALUES ($1, $2, $3, $4)
		`, pageID, sec.Heading, sec.Body, sec.Order); err != nil {
			return fmt.Errorf("seed section for %q: %w", page.Slug, err)
		}
	}
	return nil
}
