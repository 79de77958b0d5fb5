package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"leadpress/internal/models"
)

// FixtureStore is an in-memory ContentProvider and SectionPublisher serving
// a static content set. It backs demo and local environments where no
// database is configured. Publishing persists nothing: the fixture set is
// immutable, but the call still distinguishes known from unknown pages so
// callers observe the same behavior in either mode.
type FixtureStore struct {
	pages     map[models.PageSlug]models.Page
	services  []models.Service
	ebooks    []models.Ebook
	blogPosts []models.BlogPost
}

// NewFixtureStore builds the static demo content set.
func NewFixtureStore() *FixtureStore {
	home := models.Page{
		Slug: models.PageHome,
		Hero: &models.Hero{
			Title: "Launch revenue marketing faster",
			Subtitle: "Connect a production-ready CMS with a branded frontend to capture " +
				"demand, sync Zoho CRM (EU), and publish AI-assisted updates in minutes.",
			CTALabel: "Explore services",
			CTAURL:   "/services",
		},
		SEOTitle:       "Revenue marketing platform",
		SEODescription: "Full-stack marketing system with Zoho CRM EU and RAG publishing.",
		SchemaMarkup: json.RawMessage(`{"@context":"https://schema.org","@type":"Organization",` +
			`"name":"Revenue Marketing Studio","url":"https://example.com"}`),
		Sections: []models.PageSection{
			{
				Heading: "Why teams choose our revenue engine",
				Body: "<p>Launch branded landing pages, sync GDPR-ready forms to Zoho CRM EU, " +
					"and push AI-assisted updates without waiting on engineering sprints.</p>",
				Order: 1,
			},
			{
				Heading: "What is included",
				Body: "<ul><li>Branded marketing site</li>" +
					"<li>CMS and admin UI</li>" +
					"<li>Zoho CRM EU integration with consent capture</li>" +
					"<li>RAG-assisted publishing workflow</li></ul>",
				Order: 2,
			},
		},
	}

	return &FixtureStore{
		pages: map[models.PageSlug]models.Page{models.PageHome: home},
		services: []models.Service{
			{
				Name:        "RevOps activation",
				Slug:        "revops-activation",
				Description: "Stand up dashboards, lifecycle stages, and attribution to unlock ARR insights from day one.",
				LongDescription: "Our RevOps specialists wire up product analytics, CRM, and marketing automation " +
					"so your revenue teams operate from a single source of truth.",
			},
			{
				Name:        "Lifecycle automation",
				Slug:        "lifecycle-automation",
				Description: "Automate onboarding, nurture, and expansion motions with GDPR-ready consent capture.",
				LongDescription: "Design multi-channel nurtures, in-app guides, and success triggers that respect " +
					"EU data residency while accelerating net revenue retention.",
			},
			{
				Name:        "Demand experimentation",
				Slug:        "demand-experimentation",
				Description: "Spin up coordinated paid, content, and partner experiments with weekly reporting loops.",
				LongDescription: "Rapidly test paid and organic plays with clear attribution, blending RAG-generated " +
					"assets with human QA for compliant launch.",
			},
		},
		ebooks: []models.Ebook{
			{
				Title:   "Demand playbook for PLG SaaS",
				Slug:    "demand-playbook",
				Summary: "Channel mix, scoring models, and automation templates to operationalise product-led growth.",
				FileURL: "https://example.com/ebooks/demand-playbook.pdf",
			},
			{
				Title:   "EU RevOps compliance checklist",
				Slug:    "eu-revops-compliance",
				Summary: "Keep your revenue stack aligned with GDPR, Zoho CRM EU policies, and marketing consent best practices.",
				FileURL: "https://example.com/ebooks/eu-revops-compliance.pdf",
			},
		},
		blogPosts: []models.BlogPost{
			{
				Title:       "How we ship landing pages in under an hour",
				Slug:        "ship-landing-pages",
				Excerpt:     "A repeatable workflow for drafting content with RAG, reviewing in the admin, and pushing live.",
				Content:     "<p>By combining Retrieval Augmented Generation with editor workflows we reduced launch time for new experiments by 78%.</p>",
				PublishedAt: time.Date(2024, 3, 18, 9, 0, 0, 0, time.UTC),
				IsPublished: true,
			},
			{
				Title:       "Connecting Zoho CRM EU to a modern data stack",
				Slug:        "zoho-crm-eu-modern-data-stack",
				Excerpt:     "Map consents, UTMs, and lifecycle events from your marketing site directly into Zoho CRM EU securely.",
				Content:     "<p>We cover OAuth setup, refresh token hygiene, and how to pass granular consent flags for compliant marketing automation.</p>",
				PublishedAt: time.Date(2024, 2, 5, 9, 0, 0, 0, time.UTC),
				IsPublished: true,
			},
		},
	}
}

// GetPage returns a copy of the fixture page, so callers cannot mutate the
// shared fixture set.
func (s *FixtureStore) GetPage(_ context.Context, slug models.PageSlug) (*models.Page, error) {
	page, ok := s.pages[slug]
	if !ok {
		return nil, fmt.Errorf("page %q: %w", slug, ErrNotFound)
	}
	p := page
	p.Sections = append([]models.PageSection(nil), page.Sections...)
	if page.Hero != nil {
		hero := *page.Hero
		p.Hero = &hero
	}
	return &p, nil
}

func (s *FixtureStore) ListServices(_ context.Context) ([]models.Service, error) {
	return append([]models.Service(nil), s.services...), nil
}

func (s *FixtureStore) GetService(_ context.Context, slug string) (*models.Service, error) {
	for _, svc := range s.services {
		if svc.Slug == slug {
			out := svc
			return &out, nil
		}
	}
	return nil, fmt.Errorf("service %q: %w", slug, ErrNotFound)
}

func (s *FixtureStore) ListEbooks(_ context.Context) ([]models.Ebook, error) {
	return append([]models.Ebook(nil), s.ebooks...), nil
}

func (s *FixtureStore) GetEbook(_ context.Context, slug string) (*models.Ebook, error) {
	for _, e := range s.ebooks {
		if e.Slug == slug {
			out := e
			return &out, nil
		}
	}
	return nil, fmt.Errorf("ebook %q: %w", slug, ErrNotFound)
}

func (s *FixtureStore) ListBlogPosts(_ context.Context) ([]models.BlogPost, error) {
	var published []models.BlogPost
	for _, post := range s.blogPosts {
		if post.IsPublished {
			published = append(published, post)
		}
	}
	return published, nil
}

func (s *FixtureStore) GetBlogPost(_ context.Context, slug string) (*models.BlogPost, error) {
	for _, post := range s.blogPosts {
		if post.Slug == slug && post.IsPublished {
			out := post
			return &out, nil
		}
	}
	return nil, fmt.Errorf("blog post %q: %w", slug, ErrNotFound)
}

// PublishSections validates the target page and otherwise does nothing.
// Fixture content is immutable.
func (s *FixtureStore) PublishSections(_ context.Context, slug models.PageSlug, _ []models.SectionUpdate) error {
	if _, ok := s.pages[slug]; !ok {
		return fmt.Errorf("page %q: %w", slug, ErrNotFound)
	}
	return nil
}
