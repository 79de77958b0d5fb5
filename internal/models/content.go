package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// PageSlug identifies one of the fixed marketing pages. The set is closed:
// editors update page content, they do not create new pages.
type PageSlug string

const (
	PageHome     PageSlug = "home"
	PageServices PageSlug = "services"
	PageEbooks   PageSlug = "ebooks"
	PageBlog     PageSlug = "blog"
)

// KnownPageSlugs lists every valid page slug in display order.
var KnownPageSlugs = []PageSlug{PageHome, PageServices, PageEbooks, PageBlog}

// Valid reports whether the slug is one of the fixed page identifiers.
func (s PageSlug) Valid() bool {
	switch s {
	case PageHome, PageServices, PageEbooks, PageBlog:
		return true
	}
	return false
}

// Hero is the optional banner block owned by at most one page. Heroes have
// a standalone lifecycle: deleting one nulls the page reference, and an
// orphaned hero is valid.
type Hero struct {
	ID        uuid.UUID `json:"-"`
	Title     string    `json:"title"`
	Subtitle  string    `json:"subtitle"`
	CTALabel  string    `json:"cta_label"`
	CTAURL    string    `json:"cta_url"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Page is a CMS-managed marketing page with SEO metadata, an optional hero,
// and an ordered list of sections.
type Page struct {
	ID             uuid.UUID       `json:"-"`
	Slug           PageSlug        `json:"slug"`
	Hero           *Hero           `json:"hero"`
	SEOTitle       string          `json:"seo_title"`
	SEODescription string          `json:"seo_description"`
	SchemaMarkup   json.RawMessage `json:"schema_markup"`
	Sections       []PageSection   `json:"sections"`
	CreatedAt      time.Time       `json:"-"`
	UpdatedAt      time.Time       `json:"-"`
}

// PageSection is a block of page content. Order drives display sequencing
// and is the reconciliation key during publish; it is unique per page.
type PageSection struct {
	ID        uuid.UUID `json:"-"`
	PageID    uuid.UUID `json:"-"`
	Heading   string    `json:"heading"`
	Body      string    `json:"body"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Service is a slug-unique catalog entry describing an offered service.
type Service struct {
	ID              uuid.UUID `json:"-"`
	Name            string    `json:"name"`
	Slug            string    `json:"slug"`
	Description     string    `json:"description"`
	LongDescription string    `json:"long_description"`
	CreatedAt       time.Time `json:"-"`
	UpdatedAt       time.Time `json:"-"`
}

// Ebook is a downloadable asset promoted on the site. FileURL points at the
// hosted document.
type Ebook struct {
	ID        uuid.UUID `json:"-"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Summary   string    `json:"summary"`
	FileURL   string    `json:"file"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// BlogPost is a blog entry. Only posts with IsPublished set are externally
// visible, ordered newest-published-first.
type BlogPost struct {
	ID          uuid.UUID `json:"-"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Excerpt     string    `json:"excerpt"`
	Content     string    `json:"content"`
	PublishedAt time.Time `json:"published_at"`
	IsPublished bool      `json:"-"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}
