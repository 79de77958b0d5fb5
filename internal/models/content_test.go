package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestPageSlugValid(t *testing.T) {
	tests := []struct {
		slug PageSlug
		want bool
	}{
		{PageHome, true},
		{PageServices, true},
		{PageEbooks, true},
		{PageBlog, true},
		{"about", false},
		{"", false},
		{"HOME", false},
	}

	for _, tt := range tests {
		if got := tt.slug.Valid(); got != tt.want {
			t.Errorf("Valid(%q): got %v, want %v", tt.slug, got, tt.want)
		}
	}
}

// Internal identifiers and timestamps stay out of API payloads.
func TestPageMarshalHidesInternals(t *testing.T) {
	page := Page{
		ID:           uuid.New(),
		Slug:         PageHome,
		SEOTitle:     "Home",
		SchemaMarkup: json.RawMessage(`{"@type":"Organization"}`),
		Sections: []PageSection{
			{ID: uuid.New(), PageID: uuid.New(), Heading: "Intro", Order: 1, CreatedAt: time.Now()},
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	encoded, err := json.Marshal(page)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(encoded)

	for _, hidden := range []string{`"id"`, `"page_id"`, `"created_at"`, `"updated_at"`} {
		if strings.Contains(body, hidden) {
			t.Errorf("payload leaks %s: %s", hidden, body)
		}
	}
	if !strings.Contains(body, `"schema_markup":{"@type":"Organization"}`) {
		t.Errorf("schema markup must embed as raw JSON: %s", body)
	}
	if !strings.Contains(body, `"order":1`) {
		t.Errorf("section order missing: %s", body)
	}
}

func TestSectionUpdateUnmarshal(t *testing.T) {
	var update SectionUpdate
	if err := json.Unmarshal([]byte(`{"order":2,"heading":"New"}`), &update); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if update.Order != 2 {
		t.Errorf("order: got %d", update.Order)
	}
	if update.Heading == nil || *update.Heading != "New" {
		t.Errorf("heading: got %v", update.Heading)
	}
	// Absent fields stay nil so publishing can tell "unset" from "empty".
	if update.Body != nil {
		t.Errorf("body: got %v, want nil", update.Body)
	}
}

func TestBlogPostMarshalHidesPublicationFlag(t *testing.T) {
	post := BlogPost{
		Title:       "Post",
		Slug:        "post",
		PublishedAt: time.Date(2024, 3, 18, 9, 0, 0, 0, time.UTC),
		IsPublished: true,
	}

	encoded, err := json.Marshal(post)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(encoded), "is_published") {
		t.Errorf("payload leaks is_published: %s", encoded)
	}
	if !strings.Contains(string(encoded), `"published_at":"2024-03-18T09:00:00Z"`) {
		t.Errorf("published_at missing: %s", encoded)
	}
}
