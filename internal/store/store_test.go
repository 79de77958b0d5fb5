// store_test.go provides a shared test database helper for the store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store_test

import (
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"leadpress/internal/database"
	"leadpress/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "leadpress")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "leadpress")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// resetPage deletes any existing row for the slug and inserts a fresh page
// with the given sections. The page slug set is fixed by a CHECK constraint,
// so tests take over one of the known slugs and restore nothing: the seeder
// repopulates empty databases on the next boot.
func resetPage(t *testing.T, db *sql.DB, slug models.PageSlug, sections ...models.PageSection) uuid.UUID {
	t.Helper()

	if _, err := db.Exec("DELETE FROM pages WHERE slug = $1", slug); err != nil {
		t.Fatalf("delete page %s: %v", slug, err)
	}

	var pageID uuid.UUID
	err := db.QueryRow(`
		INSERT INTO pages (slug, seo_title, seo_description)
		VALUES ($1, $2, $3)
		RETURNING id
	`, slug, "Test "+string(slug), "Integration test page").Scan(&pageID)
	if err != nil {
		t.Fatalf("insert page %s: %v", slug, err)
	}

	for _, sec := range sections {
		if _, err := db.Exec(`
			INSERT INTO page_sections (page_id, heading, body, position)
			VALUES ($1, $2, $3, $4)
		`, pageID, sec.Heading, sec.Body, sec.Order); err != nil {
			t.Fatalf("insert section at position %d: %v", sec.Order, err)
		}
	}

	t.Cleanup(func() { db.Exec("DELETE FROM pages WHERE slug = $1", slug) })
	return pageID
}

// cleanCatalog removes catalog rows by slug. Call in t.Cleanup().
func cleanCatalog(t *testing.T, db *sql.DB, table string, slugs ...string) {
	t.Helper()
	for _, slug := range slugs {
		db.Exec("DELETE FROM "+table+" WHERE slug = $1", slug)
	}
}

// pageSections reads back heading/body/position for a page, ordered by
// position.
func pageSections(t *testing.T, db *sql.DB, pageID uuid.UUID) []models.PageSection {
	t.Helper()

	rows, err := db.Query(`
		SELECT heading, body, position FROM page_sections
		WHERE page_id = $1 ORDER BY position
	`, pageID)
	if err != nil {
		t.Fatalf("read sections: %v", err)
	}
	defer rows.Close()

	var sections []models.PageSection
	for rows.Next() {
		var sec models.PageSection
		if err := rows.Scan(&sec.Heading, &sec.Body, &sec.Order); err != nil {
			t.Fatalf("scan section: %v", err)
		}
		sections = append(sections, sec)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("read sections: %v", err)
	}
	return sections
}

func strptr(s string) *string { return &s }
