package database

import (
	"database/sql"
	"fmt"
	"time"
)

var _ PageRepository = (*SQLPageRepository)(nil)

// SQLPageRepository handles database operations for saved pages
type SQLPageRepository struct {
	db *DB
}

// NewPageRepository creates a new page repository
func NewPageRepository(db *DB) *SQLPageRepository {
	return &SQLPageRepository{db: db}
}

// CreatePage inserts a new saved page and returns the stored row.
// A nil payload is stored as NULL (extraction never produced anything).
func (r *SQLPageRepository) CreatePage(title, url, externalRunID string, payload []byte) (*SavedPage, error) {
	now := time.Now().UTC()

	var payloadArg interface{}
	if payload != nil {
		payloadArg = string(payload)
	}

	result, err := r.db.Exec(`
		INSERT INTO saved_pages (title, url, saved_at, extraction_payload, external_run_id)
		VALUES (?, ?, ?, ?, ?)
	`, title, url, now, payloadArg, externalRunID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert saved page: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get inserted page id: %w", err)
	}

	return &SavedPage{
		ID:                id,
		Title:             title,
		URL:               url,
		SavedAt:           now,
		ExtractionPayload: payload,
		ExternalRunID:     externalRunID,
	}, nil
}

// GetPage retrieves a saved page by id. Returns nil when no row exists.
func (r *SQLPageRepository) GetPage(id int64) (*SavedPage, error) {
	var page SavedPage
	var payload sql.NullString
	err := r.db.QueryRow(`
		SELECT id, title, url, saved_at, extraction_payload, COALESCE(external_run_id, '')
		FROM saved_pages
		WHERE id = ?
	`, id).Scan(&page.ID, &page.Title, &page.URL, &page.SavedAt, &payload, &page.ExternalRunID)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get saved page: %w", err)
	}

	if payload.Valid {
		page.ExtractionPayload = []byte(payload.String)
	}

	return &page, nil
}

// GetAllPages returns all saved pages ordered by save time descending.
func (r *SQLPageRepository) GetAllPages() ([]SavedPage, error) {
	rows, err := r.db.Query(`
		SELECT id, title, url, saved_at, extraction_payload, COALESCE(external_run_id, '')
		FROM saved_pages
		ORDER BY saved_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get saved pages: %w", err)
	}
	defer rows.Close()

	return scanPages(rows)
}

// SearchPages returns pages whose title or extraction payload contains the
// given substring, ordered by save time descending.
func (r *SQLPageRepository) SearchPages(substr string) ([]SavedPage, error) {
	pattern := "%" + substr + "%"
	rows, err := r.db.Query(`
		SELECT id, title, url, saved_at, extraction_payload, COALESCE(external_run_id, '')
		FROM saved_pages
		WHERE title LIKE ? OR extraction_payload LIKE ?
		ORDER BY saved_at DESC, id DESC
	`, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search saved pages: %w", err)
	}
	defer rows.Close()

	return scanPages(rows)
}

// GetPageCount returns the total number of saved pages
func (r *SQLPageRepository) GetPageCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM saved_pages").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get page count: %w", err)
	}
	return count, nil
}

func scanPages(rows *sql.Rows) ([]SavedPage, error) {
	var pages []SavedPage
	for rows.Next() {
		var page SavedPage
		var payload sql.NullString
		err := rows.Scan(&page.ID, &page.Title, &page.URL, &page.SavedAt, &payload, &page.ExternalRunID)
		if err != nil {
			return nil, fmt.Errorf("failed to scan saved page row: %w", err)
		}
		if payload.Valid {
			page.ExtractionPayload = []byte(payload.String)
		}
		pages = append(pages, page)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating saved page rows: %w", err)
	}

	return pages, nil
}
