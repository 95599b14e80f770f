package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"content_catalog/internal/domain"
)

type ContentItemStore struct {
	db *sqlx.DB
}

func NewContentItemStore(db *sqlx.DB) *ContentItemStore {
	return &ContentItemStore{db: db}
}

// Upsert writes one normalized content item, keyed by (source_id,
// content_url) so re-syncing an unchanged source never duplicates records.
// Runs against the transaction in ctx when one is present.
func (s *ContentItemStore) Upsert(ctx context.Context, item *domain.ContentItem) (int64, error) {
	query := `
		INSERT INTO content_items (
			publisher_id, source_id, content_url, type, name,
			short_description, thumbnail_url
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
		ON CONFLICT (source_id, content_url) DO UPDATE SET
			type = EXCLUDED.type,
			name = EXCLUDED.name,
			short_description = EXCLUDED.short_description,
			thumbnail_url = EXCLUDED.thumbnail_url,
			updated_at = now()
		RETURNING id`

	var id int64
	err := GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		item.PublisherID,
		item.SourceID,
		item.ContentURL,
		item.Type,
		item.Name,
		item.ShortDescription,
		item.ThumbnailURL,
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

// ExistingURLs returns which of the given content URLs are already stored
// for the source.
func (s *ContentItemStore) ExistingURLs(ctx context.Context, sourceID string, urls []string) (map[string]struct{}, error) {
	result := make(map[string]struct{})
	if len(urls) == 0 {
		return result, nil
	}

	query := `SELECT content_url FROM content_items WHERE source_id = $1 AND content_url = ANY($2)`

	rows, err := s.db.QueryContext(ctx, query, sourceID, pq.Array(urls))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, err
		}
		result[url] = struct{}{}
	}

	return result, rows.Err()
}

// List returns one page of a publisher's content items plus the total count.
// Pages are 1-indexed.
func (s *ContentItemStore) List(ctx context.Context, publisherID string, page, limit int) ([]domain.ContentItem, int, error) {
	var total int
	err := s.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM content_items WHERE publisher_id = $1`, publisherID)
	if err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, publisher_id, source_id, content_url, type, name,
		       short_description, thumbnail_url, created_at, updated_at
		FROM content_items
		WHERE publisher_id = $1
		ORDER BY id
		LIMIT $2 OFFSET $3`

	items := []domain.ContentItem{}
	err = s.db.SelectContext(ctx, &items, query, publisherID, limit, (page-1)*limit)
	if err != nil && err != sql.ErrNoRows {
		return nil, 0, err
	}

	return items, total, nil
}

// Search returns items whose name or short description match the query,
// ranked by full-text relevance, capped at limit.
func (s *ContentItemStore) Search(ctx context.Context, publisherID, query string, limit int) ([]domain.ContentItem, error) {
	q := `
		SELECT id, publisher_id, source_id, content_url, type, name,
		       short_description, thumbnail_url, created_at, updated_at
		FROM content_items
		WHERE publisher_id = $1
		  AND to_tsvector('simple', coalesce(name, '') || ' ' || coalesce(short_description, ''))
		      @@ plainto_tsquery('simple', $2)
		ORDER BY ts_rank(
			to_tsvector('simple', coalesce(name, '') || ' ' || coalesce(short_description, '')),
			plainto_tsquery('simple', $2)
		) DESC
		LIMIT $3`

	items := []domain.ContentItem{}
	err := s.db.SelectContext(ctx, &items, q, publisherID, query, limit)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	return items, nil
}
