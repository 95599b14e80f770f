package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"content_catalog/internal/domain"
)

type SourceStore struct {
	db *sqlx.DB
}

func NewSourceStore(db *sqlx.DB) *SourceStore {
	return &SourceStore{db: db}
}

func (s *SourceStore) Create(ctx context.Context, src *domain.ContentItemsSource) error {
	instructions, err := marshalMappings(src.Mappings)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO content_sources (
			id, publisher_id, type, name, url, auto_sync, instructions, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = s.db.ExecContext(ctx, query,
		src.ID,
		src.PublisherID,
		src.Type,
		src.Name,
		src.URL,
		src.AutoSync,
		instructions,
		src.CreatedAt,
	)
	return err
}

// GetByID loads a source scoped to its owning publisher. A source that exists
// for a different publisher is reported as not found.
func (s *SourceStore) GetByID(ctx context.Context, publisherID, sourceID string) (*domain.ContentItemsSource, error) {
	query := `
		SELECT id, publisher_id, type, name, url, auto_sync, instructions, created_at
		FROM content_sources
		WHERE publisher_id = $1 AND id = $2`

	src, err := scanSource(s.db.QueryRowContext(ctx, query, publisherID, sourceID))
	if err == sql.ErrNoRows {
		return nil, domain.ErrSourceNotFound
	}
	if err != nil {
		return nil, err
	}
	return src, nil
}

func (s *SourceStore) List(ctx context.Context, publisherID string, page, limit int) ([]domain.ContentItemsSource, int, error) {
	var total int
	err := s.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM content_sources WHERE publisher_id = $1`, publisherID)
	if err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, publisher_id, type, name, url, auto_sync, instructions, created_at
		FROM content_sources
		WHERE publisher_id = $1
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3`

	rows, err := s.db.QueryContext(ctx, query, publisherID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	sources := []domain.ContentItemsSource{}
	for rows.Next() {
		src, err := scanSource(rows)
		if err != nil {
			return nil, 0, err
		}
		sources = append(sources, *src)
	}

	return sources, total, rows.Err()
}

// ListAutoSync returns every source enrolled in unattended synchronization,
// across all publishers.
func (s *SourceStore) ListAutoSync(ctx context.Context) ([]domain.ContentItemsSource, error) {
	query := `
		SELECT id, publisher_id, type, name, url, auto_sync, instructions, created_at
		FROM content_sources
		WHERE auto_sync = TRUE
		ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sources []domain.ContentItemsSource
	for rows.Next() {
		src, err := scanSource(rows)
		if err != nil {
			return nil, err
		}
		sources = append(sources, *src)
	}

	return sources, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSource(row rowScanner) (*domain.ContentItemsSource, error) {
	var (
		src          domain.ContentItemsSource
		instructions []byte
	)
	err := row.Scan(
		&src.ID,
		&src.PublisherID,
		&src.Type,
		&src.Name,
		&src.URL,
		&src.AutoSync,
		&instructions,
		&src.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(instructions) > 0 {
		var mappings domain.FieldMappings
		if err := json.Unmarshal(instructions, &mappings); err != nil {
			return nil, fmt.Errorf("unmarshal instructions for source %s: %w", src.ID, err)
		}
		src.Mappings = &mappings
	}

	return &src, nil
}

func marshalMappings(mappings *domain.FieldMappings) ([]byte, error) {
	if mappings == nil {
		return nil, nil
	}
	data, err := json.Marshal(mappings)
	if err != nil {
		return nil, fmt.Errorf("marshal instructions: %w", err)
	}
	return data, nil
}
