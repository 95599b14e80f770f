package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"content_catalog/internal/adapter"
	"content_catalog/internal/domain"
)

type SourceStore interface {
	Create(ctx context.Context, src *domain.ContentItemsSource) error
	GetByID(ctx context.Context, publisherID, sourceID string) (*domain.ContentItemsSource, error)
	List(ctx context.Context, publisherID string, page, limit int) ([]domain.ContentItemsSource, int, error)
	ListAutoSync(ctx context.Context) ([]domain.ContentItemsSource, error)
}

type ItemStore interface {
	Upsert(ctx context.Context, item *domain.ContentItem) (int64, error)
	ExistingURLs(ctx context.Context, sourceID string, urls []string) (map[string]struct{}, error)
	List(ctx context.Context, publisherID string, page, limit int) ([]domain.ContentItem, int, error)
	Search(ctx context.Context, publisherID, query string, limit int) ([]domain.ContentItem, error)
}

type SyncStateStore interface {
	Get(ctx context.Context, sourceID string) (*domain.SyncState, error)
	Update(ctx context.Context, state *domain.SyncState) error
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type AdapterRegistry interface {
	Get(t domain.SourceType) (adapter.Adapter, error)
}

type Publisher interface {
	Publish(ctx context.Context, item *domain.ContentItem, isNew bool) error
	Close() error
}
