package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"content_catalog/internal/domain"
)

type stubLister struct {
	sources []domain.ContentItemsSource
	err     error
}

func (s *stubLister) ListAutoSync(_ context.Context) ([]domain.ContentItemsSource, error) {
	return s.sources, s.err
}

type recordingSyncer struct {
	mu     sync.Mutex
	synced []string
	result *domain.SyncResult
}

func (s *recordingSyncer) TriggerSync(_ context.Context, publisherID, sourceID string) *domain.SyncResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.synced = append(s.synced, publisherID+"/"+sourceID)
	return s.result
}

func (s *recordingSyncer) calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.synced...)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestScheduler_SyncsAllAutoSyncSources(t *testing.T) {
	lister := &stubLister{sources: []domain.ContentItemsSource{
		{ID: "src-1", PublisherID: "pub-1"},
		{ID: "src-2", PublisherID: "pub-2"},
	}}
	syncer := &recordingSyncer{result: &domain.SyncResult{Valid: true, HTTPCode: http.StatusOK}}

	sched := NewScheduler(lister, syncer, time.Hour, time.Minute, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sched.Start(ctx) }()

	assert.Eventually(t, func() bool {
		return len(syncer.calls()) == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.Equal(t, []string{"pub-1/src-1", "pub-2/src-2"}, syncer.calls())
}

func TestScheduler_ListErrorDoesNotStopLoop(t *testing.T) {
	lister := &stubLister{err: errors.New("db down")}
	syncer := &recordingSyncer{result: &domain.SyncResult{Valid: true}}

	sched := NewScheduler(lister, syncer, time.Hour, time.Minute, testLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := sched.Start(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, syncer.calls())
}
