package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"content_catalog/internal/adapter"
	"content_catalog/internal/domain"
	"content_catalog/internal/service"
	"content_catalog/internal/service/mocks"
)

type ServerTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	sources   *mocks.MockSourceStore
	items     *mocks.MockItemStore
	syncState *mocks.MockSyncStateStore
	txManager *mocks.MockTransactionManager
	fetcher   *mocks.MockFetcher

	handler http.Handler
}

func (s *ServerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.sources = mocks.NewMockSourceStore(s.ctrl)
	s.items = mocks.NewMockItemStore(s.ctrl)
	s.syncState = mocks.NewMockSyncStateStore(s.ctrl)
	s.txManager = mocks.NewMockTransactionManager(s.ctrl)
	s.fetcher = mocks.NewMockFetcher(s.ctrl)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	sourceService := service.NewSourceService(s.sources, logger)
	queryService := service.NewQueryService(s.items, logger)
	syncService := service.NewSyncService(
		s.sources,
		s.items,
		s.syncState,
		s.txManager,
		s.fetcher,
		adapter.NewRegistry(adapter.NewCSV(), adapter.NewRSSITunes(adapter.FeedConfig{})),
		nil,
		logger,
	)

	s.handler = New(sourceService, queryService, syncService, logger).Routes()
}

func (s *ServerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) do(method, target, publisher, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if publisher != "" {
		req.Header.Set("X-Publisher-ID", publisher)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *ServerTestSuite) TestHealthz() {
	rec := s.do(http.MethodGet, "/healthz", "", "")
	s.Equal(http.StatusOK, rec.Code)
}

func (s *ServerTestSuite) TestMissingPublisherHeader() {
	rec := s.do(http.MethodGet, "/api/sources", "", "")
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *ServerTestSuite) TestCreateSource() {
	s.sources.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	body := `{
		"type": "csv",
		"name": "Video Catalog",
		"url": "https://example.com/catalog.csv",
		"instructions": {"headers": {"contentUrl": "url"}}
	}`
	rec := s.do(http.MethodPost, "/api/sources", "pub-1", body)

	s.Equal(http.StatusCreated, rec.Code)

	var created domain.ContentItemsSource
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &created))
	s.NotEmpty(created.ID)
	s.Equal("pub-1", created.PublisherID)
}

func (s *ServerTestSuite) TestCreateSource_InvalidConfig() {
	body := `{"type": "csv", "name": "Broken", "url": "https://example.com/catalog.csv"}`
	rec := s.do(http.MethodPost, "/api/sources", "pub-1", body)

	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Contains(rec.Body.String(), "contentUrl")
}

func (s *ServerTestSuite) TestCreateSource_MalformedBody() {
	rec := s.do(http.MethodPost, "/api/sources", "pub-1", "{not json")
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ServerTestSuite) TestListSources() {
	s.sources.EXPECT().List(gomock.Any(), "pub-1", 1, 20).
		Return([]domain.ContentItemsSource{{ID: "src-1", PublisherID: "pub-1"}}, 1, nil)

	rec := s.do(http.MethodGet, "/api/sources", "pub-1", "")

	s.Equal(http.StatusOK, rec.Code)

	var page domain.SourcePage
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &page))
	s.Len(page.Items, 1)
	s.False(page.HasMore)
}

func (s *ServerTestSuite) TestTriggerSync_NotFound() {
	s.sources.EXPECT().GetByID(gomock.Any(), "pub-1", "missing").Return(nil, domain.ErrSourceNotFound)

	rec := s.do(http.MethodPost, "/api/sources/missing/sync", "pub-1", "")

	s.Equal(http.StatusNotFound, rec.Code)

	var res domain.SyncResult
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &res))
	s.False(res.Valid)
	s.Equal("missing", res.ID)
}

func (s *ServerTestSuite) TestTriggerSync_Success() {
	src := &domain.ContentItemsSource{
		ID:          "src-1",
		PublisherID: "pub-1",
		Type:        domain.SourceTypeCSV,
		URL:         "https://example.com/catalog.csv",
		Mappings: &domain.FieldMappings{
			Headers:                map[string]string{domain.AttrContentURL: "contentUrl"},
			DefaultContentItemType: domain.TypeVideo,
		},
	}

	s.sources.EXPECT().GetByID(gomock.Any(), "pub-1", "src-1").Return(src, nil)
	s.fetcher.EXPECT().Fetch(gomock.Any(), src.URL).Return([]byte("contentUrl\n/a.mp4\n"), nil)
	s.items.EXPECT().ExistingURLs(gomock.Any(), "src-1", []string{"/a.mp4"}).Return(map[string]struct{}{}, nil)
	s.txManager.EXPECT().WithTransaction(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	)
	s.items.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(int64(1), nil)
	s.syncState.EXPECT().Get(gomock.Any(), "src-1").Return(&domain.SyncState{SourceID: "src-1"}, nil)
	s.syncState.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

	rec := s.do(http.MethodPost, "/api/sources/src-1/sync", "pub-1", "")

	s.Equal(http.StatusOK, rec.Code)

	var res domain.SyncResult
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &res))
	s.True(res.Valid)
	s.Equal(1, res.Items)
}

func (s *ServerTestSuite) TestListItems() {
	s.items.EXPECT().List(gomock.Any(), "pub-1", 2, 10).
		Return([]domain.ContentItem{{ID: 11}}, 11, nil)

	rec := s.do(http.MethodGet, "/api/items?page=2&limit=10", "pub-1", "")

	s.Equal(http.StatusOK, rec.Code)

	var page domain.ItemPage
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &page))
	s.Len(page.Items, 1)
	s.Equal(11, page.Total)
}

func (s *ServerTestSuite) TestSearchItems() {
	s.items.EXPECT().Search(gomock.Any(), "pub-1", "kubernetes", 20).
		Return([]domain.ContentItem{{ID: 1, Name: "Kubernetes Basics"}}, nil)

	rec := s.do(http.MethodGet, "/api/items/search?q=kubernetes", "pub-1", "")

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Kubernetes Basics")
}

func (s *ServerTestSuite) TestSearchItems_MissingQuery() {
	rec := s.do(http.MethodGet, "/api/items/search", "pub-1", "")

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "query")
}
