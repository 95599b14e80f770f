package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"content_catalog/internal/service"
)

// Server exposes the catalog over HTTP. All catalog routes require a
// publisher identity; health checking does not.
type Server struct {
	sources *service.SourceService
	query   *service.QueryService
	sync    *service.SyncService
	logger  *slog.Logger
}

func New(sources *service.SourceService, query *service.QueryService, sync *service.SyncService, logger *slog.Logger) *Server {
	return &Server{
		sources: sources,
		query:   query,
		sync:    sync,
		logger:  logger.With("component", "http"),
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(requirePublisher)

		r.Route("/sources", func(r chi.Router) {
			r.Post("/", makeHandler(s.logger, s.handleCreateSource))
			r.Get("/", makeHandler(s.logger, s.handleListSources))
			r.Post("/{id}/sync", makeHandler(s.logger, s.handleTriggerSync))
		})

		r.Route("/items", func(r chi.Router) {
			r.Get("/", makeHandler(s.logger, s.handleListItems))
			r.Get("/search", makeHandler(s.logger, s.handleSearchItems))
		})
	})

	return r
}
