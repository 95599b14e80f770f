package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"content_catalog/internal/domain"
)

func (s *Server) handleCreateSource(w http.ResponseWriter, r *http.Request) error {
	var data domain.SourceData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		return badRequest("invalid request body", err)
	}

	src, err := s.sources.Create(r.Context(), publisherID(r), data)
	if err != nil {
		return err
	}

	respondJSON(w, http.StatusCreated, src)
	return nil
}

func (s *Server) handleListSources(w http.ResponseWriter, r *http.Request) error {
	page, limit := pagingParams(r)

	sources, err := s.sources.List(r.Context(), publisherID(r), page, limit)
	if err != nil {
		return err
	}

	respondJSON(w, http.StatusOK, sources)
	return nil
}

// handleTriggerSync maps the sync outcome straight onto the response: the
// result already carries its own status code and always has a JSON body.
func (s *Server) handleTriggerSync(w http.ResponseWriter, r *http.Request) error {
	sourceID := chi.URLParam(r, "id")

	res := s.sync.TriggerSync(r.Context(), publisherID(r), sourceID)

	respondJSON(w, res.HTTPCode, res)
	return nil
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) error {
	page, limit := pagingParams(r)

	items, err := s.query.ListItems(r.Context(), publisherID(r), page, limit)
	if err != nil {
		return err
	}

	respondJSON(w, http.StatusOK, items)
	return nil
}

func (s *Server) handleSearchItems(w http.ResponseWriter, r *http.Request) error {
	query := r.URL.Query().Get("q")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	items, err := s.query.SearchItems(r.Context(), publisherID(r), query, limit)
	if err != nil {
		var cfgErr *domain.ConfigError
		if errors.As(err, &cfgErr) {
			return badRequest(cfgErr.Reason, nil)
		}
		return err
	}

	respondJSON(w, http.StatusOK, map[string]any{"items": items})
	return nil
}

func pagingParams(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return page, limit
}
