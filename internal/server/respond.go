package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"content_catalog/internal/domain"
)

// HTTPError is an error a handler wants reported with a specific status code
// and a client-safe message.
type HTTPError struct {
	Code    int
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error { return e.Err }

func badRequest(message string, err error) *HTTPError {
	return &HTTPError{Code: http.StatusBadRequest, Message: message, Err: err}
}

// appHandler is a handler that returns an error instead of writing error
// responses itself.
type appHandler func(w http.ResponseWriter, r *http.Request) error

// makeHandler adapts an appHandler to http.HandlerFunc, translating returned
// errors to JSON error responses with the right status code.
func makeHandler(logger *slog.Logger, handler appHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := handler(w, r)
		if err == nil {
			return
		}

		var (
			statusCode int
			message    string
		)

		var httpErr *HTTPError
		var cfgErr *domain.ConfigError
		switch {
		case errors.As(err, &httpErr):
			statusCode = httpErr.Code
			message = httpErr.Message
		case errors.As(err, &cfgErr):
			statusCode = http.StatusUnprocessableEntity
			message = cfgErr.Reason
		case errors.Is(err, domain.ErrSourceNotFound):
			statusCode = http.StatusNotFound
			message = "content items source not found"
		default:
			statusCode = http.StatusInternalServerError
			message = "internal server error"
		}

		level := slog.LevelWarn
		if statusCode >= 500 {
			level = slog.LevelError
		}
		logger.Log(r.Context(), level, "request failed",
			"status", statusCode,
			"path", r.URL.Path,
			"method", r.Method,
			"error", err,
		)

		respondJSON(w, statusCode, map[string]string{"error": message})
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
