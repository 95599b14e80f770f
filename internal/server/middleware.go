package server

import (
	"context"
	"net/http"
)

// publisherHeader carries the authenticated publisher's identifier. Identity
// is established upstream; the value is trusted verbatim here.
const publisherHeader = "X-Publisher-ID"

type contextKey string

const publisherIDKey contextKey = "publisherID"

// requirePublisher rejects requests that arrive without a publisher identity
// and stashes the identifier in the request context for handlers.
func requirePublisher(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		publisherID := r.Header.Get(publisherHeader)
		if publisherID == "" {
			respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "publisher identity is required"})
			return
		}
		ctx := context.WithValue(r.Context(), publisherIDKey, publisherID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func publisherID(r *http.Request) string {
	id, _ := r.Context().Value(publisherIDKey).(string)
	return id
}
