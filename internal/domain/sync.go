package domain

import "time"

// SyncResult is the outcome of one synchronization attempt. It is built once
// per attempt and never mutated; failures at any stage become a result value
// rather than an error escaping the orchestrator.
type SyncResult struct {
	ID      string `json:"id"`
	Valid   bool   `json:"valid"`
	Items   int    `json:"items"`
	Message string `json:"message"`

	// HTTPCode is the status the caller should surface. Not part of the
	// response body.
	HTTPCode int `json:"-"`
}

// SyncStats holds per-attempt counters for logging.
type SyncStats struct {
	SourceID  string
	Parsed    int
	Dropped   int
	New       int
	Updated   int
	Published int
	Duration  time.Duration
}

// SyncState is the persisted bookkeeping row for one source.
type SyncState struct {
	ID           int64     `db:"id"`
	SourceID     string    `db:"source_id"`
	LastSyncedAt time.Time `db:"last_synced_at"`
	LastItems    int64     `db:"last_items"`
	TotalSynced  int64     `db:"total_synced"`
}
