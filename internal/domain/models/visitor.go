// internal/domain/models/visitor.go
package models

import "time"

// SavedSearch is one entry in a visitor's recent-search history.
// Query is the canonical query string the search was run with.
type SavedSearch struct {
	Term  string    `json:"term,omitempty"`
	Query string    `json:"query"`
	At    time.Time `json:"at"`
}

// CachedLocation is the last location a visitor resolved.
type CachedLocation struct {
	State string    `json:"state"`
	At    time.Time `json:"at"`
}
