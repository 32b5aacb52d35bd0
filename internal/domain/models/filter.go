// internal/domain/models/filter.go
package models

// Sort orders accepted by the resource list endpoint.
const (
	SortRelevance = "relevance"
	SortRating    = "rating"
	SortName      = "name"
	SortDate      = "date"
)

// Pagination bounds for read queries.
const (
	DefaultPage  = 1
	DefaultLimit = 30
	MaxLimit     = 50
)

// ResourceFilter is the canonical form of a list/search request.
//
// Every alias a client may send (q vs searchTerm, state vs location,
// minRating vs rating vs severity) is resolved into this struct by
// normalize.Filter before the query builder sees it. Zero values mean
// "no constraint".
type ResourceFilter struct {
	SearchTerm    string   `json:"searchTerm,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Category      string   `json:"category,omitempty"`
	ResourceType  string   `json:"resourceType,omitempty"`
	VeteranType   string   `json:"veteranType,omitempty"`
	ServiceBranch string   `json:"serviceBranch,omitempty"`
	State         string   `json:"state,omitempty"`
	MinRating     float64  `json:"minRating,omitempty"`
	SortBy        string   `json:"sortBy"`
	Page          int      `json:"page"`
	Limit         int      `json:"limit"`
	SessionID     string   `json:"sessionId,omitempty"`
}

// IsEmpty reports whether f carries no filtering constraint at all.
// Sort, pagination and session do not count as constraints.
func (f ResourceFilter) IsEmpty() bool {
	return f.SearchTerm == "" &&
		len(f.Tags) == 0 &&
		f.Category == "" &&
		f.ResourceType == "" &&
		f.VeteranType == "" &&
		f.ServiceBranch == "" &&
		f.State == "" &&
		f.MinRating <= 0
}
