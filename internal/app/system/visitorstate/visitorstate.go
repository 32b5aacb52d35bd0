// Package visitorstate keeps per-visitor saved resources, recent searches
// and cached location in a kv store.
package visitorstate

import (
	"context"
	"strings"
	"time"

	kvstore "github.com/dalemusser/vethub/internal/app/store/kv"
	"github.com/dalemusser/vethub/internal/domain/models"
)

const (
	// HistoryCap is the number of recent searches kept per visitor.
	HistoryCap = 10

	// LocationTTL is how long a cached location stays fresh.
	LocationTTL = 24 * time.Hour

	// MaxSaved bounds the saved-resource list.
	MaxSaved = 200
)

// Key prefixes. Location entries expire after LocationTTL, either through
// the purge worker or the Redis store's per-prefix expiry.
const (
	SavedPrefix    = "saved:"
	SearchesPrefix = "searches:"
	LocationPrefix = "loc:"
)

// State reads and writes visitor state.
type State struct {
	kv  kvstore.Store
	now func() time.Time
}

// New returns a State over kv.
func New(kv kvstore.Store) *State {
	return &State{kv: kv, now: time.Now}
}

// Saved returns the visitor's saved resource ids, oldest first.
func (s *State) Saved(ctx context.Context, visitorID string) ([]string, error) {
	ids := []string{}
	if _, err := kvstore.GetJSON(ctx, s.kv, SavedPrefix+visitorID, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// Save adds resourceID to the saved list if it is not already there.
func (s *State) Save(ctx context.Context, visitorID, resourceID string) ([]string, error) {
	ids, err := s.Saved(ctx, visitorID)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if id == resourceID {
			return ids, nil
		}
	}
	ids = append(ids, resourceID)
	if len(ids) > MaxSaved {
		ids = ids[len(ids)-MaxSaved:]
	}
	return ids, kvstore.SetJSON(ctx, s.kv, SavedPrefix+visitorID, ids)
}

// Unsave removes resourceID from the saved list.
func (s *State) Unsave(ctx context.Context, visitorID, resourceID string) ([]string, error) {
	ids, err := s.Saved(ctx, visitorID)
	if err != nil {
		return nil, err
	}
	out := ids[:0]
	for _, id := range ids {
		if id != resourceID {
			out = append(out, id)
		}
	}
	return out, kvstore.SetJSON(ctx, s.kv, SavedPrefix+visitorID, out)
}

// ClearSaved empties the saved list.
func (s *State) ClearSaved(ctx context.Context, visitorID string) error {
	return s.kv.Clear(ctx, SavedPrefix+visitorID)
}

// Searches returns the recent searches, most recent first.
func (s *State) Searches(ctx context.Context, visitorID string) ([]models.SavedSearch, error) {
	list := []models.SavedSearch{}
	if _, err := kvstore.GetJSON(ctx, s.kv, SearchesPrefix+visitorID, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// AddSearch records a search at the front of the history. An earlier entry
// with the same query (case-insensitive) is removed, and the history is
// capped at HistoryCap.
func (s *State) AddSearch(ctx context.Context, visitorID string, search models.SavedSearch) ([]models.SavedSearch, error) {
	search.Query = strings.TrimSpace(search.Query)
	search.Term = strings.TrimSpace(search.Term)
	if search.At.IsZero() {
		search.At = s.now().UTC()
	}
	list, err := s.Searches(ctx, visitorID)
	if err != nil {
		return nil, err
	}
	out := make([]models.SavedSearch, 0, HistoryCap)
	out = append(out, search)
	for _, prev := range list {
		if len(out) == HistoryCap {
			break
		}
		if strings.EqualFold(prev.Query, search.Query) {
			continue
		}
		out = append(out, prev)
	}
	return out, kvstore.SetJSON(ctx, s.kv, SearchesPrefix+visitorID, out)
}

// ClearSearches empties the search history.
func (s *State) ClearSearches(ctx context.Context, visitorID string) error {
	return s.kv.Clear(ctx, SearchesPrefix+visitorID)
}

// Location returns the cached location if it is still fresh.
func (s *State) Location(ctx context.Context, visitorID string) (models.CachedLocation, bool, error) {
	var loc models.CachedLocation
	ok, err := kvstore.GetJSON(ctx, s.kv, LocationPrefix+visitorID, &loc)
	if err != nil || !ok {
		return models.CachedLocation{}, false, err
	}
	if s.now().Sub(loc.At) > LocationTTL {
		return models.CachedLocation{}, false, nil
	}
	return loc, true, nil
}

// SetLocation caches state as the visitor's location.
func (s *State) SetLocation(ctx context.Context, visitorID, state string) (models.CachedLocation, error) {
	loc := models.CachedLocation{State: state, At: s.now().UTC()}
	return loc, kvstore.SetJSON(ctx, s.kv, LocationPrefix+visitorID, loc)
}
