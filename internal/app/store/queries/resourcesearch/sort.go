package resourcesearch

import (
	"sort"
	"strings"

	"github.com/dalemusser/vethub/internal/app/system/seed"
	"github.com/dalemusser/vethub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
)

type sortKey struct {
	field string
	dir   int // 1 ascending, -1 descending
}

// alternates is the fixed table a session seed chooses a secondary
// ordering from.
var alternates = []sortKey{
	{"review_count", -1},
	{"last_updated", -1},
	{"title_ci", 1},
	{"created_at", -1},
	{"rating", -1},
}

var tieBreak = sortKey{"_id", 1}

// sessionKeyFor returns the alternate key a session id selects.
func sessionKeyFor(sessionID string) sortKey {
	return alternates[seed.Pick(seed.ForSession(sessionID), len(alternates))]
}

func primaryKeys(sortBy string) []sortKey {
	switch sortBy {
	case models.SortRating:
		return []sortKey{{"rating", -1}}
	case models.SortName:
		return []sortKey{{"title_ci", 1}}
	case models.SortDate:
		return []sortKey{{"last_updated", -1}}
	}
	return []sortKey{
		{"is_featured", -1},
		{"is_verified", -1},
		{"is_veteran_led", -1},
		{"rating", -1},
	}
}

// sortKeys resolves the full ordering for f: the primary keys, the
// session alternate (if any, and not already present), then _id.
func sortKeys(f models.ResourceFilter) []sortKey {
	keys := primaryKeys(f.SortBy)
	if f.SessionID != "" {
		alt := sessionKeyFor(f.SessionID)
		dup := false
		for _, k := range keys {
			if k.field == alt.field {
				dup = true
				break
			}
		}
		if !dup {
			keys = append(keys, alt)
		}
	}
	return append(keys, tieBreak)
}

func sortDoc(keys []sortKey) bson.D {
	d := make(bson.D, 0, len(keys))
	for _, k := range keys {
		d = append(d, bson.E{Key: k.field, Value: k.dir})
	}
	return d
}

// Sort orders rs in place under f's ordering.
func Sort(rs []models.Resource, f models.ResourceFilter) {
	keys := sortKeys(f)
	sort.SliceStable(rs, func(i, j int) bool { return lessBy(keys, rs[i], rs[j]) })
}

func lessBy(keys []sortKey, a, b models.Resource) bool {
	for _, k := range keys {
		if c := compareField(a, b, k.field); c != 0 {
			return c*k.dir < 0
		}
	}
	return false
}

func compareField(a, b models.Resource, field string) int {
	switch field {
	case "is_featured":
		return compareBool(a.IsFeatured, b.IsFeatured)
	case "is_verified":
		return compareBool(a.IsVerified, b.IsVerified)
	case "is_veteran_led":
		return compareBool(a.IsVeteranLed, b.IsVeteranLed)
	case "rating":
		return compareFloat(a.Rating, b.Rating)
	case "review_count":
		return compareInt(a.ReviewCount, b.ReviewCount)
	case "title_ci":
		return strings.Compare(a.TitleCI, b.TitleCI)
	case "last_updated":
		return a.LastUpdated.Compare(b.LastUpdated)
	case "created_at":
		return a.CreatedAt.Compare(b.CreatedAt)
	case "_id":
		return strings.Compare(a.ID, b.ID)
	}
	return 0
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	}
	return -1
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
