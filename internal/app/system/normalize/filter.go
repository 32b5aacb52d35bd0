// internal/app/system/normalize/filter.go
package normalize

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/dalemusser/vethub/internal/app/system/paging"
	"github.com/dalemusser/vethub/internal/domain/models"
)

// Rating aliases in precedence order. The first alias present with a
// non-empty value decides the minimum rating, even if a later alias is
// also supplied.
var ratingAliases = []string{"minRating", "rating", "severity"}

// Filter resolves the request aliases into a canonical ResourceFilter.
//
//	searchTerm | q | search        -> SearchTerm
//	tags ∪ symptoms                -> Tags
//	location | state               -> State
//	minRating > rating > severity  -> MinRating
//	sessionId | sid                -> SessionID
//
// Malformed numbers fall back to defaults (page 1, limit 30, rating 0).
func Filter(v url.Values) models.ResourceFilter {
	return models.ResourceFilter{
		SearchTerm:    first(v, "searchTerm", "q", "search"),
		Tags:          tagList(v),
		Category:      FacetValue(v.Get("category")),
		ResourceType:  strings.ToLower(FacetValue(v.Get("resourceType"))),
		VeteranType:   FacetValue(v.Get("veteranType")),
		ServiceBranch: FacetValue(v.Get("serviceBranch")),
		State:         StateCode(FacetValue(first(v, "location", "state"))),
		MinRating:     MinRating(v),
		SortBy:        SortBy(v.Get("sortBy")),
		Page:          paging.ClampPage(v.Get("page")),
		Limit:         paging.ClampLimit(v.Get("limit")),
		SessionID:     first(v, "sessionId", "sid"),
	}
}

// MinRating resolves the rating aliases. A named severity (mild, moderate,
// severe, crisis) maps to its threshold. The result is clamped to [0, 5].
func MinRating(v url.Values) float64 {
	for _, alias := range ratingAliases {
		raw := strings.TrimSpace(v.Get(alias))
		if raw == "" {
			continue
		}
		if th, ok := models.SeverityThresholds[strings.ToLower(raw)]; ok {
			return th
		}
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0
		}
		return clampRating(n)
	}
	return 0
}

// SortBy maps the accepted sort names and their aliases onto the four
// canonical sort orders. Anything unrecognized sorts by relevance.
func SortBy(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rating", "highest-rated", "top-rated":
		return models.SortRating
	case "name", "alphabetical", "title", "a-z":
		return models.SortName
	case "date", "newest", "recent", "updated":
		return models.SortDate
	}
	return models.SortRelevance
}

// Selection builds a canonical wizard selection. Unknown categories and
// severities become "" (the ranker treats a missing category as a no-op
// and a missing severity as non-urgent with no rating floor).
func Selection(categoryID string, symptomIDs []string, severityID, selectionHash string) models.Selection {
	cat := strings.ToLower(strings.TrimSpace(categoryID))
	if _, ok := models.LookupWizardCategory(cat); !ok {
		cat = ""
	}
	sev := strings.ToLower(strings.TrimSpace(severityID))
	if _, ok := models.SeverityThresholds[sev]; !ok {
		sev = ""
	}
	symptoms := SplitList(symptomIDs...)
	for i := range symptoms {
		symptoms[i] = strings.ToLower(symptoms[i])
	}
	sort.Strings(symptoms)

	return models.Selection{
		CategoryID:    cat,
		SymptomIDs:    symptoms,
		SeverityID:    sev,
		SelectionHash: strings.TrimSpace(selectionHash),
	}
}

func tagList(v url.Values) []string {
	raw := make([]string, 0, len(v["tags"])+len(v["symptoms"]))
	raw = append(raw, v["tags"]...)
	raw = append(raw, v["symptoms"]...)
	return SplitList(raw...)
}

func first(v url.Values, keys ...string) string {
	for _, k := range keys {
		if s := QueryParam(v.Get(k)); s != "" {
			return s
		}
	}
	return ""
}
