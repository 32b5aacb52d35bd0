package resourcesearch

import (
	"strings"

	"github.com/dalemusser/vethub/internal/domain/models"
)

// Match reports whether r satisfies f. It is the in-memory counterpart of
// the filter Build produces and must agree with it.
func Match(r models.Resource, f models.ResourceFilter) bool {
	if f.SearchTerm != "" {
		if !containsFold(r.Title, f.SearchTerm) &&
			!containsFold(r.Description, f.SearchTerm) &&
			!containsFold(r.Organization, f.SearchTerm) &&
			!anyContainsFold(r.Tags, f.SearchTerm) {
			return false
		}
	}
	if len(f.Tags) > 0 && !matchesAnyTag(r, f.Tags) {
		return false
	}
	if f.Category != "" && !anyEqualFold(r.Categories, f.Category) {
		return false
	}
	if f.ResourceType != "" &&
		!strings.EqualFold(r.ResourceType, f.ResourceType) &&
		!strings.EqualFold(string(r.ProviderCategory), f.ResourceType) {
		return false
	}
	if f.VeteranType != "" && !anyEqualFold(r.VeteranTypes, f.VeteranType) {
		return false
	}
	if f.ServiceBranch != "" && !anyEqualFold(r.ServiceBranches, f.ServiceBranch) {
		return false
	}
	if f.State != "" && r.StateCode() != f.State {
		return false
	}
	if f.MinRating > 0 && r.Rating < f.MinRating {
		return false
	}
	return true
}

// Filter returns the records of rs that match f, in their original order.
func Filter(rs []models.Resource, f models.ResourceFilter) []models.Resource {
	out := make([]models.Resource, 0, len(rs))
	for _, r := range rs {
		if Match(r, f) {
			out = append(out, r)
		}
	}
	return out
}

func matchesAnyTag(r models.Resource, tags []string) bool {
	for _, t := range tags {
		if anyContainsFold(r.Tags, t) || containsFold(r.Title, t) || containsFold(r.Description, t) {
			return true
		}
	}
	return false
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func anyContainsFold(values []string, sub string) bool {
	for _, v := range values {
		if containsFold(v, sub) {
			return true
		}
	}
	return false
}

func anyEqualFold(values []string, s string) bool {
	for _, v := range values {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
