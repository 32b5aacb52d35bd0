// Package normalize reconciles the loosely-shaped inputs the directory
// receives into one canonical form.
//
// Records and requests are normalized once, at the boundary, so the query
// builder and the ranker never branch on which alias or legacy field a
// client used. Every function here is idempotent.
package normalize

import (
	"strings"
)

// Email trims and lowercases an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// QueryParam trims a free-form query parameter, preserving case.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}

// FacetValue trims a facet filter value. The pseudo-value "all" (any case)
// means "no constraint" and becomes "".
func FacetValue(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "all") || strings.EqualFold(s, "any") {
		return ""
	}
	return s
}

// Set trims every element, drops empties, and removes case-insensitive
// duplicates while preserving the first spelling and order seen.
// The result is never nil.
func Set(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		k := strings.ToLower(v)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, v)
	}
	return out
}

// SplitList expands comma-separated entries, so that both
// ?tags=a,b and ?tags=a&tags=b produce [a b].
func SplitList(values ...string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			out = append(out, part)
		}
	}
	return Set(out)
}

// normalizeKey lowercases s and collapses every run of non-alphanumeric
// characters into a single space.
func normalizeKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevSpace := true
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			prevSpace = false
			continue
		}
		if !prevSpace {
			b.WriteByte(' ')
			prevSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}
