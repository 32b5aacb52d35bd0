// Package ranking orders wizard candidates into a diversified list.
//
// Rank narrows a candidate set by category, symptoms and severity, splits
// the survivors into VA, NGO and Other buckets, shuffles each bucket with
// a seed derived from the selection, and interleaves the buckets. The
// interleave favors VA providers for severe and crisis selections and NGO
// providers otherwise.
//
// Rank is pure: the same candidates and selection always produce the same
// output, and every candidate that survives filtering appears exactly once.
package ranking

import (
	"sort"
	"strings"

	"github.com/dalemusser/vethub/internal/app/system/normalize"
	"github.com/dalemusser/vethub/internal/app/system/seed"
	"github.com/dalemusser/vethub/internal/domain/models"
)

// Floor is the smallest result the soft filters may narrow to while more
// candidates are available.
const Floor = 5

// Rank returns the recommended ordering of candidates for sel.
// A selection without a known category yields an empty list.
func Rank(candidates []models.Resource, sel models.Selection) []models.Resource {
	cat, ok := models.LookupWizardCategory(sel.CategoryID)
	if !ok {
		return []models.Resource{}
	}

	pool := byCategory(dedupe(candidates), cat)
	pool = bySymptoms(pool, sel.SymptomIDs)
	pool = bySeverity(pool, sel.SeverityID)

	b := Partition(pool)
	b.shuffle(seed.ForSelection(sel))

	if sel.IsUrgent() {
		return b.urgent()
	}
	return b.standard()
}

// dedupe normalizes rs and keeps the first occurrence of each id.
func dedupe(rs []models.Resource) []models.Resource {
	out := make([]models.Resource, 0, len(rs))
	seen := make(map[string]struct{}, len(rs))
	for _, r := range rs {
		r = normalize.Resource(r)
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out
}

// InCategory reports whether r belongs to the wizard category: one of its
// categories equals a mapped display name, or contains the category id.
func InCategory(r models.Resource, cat models.WizardCategory) bool {
	for _, c := range r.Categories {
		for _, name := range cat.DisplayNames {
			if strings.EqualFold(c, name) {
				return true
			}
		}
		if strings.Contains(strings.ToLower(c), cat.ID) {
			return true
		}
	}
	return false
}

func byCategory(rs []models.Resource, cat models.WizardCategory) []models.Resource {
	out := make([]models.Resource, 0, len(rs))
	for _, r := range rs {
		if InCategory(r, cat) {
			out = append(out, r)
		}
	}
	return out
}

// bySymptoms prefers records tagged with a selected symptom, unless that
// would leave fewer than Floor records.
func bySymptoms(rs []models.Resource, symptoms []string) []models.Resource {
	if len(symptoms) == 0 {
		return rs
	}
	narrowed := make([]models.Resource, 0, len(rs))
	for _, r := range rs {
		if hasSymptom(r, symptoms) {
			narrowed = append(narrowed, r)
		}
	}
	if len(narrowed) < Floor {
		return rs
	}
	return narrowed
}

func hasSymptom(r models.Resource, symptoms []string) bool {
	for _, tag := range r.Tags {
		t := strings.ToLower(tag)
		for _, s := range symptoms {
			if strings.Contains(t, strings.ToLower(s)) {
				return true
			}
		}
	}
	return false
}

// bySeverity keeps records rated at or above the severity threshold. When
// fewer than Floor survive, it returns the Floor best-rated records
// instead, which always include every record above the threshold.
func bySeverity(rs []models.Resource, severity string) []models.Resource {
	th := models.SeverityThresholds[severity]
	if th <= 0 {
		return rs
	}
	kept := make([]models.Resource, 0, len(rs))
	for _, r := range rs {
		if r.Rating >= th {
			kept = append(kept, r)
		}
	}
	if len(kept) >= Floor {
		return kept
	}

	best := append([]models.Resource(nil), rs...)
	sort.SliceStable(best, func(i, j int) bool {
		if best[i].Rating != best[j].Rating {
			return best[i].Rating > best[j].Rating
		}
		return best[i].ID < best[j].ID
	})
	if len(best) > Floor {
		best = best[:Floor]
	}
	return best
}

// Buckets holds candidates split by provider.
type Buckets struct {
	VA    []models.Resource
	NGO   []models.Resource
	Other []models.Resource
}

// Partition splits rs by provider category. State, federal and
// unclassified providers go to Other. Records stored without a provider
// category are classified the same way ingestion would.
func Partition(rs []models.Resource) Buckets {
	var b Buckets
	for _, r := range rs {
		pc := r.ProviderCategory
		if !pc.Valid() {
			pc = normalize.ProviderCategory(r.ResourceType, r.Organization)
		}
		switch pc {
		case models.ProviderVA:
			b.VA = append(b.VA, r)
		case models.ProviderNGO:
			b.NGO = append(b.NGO, r)
		default:
			b.Other = append(b.Other, r)
		}
	}
	return b
}

func (b *Buckets) shuffle(s uint64) {
	for _, bucket := range [][]models.Resource{b.VA, b.NGO, b.Other} {
		sort.Slice(bucket, func(i, j int) bool {
			return seed.Less(s, bucket[i].ID, bucket[j].ID)
		})
	}
}
