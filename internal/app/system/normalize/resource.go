// internal/app/system/normalize/resource.go
package normalize

import (
	"math"
	"strings"

	"github.com/dalemusser/vethub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
)

// Resource returns r in canonical form:
//   - legacy single-value fields (category, veteran_type, phone, state) are
//     folded into their array/nested counterparts and cleared
//   - every set is trimmed and de-duplicated case-insensitively
//   - the state code is upper-cased, the resource type lower-cased
//   - rating is clamped to [0, 5]
//   - TitleCI is derived from Title
//   - ProviderCategory is classified when missing or invalid
//
// Resource(Resource(r)) == Resource(r).
func Resource(r models.Resource) models.Resource {
	r.ID = strings.TrimSpace(r.ID)
	r.Title = strings.TrimSpace(r.Title)
	r.TitleCI = text.Fold(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Organization = strings.TrimSpace(r.Organization)
	r.ResourceType = strings.ToLower(strings.TrimSpace(r.ResourceType))

	r.Categories = merge(r.Categories, SplitList(r.LegacyCategory))
	r.LegacyCategory = ""
	r.VeteranTypes = merge(r.VeteranTypes, SplitList(r.LegacyVeteranType...))
	r.LegacyVeteranType = nil
	r.Tags = Set(r.Tags)
	r.ServiceBranches = Set(r.ServiceBranches)
	r.VeteranEras = Set(r.VeteranEras)

	var c models.Contact
	if r.Contact != nil {
		c = *r.Contact
	}
	if strings.TrimSpace(c.Phone) == "" {
		c.Phone = r.LegacyPhone
	}
	r.Contact = contact(c)
	r.LegacyPhone = ""

	var l models.Location
	if r.Location != nil {
		l = *r.Location
	}
	if strings.TrimSpace(l.State) == "" {
		l.State = r.LegacyState
	}
	r.Location = location(l)
	r.LegacyState = ""

	r.Rating = clampRating(r.Rating)
	if r.ReviewCount < 0 {
		r.ReviewCount = 0
	}

	if !r.ProviderCategory.Valid() {
		r.ProviderCategory = ProviderCategory(r.ResourceType, r.Organization)
	}
	return r
}

func merge(a, b []string) []string {
	all := make([]string, 0, len(a)+len(b))
	all = append(all, a...)
	return Set(append(all, b...))
}

func contact(c models.Contact) *models.Contact {
	out := models.Contact{
		Phone:   strings.TrimSpace(c.Phone),
		Email:   Email(c.Email),
		Website: strings.TrimSpace(c.Website),
	}
	if out == (models.Contact{}) {
		return nil
	}
	return &out
}

func location(l models.Location) *models.Location {
	out := models.Location{
		Address: strings.TrimSpace(l.Address),
		City:    strings.TrimSpace(l.City),
		State:   StateCode(l.State),
		Zip:     strings.TrimSpace(l.Zip),
	}
	if out == (models.Location{}) {
		return nil
	}
	return &out
}

func clampRating(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 5:
		return 5
	}
	return v
}

// ProviderCategory classifies a resource by its declared type and the name
// of the organization that runs it. It is applied once at ingestion so that
// the ranker can bucket on the stored value.
func ProviderCategory(resourceType, organization string) models.ProviderCategory {
	t := strings.ToLower(strings.TrimSpace(resourceType))
	org := " " + normalizeKey(organization) + " "

	switch {
	case t == "va" || t == "veterans affairs" ||
		strings.Contains(org, " veterans affairs ") ||
		strings.Contains(org, " veterans health administration ") ||
		strings.Contains(org, " vet center "):
		return models.ProviderVA
	case t == "ngo" || t == "nonprofit" || t == "non-profit" ||
		strings.Contains(org, " ngo ") ||
		strings.Contains(org, " nonprofit ") ||
		strings.Contains(org, " non profit ") ||
		strings.Contains(org, " foundation "):
		return models.ProviderNGO
	case t == "state" || strings.HasPrefix(org, " state of "):
		return models.ProviderState
	case t == "federal":
		return models.ProviderFederal
	}
	return models.ProviderOther
}
