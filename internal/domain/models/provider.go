// internal/domain/models/provider.go
package models

// ProviderCategory says who runs a resource. It is stored on every record in
// the provider_category field and is assigned at ingestion time.
type ProviderCategory string

// Canonical provider categories.
const (
	ProviderVA      ProviderCategory = "va"
	ProviderNGO     ProviderCategory = "ngo"
	ProviderState   ProviderCategory = "state"
	ProviderFederal ProviderCategory = "federal"
	ProviderOther   ProviderCategory = "other"
)

// ProviderCategories is the full set of allowed provider categories.
var ProviderCategories = []ProviderCategory{
	ProviderVA,
	ProviderNGO,
	ProviderState,
	ProviderFederal,
	ProviderOther,
}

// Valid reports whether p is one of the canonical provider categories.
func (p ProviderCategory) Valid() bool {
	for _, c := range ProviderCategories {
		if p == c {
			return true
		}
	}
	return false
}
