// internal/domain/models/selection.go
package models

// Wizard category identifiers.
const (
	CategoryMental   = "mental"
	CategoryPhysical = "physical"
	CategoryLife     = "life"
	CategoryCrisis   = "crisis"
)

// Wizard severity identifiers.
const (
	SeverityMild     = "mild"
	SeverityModerate = "moderate"
	SeveritySevere   = "severe"
	SeverityCrisis   = "crisis"
)

// Selection is what a visitor picked in the symptom wizard.
// SelectionHash only seeds ordering; it carries no filtering meaning.
type Selection struct {
	CategoryID    string   `json:"categoryId"`
	SymptomIDs    []string `json:"symptomIds"`
	SeverityID    string   `json:"severityId"`
	SelectionHash string   `json:"selectionHash,omitempty"`
}

// IsUrgent reports whether the severity calls for VA-first ordering.
func (s Selection) IsUrgent() bool {
	return s.SeverityID == SeveritySevere || s.SeverityID == SeverityCrisis
}

// WizardCategory describes one wizard category and the directory
// categories it maps onto.
type WizardCategory struct {
	ID           string   `json:"id"`
	Label        string   `json:"label"`
	DisplayNames []string `json:"categories"`
}

// WizardCategories is the fixed wizard category table.
var WizardCategories = []WizardCategory{
	{ID: CategoryMental, Label: "Mental & emotional health", DisplayNames: []string{"Mental Health", "Crisis Services", "Family Support"}},
	{ID: CategoryPhysical, Label: "Physical health", DisplayNames: []string{"Physical Health", "Healthcare", "Disability Services"}},
	{ID: CategoryLife, Label: "Life challenges", DisplayNames: []string{"Housing", "Employment", "Education", "Financial Assistance", "Legal Services", "Family Support"}},
	{ID: CategoryCrisis, Label: "Immediate crisis", DisplayNames: []string{"Crisis Services", "Mental Health"}},
}

// LookupWizardCategory returns the table entry for id.
func LookupWizardCategory(id string) (WizardCategory, bool) {
	for _, c := range WizardCategories {
		if c.ID == id {
			return c, true
		}
	}
	return WizardCategory{}, false
}

// SeverityThresholds maps a severity to the minimum rating a resource needs
// to be recommended at that severity.
var SeverityThresholds = map[string]float64{
	SeverityMild:     3.0,
	SeverityModerate: 3.5,
	SeveritySevere:   4.0,
	SeverityCrisis:   4.5,
}
