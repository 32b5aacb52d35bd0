package models

import (
	"time"
)

// Resource is one entry in the veteran resource directory.
//
// Records arrive from seed files and partner feeds in several legacy shapes.
// The Legacy* fields capture those shapes on input; normalize.Resource folds
// them into the canonical fields and clears them before anything is stored.
type Resource struct {
	ID      string `bson:"_id" json:"id"`
	Title   string `bson:"title" json:"title"`
	TitleCI string `bson:"title_ci" json:"-"` // lowercase, diacritics-stripped

	Description string `bson:"description,omitempty" json:"description,omitempty"`

	Categories []string `bson:"categories" json:"categories"`
	Tags       []string `bson:"tags" json:"tags"`

	Rating      float64 `bson:"rating" json:"rating"`
	ReviewCount int     `bson:"review_count,omitempty" json:"reviewCount,omitempty"`

	ResourceType     string           `bson:"resource_type,omitempty" json:"resourceType,omitempty"`
	Organization     string           `bson:"organization,omitempty" json:"organization,omitempty"`
	ProviderCategory ProviderCategory `bson:"provider_category" json:"providerCategory"`

	IsVerified   bool `bson:"is_verified" json:"isVerified"`
	IsVeteranLed bool `bson:"is_veteran_led" json:"isVeteranLed"`
	IsFeatured   bool `bson:"is_featured" json:"isFeatured"`

	ServiceBranches []string `bson:"service_branches,omitempty" json:"serviceBranches,omitempty"`
	VeteranEras     []string `bson:"veteran_eras,omitempty" json:"veteranEras,omitempty"`
	VeteranTypes    []string `bson:"veteran_types,omitempty" json:"veteranTypes,omitempty"`

	Location *Location `bson:"location,omitempty" json:"location,omitempty"`
	Contact  *Contact  `bson:"contact,omitempty" json:"contact,omitempty"`

	LastUpdated time.Time `bson:"last_updated" json:"lastUpdated"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`

	LegacyCategory    string     `bson:"category,omitempty" json:"category,omitempty"`
	LegacyVeteranType StringList `bson:"veteran_type,omitempty" json:"veteranType,omitempty"`
	LegacyPhone       string     `bson:"phone,omitempty" json:"phone,omitempty"`
	LegacyState       string     `bson:"state,omitempty" json:"state,omitempty"`
}

// Location is a resource's postal address. Only State is used for filtering.
type Location struct {
	Address string `bson:"address,omitempty" json:"address,omitempty"`
	City    string `bson:"city,omitempty" json:"city,omitempty"`
	State   string `bson:"state,omitempty" json:"state,omitempty"` // two-letter code, upper case
	Zip     string `bson:"zip,omitempty" json:"zip,omitempty"`
}

// Contact holds the ways to reach a resource's provider.
type Contact struct {
	Phone   string `bson:"phone,omitempty" json:"phone,omitempty"`
	Email   string `bson:"email,omitempty" json:"email,omitempty"`
	Website string `bson:"website,omitempty" json:"website,omitempty"`
}

// StateCode returns the record's state code, or "" when it has no location.
func (r Resource) StateCode() string {
	if r.Location == nil {
		return ""
	}
	return r.Location.State
}
