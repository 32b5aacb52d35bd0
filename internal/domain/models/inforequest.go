// internal/domain/models/inforequest.go
package models

import "time"

// InfoRequest is a visitor's "request more information" submission for a resource.
type InfoRequest struct {
	Reference  string    `bson:"_id" json:"reference"`
	ResourceID string    `bson:"resource_id" json:"resourceId"`
	Name       string    `bson:"name" json:"name"`
	Email      string    `bson:"email" json:"email"`
	Phone      string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Message    string    `bson:"message,omitempty" json:"message,omitempty"`
	VisitorID  string    `bson:"visitor_id,omitempty" json:"-"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
}
