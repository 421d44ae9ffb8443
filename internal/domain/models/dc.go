package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DC statuses.
const (
	DCStatusActive   = "active"
	DCStatusInactive = "inactive"
)

// DistributionCenter is a hub that owns delivery agents and scopes
// cash-collection queries and reports.
type DistributionCenter struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"dc_name" json:"dc_name"`
	Area        string             `bson:"area" json:"area"`
	Description string             `bson:"description" json:"description"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DCInput carries the writable DC fields.
type DCInput struct {
	Name        string `json:"dc_name"`
	Area        string `json:"area"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// DCFilter is the DC list query.
type DCFilter struct {
	Search    string
	Status    string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}
