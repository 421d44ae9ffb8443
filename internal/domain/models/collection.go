package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CashCollection records one settlement event between an agent and a DC:
// how many parcels moved and how the money came in. Records are immutable
// once created; reports aggregate them, nothing mutates them.
type CashCollection struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	DeliveryAgent   primitive.ObjectID `bson:"deliveryAgent" json:"deliveryAgent"`
	DC              primitive.ObjectID `bson:"dc" json:"dc"`
	CollectionDate  time.Time          `bson:"collectionDate" json:"collectionDate"`
	DeliveredParsal int                `bson:"delivered_parsal" json:"delivered_parsal"`
	PickupParsal    int                `bson:"pickup_parsal" json:"pickup_parsal"`
	CashAmount      int64              `bson:"cash_amount" json:"cash_amount"`
	OnlineAmount    int64              `bson:"online_amount" json:"online_amount"`
	TotalAmount     int64              `bson:"total_amount" json:"total_amount"`
	CODAmount       int64              `bson:"cod_amount" json:"cod_amount"`
	PayAmount       int64              `bson:"pay_amount" json:"pay_amount"`
	DueAmount       int64              `bson:"due_amount" json:"due_amount"`
	Notes           string             `bson:"notes" json:"notes"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}

// CollectionInput is the create request body. Amount pointers distinguish
// "absent" (defaults to 0) from an explicit value; TotalAmount is accepted
// only to be checked against cash+online, never stored as sent.
type CollectionInput struct {
	DeliveryAgent   string `json:"deliveryAgent"`
	DC              string `json:"dc"`
	CollectionDate  string `json:"collectionDate"`
	DeliveredParsal *int   `json:"delivered_parsal"`
	PickupParsal    *int   `json:"pickup_parsal"`
	CashAmount      *int64 `json:"cash_amount"`
	OnlineAmount    *int64 `json:"online_amount"`
	TotalAmount     *int64 `json:"total_amount"`
	PayAmount       *int64 `json:"pay_amount"`
	Notes           string `json:"notes"`
}

// CollectionFilter is the collection list query. DC is the mandatory scope.
type CollectionFilter struct {
	DC        string
	Agent     string // "all" or an agent id
	StartDate string
	EndDate   string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// DayTotal is one day-and-scope aggregate of collections.
type DayTotal struct {
	TotalCollections int   `json:"totalCollections"`
	CODAmount        int64 `json:"codAmount"`
	TotalAmount      int64 `json:"totalAmount"`
	ReceivedAmount   int64 `json:"receivedAmount"`
	CashAmount       int64 `json:"cashAmount"`
	DigitalAmount    int64 `json:"digitalAmount"`
	DueAmount        int64 `json:"dueAmount"`
}

// DailyReport is the reports/daily response body.
type DailyReport struct {
	DayTotal         DayTotal         `json:"dayTotal"`
	AgentCollections []AgentAggregate `json:"agentCollections"`
}

// TrendPoint is one day of the stats trend. The ID field carries the
// YYYY-MM-DD date key, matching the grouped shape the dashboard renders.
type TrendPoint struct {
	ID              string `json:"_id"`
	CollectionCount int    `json:"collectionCount"`
	CODAmount       int64  `json:"codAmount"`
	TotalAmount     int64  `json:"totalAmount"`
	CashAmount      int64  `json:"cashAmount"`
	DigitalAmount   int64  `json:"digitalAmount"`
	ReceivedAmount  int64  `json:"receivedAmount"`
	DueAmount       int64  `json:"dueAmount"`
}

// CollectionStats is the stats/overview response body.
type CollectionStats struct {
	TotalCollections int          `json:"totalCollections"`
	CODAmount        int64        `json:"codAmount"`
	TotalAmount      int64        `json:"totalAmount"`
	CashAmount       int64        `json:"cashAmount"`
	DigitalAmount    int64        `json:"digitalAmount"`
	ReceivedAmount   int64        `json:"receivedAmount"`
	DueAmount        int64        `json:"dueAmount"`
	DailyTrend       []TrendPoint `json:"dailyTrend"`
}
