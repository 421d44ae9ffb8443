package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DeliveryAgent collects parcels and cash on behalf of a distribution center.
type DeliveryAgent struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name           string             `bson:"name" json:"name"`
	Phone          string             `bson:"phone" json:"phone"`
	Address        string             `bson:"address" json:"address"`
	CommissionRate float64            `bson:"commissionRate" json:"commissionRate"`
	DC             primitive.ObjectID `bson:"dc" json:"dc"`
	IsActive       bool               `bson:"isActive" json:"isActive"`
	JoiningDate    time.Time          `bson:"joiningDate" json:"joiningDate"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// AgentInput carries the writable agent fields.
type AgentInput struct {
	Name           string   `json:"name"`
	Phone          string   `json:"phone"`
	Address        string   `json:"address"`
	CommissionRate *float64 `json:"commissionRate"`
	DC             string   `json:"dc"`
	IsActive       *bool    `json:"isActive"`
	JoiningDate    string   `json:"joiningDate"`
}

// AgentFilter is the agent list query.
type AgentFilter struct {
	Search    string
	IsActive  string // "all", "true" or "false"
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// AgentAggregate is a per-agent slice of collection totals over a range.
type AgentAggregate struct {
	AgentID          string `json:"agentId"`
	AgentName        string `json:"agentName"`
	Phone            string `json:"phone,omitempty"`
	IsActive         bool   `json:"isActive"`
	TotalCollections int    `json:"totalCollections"`
	CODAmount        int64  `json:"codAmount"`
	TotalAmount      int64  `json:"totalAmount"`
	CashAmount       int64  `json:"cashAmount"`
	DigitalAmount    int64  `json:"digitalAmount"`
	ReceivedAmount   int64  `json:"receivedAmount"`
	DueAmount        int64  `json:"dueAmount"`
}

// AgentOverview is the fleet-wide statistics block.
type AgentOverview struct {
	TotalAgents        int   `json:"totalAgents"`
	ActiveAgents       int   `json:"activeAgents"`
	TotalRevenue       int64 `json:"totalRevenue"`
	TotalCashCollected int64 `json:"totalCashCollected"`
	TotalOnlineAmount  int64 `json:"totalOnlineAmount"`
	ReceivedAmount     int64 `json:"receivedAmount"`
	TotalDueAmount     int64 `json:"totalDueAmount"`
}

// AgentStats is the stats/overview response body.
type AgentStats struct {
	Overall AgentOverview    `json:"overall"`
	Agents  []AgentAggregate `json:"agents"`
}

// CashPerformance is a single-agent aggregate for a date range.
type CashPerformance struct {
	Count          int   `json:"count"`
	TotalAmount    int64 `json:"totalAmount"`
	CashAmount     int64 `json:"cashAmount"`
	DigitalAmount  int64 `json:"digitalAmount"`
	ReceivedAmount int64 `json:"receivedAmount"`
	DueAmount      int64 `json:"dueAmount"`
}

// AgentPerformance is the :id/performance response body. CashPerformance is
// a one-element array because callers index the first entry.
type AgentPerformance struct {
	Agent           *DeliveryAgent    `json:"agent,omitempty"`
	CashPerformance []CashPerformance `json:"cashPerformance"`
}
