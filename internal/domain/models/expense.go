package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Expense categories.
var ExpenseCategories = []string{
	"rent", "utilities", "salaries", "office-supplies",
	"maintenance", "transport", "marketing", "internet-phone",
}

// Payment methods.
var PaymentMethods = []string{"cash", "bank-transfer", "card", "upi", "cheque"}

// Recurring frequencies.
var RecurringFrequencies = []string{"daily", "weekly", "monthly", "quarterly", "yearly"}

// Expense statuses.
const (
	ExpenseStatusPending  = "pending"
	ExpenseStatusApproved = "approved"
	ExpenseStatusPaid     = "paid"
	ExpenseStatusRejected = "rejected"
)

// ExpenseStatuses lists the valid status values.
var ExpenseStatuses = []string{
	ExpenseStatusPending, ExpenseStatusApproved, ExpenseStatusPaid, ExpenseStatusRejected,
}

// Expense is a business expense record.
type Expense struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ExpenseID          string             `bson:"expenseId" json:"expenseId"`
	Title              string             `bson:"title" json:"title"`
	Category           string             `bson:"category" json:"category"`
	Amount             int64              `bson:"amount" json:"amount"`
	ExpenseDate        time.Time          `bson:"expenseDate" json:"expenseDate"`
	PaymentMethod      string             `bson:"paymentMethod" json:"paymentMethod"`
	PaidTo             string             `bson:"paidTo" json:"paidTo"`
	Description        string             `bson:"description" json:"description"`
	ReceiptNumber      string             `bson:"receiptNumber" json:"receiptNumber"`
	IsRecurring        bool               `bson:"isRecurring" json:"isRecurring"`
	RecurringFrequency string             `bson:"recurringFrequency,omitempty" json:"recurringFrequency,omitempty"`
	Status             string             `bson:"status" json:"status"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ExpenseInput carries the writable expense fields.
type ExpenseInput struct {
	Title              string `json:"title"`
	Category           string `json:"category"`
	Amount             *int64 `json:"amount"`
	ExpenseDate        string `json:"expenseDate"`
	PaymentMethod      string `json:"paymentMethod"`
	PaidTo             string `json:"paidTo"`
	Description        string `json:"description"`
	ReceiptNumber      string `json:"receiptNumber"`
	IsRecurring        bool   `json:"isRecurring"`
	RecurringFrequency string `json:"recurringFrequency"`
	Status             string `json:"status"`
}

// ExpenseFilter is the expense list query.
type ExpenseFilter struct {
	Search    string
	Category  string
	Status    string
	StartDate string
	EndDate   string
	MinAmount string
	MaxAmount string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// ExpenseStats is the stats/overview response body, computed over the whole
// matched set rather than the current page.
type ExpenseStats struct {
	Total          int   `json:"total"`
	TotalAmount    int64 `json:"totalAmount"`
	PaidAmount     int64 `json:"paidAmount"`
	PendingAmount  int64 `json:"pendingAmount"`
	ApprovedAmount int64 `json:"approvedAmount"`
	RejectedAmount int64 `json:"rejectedAmount"`
}

// CategoryTotal is one row of the monthly report.
type CategoryTotal struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
	Amount   int64  `json:"amount"`
}

// MonthlyExpenseReport is the reports/monthly response body.
type MonthlyExpenseReport struct {
	Year        int             `json:"year"`
	Month       int             `json:"month"`
	Total       int             `json:"total"`
	TotalAmount int64           `json:"totalAmount"`
	Categories  []CategoryTotal `json:"categories"`
}
