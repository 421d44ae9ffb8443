package expenses

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/parseldesk/backoffice/internal/domain/models"
)

// Repository is the persistence surface the service needs.
type Repository interface {
	Insert(ctx context.Context, exp *models.Expense) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Expense, error)
	List(ctx context.Context, f models.ExpenseFilter) ([]models.Expense, models.Pagination, error)
	FindMatching(ctx context.Context, f models.ExpenseFilter) ([]models.Expense, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M, unset bson.M) (*models.Expense, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Service owns expense management and reporting.
type Service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewService wires the expense service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger, now: time.Now, newID: NewExpenseID}
}

// NewExpenseID generates a human-scannable expense identifier.
func NewExpenseID() string {
	return "EXP-" + strings.ToUpper(uuid.NewString()[:8])
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func validate(in models.ExpenseInput) (*models.ValidationError, time.Time) {
	verr := models.NewValidationError()

	if in.Title == "" {
		verr.Add("title", "Title is required")
	}

	if !contains(models.ExpenseCategories, in.Category) {
		verr.Add("category", "Invalid expense category")
	}

	if in.Amount == nil || *in.Amount <= 0 {
		verr.Add("amount", "Amount must be greater than zero")
	}

	var expenseDate time.Time
	if in.ExpenseDate == "" {
		verr.Add("expenseDate", "Expense date is required")
	} else if d, err := models.ParseDay(in.ExpenseDate); err != nil {
		verr.Add("expenseDate", "Invalid expense date")
	} else {
		expenseDate = d
	}

	if !contains(models.PaymentMethods, in.PaymentMethod) {
		verr.Add("paymentMethod", "Invalid payment method")
	}

	if in.IsRecurring && !contains(models.RecurringFrequencies, in.RecurringFrequency) {
		verr.Add("recurringFrequency", "Recurring frequency is required for recurring expenses")
	}

	if in.Status != "" && !contains(models.ExpenseStatuses, in.Status) {
		verr.Add("status", "Invalid expense status")
	}

	return verr, expenseDate
}

// Create validates and stores a new expense with a generated expenseId.
func (s *Service) Create(ctx context.Context, in models.ExpenseInput) (*models.Expense, error) {
	verr, expenseDate := validate(in)
	if verr.Any() {
		return nil, verr
	}

	status := in.Status
	if status == "" {
		status = models.ExpenseStatusPending
	}

	now := s.now().UTC()
	exp := &models.Expense{
		ExpenseID:     s.newID(),
		Title:         in.Title,
		Category:      in.Category,
		Amount:        *in.Amount,
		ExpenseDate:   expenseDate,
		PaymentMethod: in.PaymentMethod,
		PaidTo:        in.PaidTo,
		Description:   in.Description,
		ReceiptNumber: in.ReceiptNumber,
		IsRecurring:   in.IsRecurring,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if in.IsRecurring {
		exp.RecurringFrequency = in.RecurringFrequency
	}

	if err := s.repo.Insert(ctx, exp); err != nil {
		return nil, err
	}

	s.logger.Info("expense created",
		zap.String("expenseId", exp.ExpenseID),
		zap.String("category", exp.Category),
		zap.Int64("amount", exp.Amount))
	return exp, nil
}

// Get returns one expense.
func (s *Service) Get(ctx context.Context, id string) (*models.Expense, error) {
	expID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotFound
	}
	return s.repo.FindByID(ctx, expID)
}

// List returns one page of expenses.
func (s *Service) List(ctx context.Context, f models.ExpenseFilter) ([]models.Expense, models.Pagination, error) {
	return s.repo.List(ctx, f)
}

// Update validates and replaces an expense's writable fields. The generated
// expenseId never changes.
func (s *Service) Update(ctx context.Context, id string, in models.ExpenseInput) (*models.Expense, error) {
	expID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotFound
	}

	verr, expenseDate := validate(in)
	if verr.Any() {
		return nil, verr
	}

	set := bson.M{
		"title":         in.Title,
		"category":      in.Category,
		"amount":        *in.Amount,
		"expenseDate":   expenseDate,
		"paymentMethod": in.PaymentMethod,
		"paidTo":        in.PaidTo,
		"description":   in.Description,
		"receiptNumber": in.ReceiptNumber,
		"isRecurring":   in.IsRecurring,
		"updatedAt":     s.now().UTC(),
	}
	if in.Status != "" {
		set["status"] = in.Status
	}

	unset := bson.M{}
	if in.IsRecurring {
		set["recurringFrequency"] = in.RecurringFrequency
	} else {
		unset["recurringFrequency"] = ""
	}

	return s.repo.Update(ctx, expID, set, unset)
}

// Delete removes an expense.
func (s *Service) Delete(ctx context.Context, id string) error {
	expID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrNotFound
	}
	return s.repo.Delete(ctx, expID)
}

// Stats aggregates the whole matched set for a date range, independent of
// the page the dashboard currently shows.
func (s *Service) Stats(ctx context.Context, startDate, endDate string) (*models.ExpenseStats, error) {
	matched, err := s.repo.FindMatching(ctx, models.ExpenseFilter{StartDate: startDate, EndDate: endDate})
	if err != nil {
		return nil, err
	}

	stats := BuildStats(matched)
	return &stats, nil
}

// MonthlyReport aggregates one calendar month by category.
func (s *Service) MonthlyReport(ctx context.Context, year, month int) (*models.MonthlyExpenseReport, error) {
	if year < 1970 || month < 1 || month > 12 {
		verr := models.NewValidationError()
		verr.Add("month", "Invalid year or month")
		return nil, verr
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).AddDate(0, 0, -1)

	matched, err := s.repo.FindMatching(ctx, models.ExpenseFilter{
		StartDate: models.DayKey(start),
		EndDate:   models.DayKey(end),
	})
	if err != nil {
		return nil, err
	}

	report := BuildMonthlyReport(year, month, matched)
	return &report, nil
}
