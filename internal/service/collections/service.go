package collections

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/parseldesk/backoffice/internal/domain/models"
)

const maxNotesLen = 500

// Repository is the persistence surface the service needs.
type Repository interface {
	Insert(ctx context.Context, rec *models.CashCollection) error
	List(ctx context.Context, f models.CollectionFilter) ([]models.CashCollection, models.Pagination, error)
	FindRange(ctx context.Context, dc primitive.ObjectID, from, to time.Time) ([]models.CashCollection, error)
}

// AgentDirectory resolves delivery agents for validation and report labels.
type AgentDirectory interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.DeliveryAgent, error)
	FindAll(ctx context.Context) ([]models.DeliveryAgent, error)
}

// DCDirectory resolves distribution centers for scope validation.
type DCDirectory interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.DistributionCenter, error)
}

// Service owns cash collection recording and reporting.
type Service struct {
	repo   Repository
	agents AgentDirectory
	dcs    DCDirectory
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires the cash collection service.
func NewService(repo Repository, agents AgentDirectory, dcs DCDirectory, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, agents: agents, dcs: dcs, logger: logger, now: time.Now}
}

// TotalAmount derives the total from the cash/online split. Absent inputs
// count as zero. The total is never a free-typed value.
func TotalAmount(cash, online *int64) int64 {
	return amountOrZero(cash) + amountOrZero(online)
}

func amountOrZero(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

// Create validates and records one collection event. The stored total is
// always cash+online; cod is the collected-on-delivery value at entry and
// due is cod minus what the agent remitted (negative means overpayment).
func (s *Service) Create(ctx context.Context, in models.CollectionInput) (*models.CashCollection, error) {
	verr := models.NewValidationError()

	var agent *models.DeliveryAgent
	if in.DeliveryAgent == "" {
		verr.Add("deliveryAgent", "Delivery agent is required")
	} else if agentID, err := primitive.ObjectIDFromHex(in.DeliveryAgent); err != nil {
		verr.Add("deliveryAgent", "Invalid delivery agent")
	} else {
		agent, err = s.agents.FindByID(ctx, agentID)
		switch {
		case err == models.ErrNotFound:
			verr.Add("deliveryAgent", "Delivery agent not found")
		case err != nil:
			return nil, fmt.Errorf("look up agent: %w", err)
		case !agent.IsActive:
			verr.Add("deliveryAgent", "Delivery agent is inactive")
		}
	}

	var dc *models.DistributionCenter
	if in.DC == "" {
		verr.Add("dc", "Distribution center is required")
	} else if dcID, err := primitive.ObjectIDFromHex(in.DC); err != nil {
		verr.Add("dc", "Invalid distribution center")
	} else {
		dc, err = s.dcs.FindByID(ctx, dcID)
		if err == models.ErrNotFound {
			verr.Add("dc", "Distribution center not found")
		} else if err != nil {
			return nil, fmt.Errorf("look up dc: %w", err)
		}
	}

	if in.DeliveredParsal == nil {
		verr.Add("delivered_parsal", "Valid delivered parsal count is required")
	} else if *in.DeliveredParsal < 0 {
		verr.Add("delivered_parsal", "Delivered parsal count cannot be negative")
	}

	if in.PickupParsal == nil {
		verr.Add("pickup_parsal", "Valid pickup parsal count is required")
	} else if *in.PickupParsal < 0 {
		verr.Add("pickup_parsal", "Pickup parsal count cannot be negative")
	}

	for field, v := range map[string]*int64{
		"cash_amount":   in.CashAmount,
		"online_amount": in.OnlineAmount,
		"pay_amount":    in.PayAmount,
	} {
		if v != nil && *v < 0 {
			verr.Add(field, "Amount cannot be negative")
		}
	}

	total := TotalAmount(in.CashAmount, in.OnlineAmount)
	if in.TotalAmount != nil && *in.TotalAmount != total {
		verr.Add("total_amount", "Total amount must equal cash plus online amounts")
	}

	var collectionDate time.Time
	if in.CollectionDate == "" {
		verr.Add("collectionDate", "Collection date is required")
	} else if d, err := models.ParseDay(in.CollectionDate); err != nil {
		verr.Add("collectionDate", "Invalid collection date")
	} else {
		collectionDate = d
	}

	if len(in.Notes) > maxNotesLen {
		verr.Add("notes", "Notes cannot exceed 500 characters")
	}

	if verr.Any() {
		return nil, verr
	}

	pay := amountOrZero(in.PayAmount)
	rec := &models.CashCollection{
		DeliveryAgent:   agent.ID,
		DC:              dc.ID,
		CollectionDate:  collectionDate,
		DeliveredParsal: *in.DeliveredParsal,
		PickupParsal:    *in.PickupParsal,
		CashAmount:      amountOrZero(in.CashAmount),
		OnlineAmount:    amountOrZero(in.OnlineAmount),
		TotalAmount:     total,
		CODAmount:       total,
		PayAmount:       pay,
		DueAmount:       total - pay,
		Notes:           in.Notes,
		CreatedAt:       s.now().UTC(),
	}

	if err := s.repo.Insert(ctx, rec); err != nil {
		return nil, err
	}

	s.logger.Info("cash collection recorded",
		zap.String("agent", rec.DeliveryAgent.Hex()),
		zap.String("dc", rec.DC.Hex()),
		zap.Int64("total_amount", rec.TotalAmount),
		zap.Int64("due_amount", rec.DueAmount))

	return rec, nil
}

// List returns one page of records. The DC scope is mandatory; listing is
// never attempted without one.
func (s *Service) List(ctx context.Context, f models.CollectionFilter) ([]models.CashCollection, models.Pagination, error) {
	if f.DC == "" {
		verr := models.NewValidationError()
		verr.Add("dc", "Distribution center is required")
		return nil, models.Pagination{}, verr
	}
	return s.repo.List(ctx, f)
}

// DailyReport aggregates one day's collections for a DC into a day total
// and a per-agent breakdown.
func (s *Service) DailyReport(ctx context.Context, date, dc string) (*models.DailyReport, error) {
	verr := models.NewValidationError()

	var day time.Time
	if date == "" {
		verr.Add("date", "Report date is required")
	} else if d, err := models.ParseDay(date); err != nil {
		verr.Add("date", "Invalid report date")
	} else {
		day = d
	}

	dcID, err := primitive.ObjectIDFromHex(dc)
	if dc == "" || err != nil {
		verr.Add("dc", "Distribution center is required")
	}

	if verr.Any() {
		return nil, verr
	}

	recs, err := s.repo.FindRange(ctx, dcID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	names, err := s.agentNames(ctx)
	if err != nil {
		return nil, err
	}

	report := BuildDailyReport(recs, names)
	return &report, nil
}

// Stats aggregates a date range for a DC into an overview plus a per-day
// trend. With no bounds given, the last seven days are reported.
func (s *Service) Stats(ctx context.Context, dc, startDate, endDate string) (*models.CollectionStats, error) {
	verr := models.NewValidationError()

	dcID, err := primitive.ObjectIDFromHex(dc)
	if dc == "" || err != nil {
		verr.Add("dc", "Distribution center is required")
	}

	from, to, rerr := resolveRange(startDate, endDate, s.now().UTC())
	if rerr != nil {
		verr.Add("startDate", "Invalid date range")
	}

	if verr.Any() {
		return nil, verr
	}

	recs, err := s.repo.FindRange(ctx, dcID, from, to)
	if err != nil {
		return nil, err
	}

	stats := BuildStats(recs)
	return &stats, nil
}

// resolveRange turns optional day bounds into a half-open [from, to) window,
// defaulting to the last seven days ending today.
func resolveRange(startDate, endDate string, now time.Time) (time.Time, time.Time, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	from := today.AddDate(0, 0, -6)
	to := today.AddDate(0, 0, 1)

	if startDate != "" {
		d, err := models.ParseDay(startDate)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = d
	}
	if endDate != "" {
		d, err := models.ParseDay(endDate)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = d.AddDate(0, 0, 1)
	}

	return from, to, nil
}

func (s *Service) agentNames(ctx context.Context) (map[string]models.DeliveryAgent, error) {
	agents, err := s.agents.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	names := make(map[string]models.DeliveryAgent, len(agents))
	for _, a := range agents {
		names[a.ID.Hex()] = a
	}
	return names, nil
}
