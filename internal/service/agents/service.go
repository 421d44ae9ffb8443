package agents

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/parseldesk/backoffice/internal/domain/models"
)

const (
	maxNameLen    = 100
	maxAddressLen = 500
)

// Repository is the persistence surface the service needs.
type Repository interface {
	Insert(ctx context.Context, agent *models.DeliveryAgent) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.DeliveryAgent, error)
	List(ctx context.Context, f models.AgentFilter) ([]models.DeliveryAgent, models.Pagination, error)
	FindAll(ctx context.Context) ([]models.DeliveryAgent, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.DeliveryAgent, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, isActive bool) (*models.DeliveryAgent, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// CollectionSource feeds the analytics views with raw collection records.
type CollectionSource interface {
	FindAllRange(ctx context.Context, from, to time.Time) ([]models.CashCollection, error)
	FindAgentRange(ctx context.Context, agent primitive.ObjectID, from, to time.Time) ([]models.CashCollection, error)
}

// DCDirectory resolves distribution centers for reference validation.
type DCDirectory interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.DistributionCenter, error)
}

// Service owns delivery agent management and analytics.
type Service struct {
	repo        Repository
	collections CollectionSource
	dcs         DCDirectory
	logger      *zap.Logger
	now         func() time.Time
}

// NewService wires the delivery agent service.
func NewService(repo Repository, collections CollectionSource, dcs DCDirectory, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, collections: collections, dcs: dcs, logger: logger, now: time.Now}
}

// validate checks the writable fields shared by create and update.
func (s *Service) validate(ctx context.Context, in models.AgentInput) (*models.DistributionCenter, time.Time, *models.ValidationError, error) {
	verr := models.NewValidationError()

	if in.Name == "" {
		verr.Add("name", "Agent name is required")
	} else if len(in.Name) > maxNameLen {
		verr.Add("name", "Agent name cannot exceed 100 characters")
	}

	if in.Phone == "" {
		verr.Add("phone", "Phone number is required")
	}

	if len(in.Address) > maxAddressLen {
		verr.Add("address", "Address cannot exceed 500 characters")
	}

	if in.CommissionRate != nil && (*in.CommissionRate < 0 || *in.CommissionRate > 100) {
		verr.Add("commissionRate", "Commission rate must be between 0 and 100")
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
			return nil, time.Time{}, nil, fmt.Errorf("look up dc: %w", err)
		}
	}

	joining := s.now().UTC()
	if in.JoiningDate != "" {
		d, err := models.ParseDay(in.JoiningDate)
		if err != nil {
			verr.Add("joiningDate", "Invalid joining date")
		} else {
			joining = d
		}
	}

	return dc, joining, verr, nil
}

// Create validates and stores a new agent.
func (s *Service) Create(ctx context.Context, in models.AgentInput) (*models.DeliveryAgent, error) {
	dc, joining, verr, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}
	if verr.Any() {
		return nil, verr
	}

	now := s.now().UTC()
	agent := &models.DeliveryAgent{
		Name:        in.Name,
		Phone:       in.Phone,
		Address:     in.Address,
		DC:          dc.ID,
		IsActive:    true,
		JoiningDate: joining,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.CommissionRate != nil {
		agent.CommissionRate = *in.CommissionRate
	}
	if in.IsActive != nil {
		agent.IsActive = *in.IsActive
	}

	if err := s.repo.Insert(ctx, agent); err != nil {
		return nil, err
	}

	s.logger.Info("delivery agent created",
		zap.String("agent", agent.ID.Hex()),
		zap.String("dc", agent.DC.Hex()))
	return agent, nil
}

// Get returns one agent.
func (s *Service) Get(ctx context.Context, id string) (*models.DeliveryAgent, error) {
	agentID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotFound
	}
	return s.repo.FindByID(ctx, agentID)
}

// List returns one page of agents.
func (s *Service) List(ctx context.Context, f models.AgentFilter) ([]models.DeliveryAgent, models.Pagination, error) {
	return s.repo.List(ctx, f)
}

// Update validates and replaces an agent's writable fields.
func (s *Service) Update(ctx context.Context, id string, in models.AgentInput) (*models.DeliveryAgent, error) {
	agentID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotFound
	}

	dc, joining, verr, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}
	if verr.Any() {
		return nil, verr
	}

	set := bson.M{
		"name":        in.Name,
		"phone":       in.Phone,
		"address":     in.Address,
		"dc":          dc.ID,
		"joiningDate": joining,
		"updatedAt":   s.now().UTC(),
	}
	if in.CommissionRate != nil {
		set["commissionRate"] = *in.CommissionRate
	}
	if in.IsActive != nil {
		set["isActive"] = *in.IsActive
	}

	return s.repo.Update(ctx, agentID, set)
}

// SetStatus flips only the active flag.
func (s *Service) SetStatus(ctx context.Context, id string, isActive bool) (*models.DeliveryAgent, error) {
	agentID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotFound
	}

	agent, err := s.repo.UpdateStatus(ctx, agentID, isActive)
	if err != nil {
		return nil, err
	}

	s.logger.Info("agent status updated",
		zap.String("agent", id),
		zap.Bool("isActive", isActive))
	return agent, nil
}

// Delete removes an agent.
func (s *Service) Delete(ctx context.Context, id string) error {
	agentID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrNotFound
	}
	return s.repo.Delete(ctx, agentID)
}

// Stats produces fleet-wide statistics plus an agent-wise breakdown over an
// optional date range. Agents without activity still appear with zeros.
func (s *Service) Stats(ctx context.Context, startDate, endDate string) (*models.AgentStats, error) {
	from, to, err := openRange(startDate, endDate, s.now().UTC())
	if err != nil {
		verr := models.NewValidationError()
		verr.Add("startDate", "Invalid date range")
		return nil, verr
	}

	agents, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	recs, err := s.collections.FindAllRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	stats := BuildAgentStats(agents, recs)
	return &stats, nil
}

// Performance returns one agent's aggregate for an optional date range.
// CashPerformance always holds exactly one element; an empty range yields
// a zero aggregate.
func (s *Service) Performance(ctx context.Context, id, startDate, endDate string) (*models.AgentPerformance, error) {
	agentID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotFound
	}

	agent, err := s.repo.FindByID(ctx, agentID)
	if err != nil {
		return nil, err
	}

	from, to, err := openRange(startDate, endDate, s.now().UTC())
	if err != nil {
		verr := models.NewValidationError()
		verr.Add("startDate", "Invalid date range")
		return nil, verr
	}

	recs, err := s.collections.FindAgentRange(ctx, agentID, from, to)
	if err != nil {
		return nil, err
	}

	perf := BuildPerformance(recs)
	return &models.AgentPerformance{Agent: agent, CashPerformance: []models.CashPerformance{perf}}, nil
}

// openRange turns optional day bounds into a half-open [from, to) window
// covering all time when both are absent.
func openRange(startDate, endDate string, now time.Time) (time.Time, time.Time, error) {
	from := time.Unix(0, 0).UTC()
	to := now.AddDate(0, 0, 1)

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
