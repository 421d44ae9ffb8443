package dcs

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/parseldesk/backoffice/internal/domain/models"
)

// Repository is the persistence surface the service needs.
type Repository interface {
	Insert(ctx context.Context, dc *models.DistributionCenter) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.DistributionCenter, error)
	List(ctx context.Context, f models.DCFilter) ([]models.DistributionCenter, models.Pagination, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.DistributionCenter, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Service owns distribution center management.
type Service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires the DC service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger, now: time.Now}
}

func validate(in models.DCInput) *models.ValidationError {
	verr := models.NewValidationError()
	if in.Name == "" {
		verr.Add("dc_name", "DC name is required")
	}
	if in.Area == "" {
		verr.Add("area", "Area is required")
	}
	if in.Status != "" && in.Status != models.DCStatusActive && in.Status != models.DCStatusInactive {
		verr.Add("status", "Status must be active or inactive")
	}
	return verr
}

// Create validates and stores a new DC. Status defaults to active.
func (s *Service) Create(ctx context.Context, in models.DCInput) (*models.DistributionCenter, error) {
	if verr := validate(in); verr.Any() {
		return nil, verr
	}

	status := in.Status
	if status == "" {
		status = models.DCStatusActive
	}

	now := s.now().UTC()
	dc := &models.DistributionCenter{
		Name:        in.Name,
		Area:        in.Area,
		Description: in.Description,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, dc); err != nil {
		return nil, err
	}

	s.logger.Info("dc created", zap.String("dc", dc.ID.Hex()), zap.String("name", dc.Name))
	return dc, nil
}

// Get returns one DC.
func (s *Service) Get(ctx context.Context, id string) (*models.DistributionCenter, error) {
	dcID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotFound
	}
	return s.repo.FindByID(ctx, dcID)
}

// List returns one page of DCs.
func (s *Service) List(ctx context.Context, f models.DCFilter) ([]models.DistributionCenter, models.Pagination, error) {
	return s.repo.List(ctx, f)
}

// Update validates and replaces a DC's writable fields.
func (s *Service) Update(ctx context.Context, id string, in models.DCInput) (*models.DistributionCenter, error) {
	dcID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotFound
	}

	if verr := validate(in); verr.Any() {
		return nil, verr
	}

	set := bson.M{
		"dc_name":     in.Name,
		"area":        in.Area,
		"description": in.Description,
		"updatedAt":   s.now().UTC(),
	}
	if in.Status != "" {
		set["status"] = in.Status
	}

	return s.repo.Update(ctx, dcID, set)
}

// Delete removes a DC. Agents referencing it keep their stored reference.
func (s *Service) Delete(ctx context.Context, id string) error {
	dcID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrNotFound
	}
	return s.repo.Delete(ctx, dcID)
}
