package tasks

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/parseldesk/backoffice/internal/domain/models"
)

// Defaults applied when a task omits the optional labels.
const (
	DefaultTags   = "medium"
	DefaultStatus = "pending"
)

// Repository is the persistence surface the service needs.
type Repository interface {
	Insert(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error)
	List(ctx context.Context, f models.TaskFilter) ([]models.Task, models.Pagination, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Task, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Task, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Service owns to-do task management. There is no status machine; status is
// a plain label.
type Service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires the task service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger, now: time.Now}
}

func validate(in models.TaskInput) *models.ValidationError {
	verr := models.NewValidationError()
	if in.Title == "" {
		verr.Add("title", "Title is required")
	}
	return verr
}

// Create validates and stores a new task.
func (s *Service) Create(ctx context.Context, in models.TaskInput) (*models.Task, error) {
	if verr := validate(in); verr.Any() {
		return nil, verr
	}

	tags := in.Tags
	if tags == "" {
		tags = DefaultTags
	}

	now := s.now().UTC()
	task := &models.Task{
		Title:       in.Title,
		Description: in.Description,
		Tags:        tags,
		Status:      DefaultStatus,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info("task created", zap.String("task", task.ID.Hex()))
	return task, nil
}

// Get returns one task.
func (s *Service) Get(ctx context.Context, id string) (*models.Task, error) {
	taskID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotFound
	}
	return s.repo.FindByID(ctx, taskID)
}

// List returns one page of tasks.
func (s *Service) List(ctx context.Context, f models.TaskFilter) ([]models.Task, models.Pagination, error) {
	return s.repo.List(ctx, f)
}

// Update validates and replaces a task's writable fields.
func (s *Service) Update(ctx context.Context, id string, in models.TaskInput) (*models.Task, error) {
	taskID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotFound
	}

	if verr := validate(in); verr.Any() {
		return nil, verr
	}

	tags := in.Tags
	if tags == "" {
		tags = DefaultTags
	}

	set := bson.M{
		"title":       in.Title,
		"description": in.Description,
		"tags":        tags,
		"updatedAt":   s.now().UTC(),
	}
	return s.repo.Update(ctx, taskID, set)
}

// SetStatus sets the status label.
func (s *Service) SetStatus(ctx context.Context, id, status string) (*models.Task, error) {
	taskID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotFound
	}

	if status == "" {
		verr := models.NewValidationError()
		verr.Add("status", "Status is required")
		return nil, verr
	}

	return s.repo.UpdateStatus(ctx, taskID, status)
}

// Delete removes a task.
func (s *Service) Delete(ctx context.Context, id string) error {
	taskID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrNotFound
	}
	return s.repo.Delete(ctx, taskID)
}
