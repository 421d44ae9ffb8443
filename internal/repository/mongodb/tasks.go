package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/parseldesk/backoffice/internal/domain/models"
)

// TaskRepository persists to-do tasks.
type TaskRepository struct {
	coll *mongo.Collection
}

// Insert stores a new task and fills in its generated id.
func (r *TaskRepository) Insert(ctx context.Context, task *models.Task) error {
	res, err := r.coll.InsertOne(ctx, task)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		task.ID = id
	}
	return nil
}

// FindByID looks a task up by id.
func (r *TaskRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	var task models.Task
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&task)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find task: %w", err)
	}
	return &task, nil
}

// List returns one page of tasks, newest first.
func (r *TaskRepository) List(ctx context.Context, f models.TaskFilter) ([]models.Task, models.Pagination, error) {
	filter := bson.M{}
	if f.Search != "" {
		rx := primitive.Regex{Pattern: regexEscape(f.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": rx},
			bson.M{"description": rx},
		}
	}

	page := models.NormalizePage(f.Page)
	limit := models.NormalizeLimit(f.Limit)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("count tasks: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("find tasks: %w", err)
	}
	defer cur.Close(ctx)

	tasks := []models.Task{}
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, models.Pagination{}, fmt.Errorf("decode tasks: %w", err)
	}

	return tasks, models.NewPagination(page, limit, total), nil
}

// Update replaces the writable fields and returns the fresh record.
func (r *TaskRepository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Task, error) {
	res, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, models.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// UpdateStatus sets only the status field.
func (r *TaskRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Task, error) {
	return r.Update(ctx, id, bson.M{"status": status, "updatedAt": time.Now().UTC()})
}

// Delete removes a task.
func (r *TaskRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
