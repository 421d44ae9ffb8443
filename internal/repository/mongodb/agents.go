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

// AgentRepository persists delivery agents.
type AgentRepository struct {
	coll *mongo.Collection
}

// Insert stores a new agent and fills in its generated id.
func (r *AgentRepository) Insert(ctx context.Context, agent *models.DeliveryAgent) error {
	res, err := r.coll.InsertOne(ctx, agent)
	if err != nil {
		return fmt.Errorf("insert agent: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		agent.ID = id
	}
	return nil
}

// FindByID looks an agent up by id.
func (r *AgentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.DeliveryAgent, error) {
	var agent models.DeliveryAgent
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&agent)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find agent: %w", err)
	}
	return &agent, nil
}

// List returns one page of agents matching the filter.
func (r *AgentRepository) List(ctx context.Context, f models.AgentFilter) ([]models.DeliveryAgent, models.Pagination, error) {
	filter := BuildAgentFilter(f)

	page := models.NormalizePage(f.Page)
	limit := models.NormalizeLimit(f.Limit)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("count agents: %w", err)
	}

	opts := options.Find().
		SetSort(AgentSort(f.SortBy, f.SortOrder)).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("find agents: %w", err)
	}
	defer cur.Close(ctx)

	agents := []models.DeliveryAgent{}
	if err := cur.All(ctx, &agents); err != nil {
		return nil, models.Pagination{}, fmt.Errorf("decode agents: %w", err)
	}

	return agents, models.NewPagination(page, limit, total), nil
}

// FindAll returns every agent, newest first. Used to resolve names in
// reports and to populate dropdowns.
func (r *AgentRepository) FindAll(ctx context.Context) ([]models.DeliveryAgent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find agents: %w", err)
	}
	defer cur.Close(ctx)

	agents := []models.DeliveryAgent{}
	if err := cur.All(ctx, &agents); err != nil {
		return nil, fmt.Errorf("decode agents: %w", err)
	}
	return agents, nil
}

// Update replaces the writable fields and returns the fresh record.
func (r *AgentRepository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.DeliveryAgent, error) {
	res, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("update agent: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, models.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// UpdateStatus flips only the active flag, leaving every other field alone.
func (r *AgentRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, isActive bool) (*models.DeliveryAgent, error) {
	set := bson.M{"isActive": isActive, "updatedAt": time.Now().UTC()}
	return r.Update(ctx, id, set)
}

// Delete removes an agent.
func (r *AgentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete agent: %w", err)
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
