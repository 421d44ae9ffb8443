package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/parseldesk/backoffice/internal/domain/models"
)

// DCRepository persists distribution centers.
type DCRepository struct {
	coll *mongo.Collection
}

// Insert stores a new DC and fills in its generated id.
func (r *DCRepository) Insert(ctx context.Context, dc *models.DistributionCenter) error {
	res, err := r.coll.InsertOne(ctx, dc)
	if err != nil {
		return fmt.Errorf("insert dc: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		dc.ID = id
	}
	return nil
}

// FindByID looks a DC up by id.
func (r *DCRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.DistributionCenter, error) {
	var dc models.DistributionCenter
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&dc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find dc: %w", err)
	}
	return &dc, nil
}

// List returns one page of DCs matching the filter.
func (r *DCRepository) List(ctx context.Context, f models.DCFilter) ([]models.DistributionCenter, models.Pagination, error) {
	filter := BuildDCFilter(f)

	page := models.NormalizePage(f.Page)
	limit := models.NormalizeLimit(f.Limit)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("count dcs: %w", err)
	}

	opts := options.Find().
		SetSort(DCSort(f.SortBy, f.SortOrder)).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("find dcs: %w", err)
	}
	defer cur.Close(ctx)

	dcs := []models.DistributionCenter{}
	if err := cur.All(ctx, &dcs); err != nil {
		return nil, models.Pagination{}, fmt.Errorf("decode dcs: %w", err)
	}

	return dcs, models.NewPagination(page, limit, total), nil
}

// FindActive returns every active DC, used by the digest job.
func (r *DCRepository) FindActive(ctx context.Context) ([]models.DistributionCenter, error) {
	cur, err := r.coll.Find(ctx, bson.M{"status": models.DCStatusActive})
	if err != nil {
		return nil, fmt.Errorf("find active dcs: %w", err)
	}
	defer cur.Close(ctx)

	dcs := []models.DistributionCenter{}
	if err := cur.All(ctx, &dcs); err != nil {
		return nil, fmt.Errorf("decode dcs: %w", err)
	}
	return dcs, nil
}

// Update replaces the writable fields and returns the fresh record.
func (r *DCRepository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.DistributionCenter, error) {
	res, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("update dc: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, models.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// Delete removes a DC.
func (r *DCRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete dc: %w", err)
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
