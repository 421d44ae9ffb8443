package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/parseldesk/backoffice/internal/domain/models"
)

// CollectionRepository persists cash collection records. Records are
// insert-only; reports read ranges of them.
type CollectionRepository struct {
	coll *mongo.Collection
}

// Insert stores a new collection record and fills in its generated id.
func (r *CollectionRepository) Insert(ctx context.Context, rec *models.CashCollection) error {
	res, err := r.coll.InsertOne(ctx, rec)
	if err != nil {
		return fmt.Errorf("insert cash collection: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		rec.ID = id
	}
	return nil
}

// List returns one page of collection records matching the filter.
func (r *CollectionRepository) List(ctx context.Context, f models.CollectionFilter) ([]models.CashCollection, models.Pagination, error) {
	filter, err := BuildCollectionFilter(f)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	page := models.NormalizePage(f.Page)
	limit := models.NormalizeLimit(f.Limit)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("count cash collections: %w", err)
	}

	opts := options.Find().
		SetSort(CollectionSort(f.SortBy, f.SortOrder)).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("find cash collections: %w", err)
	}
	defer cur.Close(ctx)

	recs := []models.CashCollection{}
	if err := cur.All(ctx, &recs); err != nil {
		return nil, models.Pagination{}, fmt.Errorf("decode cash collections: %w", err)
	}

	return recs, models.NewPagination(page, limit, total), nil
}

// FindRange returns every collection record for a DC whose collection date
// falls in [from, to). Report aggregation happens in the service layer.
func (r *CollectionRepository) FindRange(ctx context.Context, dc primitive.ObjectID, from, to time.Time) ([]models.CashCollection, error) {
	filter := bson.M{
		"dc":             dc,
		"collectionDate": bson.M{"$gte": from, "$lt": to},
	}

	opts := options.Find().SetSort(bson.D{{Key: "collectionDate", Value: 1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find cash collections in range: %w", err)
	}
	defer cur.Close(ctx)

	recs := []models.CashCollection{}
	if err := cur.All(ctx, &recs); err != nil {
		return nil, fmt.Errorf("decode cash collections: %w", err)
	}
	return recs, nil
}

// FindAgentRange returns one agent's records across all DCs in [from, to).
func (r *CollectionRepository) FindAgentRange(ctx context.Context, agent primitive.ObjectID, from, to time.Time) ([]models.CashCollection, error) {
	filter := bson.M{
		"deliveryAgent":  agent,
		"collectionDate": bson.M{"$gte": from, "$lt": to},
	}

	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find agent cash collections: %w", err)
	}
	defer cur.Close(ctx)

	recs := []models.CashCollection{}
	if err := cur.All(ctx, &recs); err != nil {
		return nil, fmt.Errorf("decode cash collections: %w", err)
	}
	return recs, nil
}

// FindAllRange returns every record across DCs in [from, to), used by the
// fleet-wide agent statistics.
func (r *CollectionRepository) FindAllRange(ctx context.Context, from, to time.Time) ([]models.CashCollection, error) {
	filter := bson.M{"collectionDate": bson.M{"$gte": from, "$lt": to}}

	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find cash collections in range: %w", err)
	}
	defer cur.Close(ctx)

	recs := []models.CashCollection{}
	if err := cur.All(ctx, &recs); err != nil {
		return nil, fmt.Errorf("decode cash collections: %w", err)
	}
	return recs, nil
}
