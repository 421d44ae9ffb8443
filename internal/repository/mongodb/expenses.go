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

// ExpenseRepository persists business expenses.
type ExpenseRepository struct {
	coll *mongo.Collection
}

// Insert stores a new expense and fills in its generated id.
func (r *ExpenseRepository) Insert(ctx context.Context, exp *models.Expense) error {
	res, err := r.coll.InsertOne(ctx, exp)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		exp.ID = id
	}
	return nil
}

// FindByID looks an expense up by id.
func (r *ExpenseRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Expense, error) {
	var exp models.Expense
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&exp)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find expense: %w", err)
	}
	return &exp, nil
}

// List returns one page of expenses matching the filter.
func (r *ExpenseRepository) List(ctx context.Context, f models.ExpenseFilter) ([]models.Expense, models.Pagination, error) {
	filter, err := BuildExpenseFilter(f)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	page := models.NormalizePage(f.Page)
	limit := models.NormalizeLimit(f.Limit)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("count expenses: %w", err)
	}

	opts := options.Find().
		SetSort(ExpenseSort(f.SortBy, f.SortOrder)).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("find expenses: %w", err)
	}
	defer cur.Close(ctx)

	exps := []models.Expense{}
	if err := cur.All(ctx, &exps); err != nil {
		return nil, models.Pagination{}, fmt.Errorf("decode expenses: %w", err)
	}

	return exps, models.NewPagination(page, limit, total), nil
}

// FindMatching returns the full matched set for a filter, ignoring paging.
// Stats are computed over this, never over a single page.
func (r *ExpenseRepository) FindMatching(ctx context.Context, f models.ExpenseFilter) ([]models.Expense, error) {
	filter, err := BuildExpenseFilter(f)
	if err != nil {
		return nil, err
	}

	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find expenses: %w", err)
	}
	defer cur.Close(ctx)

	exps := []models.Expense{}
	if err := cur.All(ctx, &exps); err != nil {
		return nil, fmt.Errorf("decode expenses: %w", err)
	}
	return exps, nil
}

// Update replaces the writable fields and returns the fresh record.
func (r *ExpenseRepository) Update(ctx context.Context, id primitive.ObjectID, set bson.M, unset bson.M) (*models.Expense, error) {
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	res, err := r.coll.UpdateByID(ctx, id, update)
	if err != nil {
		return nil, fmt.Errorf("update expense: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, models.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// Delete removes an expense.
func (r *ExpenseRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
