package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	usersColl       = "users"
	dcsColl         = "dcs"
	agentsColl      = "delivery_agents"
	collectionsColl = "cash_collections"
	expensesColl    = "expenses"
	tasksColl       = "tasks"
)

// Store wraps the shared MongoDB client and hands out per-entity repositories.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// New connects to MongoDB and verifies the connection.
func New(ctx context.Context, uri string, dbName string) (*Store, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Store{client: client, db: client.Database(dbName)}, nil
}

// Close closes the MongoDB connection.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Users returns the user repository.
func (s *Store) Users() *UserRepository {
	return &UserRepository{coll: s.db.Collection(usersColl)}
}

// DCs returns the distribution center repository.
func (s *Store) DCs() *DCRepository {
	return &DCRepository{coll: s.db.Collection(dcsColl)}
}

// Agents returns the delivery agent repository.
func (s *Store) Agents() *AgentRepository {
	return &AgentRepository{coll: s.db.Collection(agentsColl)}
}

// Collections returns the cash collection repository.
func (s *Store) Collections() *CollectionRepository {
	return &CollectionRepository{coll: s.db.Collection(collectionsColl)}
}

// Expenses returns the expense repository.
func (s *Store) Expenses() *ExpenseRepository {
	return &ExpenseRepository{coll: s.db.Collection(expensesColl)}
}

// Tasks returns the task repository.
func (s *Store) Tasks() *TaskRepository {
	return &TaskRepository{coll: s.db.Collection(tasksColl)}
}
