package mongodb

import (
	"context"

	"techquiz-server/internal/seed/domain/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDatabase adapts *mongo.Database to repository.Database.
// Driver errors are returned unwrapped.
type MongoDatabase struct {
	db *mongo.Database
}

// NewMongoDatabase wraps a driver database handle
func NewMongoDatabase(db *mongo.Database) *MongoDatabase {
	return &MongoDatabase{db: db}
}

// Name returns the database name
func (m *MongoDatabase) Name() string {
	return m.db.Name()
}

// Connected reports whether a driver handle is set. Safe on a nil receiver.
func (m *MongoDatabase) Connected() bool {
	return m != nil && m.db != nil
}

// ListCollections runs listCollections filtered by name and drains the cursor
func (m *MongoDatabase) ListCollections(ctx context.Context, name string) ([]model.CollectionDescriptor, error) {
	cursor, err := m.db.ListCollections(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return nil, err
	}

	var descriptors []model.CollectionDescriptor
	if err := cursor.All(ctx, &descriptors); err != nil {
		return nil, err
	}
	return descriptors, nil
}

// DropCollection drops the named collection
func (m *MongoDatabase) DropCollection(ctx context.Context, name string) error {
	return m.db.Collection(name).Drop(ctx)
}
