package repository

import (
	"context"

	"techquiz-server/internal/seed/domain/model"
)

// Database is the slice of a document-store connection the seeding flow needs
type Database interface {
	// Name returns the database name
	Name() string
	// ListCollections returns the descriptors of collections named name
	ListCollections(ctx context.Context, name string) ([]model.CollectionDescriptor, error)
	// DropCollection irreversibly removes the collection, its documents and indexes
	DropCollection(ctx context.Context, name string) error
}

// ModelHandle binds a model name to its collection and database
type ModelHandle interface {
	ModelName() string
	CollectionName() string
	// Database may return nil when the model is not connected
	Database() Database
}

// ModelRegistry resolves model names to handles
type ModelRegistry interface {
	Model(name string) (ModelHandle, bool)
}

// Connector is implemented by databases that can report an unset driver handle
type Connector interface {
	Connected() bool
}

// IsConnected reports whether db can serve requests. A nil db, or one whose
// Connected method returns false, is unset.
func IsConnected(db Database) bool {
	if db == nil {
		return false
	}
	if c, ok := db.(Connector); ok {
		return c.Connected()
	}
	return true
}
