package usecase

import (
	"context"

	"techquiz-server/internal/seed/domain/model"
	"techquiz-server/internal/seed/domain/repository"
	apperrors "techquiz-server/internal/shared/errors"
	"techquiz-server/internal/shared/logger"
)

// CollectionCleanerInterface removes a model's collection ahead of reseeding
type CollectionCleanerInterface interface {
	CleanCollection(ctx context.Context, modelName, collectionName string) error
	Clean(ctx context.Context, modelName, collectionName string) (*model.CleanResult, error)
}

// CollectionCleaner drops a collection if it exists.
// The existence check runs on the model's own database handle; the drop goes
// through the injected connection.
type CollectionCleaner struct {
	registry repository.ModelRegistry
	conn     repository.Database
	logger   logger.Logger
}

// NewCollectionCleaner creates a cleaner bound to a registry and a connection
func NewCollectionCleaner(registry repository.ModelRegistry, conn repository.Database, log logger.Logger) *CollectionCleaner {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &CollectionCleaner{
		registry: registry,
		conn:     conn,
		logger:   log.WithComponent("collection-cleaner"),
	}
}

// CleanCollection drops collectionName when present. A missing collection is
// not an error. Lookup failures return a lookup AppError; driver failures are
// returned as-is.
func (c *CollectionCleaner) CleanCollection(ctx context.Context, modelName, collectionName string) error {
	_, err := c.Clean(ctx, modelName, collectionName)
	return err
}

// Clean is CleanCollection reporting whether a drop happened
func (c *CollectionCleaner) Clean(ctx context.Context, modelName, collectionName string) (*model.CleanResult, error) {
	log := c.logger.WithContext(ctx).WithFields(map[string]interface{}{
		"model":      modelName,
		"collection": collectionName,
	})

	db, err := c.lookup(modelName)
	if err != nil {
		log.Warn("Model lookup failed")
		return nil, err
	}

	result := &model.CleanResult{
		Model:      modelName,
		Collection: collectionName,
		Database:   db.Name(),
	}

	collections, err := db.ListCollections(ctx, collectionName)
	if err != nil {
		log.Errorf("Failed to list collections: %v", err)
		return nil, err
	}

	if !model.HasCollection(collections, collectionName) {
		log.Debug("Collection not present, nothing to drop")
		return result, nil
	}

	if err := c.dropper(db).DropCollection(ctx, collectionName); err != nil {
		log.Errorf("Failed to drop collection: %v", err)
		return nil, err
	}

	result.Dropped = true
	log.Info("Collection dropped")
	return result, nil
}

func (c *CollectionCleaner) lookup(modelName string) (repository.Database, error) {
	if c.registry == nil {
		return nil, apperrors.NewLookupError(modelName)
	}
	handle, ok := c.registry.Model(modelName)
	if !ok || handle == nil {
		return nil, apperrors.NewLookupError(modelName)
	}
	db := handle.Database()
	if !repository.IsConnected(db) {
		return nil, apperrors.NewLookupError(modelName)
	}
	return db, nil
}

// dropper returns the connection the drop is issued on
func (c *CollectionCleaner) dropper(modelDB repository.Database) repository.Database {
	if repository.IsConnected(c.conn) {
		return c.conn
	}
	return modelDB
}
