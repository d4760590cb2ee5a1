package mongodb

import (
	"sort"
	"sync"

	"techquiz-server/internal/seed/domain/repository"
	apperrors "techquiz-server/internal/shared/errors"
)

// Model binds a model name to a collection in a database
type Model struct {
	name       string
	collection string
	db         repository.Database
}

// ModelName returns the registry name
func (m *Model) ModelName() string { return m.name }

// CollectionName returns the collection the model is stored in
func (m *Model) CollectionName() string { return m.collection }

// Database returns the model's database handle, or nil if unconnected
func (m *Model) Database() repository.Database { return m.db }

// ModelRegistry maps model names to models. Safe for concurrent use.
type ModelRegistry struct {
	mu     sync.RWMutex
	models map[string]*Model
}

// NewModelRegistry creates an empty registry
func NewModelRegistry() *ModelRegistry {
	return &ModelRegistry{models: make(map[string]*Model)}
}

// Register adds a model. db may be nil to register a not-yet-connected model;
// a db without a driver handle is stored as nil.
func (r *ModelRegistry) Register(name, collectionName string, db repository.Database) error {
	if name == "" {
		return apperrors.NewValidationError("model name cannot be empty")
	}
	if collectionName == "" {
		return apperrors.NewValidationError("collection name cannot be empty").WithDetail("model", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.models[name]; exists {
		return apperrors.NewConflictError("model already registered: " + name).WithDetail("model", name)
	}

	if !repository.IsConnected(db) {
		db = nil
	}
	r.models[name] = &Model{name: name, collection: collectionName, db: db}
	return nil
}

// Model looks up a model by name
func (r *ModelRegistry) Model(name string) (repository.ModelHandle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.models[name]
	if !ok {
		return nil, false
	}
	return m, true
}

// Names returns the registered model names, sorted
func (r *ModelRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
