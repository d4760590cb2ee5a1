package mongodb

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"techquiz-server/internal/seed/domain/repository"
	"techquiz-server/internal/seed/usecase"
	apperrors "techquiz-server/internal/shared/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func newUnconnectedDatabase(t *testing.T) *MongoDatabase {
	t.Helper()
	client, err := mongo.NewClient(options.Client().ApplyURI("mongodb://localhost:27017"))
	require.NoError(t, err)
	return NewMongoDatabase(client.Database("techquiz"))
}

func TestModelRegistry_RegisterAndLookup(t *testing.T) {
	registry := NewModelRegistry()
	db := newUnconnectedDatabase(t)

	require.NoError(t, registry.Register("Question", "questions", db))

	handle, ok := registry.Model("Question")
	require.True(t, ok)
	assert.Equal(t, "Question", handle.ModelName())
	assert.Equal(t, "questions", handle.CollectionName())
	assert.Same(t, db, handle.Database())

	_, ok = registry.Model("Quiz")
	assert.False(t, ok)
}

func TestModelRegistry_UnconnectedModel(t *testing.T) {
	registry := NewModelRegistry()
	require.NoError(t, registry.Register("Question", "questions", nil))

	handle, ok := registry.Model("Question")
	require.True(t, ok)
	assert.Nil(t, handle.Database())
}

func TestModelRegistry_DatabaseWithoutDriverHandle(t *testing.T) {
	var unset *MongoDatabase
	tests := []struct {
		name string
		db   repository.Database
	}{
		{"typed nil", unset},
		{"nil driver database", NewMongoDatabase(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewModelRegistry()
			require.NoError(t, registry.Register("Question", "questions", tt.db))

			handle, ok := registry.Model("Question")
			require.True(t, ok)
			assert.Nil(t, handle.Database())

			cleaner := usecase.NewCollectionCleaner(registry, nil, nil)
			err := cleaner.CleanCollection(context.Background(), "Question", "questions")
			require.Error(t, err)
			assert.True(t, apperrors.IsLookup(err))
			name, _ := apperrors.LookupModel(err)
			assert.Equal(t, "Question", name)
		})
	}
}

func TestMongoDatabase_Connected(t *testing.T) {
	var unset *MongoDatabase
	assert.False(t, unset.Connected())
	assert.False(t, NewMongoDatabase(nil).Connected())
	assert.True(t, newUnconnectedDatabase(t).Connected())
}

func TestModelRegistry_RejectsInvalidRegistrations(t *testing.T) {
	registry := NewModelRegistry()

	err := registry.Register("", "questions", nil)
	assert.True(t, apperrors.IsValidation(err))

	err = registry.Register("Question", "", nil)
	assert.True(t, apperrors.IsValidation(err))

	require.NoError(t, registry.Register("Question", "questions", nil))
	err = registry.Register("Question", "questions_v2", nil)
	assert.True(t, apperrors.IsConflict(err))
}

func TestModelRegistry_NamesSorted(t *testing.T) {
	registry := NewModelRegistry()
	require.NoError(t, registry.Register("User", "users", nil))
	require.NoError(t, registry.Register("Question", "questions", nil))
	require.NoError(t, registry.Register("Answer", "answers", nil))

	assert.Equal(t, []string{"Answer", "Question", "User"}, registry.Names())
}

func TestModelRegistry_ConcurrentAccess(t *testing.T) {
	registry := NewModelRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = registry.Register(fmt.Sprintf("Model%d", i), "c", nil)
		}(i)
		go func(i int) {
			defer wg.Done()
			registry.Model(fmt.Sprintf("Model%d", i))
		}(i)
	}
	wg.Wait()
	assert.Len(t, registry.Names(), 20)
}
