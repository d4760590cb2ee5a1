package seed

import (
	"context"
	"testing"

	"techquiz-server/internal/seed/config"
	"techquiz-server/internal/seed/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func testConfig() *config.Config {
	return &config.Config{
		Seed: config.SeedConfig{
			ModelName:      model.QuestionModelName,
			CollectionName: model.QuestionCollectionName,
		},
	}
}

func unconnectedDatabase(t *testing.T) *mongo.Database {
	t.Helper()
	client, err := mongo.NewClient(options.Client().ApplyURI("mongodb://localhost:27017"))
	require.NoError(t, err)
	return client.Database("techquiz_unit")
}

func TestNewSeedModule_RequiresDatabase(t *testing.T) {
	_, err := NewSeedModule(nil, testConfig(), nil, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mongo database is required")
}

func TestNewSeedModule_RequiresConfig(t *testing.T) {
	_, err := NewSeedModule(unconnectedDatabase(t), nil, nil, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config is required")
}

func TestNewSeedModule_Wiring(t *testing.T) {
	module, err := NewSeedModule(unconnectedDatabase(t), testConfig(), nil, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{model.QuestionModelName}, module.ModelNames())
	assert.Equal(t, "techquiz_unit", module.DatabaseName())
	assert.NotNil(t, module.GetCleaner())
	assert.NotNil(t, module.GetRunner())
	assert.Nil(t, module.GetJournal())
}

func TestSeedModule_UnknownModelIsLookupError(t *testing.T) {
	module, err := NewSeedModule(unconnectedDatabase(t), testConfig(), nil, nil, nil)
	require.NoError(t, err)

	err = module.GetCleaner().CleanCollection(context.Background(), "Ghost", "ghosts")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model or database connection not found for: Ghost")
}
