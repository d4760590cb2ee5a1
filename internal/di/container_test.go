package di

import (
	"context"
	"os"
	"testing"
	"time"

	"techquiz-server/internal/seed/config"
	apperrors "techquiz-server/internal/shared/errors"
	"techquiz-server/internal/shared/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() *config.Config {
	return &config.Config{
		Mongo: config.MongoConfig{
			URI:            "mongodb://localhost:27017",
			DatabaseName:   "techquiz",
			ConnectTimeout: 2 * time.Second,
		},
		Seed: config.SeedConfig{
			ModelName:      "Question",
			CollectionName: "questions",
		},
		Log: config.LogConfig{Level: "error", Format: "text", Backend: logger.BackendLogrus},
		Admin: config.AdminConfig{
			JWTIssuer: "techquiz-seed-admin",
			TokenTTL:  time.Minute,
		},
	}
}

func TestNewContainer_BuildsLoggerFromConfig(t *testing.T) {
	c := NewContainer(baseConfig(), nil)
	assert.NotNil(t, c.Logger)
	assert.Nil(t, c.GetSeedModule())
}

func TestHealthCheck_NotInitialized(t *testing.T) {
	c := NewContainer(baseConfig(), logger.NewNopLogger())

	err := c.HealthCheck(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not initialized")
	assert.Equal(t, 503, apperrors.StatusCode(err))
}

func TestClose_NothingInitialized(t *testing.T) {
	c := NewContainer(baseConfig(), logger.NewNopLogger())
	assert.NoError(t, c.Close())
}

func TestInitialize_InvalidConfig(t *testing.T) {
	cfg := baseConfig()
	cfg.Mongo.URI = ""
	c := NewContainer(cfg, logger.NewNopLogger())

	err := c.Initialize(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
	assert.Nil(t, c.Connection)
}

func TestInitializeAdmin(t *testing.T) {
	cfg := baseConfig()
	c := NewContainer(cfg, logger.NewNopLogger())

	err := c.InitializeAdmin()
	require.Error(t, err)
	assert.Nil(t, c.TokenService)

	cfg.Admin.JWTSecret = "admin-secret-for-tests-0123456789"
	require.NoError(t, c.InitializeAdmin())
	assert.NotNil(t, c.TokenService)
}

func TestInitialize_Integration(t *testing.T) {
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set, skipping integration test")
	}

	cfg := baseConfig()
	cfg.Mongo.URI = uri
	cfg.Mongo.DatabaseName = "techquiz_it_" + uuid.NewString()[:8]
	c := NewContainer(cfg, logger.NewNopLogger())
	defer func() { assert.NoError(t, c.Close()) }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	require.NoError(t, c.Initialize(ctx))
	require.NoError(t, c.HealthCheck(ctx))

	report, err := c.GetSeedModule().GetRunner().Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, report.Inserted)
	assert.False(t, report.Dropped)

	report, err = c.GetSeedModule().GetRunner().Run(ctx)
	require.NoError(t, err)
	assert.True(t, report.Dropped)

	db, err := c.Connection.Database(cfg.Mongo.DatabaseName)
	require.NoError(t, err)
	_ = db.Drop(ctx)
}
