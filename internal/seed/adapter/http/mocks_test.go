package http_test

import (
	"context"

	"techquiz-server/internal/seed/domain/model"
	"techquiz-server/internal/seed/domain/repository"

	"github.com/stretchr/testify/mock"
)

type mockCleaner struct {
	mock.Mock
}

func (m *mockCleaner) CleanCollection(ctx context.Context, modelName, collectionName string) error {
	args := m.Called(ctx, modelName, collectionName)
	return args.Error(0)
}

func (m *mockCleaner) Clean(ctx context.Context, modelName, collectionName string) (*model.CleanResult, error) {
	args := m.Called(ctx, modelName, collectionName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CleanResult), args.Error(1)
}

type mockRunner struct {
	mock.Mock
}

func (m *mockRunner) Run(ctx context.Context) (*model.SeedReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SeedReport), args.Error(1)
}

type mockJournal struct {
	mock.Mock
}

func (m *mockJournal) Record(ctx context.Context, event model.SeedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *mockJournal) Recent(ctx context.Context, limit int64) ([]model.SeedEvent, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SeedEvent), args.Error(1)
}

type mockTokens struct {
	mock.Mock
}

func (m *mockTokens) GenerateToken(ctx context.Context, subject string) (string, error) {
	args := m.Called(ctx, subject)
	return args.String(0), args.Error(1)
}

func (m *mockTokens) ValidateToken(ctx context.Context, tokenString string) (*repository.AdminClaims, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.AdminClaims), args.Error(1)
}
