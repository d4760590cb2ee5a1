package usecase

import (
	"context"

	"techquiz-server/internal/seed/domain/model"
	"techquiz-server/internal/seed/domain/repository"

	"github.com/stretchr/testify/mock"
)

// MockDatabase is a testify mock of repository.Database
type MockDatabase struct {
	mock.Mock
	name string
}

func (m *MockDatabase) Name() string { return m.name }

func (m *MockDatabase) ListCollections(ctx context.Context, name string) ([]model.CollectionDescriptor, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CollectionDescriptor), args.Error(1)
}

func (m *MockDatabase) DropCollection(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

// memoryDatabase is an in-memory repository.Database used for end-state checks
type memoryDatabase struct {
	name        string
	collections map[string]bool
	drops       int
}

func newMemoryDatabase(name string, collections ...string) *memoryDatabase {
	db := &memoryDatabase{name: name, collections: map[string]bool{}}
	for _, c := range collections {
		db.collections[c] = true
	}
	return db
}

func (m *memoryDatabase) Name() string { return m.name }

func (m *memoryDatabase) ListCollections(ctx context.Context, name string) ([]model.CollectionDescriptor, error) {
	if !m.collections[name] {
		return []model.CollectionDescriptor{}, nil
	}
	return []model.CollectionDescriptor{{Name: name, Type: "collection"}}, nil
}

func (m *memoryDatabase) DropCollection(ctx context.Context, name string) error {
	m.drops++
	delete(m.collections, name)
	return nil
}

type stubHandle struct {
	name       string
	collection string
	db         repository.Database
}

func (h stubHandle) ModelName() string             { return h.name }
func (h stubHandle) CollectionName() string        { return h.collection }
func (h stubHandle) Database() repository.Database { return h.db }

type stubRegistry map[string]repository.ModelHandle

func (r stubRegistry) Model(name string) (repository.ModelHandle, bool) {
	h, ok := r[name]
	return h, ok
}

// MockQuestionWriter is a testify mock of repository.QuestionWriter
type MockQuestionWriter struct {
	mock.Mock
}

func (m *MockQuestionWriter) InsertQuestions(ctx context.Context, questions []model.Question) (int, error) {
	args := m.Called(ctx, questions)
	return args.Int(0), args.Error(1)
}

// stubSource returns fixed questions or an error
type stubSource struct {
	questions []model.Question
	err       error
}

func (s stubSource) LoadQuestions(ctx context.Context) ([]model.Question, error) {
	return s.questions, s.err
}
