package repository

import (
	"context"

	"techquiz-server/internal/seed/domain/model"
)

// QuestionWriter stores seed questions
type QuestionWriter interface {
	InsertQuestions(ctx context.Context, questions []model.Question) (int, error)
}

// QuestionSource provides the questions to seed
type QuestionSource interface {
	LoadQuestions(ctx context.Context) ([]model.Question, error)
}

// SeedJournal persists seed events for later inspection
type SeedJournal interface {
	Record(ctx context.Context, event model.SeedEvent) error
	Recent(ctx context.Context, limit int64) ([]model.SeedEvent, error)
}
