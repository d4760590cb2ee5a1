package mongodb

import (
	"context"
	"fmt"
	"time"

	"techquiz-server/internal/seed/domain/model"
	"techquiz-server/internal/shared/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// QuestionRepository writes seed questions to MongoDB
type QuestionRepository struct {
	collection *mongo.Collection
	logger     logger.Logger
	now        func() time.Time
}

// NewQuestionRepository creates a repository over the named collection
func NewQuestionRepository(db *mongo.Database, collectionName string, log logger.Logger) *QuestionRepository {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &QuestionRepository{
		collection: db.Collection(collectionName),
		logger:     log.WithComponent("question-repository"),
		now:        time.Now,
	}
}

// InsertQuestions inserts all questions in one ordered InsertMany.
// Missing IDs and creation times are filled in.
func (r *QuestionRepository) InsertQuestions(ctx context.Context, questions []model.Question) (int, error) {
	if len(questions) == 0 {
		return 0, nil
	}

	docs := prepareQuestionDocuments(questions, r.now().UTC())

	result, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("failed to insert questions: %w", err)
	}

	r.logger.WithContext(ctx).WithFields(map[string]interface{}{
		"collection": r.collection.Name(),
		"inserted":   len(result.InsertedIDs),
	}).Info("Inserted seed questions")

	return len(result.InsertedIDs), nil
}

// prepareQuestionDocuments copies questions into insertable documents
func prepareQuestionDocuments(questions []model.Question, now time.Time) []interface{} {
	docs := make([]interface{}, 0, len(questions))
	for _, q := range questions {
		if q.ID.IsZero() {
			q.ID = primitive.NewObjectID()
		}
		if q.CreatedAt.IsZero() {
			q.CreatedAt = now
		}
		docs = append(docs, q)
	}
	return docs
}
