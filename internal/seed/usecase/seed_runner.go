package usecase

import (
	"context"
	"fmt"
	"time"

	"techquiz-server/internal/seed/domain/model"
	"techquiz-server/internal/seed/domain/repository"
	"techquiz-server/internal/shared/eventbus"
	"techquiz-server/internal/shared/logger"
	"techquiz-server/internal/shared/utils"

	"github.com/google/uuid"
)

// SeedRunnerInterface reseeds one model's collection
type SeedRunnerInterface interface {
	Run(ctx context.Context) (*model.SeedReport, error)
}

// SeedTarget names the model and collection a runner reseeds
type SeedTarget struct {
	ModelName      string
	CollectionName string
}

// SeedRunner cleans the target collection and inserts fresh questions.
// There is no transaction around the two steps: a failed insert leaves the
// collection dropped.
type SeedRunner struct {
	target  SeedTarget
	cleaner CollectionCleanerInterface
	source  repository.QuestionSource
	writer  repository.QuestionWriter
	bus     eventbus.Bus
	logger  logger.Logger
	now     func() time.Time
	newID   func() string
}

// NewSeedRunner creates a runner. bus may be nil.
func NewSeedRunner(
	target SeedTarget,
	cleaner CollectionCleanerInterface,
	source repository.QuestionSource,
	writer repository.QuestionWriter,
	bus eventbus.Bus,
	log logger.Logger,
) *SeedRunner {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &SeedRunner{
		target:  target,
		cleaner: cleaner,
		source:  source,
		writer:  writer,
		bus:     bus,
		logger:  log.WithComponent("seed-runner"),
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Run executes one seeding pass. Errors from the clean step are returned
// unchanged so callers can inspect lookup and driver failures directly.
func (r *SeedRunner) Run(ctx context.Context) (*model.SeedReport, error) {
	report := &model.SeedReport{
		RunID:      r.newID(),
		Model:      r.target.ModelName,
		Collection: r.target.CollectionName,
		StartedAt:  r.now().UTC(),
	}
	ctx = utils.WithRunID(ctx, report.RunID)
	log := r.logger.WithContext(ctx)

	log.Infof("Seeding %s into collection %s", report.Model, report.Collection)

	cleaned, err := r.cleaner.Clean(ctx, report.Model, report.Collection)
	if err != nil {
		r.publishFailure(ctx, report, err)
		return nil, err
	}
	report.Database = cleaned.Database
	report.Dropped = cleaned.Dropped
	r.publish(ctx, eventbus.EventTypeCollectionCleaned, report, nil)

	questions, err := r.source.LoadQuestions(ctx)
	if err != nil {
		r.publishFailure(ctx, report, err)
		return nil, fmt.Errorf("failed to load seed questions: %w", err)
	}

	inserted, err := r.writer.InsertQuestions(ctx, questions)
	if err != nil {
		r.publishFailure(ctx, report, err)
		return nil, err
	}
	report.Inserted = inserted
	report.FinishedAt = r.now().UTC()
	r.publish(ctx, eventbus.EventTypeDocumentsInserted, report, nil)

	log.WithFields(map[string]interface{}{
		"dropped":     report.Dropped,
		"inserted":    report.Inserted,
		"duration_ms": report.Duration().Milliseconds(),
	}).Info("Seeding completed")

	return report, nil
}

func (r *SeedRunner) publishFailure(ctx context.Context, report *model.SeedReport, cause error) {
	r.logger.WithContext(ctx).Errorf("Seeding failed: %v", cause)
	r.publish(ctx, eventbus.EventTypeSeedFailed, report, cause)
}

// publish emits a journal event. Bus failures are logged, never returned.
func (r *SeedRunner) publish(ctx context.Context, eventType string, report *model.SeedReport, cause error) {
	if r.bus == nil {
		return
	}

	event := model.SeedEvent{
		Type:       eventType,
		RunID:      report.RunID,
		Model:      report.Model,
		Collection: report.Collection,
		Database:   report.Database,
		Dropped:    report.Dropped,
		Inserted:   report.Inserted,
		Timestamp:  r.now().UTC(),
	}
	if cause != nil {
		event.Error = cause.Error()
	}

	if err := r.bus.Publish(ctx, eventbus.NewBasicEventWithSource(eventType, event, "seed-runner")); err != nil {
		r.logger.WithContext(ctx).Warnf("Failed to publish %s event: %v", eventType, err)
	}
}
