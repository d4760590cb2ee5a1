package seed

import (
	"fmt"

	adminhttp "techquiz-server/internal/seed/adapter/http"
	"techquiz-server/internal/seed/adapter/persistence"
	"techquiz-server/internal/seed/adapter/persistence/mongodb"
	"techquiz-server/internal/seed/adapter/seeddata"
	"techquiz-server/internal/seed/config"
	"techquiz-server/internal/seed/domain/model"
	"techquiz-server/internal/seed/domain/repository"
	"techquiz-server/internal/seed/usecase"
	"techquiz-server/internal/shared/eventbus"
	"techquiz-server/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"
)

// SeedModule represents the complete seeding module
type SeedModule struct {
	registry *mongodb.ModelRegistry
	database *mongodb.MongoDatabase
	cleaner  *usecase.CollectionCleaner
	runner   *usecase.SeedRunner
	journal  repository.SeedJournal
	bus      eventbus.Bus
	config   *config.Config
	logger   logger.Logger
}

// NewSeedModule wires the registry, cleaner and runner for db.
// journal may be nil when the Redis journal is disabled.
func NewSeedModule(
	db *mongo.Database,
	cfg *config.Config,
	bus eventbus.Bus,
	journal *persistence.RedisSeedJournal,
	log logger.Logger,
) (*SeedModule, error) {
	if db == nil {
		return nil, fmt.Errorf("mongo database is required")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if log == nil {
		log = logger.NewNopLogger()
	}
	if bus == nil {
		bus = eventbus.New(log.WithComponent("eventbus"))
	}

	mongoDB := mongodb.NewMongoDatabase(db)

	registry := mongodb.NewModelRegistry()
	if err := registry.Register(model.QuestionModelName, model.QuestionCollectionName, mongoDB); err != nil {
		return nil, fmt.Errorf("failed to register question model: %w", err)
	}

	cleaner := usecase.NewCollectionCleaner(registry, mongoDB, log)
	source := seeddata.NewFileSource(cfg.Seed.DataFile)
	writer := mongodb.NewQuestionRepository(db, cfg.Seed.CollectionName, log)
	target := usecase.SeedTarget{
		ModelName:      cfg.Seed.ModelName,
		CollectionName: cfg.Seed.CollectionName,
	}
	runner := usecase.NewSeedRunner(target, cleaner, source, writer, bus, log)

	module := &SeedModule{
		registry: registry,
		database: mongoDB,
		cleaner:  cleaner,
		runner:   runner,
		bus:      bus,
		config:   cfg,
		logger:   log.WithComponent("seed-module"),
	}

	if journal != nil {
		journal.Subscribe(bus)
		module.journal = journal
	}

	return module, nil
}

// RegisterRoutes registers the admin routes with the provided router
func (m *SeedModule) RegisterRoutes(router fiber.Router, tokens repository.TokenService, health adminhttp.HealthChecker) {
	middleware := adminhttp.NewAdminMiddleware(tokens)
	handler := adminhttp.NewAdminHTTPHandler(m.cleaner, m.runner, m.journal, health, m.logger)

	router.Use(middleware.RequestID(), middleware.SecurityHeaders())
	handler.RegisterRoutes(router, middleware)
}

// GetCleaner returns the collection cleaner
func (m *SeedModule) GetCleaner() usecase.CollectionCleanerInterface {
	return m.cleaner
}

// GetRunner returns the seed runner for the configured target
func (m *SeedModule) GetRunner() usecase.SeedRunnerInterface {
	return m.runner
}

// GetJournal returns the seed journal, or nil when disabled
func (m *SeedModule) GetJournal() repository.SeedJournal {
	return m.journal
}

// ModelNames returns the registered model names
func (m *SeedModule) ModelNames() []string {
	return m.registry.Names()
}

// DatabaseName returns the name of the seeded database
func (m *SeedModule) DatabaseName() string {
	return m.database.Name()
}
