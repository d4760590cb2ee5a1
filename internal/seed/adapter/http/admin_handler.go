package http

import (
	"context"
	"errors"
	"strings"
	"time"

	"techquiz-server/internal/seed/domain/repository"
	"techquiz-server/internal/seed/usecase"
	apperrors "techquiz-server/internal/shared/errors"
	"techquiz-server/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultJournalLimit = 20
	maxJournalLimit     = 500
	healthTimeout       = 5 * time.Second
)

// HealthChecker reports whether the backing services are reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthCheckFunc adapts a function to HealthChecker
type HealthCheckFunc func(ctx context.Context) error

// HealthCheck implements HealthChecker
func (f HealthCheckFunc) HealthCheck(ctx context.Context) error { return f(ctx) }

// AdminHTTPHandler serves the seeding admin API
type AdminHTTPHandler struct {
	cleaner usecase.CollectionCleanerInterface
	runner  usecase.SeedRunnerInterface
	journal repository.SeedJournal
	health  HealthChecker
	logger  logger.Logger
}

// NewAdminHTTPHandler creates the handler. journal and health may be nil.
func NewAdminHTTPHandler(
	cleaner usecase.CollectionCleanerInterface,
	runner usecase.SeedRunnerInterface,
	journal repository.SeedJournal,
	health HealthChecker,
	log logger.Logger,
) *AdminHTTPHandler {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &AdminHTTPHandler{
		cleaner: cleaner,
		runner:  runner,
		journal: journal,
		health:  health,
		logger:  log.WithComponent("admin-http"),
	}
}

// RegisterRoutes mounts /health and the protected /admin/v1 group
func (h *AdminHTTPHandler) RegisterRoutes(router fiber.Router, middleware *AdminMiddleware) {
	router.Get("/health", h.Health)

	admin := router.Group("/admin/v1", middleware.Protect())
	admin.Post("/models/:model/collections/:collection/clean", h.CleanCollection)
	admin.Post("/seed", h.Seed)
	admin.Get("/journal", h.Journal)
}

// Health pings the backing services
func (h *AdminHTTPHandler) Health(c *fiber.Ctx) error {
	if h.health != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
		defer cancel()

		if err := h.health.HealthCheck(ctx); err != nil {
			h.logger.WithContext(c.UserContext()).Errorf("Health check failed: %v", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "UNHEALTHY",
				"error":  err.Error(),
			})
		}
	}

	return c.JSON(fiber.Map{
		"status":    "HEALTHY",
		"timestamp": time.Now().UTC(),
	})
}

// CleanCollection drops the named collection of a model if it exists
func (h *AdminHTTPHandler) CleanCollection(c *fiber.Ctx) error {
	modelName := c.Params("model")
	collectionName := c.Params("collection")

	result, err := h.cleaner.Clean(c.UserContext(), modelName, collectionName)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(result)
}

// Seed runs one full seeding pass
func (h *AdminHTTPHandler) Seed(c *fiber.Ctx) error {
	report, err := h.runner.Run(c.UserContext())
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(report)
}

// Journal lists the most recent seed events
func (h *AdminHTTPHandler) Journal(c *fiber.Ctx) error {
	if h.journal == nil {
		return h.writeError(c, apperrors.ErrJournalNotAvailable)
	}

	limit := c.QueryInt("limit", defaultJournalLimit)
	if limit <= 0 {
		limit = defaultJournalLimit
	}
	if limit > maxJournalLimit {
		limit = maxJournalLimit
	}

	events, err := h.journal.Recent(c.UserContext(), int64(limit))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"events": events,
		"count":  len(events),
	})
}

func (h *AdminHTTPHandler) writeError(c *fiber.Ctx, err error) error {
	log := h.logger.WithContext(c.UserContext())

	if name, ok := apperrors.LookupModel(err); ok {
		log.WithFields(map[string]interface{}{"model": name}).Warn("Unknown model requested")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "model_not_found",
			"model":   name,
			"message": err.Error(),
		})
	}

	if errors.Is(err, apperrors.ErrJournalNotAvailable) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error":   "journal_unavailable",
			"message": err.Error(),
		})
	}

	status := apperrors.StatusCode(err)
	if status >= fiber.StatusInternalServerError {
		log.Errorf("Request failed: %v", err)
	}

	body := fiber.Map{"error": "internal_error", "message": err.Error()}
	if appErr, ok := apperrors.AsAppError(err); ok {
		body["error"] = strings.ToLower(string(appErr.Type))
		body["message"] = appErr.Message
	}
	return c.Status(status).JSON(body)
}

// ErrorHandler is the fiber error handler for the admin server
func ErrorHandler(log logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}
		log.Errorf("HTTP Error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal Server Error",
		})
	}
}
