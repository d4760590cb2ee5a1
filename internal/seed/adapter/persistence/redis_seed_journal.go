package persistence

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"techquiz-server/internal/seed/domain/model"
	"techquiz-server/internal/shared/eventbus"
	"techquiz-server/internal/shared/logger"

	"github.com/redis/go-redis/v9"
)

// defaultJournalLimit caps Recent when the caller passes a non-positive limit
const defaultJournalLimit = 20

// RedisSeedJournal records seed events in a single Redis stream
type RedisSeedJournal struct {
	client *redis.Client
	stream string
	maxLen int64
	logger logger.Logger
}

// NewRedisSeedJournal creates a journal on the given stream. maxLen <= 0
// disables trimming.
func NewRedisSeedJournal(client *redis.Client, stream string, maxLen int64, log logger.Logger) *RedisSeedJournal {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &RedisSeedJournal{
		client: client,
		stream: stream,
		maxLen: maxLen,
		logger: log.WithComponent("seed-journal"),
	}
}

// Record appends an event to the stream
func (j *RedisSeedJournal) Record(ctx context.Context, event model.SeedEvent) error {
	args := &redis.XAddArgs{
		Stream: j.stream,
		Values: eventToValues(event),
	}
	if j.maxLen > 0 {
		args.MaxLen = j.maxLen
		args.Approx = true
	}

	id, err := j.client.XAdd(ctx, args).Result()
	if err != nil {
		j.logger.WithFields(map[string]interface{}{
			"stream":     j.stream,
			"event_type": event.Type,
		}).Errorf("Failed to record seed event: %v", err)
		return err
	}

	j.logger.WithFields(map[string]interface{}{
		"stream":     j.stream,
		"event_type": event.Type,
		"message_id": id,
	}).Debug("Seed event recorded")
	return nil
}

// Recent returns the newest events first
func (j *RedisSeedJournal) Recent(ctx context.Context, limit int64) ([]model.SeedEvent, error) {
	if limit <= 0 {
		limit = defaultJournalLimit
	}

	msgs, err := j.client.XRevRangeN(ctx, j.stream, "+", "-", limit).Result()
	if err != nil {
		if err == redis.Nil {
			return []model.SeedEvent{}, nil
		}
		return nil, err
	}

	events := make([]model.SeedEvent, 0, len(msgs))
	for _, msg := range msgs {
		event, err := eventFromMessage(msg)
		if err != nil {
			j.logger.Warnf("Skipping malformed journal entry %s: %v", msg.ID, err)
			continue
		}
		events = append(events, event)
	}
	return events, nil
}

// Handle is an eventbus.Handler that journals SeedEvent payloads
func (j *RedisSeedJournal) Handle(ctx context.Context, event eventbus.Event) error {
	seedEvent, ok := event.Data().(model.SeedEvent)
	if !ok {
		return fmt.Errorf("unexpected payload %T for event %s", event.Data(), event.Type())
	}
	return j.Record(ctx, seedEvent)
}

// Subscribe registers the journal for every seed event type
func (j *RedisSeedJournal) Subscribe(bus eventbus.Bus) {
	for _, eventType := range eventbus.SeedEventTypes() {
		bus.Subscribe(eventType, j.Handle)
	}
}

func eventToValues(event model.SeedEvent) map[string]interface{} {
	return map[string]interface{}{
		"type":       event.Type,
		"runId":      event.RunID,
		"model":      event.Model,
		"collection": event.Collection,
		"database":   event.Database,
		"dropped":    strconv.FormatBool(event.Dropped),
		"inserted":   event.Inserted,
		"error":      event.Error,
		"timestamp":  event.Timestamp.UnixNano(),
	}
}

func eventFromMessage(msg redis.XMessage) (model.SeedEvent, error) {
	event := model.SeedEvent{
		ID:         msg.ID,
		Type:       stringValue(msg.Values, "type"),
		RunID:      stringValue(msg.Values, "runId"),
		Model:      stringValue(msg.Values, "model"),
		Collection: stringValue(msg.Values, "collection"),
		Database:   stringValue(msg.Values, "database"),
		Error:      stringValue(msg.Values, "error"),
	}
	if event.Type == "" {
		return event, fmt.Errorf("missing event type")
	}

	if v := stringValue(msg.Values, "dropped"); v != "" {
		dropped, err := strconv.ParseBool(v)
		if err != nil {
			return event, fmt.Errorf("invalid dropped flag: %w", err)
		}
		event.Dropped = dropped
	}

	if v := stringValue(msg.Values, "inserted"); v != "" {
		inserted, err := strconv.Atoi(v)
		if err != nil {
			return event, fmt.Errorf("invalid inserted count: %w", err)
		}
		event.Inserted = inserted
	}

	if v := stringValue(msg.Values, "timestamp"); v != "" {
		nanos, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return event, fmt.Errorf("invalid timestamp: %w", err)
		}
		event.Timestamp = time.Unix(0, nanos).UTC()
	}

	return event, nil
}

// stringValue reads a stream field; Redis returns every field as a string
func stringValue(values map[string]interface{}, key string) string {
	if v, ok := values[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprint(v)
	}
	return ""
}
