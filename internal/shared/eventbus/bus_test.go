package eventbus

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_SubscribePublish(t *testing.T) {
	bus := New(nil)
	var called bool
	bus.Subscribe(EventTypeCollectionCleaned, func(ctx context.Context, event Event) error {
		called = true
		assert.Equal(t, EventTypeCollectionCleaned, event.Type())
		return nil
	})

	err := bus.Publish(context.Background(), NewBasicEvent(EventTypeCollectionCleaned, "questions"))
	assert.NoError(t, err)
	assert.True(t, called)
}

func TestEventBus_SyncOrderAndStopOnError(t *testing.T) {
	bus := NewWithOptions(nil, Options{})
	var order []int
	bus.Subscribe("ev", func(ctx context.Context, event Event) error {
		order = append(order, 1)
		return errors.New("boom")
	})
	bus.Subscribe("ev", func(ctx context.Context, event Event) error {
		order = append(order, 2)
		return nil
	})

	err := bus.Publish(context.Background(), NewBasicEvent("ev", nil))
	require.Error(t, err)
	assert.Equal(t, []int{1}, order)
}

func TestEventBus_AsyncJoinsErrors(t *testing.T) {
	bus := NewWithOptions(nil, Options{Async: true})
	first := errors.New("first")
	second := errors.New("second")
	var calls int32

	bus.Subscribe("ev", func(ctx context.Context, event Event) error {
		atomic.AddInt32(&calls, 1)
		return first
	})
	bus.Subscribe("ev", func(ctx context.Context, event Event) error {
		atomic.AddInt32(&calls, 1)
		return second
	})
	bus.Subscribe("ev", func(ctx context.Context, event Event) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})

	err := bus.Publish(context.Background(), NewBasicEvent("ev", nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, first)
	assert.ErrorIs(t, err, second)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := New(nil)
	bus.Subscribe("ev", func(ctx context.Context, event Event) error { return nil })
	assert.Equal(t, 1, bus.SubscriberCount("ev"))
	bus.Unsubscribe("ev")
	assert.Equal(t, 0, bus.SubscriberCount("ev"))
}

func TestEventBus_RetriesFailingHandler(t *testing.T) {
	bus := NewWithOptions(nil, Options{MaxRetries: 2, RetryDelay: time.Millisecond})
	attempts := 0
	bus.Subscribe(EventTypeCollectionCleaned, func(ctx context.Context, event Event) error {
		attempts++
		if attempts < 3 {
			return errors.New("journal unavailable")
		}
		return nil
	})

	err := bus.Publish(context.Background(), NewBasicEventWithSource(EventTypeCollectionCleaned, "questions", "seed-runner"))
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestEventBus_GivesUpAfterMaxRetries(t *testing.T) {
	bus := NewWithOptions(nil, Options{MaxRetries: 1, RetryDelay: time.Millisecond})
	cause := errors.New("journal unavailable")
	bus.Subscribe(EventTypeDocumentsInserted, func(ctx context.Context, event Event) error {
		return cause
	})

	err := bus.Publish(context.Background(), NewBasicEvent(EventTypeDocumentsInserted, 10))
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "after 2 attempts")
}

func TestEventBus_RetryStopsOnCancelledContext(t *testing.T) {
	bus := NewWithOptions(nil, Options{MaxRetries: 5, RetryDelay: time.Hour})
	attempts := 0
	bus.Subscribe("ev", func(ctx context.Context, event Event) error {
		attempts++
		return errors.New("down")
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := bus.Publish(ctx, NewBasicEvent("ev", nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}

func TestEventBus_RecoversHandlerPanic(t *testing.T) {
	bus := NewWithOptions(nil, Options{})
	bus.Subscribe("ev", func(ctx context.Context, event Event) error {
		panic("journal exploded")
	})

	err := bus.Publish(context.Background(), NewBasicEvent("ev", nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "handler panicked: journal exploded")
}

func TestEventBus_PublishWithoutHandlers(t *testing.T) {
	bus := New(nil)
	assert.NoError(t, bus.Publish(context.Background(), NewBasicEvent(EventTypeSeedFailed, nil)))
}

func TestEventBus_NegativeRetriesClamped(t *testing.T) {
	bus := NewWithOptions(nil, Options{MaxRetries: -3})
	attempts := 0
	bus.Subscribe("ev", func(ctx context.Context, event Event) error {
		attempts++
		return errors.New("down")
	})

	err := bus.Publish(context.Background(), NewBasicEvent("ev", nil))
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestBasicEvent_Accessors(t *testing.T) {
	ev := NewBasicEventWithSource(EventTypeCollectionCleaned, "questions", "seed-runner")
	assert.Equal(t, EventTypeCollectionCleaned, ev.Type())
	assert.Equal(t, "questions", ev.Data())
	assert.Equal(t, "seed-runner", ev.Source())
	assert.False(t, ev.Timestamp().IsZero())
	assert.Equal(t, "unknown", NewBasicEvent("x", nil).Source())
}

func TestSeedEventTypes(t *testing.T) {
	assert.Equal(t, []string{
		"seed.collection_cleaned",
		"seed.documents_inserted",
		"seed.failed",
	}, SeedEventTypes())
}
