// Package eventbus delivers seed run events to in-process subscribers such
// as the Redis journal.
package eventbus

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"techquiz-server/internal/shared/logger"
)

// Event is a typed payload published on a Bus
type Event interface {
	Type() string
	Data() interface{}
	Timestamp() time.Time
	Source() string
}

// Handler consumes one event. A returned error triggers a retry.
type Handler func(ctx context.Context, event Event) error

// Bus is the publish/subscribe contract used by the seed runner
type Bus interface {
	Subscribe(eventType string, handler Handler)
	Publish(ctx context.Context, event Event) error
	Unsubscribe(eventType string)
	SubscriberCount(eventType string) int
}

// Options tunes delivery. MaxRetries counts extra attempts after the first.
type Options struct {
	Async      bool
	MaxRetries int
	RetryDelay time.Duration
}

// DefaultOptions delivers synchronously with two retries
func DefaultOptions() Options {
	return Options{MaxRetries: 2, RetryDelay: 50 * time.Millisecond}
}

// MemoryBus is an in-process Bus. Handlers run in subscription order
// unless Options.Async is set.
type MemoryBus struct {
	mu          sync.RWMutex
	subscribers map[string][]Handler
	log         logger.Logger
	opts        Options
}

// New creates a MemoryBus with DefaultOptions
func New(log logger.Logger) *MemoryBus {
	return NewWithOptions(log, DefaultOptions())
}

func NewWithOptions(log logger.Logger, opts Options) *MemoryBus {
	if log == nil {
		log = logger.NewNopLogger()
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	return &MemoryBus{
		subscribers: make(map[string][]Handler),
		log:         log,
		opts:        opts,
	}
}

func (b *MemoryBus) Subscribe(eventType string, handler Handler) {
	b.mu.Lock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
	b.mu.Unlock()
}

// Publish delivers event to every handler of its type. In sync mode the first
// failing handler stops delivery; in async mode all handler errors are joined.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.subscribers[event.Type()]...)
	b.mu.RUnlock()

	switch {
	case len(handlers) == 0:
		return nil
	case b.opts.Async:
		return b.deliverAll(ctx, event, handlers)
	}

	for i, h := range handlers {
		if err := b.deliver(ctx, event, h, i); err != nil {
			return err
		}
	}
	return nil
}

func (b *MemoryBus) deliverAll(ctx context.Context, event Event, handlers []Handler) error {
	errs := make([]error, len(handlers))

	var wg sync.WaitGroup
	wg.Add(len(handlers))
	for i, h := range handlers {
		go func(i int, h Handler) {
			defer wg.Done()
			errs[i] = b.deliver(ctx, event, h, i)
		}(i, h)
	}
	wg.Wait()

	return errors.Join(errs...)
}

// deliver runs h with retries. The wait between attempts is abandoned when
// ctx is done.
func (b *MemoryBus) deliver(ctx context.Context, event Event, h Handler, idx int) error {
	var err error
	for attempt := 1; attempt <= b.opts.MaxRetries+1; attempt++ {
		if attempt > 1 {
			b.log.Warnf("Retrying %s handler %d (attempt %d/%d)", event.Type(), idx, attempt, b.opts.MaxRetries+1)

			timer := time.NewTimer(b.opts.RetryDelay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return fmt.Errorf("%s handler %d: %w", event.Type(), idx, ctx.Err())
			case <-timer.C:
			}
		}

		if err = invoke(ctx, h, event); err == nil {
			return nil
		}
		b.log.Errorf("%s handler %d failed: %v", event.Type(), idx, err)
	}

	return fmt.Errorf("handler failed after %d attempts: %w", b.opts.MaxRetries+1, err)
}

func invoke(ctx context.Context, h Handler, event Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return h(ctx, event)
}

// Unsubscribe drops every handler of eventType
func (b *MemoryBus) Unsubscribe(eventType string) {
	b.mu.Lock()
	delete(b.subscribers, eventType)
	b.mu.Unlock()
}

func (b *MemoryBus) SubscriberCount(eventType string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers[eventType])
}
