package eventbus

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Event is anything published on the bus.
type Event interface {
	Name() string
}

type Listener func(ctx context.Context, event Event) error

type Bus struct {
	listeners map[string][]Listener
	mu        sync.RWMutex
	logger    *zap.Logger
	timeout   time.Duration
}

func New(logger *zap.Logger) *Bus {
	return &Bus{
		listeners: make(map[string][]Listener),
		logger:    logger,
		timeout:   time.Minute,
	}
}

func (b *Bus) Subscribe(eventName string, listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[eventName] = append(b.listeners[eventName], listener)
}

// Publish runs every listener of the event on its own goroutine. Listener
// errors are logged, never returned to the publisher.
func (b *Bus) Publish(_ context.Context, event Event) {
	b.mu.RLock()
	listeners := append([]Listener(nil), b.listeners[event.Name()]...)
	b.mu.RUnlock()

	for _, listener := range listeners {
		go func(l Listener) {
			ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
			defer cancel()

			if err := l(ctx, event); err != nil {
				b.logger.Error("event listener failed",
					zap.String("event", event.Name()),
					zap.Error(err),
				)
			}
		}(listener)
	}
}
