package eventbus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type pingEvent struct{ value int }

func (pingEvent) Name() string { return "ping" }

func TestBus_PublishDeliversToAllListeners(t *testing.T) {
	bus := New(zap.NewNop())
	got := make(chan int, 2)

	bus.Subscribe("ping", func(_ context.Context, e Event) error {
		got <- e.(pingEvent).value
		return nil
	})
	bus.Subscribe("ping", func(_ context.Context, e Event) error {
		got <- e.(pingEvent).value * 10
		return errors.New("listener failure is only logged")
	})

	bus.Publish(context.Background(), pingEvent{value: 4})

	received := map[int]bool{}
	for i := 0; i < 2; i++ {
		select {
		case v := <-got:
			received[v] = true
		case <-time.After(time.Second):
			t.Fatal("listener was not called")
		}
	}
	assert.True(t, received[4])
	assert.True(t, received[40])
}

func TestBus_PublishWithoutListeners(t *testing.T) {
	bus := New(zap.NewNop())
	assert.NotPanics(t, func() { bus.Publish(context.Background(), pingEvent{}) })
}
