package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/user-console/internal/events"
)

func TestPublishInvokesInRegistrationOrder(t *testing.T) {
	d := events.NewInMemoryDispatcher()

	var calls []string
	record := func(name string) events.EventHandler {
		return func(context.Context, events.Event) error {
			calls = append(calls, name)
			return nil
		}
	}

	d.Subscribe(events.EventUserCreated, record("first"))
	d.Subscribe(events.EventUserCreated, record("second"))
	d.Subscribe(events.EventUserDeleted, record("other"))

	require.NoError(t, d.Publish(context.Background(), events.Event{Type: events.EventUserCreated}))
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestSubscribeAllReceivesEveryEvent(t *testing.T) {
	d := events.NewInMemoryDispatcher()

	var seen []events.EventType
	d.SubscribeAll(func(_ context.Context, e events.Event) error {
		seen = append(seen, e.Type)
		return nil
	})

	ctx := context.Background()
	require.NoError(t, d.Publish(ctx, events.Event{Type: events.EventUserCreated}))
	require.NoError(t, d.Publish(ctx, events.Event{Type: events.EventUsersSaved}))

	assert.Equal(t, []events.EventType{events.EventUserCreated, events.EventUsersSaved}, seen)
}

func TestCancelRemovesHandler(t *testing.T) {
	d := events.NewInMemoryDispatcher()

	count := 0
	sub := d.Subscribe(events.EventUserCreated, func(context.Context, events.Event) error {
		count++
		return nil
	})

	ctx := context.Background()
	require.NoError(t, d.Publish(ctx, events.Event{Type: events.EventUserCreated}))

	sub.Cancel()
	sub.Cancel() // second cancel is a no-op

	require.NoError(t, d.Publish(ctx, events.Event{Type: events.EventUserCreated}))
	assert.Equal(t, 1, count)
}

func TestHandlerErrorDoesNotStopOthers(t *testing.T) {
	d := events.NewInMemoryDispatcher()

	reached := false
	d.Subscribe(events.EventError, func(context.Context, events.Event) error {
		return errors.New("boom")
	})
	d.Subscribe(events.EventError, func(context.Context, events.Event) error {
		reached = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), events.Event{Type: events.EventError}))
	assert.True(t, reached)
}
