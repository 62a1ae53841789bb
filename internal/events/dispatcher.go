package events

import (
	"context"
	"sync"
)

// EventHandler handles a published event.
type EventHandler func(context.Context, Event) error

// Subscription is the handle returned on registration; cancelling it
// deterministically removes the handler. Cancel is safe to call more than
// once.
type Subscription struct {
	once   sync.Once
	cancel func()
}

// Cancel unregisters the handler.
func (s *Subscription) Cancel() {
	if s == nil || s.cancel == nil {
		return
	}
	s.once.Do(s.cancel)
}

// Dispatcher interface allows event publication/subscription.
type Dispatcher interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType EventType, handler EventHandler) *Subscription
	SubscribeAll(handler EventHandler) *Subscription
}

type listener struct {
	id      uint64
	handler EventHandler
}

// inMemoryDispatcher is a simple synchronous dispatcher.
type inMemoryDispatcher struct {
	mu        sync.RWMutex
	nextID    uint64
	listeners map[EventType][]listener
	wildcards []listener
}

// NewInMemoryDispatcher creates a dispatcher instance.
func NewInMemoryDispatcher() Dispatcher {
	return &inMemoryDispatcher{
		listeners: make(map[EventType][]listener),
	}
}

// Publish synchronously invokes handlers for the given event: typed
// handlers first, then wildcard handlers, each in registration order.
func (d *inMemoryDispatcher) Publish(ctx context.Context, event Event) error {
	d.mu.RLock()
	handlers := make([]EventHandler, 0, len(d.listeners[event.Type])+len(d.wildcards))
	for _, l := range d.listeners[event.Type] {
		handlers = append(handlers, l.handler)
	}
	for _, l := range d.wildcards {
		handlers = append(handlers, l.handler)
	}
	d.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			// continue processing other handlers despite errors
		}
	}
	return nil
}

// Subscribe registers a handler for the given event type.
func (d *inMemoryDispatcher) Subscribe(eventType EventType, handler EventHandler) *Subscription {
	d.mu.Lock()
	defer d.mu.Unlock()

	id := d.nextID
	d.nextID++
	d.listeners[eventType] = append(d.listeners[eventType], listener{id: id, handler: handler})

	return &Subscription{cancel: func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.listeners[eventType] = removeListener(d.listeners[eventType], id)
	}}
}

// SubscribeAll registers a handler invoked for every published event.
func (d *inMemoryDispatcher) SubscribeAll(handler EventHandler) *Subscription {
	d.mu.Lock()
	defer d.mu.Unlock()

	id := d.nextID
	d.nextID++
	d.wildcards = append(d.wildcards, listener{id: id, handler: handler})

	return &Subscription{cancel: func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.wildcards = removeListener(d.wildcards, id)
	}}
}

func removeListener(listeners []listener, id uint64) []listener {
	for i, l := range listeners {
		if l.id == id {
			return append(listeners[:i], listeners[i+1:]...)
		}
	}
	return listeners
}
