package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/user-console/internal/domain"
	"github.com/spec-kit/user-console/internal/events"
)

// Notifier surfaces roster events on the operator log. It plays the role
// the console UI plays in the browser: toast messages for the headline
// events and a re-render trace for everything else.
type Notifier struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	subs       []*events.Subscription
}

// NewNotifier creates the notifier.
func NewNotifier(dispatcher events.Dispatcher, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (n *Notifier) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.subs = append(n.subs,
		n.dispatcher.Subscribe(events.EventUserCreated, n.handleUserCreated),
		n.dispatcher.Subscribe(events.EventUserUpdated, n.handleUserUpdated),
		n.dispatcher.Subscribe(events.EventUserDeleted, n.handleUserDeleted),
		n.dispatcher.Subscribe(events.EventBulkImport, n.handleBulkImport),
		n.dispatcher.Subscribe(events.EventError, n.handleError),
		n.dispatcher.SubscribeAll(n.traceEvent),
	)
}

// Unregister cancels every subscription held by the notifier.
func (n *Notifier) Unregister() {
	for _, sub := range n.subs {
		sub.Cancel()
	}
	n.subs = nil
}

func (n *Notifier) handleUserCreated(_ context.Context, event events.Event) error {
	if user, ok := event.Payload.(domain.User); ok {
		n.logger.Info("UserCreated",
			zap.Int("id", user.ID),
			zap.String("name", user.FullName()),
			zap.String("userType", string(user.UserType)))
	}
	return nil
}

func (n *Notifier) handleUserUpdated(_ context.Context, event events.Event) error {
	if payload, ok := event.Payload.(events.UserUpdatedPayload); ok {
		n.logger.Info("UserUpdated",
			zap.Int("id", payload.Current.ID),
			zap.String("name", payload.Current.FullName()))
	}
	return nil
}

func (n *Notifier) handleUserDeleted(_ context.Context, event events.Event) error {
	if user, ok := event.Payload.(domain.User); ok {
		n.logger.Info("UserDeleted",
			zap.Int("id", user.ID),
			zap.String("name", user.FullName()))
	}
	return nil
}

func (n *Notifier) handleBulkImport(_ context.Context, event events.Event) error {
	if payload, ok := event.Payload.(events.BulkImportPayload); ok {
		n.logger.Info("BulkImport",
			zap.Int("imported", payload.Imported),
			zap.Int("failed", payload.Failed))
	}
	return nil
}

func (n *Notifier) handleError(_ context.Context, event events.Event) error {
	if payload, ok := event.Payload.(events.ErrorPayload); ok {
		n.logger.Warn("OperationError",
			zap.String("type", string(payload.Type)),
			zap.String("message", payload.Message))
	}
	return nil
}

func (n *Notifier) traceEvent(_ context.Context, event events.Event) error {
	n.logger.Debug("event",
		zap.String("id", event.ID),
		zap.String("type", string(event.Type)))
	return nil
}
