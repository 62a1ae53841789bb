package events

import (
	"time"

	"github.com/spec-kit/user-console/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserCreated  EventType = "user_created"
	EventUserUpdated  EventType = "user_updated"
	EventUserDeleted  EventType = "user_deleted"
	EventUsersChanged EventType = "users_changed"
	EventUsersLoaded  EventType = "users_loaded"
	EventUsersSaved   EventType = "users_saved"
	EventBulkImport   EventType = "bulk_import"
	EventError        EventType = "error"
)

// Event represents a change notification emitted by the user service.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserUpdatedPayload carries the pre- and post-image of an updated record.
type UserUpdatedPayload struct {
	Previous domain.User `json:"previous"`
	Current  domain.User `json:"current"`
}

// UsersChangedPayload carries the collection snapshot after any mutation.
type UsersChangedPayload struct {
	Users []domain.User `json:"users"`
}

// UsersLoadedPayload reports a completed load.
type UsersLoadedPayload struct {
	Count  int  `json:"count"`
	Seeded bool `json:"seeded"`
}

// UsersSavedPayload reports a completed save.
type UsersSavedPayload struct {
	Count int `json:"count"`
}

// BulkImportPayload summarizes an import run.
type BulkImportPayload struct {
	Imported int `json:"imported"`
	Failed   int `json:"failed"`
}

// OperationKind identifies which operation produced an error event.
type OperationKind string

const (
	OpCreate OperationKind = "create"
	OpUpdate OperationKind = "update"
	OpDelete OperationKind = "delete"
	OpLoad   OperationKind = "load"
	OpSave   OperationKind = "save"
)

// ErrorPayload describes a recovered operation failure.
type ErrorPayload struct {
	Message string        `json:"message"`
	Type    OperationKind `json:"type"`
}
