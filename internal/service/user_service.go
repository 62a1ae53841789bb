package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/user-console/internal/domain"
	"github.com/spec-kit/user-console/internal/events"
	"github.com/spec-kit/user-console/internal/persistence"
	"github.com/spec-kit/user-console/internal/store"
	"github.com/spec-kit/user-console/internal/validation"
	"github.com/spec-kit/user-console/pkg/util"
)

// DefaultAutoSaveInterval applies when autosave is enabled without an
// explicit period.
const DefaultAutoSaveInterval = 30 * time.Second

// UserService coordinates the roster workflows: validation, uniqueness,
// timestamps, persistence and change notification.
type UserService struct {
	store      *store.Store
	adapter    persistence.Adapter
	dispatcher events.Dispatcher
	logger     *zap.Logger
	storageKey string

	autosaveMu   sync.Mutex
	autosaveStop chan struct{}
	saving       atomic.Bool
}

// Dependencies bundles collaborators for the user service.
type Dependencies struct {
	Store      *store.Store
	Adapter    persistence.Adapter
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	StorageKey string
}

// NewUserService constructs the service.
func NewUserService(deps Dependencies) *UserService {
	if deps.Store == nil {
		deps.Store = store.New()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.StorageKey == "" {
		deps.StorageKey = persistence.DefaultStorageKey
	}
	return &UserService{
		store:      deps.Store,
		adapter:    deps.Adapter,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		storageKey: deps.StorageKey,
	}
}

// CreateInput describes the fields for a new roster record.
type CreateInput struct {
	FirstName string            `json:"firstName"`
	LastName  string            `json:"lastName"`
	Email     string            `json:"email"`
	Phone     string            `json:"phone"`
	UserType  domain.UserType   `json:"userType"`
	Status    domain.UserStatus `json:"status,omitempty"`
}

func (in CreateInput) candidate() validation.Candidate {
	return validation.Candidate{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		UserType:  in.UserType,
		Status:    in.Status,
	}
}

// CreateUser validates the input, enforces email uniqueness and appends a
// new record. Emits user_created then users_changed on success.
func (s *UserService) CreateUser(ctx context.Context, input CreateInput) (*domain.User, error) {
	created, err := s.createUser(ctx, input)
	if err != nil {
		s.publishError(ctx, events.OpCreate, err)
		return nil, err
	}
	return created, nil
}

func (s *UserService) createUser(ctx context.Context, input CreateInput) (*domain.User, error) {
	if res := validation.Validate(input.candidate()); !res.Valid {
		return nil, util.NewValidationError(res.Message(), map[string]any{"errors": res.Errors})
	}

	status := input.Status
	if status == "" {
		status = domain.UserStatusActive
	}

	now := time.Now()
	user := domain.User{
		FirstName:  strings.TrimSpace(input.FirstName),
		LastName:   strings.TrimSpace(input.LastName),
		Email:      strings.TrimSpace(input.Email),
		Phone:      strings.TrimSpace(input.Phone),
		UserType:   input.UserType,
		Status:     status,
		CreatedAt:  now,
		LastActive: now,
	}

	created, err := s.store.Insert(user)
	if errors.Is(err, store.ErrDuplicateEmail) {
		return nil, util.NewDuplicateEmail(user.Email)
	}
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventUserCreated, created)
	s.publishUsersChanged(ctx)
	s.logger.Info("user created",
		zap.Int("id", created.ID),
		zap.String("userType", string(created.UserType)))
	return &created, nil
}

// UpdateUser merges the patch over an existing record. The patch is
// validated as given; omitted fields keep their previous values. Emits
// user_updated with pre- and post-image, then users_changed.
func (s *UserService) UpdateUser(ctx context.Context, id int, patch domain.Patch) (*domain.User, error) {
	updated, err := s.updateUser(ctx, id, patch)
	if err != nil {
		s.publishError(ctx, events.OpUpdate, err)
		return nil, err
	}
	return updated, nil
}

func (s *UserService) updateUser(ctx context.Context, id int, patch domain.Patch) (*domain.User, error) {
	previous, ok := s.store.Get(id)
	if !ok {
		return nil, util.NewNotFound(id)
	}

	if res := validation.ValidatePatch(patch); !res.Valid {
		return nil, util.NewValidationError(res.Message(), map[string]any{"errors": res.Errors})
	}

	merged := patch.Apply(previous)
	merged.FirstName = strings.TrimSpace(merged.FirstName)
	merged.LastName = strings.TrimSpace(merged.LastName)
	merged.Email = strings.TrimSpace(merged.Email)
	merged.Phone = strings.TrimSpace(merged.Phone)
	now := time.Now()
	merged.LastModified = &now

	err := s.store.Replace(merged)
	if errors.Is(err, store.ErrDuplicateEmail) {
		return nil, util.NewDuplicateEmail(merged.Email)
	}
	if errors.Is(err, store.ErrNotFound) {
		return nil, util.NewNotFound(id)
	}
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventUserUpdated, events.UserUpdatedPayload{
		Previous: previous,
		Current:  merged,
	})
	s.publishUsersChanged(ctx)
	return &merged, nil
}

// DeleteUser removes a record permanently. The freed id is never
// reassigned. Emits user_deleted with the removed record, then
// users_changed.
func (s *UserService) DeleteUser(ctx context.Context, id int) (*domain.User, error) {
	removed, err := s.store.Remove(id)
	if errors.Is(err, store.ErrNotFound) {
		notFound := util.NewNotFound(id)
		s.publishError(ctx, events.OpDelete, notFound)
		return nil, notFound
	}
	if err != nil {
		s.publishError(ctx, events.OpDelete, err)
		return nil, err
	}

	s.publish(ctx, events.EventUserDeleted, removed)
	s.publishUsersChanged(ctx)
	s.logger.Info("user deleted", zap.Int("id", removed.ID))
	return &removed, nil
}

// GetAllUsers returns a snapshot copy in insertion order.
func (s *UserService) GetAllUsers() []domain.User {
	return s.store.All()
}

// GetUserByID looks up a record by id; absence is not an error.
func (s *UserService) GetUserByID(id int) (*domain.User, bool) {
	user, ok := s.store.Get(id)
	if !ok {
		return nil, false
	}
	return &user, true
}

// GetUserByEmail looks up a record by exact email match.
func (s *UserService) GetUserByEmail(email string) (*domain.User, bool) {
	user, ok := s.store.GetByEmail(email)
	if !ok {
		return nil, false
	}
	return &user, true
}

// GetUsersByType filters the roster by exact type match.
func (s *UserService) GetUsersByType(userType domain.UserType) []domain.User {
	var matches []domain.User
	for _, user := range s.store.All() {
		if user.UserType == userType {
			matches = append(matches, user)
		}
	}
	return matches
}

// SearchUsers performs a case-insensitive substring match over first name,
// last name, email and user type. A blank query returns the full snapshot
// in original order.
func (s *UserService) SearchUsers(query string) []domain.User {
	all := s.store.All()
	if strings.TrimSpace(query) == "" {
		return all
	}

	needle := strings.ToLower(query)
	var matches []domain.User
	for _, user := range all {
		if strings.Contains(strings.ToLower(user.FirstName), needle) ||
			strings.Contains(strings.ToLower(user.LastName), needle) ||
			strings.Contains(strings.ToLower(user.Email), needle) ||
			strings.Contains(strings.ToLower(string(user.UserType)), needle) {
			matches = append(matches, user)
		}
	}
	return matches
}

// Stats aggregates roster counts.
type Stats struct {
	Total        int                     `json:"total"`
	Active       int                     `json:"active"`
	Inactive     int                     `json:"inactive"`
	CreatedToday int                     `json:"createdToday"`
	ByType       map[domain.UserType]int `json:"byType"`
}

// GetStats computes counts over the current collection.
func (s *UserService) GetStats() Stats {
	users := s.store.All()
	stats := Stats{
		Total:  len(users),
		ByType: make(map[domain.UserType]int),
	}

	today := time.Now()
	for _, user := range users {
		if user.Status == domain.UserStatusActive {
			stats.Active++
		}
		if sameDate(user.CreatedAt, today) {
			stats.CreatedToday++
		}
		stats.ByType[user.UserType]++
	}
	stats.Inactive = stats.Total - stats.Active
	return stats
}

// ImportFailure records one rejected import entry.
type ImportFailure struct {
	Input CreateInput `json:"input"`
	Error string      `json:"error"`
}

// ImportResult reports the outcome of a bulk import.
type ImportResult struct {
	Success []domain.User   `json:"success"`
	Failed  []ImportFailure `json:"failed"`
}

// ImportUsers drives each entry through CreateUser in order. The run is
// not transactional; partial success is expected and reported. A single
// bulk_import summary event fires at the end.
func (s *UserService) ImportUsers(ctx context.Context, inputs []CreateInput) ImportResult {
	result := ImportResult{}
	for _, input := range inputs {
		created, err := s.CreateUser(ctx, input)
		if err != nil {
			result.Failed = append(result.Failed, ImportFailure{
				Input: input,
				Error: err.Error(),
			})
			continue
		}
		result.Success = append(result.Success, *created)
	}

	s.publish(ctx, events.EventBulkImport, events.BulkImportPayload{
		Imported: len(result.Success),
		Failed:   len(result.Failed),
	})
	s.logger.Info("bulk import finished",
		zap.Int("imported", len(result.Success)),
		zap.Int("failed", len(result.Failed)))
	return result
}

// ExportBundle is the full roster package produced by ExportUsers.
type ExportBundle struct {
	Users      []domain.User `json:"users"`
	ExportDate time.Time     `json:"exportDate"`
	Stats      Stats         `json:"stats"`
}

// ExportUsers packages the current snapshot with stats and a timestamp.
func (s *UserService) ExportUsers() ExportBundle {
	return ExportBundle{
		Users:      s.store.All(),
		ExportDate: time.Now(),
		Stats:      s.GetStats(),
	}
}

// LoadUsers restores the roster from the persistence adapter. When the
// slot is empty the fixed sample set is seeded through CreateUser so the
// usual validation, id assignment and events apply. Emits users_loaded.
func (s *UserService) LoadUsers(ctx context.Context) error {
	users, found, err := s.adapter.Load(ctx, s.storageKey)
	if err != nil {
		loadErr := fmt.Errorf("load users: %w", err)
		s.publishError(ctx, events.OpLoad, loadErr)
		return loadErr
	}

	seeded := false
	if found {
		s.store.Restore(users)
	} else {
		s.seedSampleUsers(ctx)
		seeded = true
	}

	s.publish(ctx, events.EventUsersLoaded, events.UsersLoadedPayload{
		Count:  s.store.Len(),
		Seeded: seeded,
	})
	if !seeded {
		// seeding already emitted users_changed per created record
		s.publishUsersChanged(ctx)
	}
	s.logger.Info("users loaded",
		zap.Int("count", s.store.Len()),
		zap.Bool("seeded", seeded))
	return nil
}

// SaveUsers writes the full snapshot to the persistence adapter under the
// configured storage key. Emits users_saved.
func (s *UserService) SaveUsers(ctx context.Context) error {
	s.saving.Store(true)
	defer s.saving.Store(false)

	snapshot := s.store.All()
	if err := s.adapter.Save(ctx, s.storageKey, snapshot); err != nil {
		saveErr := fmt.Errorf("save users: %w", err)
		s.publishError(ctx, events.OpSave, saveErr)
		return saveErr
	}

	s.publish(ctx, events.EventUsersSaved, events.UsersSavedPayload{Count: len(snapshot)})
	return nil
}

// EnableAutoSave starts a recurring timer invoking SaveUsers. At most one
// timer runs per service; enabling while one is active restarts it with
// the new interval.
func (s *UserService) EnableAutoSave(interval time.Duration) {
	s.autosaveMu.Lock()
	defer s.autosaveMu.Unlock()

	if s.autosaveStop != nil {
		close(s.autosaveStop)
	}
	if interval <= 0 {
		interval = DefaultAutoSaveInterval
	}

	stop := make(chan struct{})
	s.autosaveStop = stop
	go s.autosaveLoop(interval, stop)

	s.logger.Info("autosave enabled", zap.Duration("interval", interval))
}

// DisableAutoSave stops future timer firings. It does not cancel a save
// already in flight, and is a no-op when no timer is active.
func (s *UserService) DisableAutoSave() {
	s.autosaveMu.Lock()
	defer s.autosaveMu.Unlock()

	if s.autosaveStop == nil {
		return
	}
	close(s.autosaveStop)
	s.autosaveStop = nil
	s.logger.Info("autosave disabled")
}

func (s *UserService) autosaveLoop(interval time.Duration, stop chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if s.saving.Load() {
				// previous save still in flight, skip this firing
				continue
			}
			if err := s.SaveUsers(context.Background()); err != nil {
				s.logger.Warn("autosave failed", zap.Error(err))
			}
		}
	}
}

func (s *UserService) seedSampleUsers(ctx context.Context) {
	for _, input := range sampleUsers {
		if _, err := s.CreateUser(ctx, input); err != nil {
			s.logger.Warn("seed record rejected", zap.String("email", input.Email), zap.Error(err))
		}
	}
}

// sampleUsers is the canned roster seeded the first time the console runs
// against an empty storage slot.
var sampleUsers = []CreateInput{
	{FirstName: "Sarah", LastName: "Johnson", Email: "sarah.johnson@example.com", Phone: "555-0101", UserType: domain.UserTypeClient},
	{FirstName: "Michael", LastName: "Chen", Email: "michael.chen@example.com", Phone: "555-0102", UserType: domain.UserTypeProvider},
	{FirstName: "Emily", LastName: "Rodriguez", Email: "emily.rodriguez@example.com", Phone: "555-0103", UserType: domain.UserTypeAdmin},
}

func (s *UserService) publish(ctx context.Context, eventType events.EventType, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

func (s *UserService) publishUsersChanged(ctx context.Context) {
	s.publish(ctx, events.EventUsersChanged, events.UsersChangedPayload{Users: s.store.All()})
}

func (s *UserService) publishError(ctx context.Context, op events.OperationKind, err error) {
	s.logger.Warn("operation failed", zap.String("op", string(op)), zap.Error(err))
	s.publish(ctx, events.EventError, events.ErrorPayload{
		Message: err.Error(),
		Type:    op,
	})
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
