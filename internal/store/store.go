package store

import (
	"errors"
	"sync"

	"github.com/spec-kit/user-console/internal/domain"
)

// Sentinel errors reported by the store.
var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// Store owns the ordered collection of user records and the id sequence.
// Ids are allocated monotonically and never reused, even after deletes.
// Email uniqueness is enforced by exact string comparison.
//
// All reads hand out copies; callers never see the backing slice.
type Store struct {
	mu     sync.RWMutex
	users  []domain.User
	nextID int
}

// New returns an empty store with the id sequence at 1.
func New() *Store {
	return &Store{nextID: 1}
}

// Insert assigns the next id to the record and appends it. The caller is
// expected to have stamped timestamps and defaults already. Fails with
// ErrDuplicateEmail when a live record owns the same email.
func (s *Store) Insert(user domain.User) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emailTakenLocked(user.Email, 0) {
		return domain.User{}, ErrDuplicateEmail
	}

	user.ID = s.nextID
	s.nextID++
	s.users = append(s.users, user)
	return user, nil
}

// Replace swaps the stored record carrying the same id. Fails with
// ErrNotFound for an unknown id and ErrDuplicateEmail when a different
// record owns the new email.
func (s *Store) Replace(user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(user.ID)
	if idx < 0 {
		return ErrNotFound
	}
	if s.emailTakenLocked(user.Email, user.ID) {
		return ErrDuplicateEmail
	}
	s.users[idx] = user
	return nil
}

// Remove deletes the record by id, returning the removed copy. The freed
// id is never handed out again.
func (s *Store) Remove(id int) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return domain.User{}, ErrNotFound
	}
	removed := s.users[idx]
	s.users = append(s.users[:idx], s.users[idx+1:]...)
	return removed, nil
}

// Get returns the record by id.
func (s *Store) Get(id int) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return domain.User{}, false
	}
	return s.users[idx], true
}

// GetByEmail returns the record owning the email, exact match.
func (s *Store) GetByEmail(email string) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			return user, true
		}
	}
	return domain.User{}, false
}

// All returns a snapshot copy in insertion order.
func (s *Store) All() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]domain.User, len(s.users))
	copy(snapshot, s.users)
	return snapshot
}

// Len returns the number of live records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// Restore replaces the collection with a persisted snapshot, keeping ids
// and timestamps intact. The id sequence resumes past the highest restored
// id so later inserts stay monotonic.
func (s *Store) Restore(users []domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = make([]domain.User, len(users))
	copy(s.users, users)

	for _, user := range s.users {
		if user.ID >= s.nextID {
			s.nextID = user.ID + 1
		}
	}
}

func (s *Store) indexLocked(id int) int {
	for i, user := range s.users {
		if user.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) emailTakenLocked(email string, excludeID int) bool {
	for _, user := range s.users {
		if user.ID != excludeID && user.Email == email {
			return true
		}
	}
	return false
}
