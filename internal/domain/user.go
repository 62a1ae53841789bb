package domain

import "time"

// UserType classifies roster members of the scheduling application.
type UserType string

const (
	UserTypeClient   UserType = "client"
	UserTypeProvider UserType = "provider"
	UserTypeAdmin    UserType = "admin"
)

// UserStatus represents lifecycle states for a roster member.
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// ValidUserType reports whether t is a known roster role.
func ValidUserType(t UserType) bool {
	switch t {
	case UserTypeClient, UserTypeProvider, UserTypeAdmin:
		return true
	}
	return false
}

// ValidUserStatus reports whether s is a known lifecycle state.
func ValidUserStatus(s UserStatus) bool {
	return s == UserStatusActive || s == UserStatusInactive
}

// User is the domain model for a managed roster member. JSON names match
// the persisted snapshot format.
type User struct {
	ID           int        `json:"id"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	UserType     UserType   `json:"userType"`
	Status       UserStatus `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastActive   time.Time  `json:"lastActive"`
	LastModified *time.Time `json:"lastModified,omitempty"`
}

// FullName combines first and last name for display purposes.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
