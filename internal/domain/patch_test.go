package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/user-console/internal/domain"
)

func TestPatchApply(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	user := domain.User{
		ID:         7,
		FirstName:  "Ada",
		LastName:   "Lovelace",
		Email:      "ada@example.com",
		Phone:      "555-0100",
		UserType:   domain.UserTypeClient,
		Status:     domain.UserStatusActive,
		CreatedAt:  created,
		LastActive: created,
	}

	phone := "555-0199"
	status := domain.UserStatusInactive
	merged := domain.Patch{Phone: &phone, Status: &status}.Apply(user)

	assert.Equal(t, "555-0199", merged.Phone)
	assert.Equal(t, domain.UserStatusInactive, merged.Status)
	// omitted fields keep their previous values
	assert.Equal(t, "Ada", merged.FirstName)
	assert.Equal(t, "ada@example.com", merged.Email)
	// identity and timestamps are untouched
	assert.Equal(t, 7, merged.ID)
	assert.Equal(t, created, merged.CreatedAt)

	// a present empty string replaces, it does not "unset"
	empty := ""
	cleared := domain.Patch{Phone: &empty}.Apply(user)
	assert.Equal(t, "", cleared.Phone)
}

func TestPatchIsEmpty(t *testing.T) {
	assert.True(t, domain.Patch{}.IsEmpty())

	name := "Grace"
	assert.False(t, domain.Patch{FirstName: &name}.IsEmpty())
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, domain.ValidUserType(domain.UserTypeClient))
	assert.True(t, domain.ValidUserType(domain.UserTypeProvider))
	assert.True(t, domain.ValidUserType(domain.UserTypeAdmin))
	assert.False(t, domain.ValidUserType("manager"))

	assert.True(t, domain.ValidUserStatus(domain.UserStatusActive))
	assert.True(t, domain.ValidUserStatus(domain.UserStatusInactive))
	assert.False(t, domain.ValidUserStatus("archived"))
}
