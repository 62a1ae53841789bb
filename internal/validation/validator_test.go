package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/user-console/internal/domain"
	"github.com/spec-kit/user-console/internal/validation"
)

func validCandidate() validation.Candidate {
	return validation.Candidate{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Phone:     "555-0100",
		UserType:  domain.UserTypeClient,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*validation.Candidate)
		expected []string
	}{
		{
			name:     "valid candidate",
			mutate:   func(*validation.Candidate) {},
			expected: nil,
		},
		{
			name:     "valid with explicit status",
			mutate:   func(c *validation.Candidate) { c.Status = domain.UserStatusInactive },
			expected: nil,
		},
		{
			name:     "missing first name",
			mutate:   func(c *validation.Candidate) { c.FirstName = "" },
			expected: []string{"firstName is required"},
		},
		{
			name:     "whitespace-only counts as blank",
			mutate:   func(c *validation.Candidate) { c.Phone = "   " },
			expected: []string{"phone is required"},
		},
		{
			name:     "bad email shape",
			mutate:   func(c *validation.Candidate) { c.Email = "not-an-email" },
			expected: []string{"Invalid email format"},
		},
		{
			name:     "email without tld",
			mutate:   func(c *validation.Candidate) { c.Email = "ada@example" },
			expected: []string{"Invalid email format"},
		},
		{
			name:     "unknown user type",
			mutate:   func(c *validation.Candidate) { c.UserType = "manager" },
			expected: []string{"Invalid user type"},
		},
		{
			name:     "unknown status",
			mutate:   func(c *validation.Candidate) { c.Status = "archived" },
			expected: []string{"Invalid status"},
		},
		{
			name: "errors accumulate in fixed field order",
			mutate: func(c *validation.Candidate) {
				c.FirstName = ""
				c.LastName = ""
				c.Email = "broken"
				c.UserType = "robot"
			},
			expected: []string{
				"firstName is required",
				"lastName is required",
				"Invalid email format",
				"Invalid user type",
			},
		},
		{
			name: "everything missing reports all required fields",
			mutate: func(c *validation.Candidate) {
				*c = validation.Candidate{}
			},
			expected: []string{
				"firstName is required",
				"lastName is required",
				"email is required",
				"phone is required",
				"userType is required",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCandidate()
			tt.mutate(&c)

			res := validation.Validate(c)
			assert.Equal(t, len(tt.expected) == 0, res.Valid)
			assert.Equal(t, tt.expected, res.Errors)
		})
	}
}

func TestValidatePatch(t *testing.T) {
	str := func(s string) *string { return &s }
	utype := func(t domain.UserType) *domain.UserType { return &t }
	status := func(s domain.UserStatus) *domain.UserStatus { return &s }

	tests := []struct {
		name     string
		patch    domain.Patch
		expected []string
	}{
		{
			name:     "empty patch passes",
			patch:    domain.Patch{},
			expected: nil,
		},
		{
			name:     "absent userType is skipped",
			patch:    domain.Patch{FirstName: str("Grace")},
			expected: nil,
		},
		{
			name:     "present blank field fails required check",
			patch:    domain.Patch{FirstName: str("  ")},
			expected: []string{"firstName is required"},
		},
		{
			name:     "present bad email fails",
			patch:    domain.Patch{Email: str("nope")},
			expected: []string{"Invalid email format"},
		},
		{
			name:     "present bad enum values fail",
			patch:    domain.Patch{UserType: utype("robot"), Status: status("archived")},
			expected: []string{"Invalid user type", "Invalid status"},
		},
		{
			name:     "present valid fields pass",
			patch:    domain.Patch{Email: str("grace@example.com"), Status: status(domain.UserStatusInactive)},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := validation.ValidatePatch(tt.patch)
			assert.Equal(t, len(tt.expected) == 0, res.Valid)
			assert.Equal(t, tt.expected, res.Errors)
		})
	}
}

func TestResultMessage(t *testing.T) {
	res := validation.Validate(validation.Candidate{})
	assert.Equal(t,
		"firstName is required, lastName is required, email is required, phone is required, userType is required",
		res.Message())
}
