package domain

// Patch enumerates optional field updates for a user record. A nil field
// means "retain the previous value"; a non-nil field replaces it, even when
// it points at an empty string.
type Patch struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	UserType  *UserType
	Status    *UserStatus
}

// IsEmpty reports whether the patch carries no field updates at all.
func (p Patch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil &&
		p.Phone == nil && p.UserType == nil && p.Status == nil
}

// Apply merges the patch over the given record and returns the result.
// Identity and timestamp fields are never touched here; the service owns
// those.
func (p Patch) Apply(u User) User {
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.UserType != nil {
		u.UserType = *p.UserType
	}
	if p.Status != nil {
		u.Status = *p.Status
	}
	return u
}
