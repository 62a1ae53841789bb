package validation

import (
	"regexp"
	"strings"

	"github.com/spec-kit/user-console/internal/domain"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Candidate carries the fields checked before a record is created.
type Candidate struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	UserType  domain.UserType
	Status    domain.UserStatus
}

// Result accumulates the outcome of a validation pass. Errors preserve the
// order in which checks ran.
type Result struct {
	Valid  bool
	Errors []string
}

// Message joins all error messages for use in a single error value.
func (r Result) Message() string {
	return strings.Join(r.Errors, ", ")
}

// Validate runs every applicable check over a full candidate and reports
// all failures. Required fields are checked in fixed order: firstName,
// lastName, email, phone, userType. Whitespace-only values count as blank.
func Validate(c Candidate) Result {
	var errs []string

	errs = appendRequired(errs, "firstName", c.FirstName)
	errs = appendRequired(errs, "lastName", c.LastName)
	errs = appendRequired(errs, "email", c.Email)
	errs = appendRequired(errs, "phone", c.Phone)
	errs = appendRequired(errs, "userType", string(c.UserType))

	errs = appendEmailShape(errs, c.Email)
	errs = appendTypeCheck(errs, c.UserType)
	errs = appendStatusCheck(errs, c.Status)

	return Result{Valid: len(errs) == 0, Errors: errs}
}

// ValidatePatch checks only the fields present on the patch. An absent
// field is skipped entirely; a present-but-blank field fails its required
// check. This deliberately validates the raw patch rather than the merged
// record.
func ValidatePatch(p domain.Patch) Result {
	var errs []string

	if p.FirstName != nil {
		errs = appendRequired(errs, "firstName", *p.FirstName)
	}
	if p.LastName != nil {
		errs = appendRequired(errs, "lastName", *p.LastName)
	}
	if p.Email != nil {
		errs = appendRequired(errs, "email", *p.Email)
	}
	if p.Phone != nil {
		errs = appendRequired(errs, "phone", *p.Phone)
	}
	if p.UserType != nil {
		errs = appendRequired(errs, "userType", string(*p.UserType))
	}

	if p.Email != nil {
		errs = appendEmailShape(errs, *p.Email)
	}
	if p.UserType != nil {
		errs = appendTypeCheck(errs, *p.UserType)
	}
	if p.Status != nil {
		errs = appendStatusCheck(errs, *p.Status)
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}

func appendRequired(errs []string, field, value string) []string {
	if strings.TrimSpace(value) == "" {
		errs = append(errs, field+" is required")
	}
	return errs
}

func appendEmailShape(errs []string, email string) []string {
	if strings.TrimSpace(email) == "" {
		return errs
	}
	if !emailPattern.MatchString(email) {
		errs = append(errs, "Invalid email format")
	}
	return errs
}

func appendTypeCheck(errs []string, userType domain.UserType) []string {
	if strings.TrimSpace(string(userType)) == "" {
		return errs
	}
	if !domain.ValidUserType(userType) {
		errs = append(errs, "Invalid user type")
	}
	return errs
}

func appendStatusCheck(errs []string, status domain.UserStatus) []string {
	if strings.TrimSpace(string(status)) == "" {
		return errs
	}
	if !domain.ValidUserStatus(status) {
		errs = append(errs, "Invalid status")
	}
	return errs
}
