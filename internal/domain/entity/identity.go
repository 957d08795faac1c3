package entity

import (
	errs "github.com/amirhossein-jamali/pool-access-controller/internal/domain/error"
)

// GenderCategory is the gender tag supplied by the authentication collaborator
type GenderCategory string

// Supported gender categories
const (
	GenderMale   GenderCategory = "male"
	GenderFemale GenderCategory = "female"
)

// RoleCategory is the institutional role supplied by the authentication collaborator
type RoleCategory string

// Supported role categories
const (
	RoleFaculty       RoleCategory = "faculty"
	RolePostgraduate  RoleCategory = "postgraduate"
	RoleUndergraduate RoleCategory = "undergraduate"
	RoleStaff         RoleCategory = "staff"
)

// Identity describes who is attempting a check-in. It is read-only input
// to eligibility checks; the core never mutates or persists it.
type Identity struct {
	UserID string
	Gender GenderCategory
	Role   RoleCategory
}

// Validate checks that the identity carries at least a user ID
func (i Identity) Validate() error {
	if i.UserID == "" {
		return errs.ErrInvalidUserID
	}
	return nil
}
