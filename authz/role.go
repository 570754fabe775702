package authz

import (
	"errors"
	"fmt"
)

// Role is the closed set of administrator roles. Every role check in the
// codebase goes through this package so the matrix lives in one place.
type Role string

const (
	RoleSuperAdmin      Role = "SUPERADMIN"
	RoleCollegeAdmin    Role = "COLLEGE_ADMIN"
	RoleDepartmentAdmin Role = "DEPARTMENT_ADMIN"
)

var ErrUnknownRole = errors.New("unknown role")

// ParseRole converts a stored role string into a Role, rejecting anything
// outside the closed set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleSuperAdmin, RoleCollegeAdmin, RoleDepartmentAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// Valid reports whether the role is a member of the closed set.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// Identity is the session-derived subject of every authorization decision.
// CollegeID is meaningful only for college admins and DepartmentID only for
// department admins; a nil affiliation resolves to an empty scope, never to
// full visibility.
type Identity struct {
	UserID       uint
	Role         Role
	CollegeID    *uint
	DepartmentID *uint
}
