package authz

// Area is a role-prefixed section of the application.
type Area string

const (
	AreaSuperAdmin      Area = "superadmin"
	AreaCollegeAdmin    Area = "college-admin"
	AreaDepartmentAdmin Area = "department-admin"
)

// Decision is the outcome of a route-gating check. Unauthenticated and
// unauthorized are distinct so callers can redirect to the right place.
type Decision int

const (
	DecisionAllow Decision = iota
	DecisionUnauthenticated
	DecisionUnauthorized
)

// CheckArea gates navigation into a role-prefixed area. A nil identity means
// no session; a role mismatch means the session exists but is not permitted.
// The check is a pure predicate and must be re-run on every request, never
// cached past an identity change.
func CheckArea(id *Identity, area Area) Decision {
	if id == nil {
		return DecisionUnauthenticated
	}
	var want Role
	switch area {
	case AreaSuperAdmin:
		want = RoleSuperAdmin
	case AreaCollegeAdmin:
		want = RoleCollegeAdmin
	case AreaDepartmentAdmin:
		want = RoleDepartmentAdmin
	default:
		return DecisionUnauthorized
	}
	if id.Role != want {
		return DecisionUnauthorized
	}
	return DecisionAllow
}
