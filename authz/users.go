package authz

import (
	"github.com/campuslink/portal-api/model"
)

// User management rules, consolidated from the per-method checks the admin
// surfaces need:
//
//	SUPERADMIN       -> full access to non-superadmin accounts
//	COLLEGE_ADMIN    -> create/update department admins inside own college,
//	                    never delete
//	DEPARTMENT_ADMIN -> read/update own profile only
//
// Every role may view and update its own account.

// CanCreateUser reports whether the identity may create an account with the
// given role.
func CanCreateUser(id Identity, newRole Role) bool {
	switch id.Role {
	case RoleSuperAdmin:
		return newRole.Valid()
	case RoleCollegeAdmin:
		return newRole == RoleDepartmentAdmin
	}
	return false
}

// CanViewUser reports whether the identity may read the target account.
func CanViewUser(id Identity, target model.User, departments []model.Department) bool {
	if target.ID == id.UserID {
		return true
	}
	switch id.Role {
	case RoleSuperAdmin:
		return true
	case RoleCollegeAdmin:
		if id.CollegeID == nil {
			return false
		}
		return canCollegeAdminReach(id, target, departmentCollegeIndex(departments))
	}
	return false
}

// CanUpdateUser reports whether the identity may update the target account,
// optionally reassigning it to newDepartmentID. A college admin may only
// reassign a department admin into a department of their own college.
func CanUpdateUser(id Identity, target model.User, newDepartmentID *uint, departments []model.Department) bool {
	if target.ID == id.UserID && newDepartmentID == nil {
		return true
	}
	switch id.Role {
	case RoleSuperAdmin:
		return true
	case RoleCollegeAdmin:
		if id.CollegeID == nil || target.Role != model.RoleDepartmentAdmin {
			return false
		}
		deptCollege := departmentCollegeIndex(departments)
		if newDepartmentID != nil {
			collegeID, ok := deptCollege[*newDepartmentID]
			return ok && collegeID == *id.CollegeID
		}
		return canCollegeAdminReach(id, target, deptCollege)
	}
	return false
}

// CanDeleteUser reports whether the identity may delete the target account.
// Only the superadmin deletes accounts, and never another superadmin.
func CanDeleteUser(id Identity, target model.User) bool {
	return id.Role == RoleSuperAdmin && target.Role != model.RoleSuperAdmin
}
