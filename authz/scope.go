package authz

import (
	"github.com/campuslink/portal-api/model"
)

// Permissions describes what an identity may do with the members of a
// resolved visible set. Edit and delete always travel together here: the
// system has no finer-grained per-field permission.
type Permissions struct {
	CanCreate bool `json:"can_create"`
	CanEdit   bool `json:"can_edit"`
	CanDelete bool `json:"can_delete"`
}

// CollegeScope is the resolved college visibility for an identity.
type CollegeScope struct {
	Visible []model.College
	Permissions
}

// DepartmentScope is the resolved department visibility for an identity.
type DepartmentScope struct {
	Visible []model.Department
	Permissions
}

// PartnershipScope is the resolved partnership visibility for an identity.
type PartnershipScope struct {
	Visible []model.Partnership
	Permissions
}

// UserScope is the resolved user-account visibility for an identity.
type UserScope struct {
	Visible []model.User
	Permissions
}

// ResolveColleges returns the colleges the identity may manage. Only the
// superadmin has a college management surface; college admins see their own
// college through the department/partnership scopes instead.
func ResolveColleges(id Identity, colleges []model.College) CollegeScope {
	switch id.Role {
	case RoleSuperAdmin:
		visible := make([]model.College, len(colleges))
		copy(visible, colleges)
		return CollegeScope{
			Visible:     visible,
			Permissions: Permissions{CanCreate: true, CanEdit: true, CanDelete: true},
		}
	case RoleCollegeAdmin, RoleDepartmentAdmin:
		return CollegeScope{Visible: []model.College{}}
	}
	return CollegeScope{Visible: []model.College{}}
}

// ResolveDepartments returns the departments visible to the identity.
// A college admin with no college affiliation resolves to an empty set.
func ResolveDepartments(id Identity, departments []model.Department) DepartmentScope {
	switch id.Role {
	case RoleSuperAdmin:
		visible := make([]model.Department, len(departments))
		copy(visible, departments)
		return DepartmentScope{
			Visible:     visible,
			Permissions: Permissions{CanCreate: true, CanEdit: true, CanDelete: true},
		}
	case RoleCollegeAdmin:
		visible := []model.Department{}
		if id.CollegeID == nil {
			return DepartmentScope{Visible: visible}
		}
		for _, d := range departments {
			if d.CollegeID == *id.CollegeID {
				visible = append(visible, d)
			}
		}
		return DepartmentScope{
			Visible:     visible,
			Permissions: Permissions{CanCreate: true, CanEdit: true, CanDelete: true},
		}
	case RoleDepartmentAdmin:
		return DepartmentScope{Visible: []model.Department{}}
	}
	return DepartmentScope{Visible: []model.Department{}}
}

// ResolvePartnerships returns the partnerships visible to the identity.
// College scoping is transitive through the department's college; department
// scoping is a direct match on the partnership's department.
func ResolvePartnerships(id Identity, departments []model.Department, partnerships []model.Partnership) PartnershipScope {
	switch id.Role {
	case RoleSuperAdmin:
		visible := make([]model.Partnership, len(partnerships))
		copy(visible, partnerships)
		return PartnershipScope{
			Visible:     visible,
			Permissions: Permissions{CanCreate: true, CanEdit: true, CanDelete: true},
		}
	case RoleCollegeAdmin:
		visible := []model.Partnership{}
		if id.CollegeID == nil {
			return PartnershipScope{Visible: visible}
		}
		deptIDs := make(map[uint]struct{})
		for _, d := range ResolveDepartments(id, departments).Visible {
			deptIDs[d.ID] = struct{}{}
		}
		for _, p := range partnerships {
			if _, ok := deptIDs[p.DepartmentID]; ok {
				visible = append(visible, p)
			}
		}
		return PartnershipScope{
			Visible:     visible,
			Permissions: Permissions{CanCreate: true, CanEdit: true, CanDelete: true},
		}
	case RoleDepartmentAdmin:
		visible := []model.Partnership{}
		if id.DepartmentID == nil {
			return PartnershipScope{Visible: visible}
		}
		for _, p := range partnerships {
			if p.DepartmentID == *id.DepartmentID {
				visible = append(visible, p)
			}
		}
		return PartnershipScope{
			Visible:     visible,
			Permissions: Permissions{CanCreate: true, CanEdit: true, CanDelete: true},
		}
	}
	return PartnershipScope{Visible: []model.Partnership{}}
}

// ResolveUsers returns the user accounts visible to the identity. The
// superadmin sees every account except other superadmins; college admins see
// the department admins of their college plus unassigned department admins
// (so they can be picked up and assigned); department admins have no user
// management surface beyond their own profile.
func ResolveUsers(id Identity, departments []model.Department, users []model.User) UserScope {
	switch id.Role {
	case RoleSuperAdmin:
		visible := []model.User{}
		for _, u := range users {
			if u.Role != model.RoleSuperAdmin {
				visible = append(visible, u)
			}
		}
		return UserScope{
			Visible:     visible,
			Permissions: Permissions{CanCreate: true, CanEdit: true, CanDelete: true},
		}
	case RoleCollegeAdmin:
		visible := []model.User{}
		if id.CollegeID == nil {
			return UserScope{Visible: visible}
		}
		deptCollege := departmentCollegeIndex(departments)
		for _, u := range users {
			if u.ID == id.UserID || canCollegeAdminReach(id, u, deptCollege) {
				visible = append(visible, u)
			}
		}
		// College admins create and manage department admins but never
		// delete accounts.
		return UserScope{
			Visible:     visible,
			Permissions: Permissions{CanCreate: true, CanEdit: true, CanDelete: false},
		}
	case RoleDepartmentAdmin:
		visible := []model.User{}
		for _, u := range users {
			if u.ID == id.UserID {
				visible = append(visible, u)
			}
		}
		return UserScope{
			Visible:     visible,
			Permissions: Permissions{CanEdit: true},
		}
	}
	return UserScope{Visible: []model.User{}}
}

// CanModifyDepartment reports whether the identity may edit or delete the
// given department instance.
func CanModifyDepartment(id Identity, dept model.Department) bool {
	switch id.Role {
	case RoleSuperAdmin:
		return true
	case RoleCollegeAdmin:
		return id.CollegeID != nil && dept.CollegeID == *id.CollegeID
	}
	return false
}

// CanModifyPartnership reports whether the identity may edit or delete the
// given partnership. The owning department must be supplied so college
// scoping can follow the department's college.
func CanModifyPartnership(id Identity, p model.Partnership, owner *model.Department) bool {
	switch id.Role {
	case RoleSuperAdmin:
		return true
	case RoleCollegeAdmin:
		if id.CollegeID == nil || owner == nil {
			return false
		}
		return owner.ID == p.DepartmentID && owner.CollegeID == *id.CollegeID
	case RoleDepartmentAdmin:
		return id.DepartmentID != nil && p.DepartmentID == *id.DepartmentID
	}
	return false
}

// CanCreateCollege reports whether the identity may create colleges.
func CanCreateCollege(id Identity) bool {
	return id.Role == RoleSuperAdmin
}

// CanCreateDepartment reports whether the identity may create a department
// under the given college. College admins are bound to their own college.
func CanCreateDepartment(id Identity, collegeID uint) bool {
	switch id.Role {
	case RoleSuperAdmin:
		return true
	case RoleCollegeAdmin:
		return id.CollegeID != nil && collegeID == *id.CollegeID
	}
	return false
}

// CanCreatePartnership reports whether the identity may create a partnership
// under the given department.
func CanCreatePartnership(id Identity, departmentID uint, departments []model.Department) bool {
	switch id.Role {
	case RoleSuperAdmin:
		return true
	case RoleCollegeAdmin:
		if id.CollegeID == nil {
			return false
		}
		for _, d := range departments {
			if d.ID == departmentID {
				return d.CollegeID == *id.CollegeID
			}
		}
		return false
	case RoleDepartmentAdmin:
		return id.DepartmentID != nil && departmentID == *id.DepartmentID
	}
	return false
}

func departmentCollegeIndex(departments []model.Department) map[uint]uint {
	idx := make(map[uint]uint, len(departments))
	for _, d := range departments {
		idx[d.ID] = d.CollegeID
	}
	return idx
}

// canCollegeAdminReach reports whether a college admin can see or manage the
// target account. Only department admins are reachable: those attached to a
// department of the admin's college, those attached to the college directly,
// and unassigned ones awaiting assignment.
func canCollegeAdminReach(id Identity, target model.User, deptCollege map[uint]uint) bool {
	if target.Role != model.RoleDepartmentAdmin {
		return false
	}
	if target.DepartmentID != nil {
		collegeID, ok := deptCollege[*target.DepartmentID]
		return ok && collegeID == *id.CollegeID
	}
	if target.CollegeID != nil {
		return *target.CollegeID == *id.CollegeID
	}
	// Unassigned department admin: visible so the college admin can
	// assign them into one of their departments.
	return true
}
