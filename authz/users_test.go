package authz

import (
	"testing"

	"github.com/campuslink/portal-api/model"
)

func userFixtures() ([]model.Department, []model.User) {
	departments := []model.Department{
		{ID: 10, CollegeID: 1, Code: "IT"},
		{ID: 20, CollegeID: 2, Code: "MKT"},
	}
	users := []model.User{
		{ID: 1, Username: "root", Role: model.RoleSuperAdmin},
		{ID: 2, Username: "ccs-admin", Role: model.RoleCollegeAdmin, CollegeID: uintPtr(1)},
		{ID: 3, Username: "it-admin", Role: model.RoleDepartmentAdmin, DepartmentID: uintPtr(10)},
		{ID: 4, Username: "mkt-admin", Role: model.RoleDepartmentAdmin, DepartmentID: uintPtr(20)},
		{ID: 5, Username: "floating-admin", Role: model.RoleDepartmentAdmin}, // unassigned
	}
	return departments, users
}

func TestCollegeAdminUserVisibility(t *testing.T) {
	departments, users := userFixtures()
	id := Identity{UserID: 2, Role: RoleCollegeAdmin, CollegeID: uintPtr(1)}

	scope := ResolveUsers(id, departments, users)
	// Own account, own-college department admin, and the unassigned one.
	want := map[uint]bool{2: true, 3: true, 5: true}
	if len(scope.Visible) != len(want) {
		t.Fatalf("visible = %d users, want %d", len(scope.Visible), len(want))
	}
	for _, u := range scope.Visible {
		if !want[u.ID] {
			t.Errorf("user %d (%s) should not be visible to college admin", u.ID, u.Username)
		}
	}
	if scope.CanDelete {
		t.Error("college admins must not delete accounts")
	}
}

func TestDepartmentAdminSeesOnlySelf(t *testing.T) {
	departments, users := userFixtures()
	id := Identity{UserID: 3, Role: RoleDepartmentAdmin, DepartmentID: uintPtr(10)}

	scope := ResolveUsers(id, departments, users)
	if len(scope.Visible) != 1 || scope.Visible[0].ID != 3 {
		t.Fatalf("department admin visible = %+v, want own account only", scope.Visible)
	}
	if scope.CanCreate || scope.CanDelete {
		t.Error("department admin has no create/delete surface")
	}
}

func TestCanCreateUser(t *testing.T) {
	super := Identity{UserID: 1, Role: RoleSuperAdmin}
	collegeAdmin := Identity{UserID: 2, Role: RoleCollegeAdmin, CollegeID: uintPtr(1)}
	deptAdmin := Identity{UserID: 3, Role: RoleDepartmentAdmin, DepartmentID: uintPtr(10)}

	if !CanCreateUser(super, RoleCollegeAdmin) || !CanCreateUser(super, RoleDepartmentAdmin) {
		t.Error("superadmin should create any admin account")
	}
	if !CanCreateUser(collegeAdmin, RoleDepartmentAdmin) {
		t.Error("college admin should create department admins")
	}
	if CanCreateUser(collegeAdmin, RoleCollegeAdmin) || CanCreateUser(collegeAdmin, RoleSuperAdmin) {
		t.Error("college admin must only create department admins")
	}
	if CanCreateUser(deptAdmin, RoleDepartmentAdmin) {
		t.Error("department admin must not create accounts")
	}
}

func TestCanUpdateUserReassignment(t *testing.T) {
	departments, users := userFixtures()
	collegeAdmin := Identity{UserID: 2, Role: RoleCollegeAdmin, CollegeID: uintPtr(1)}
	floating := users[4]

	// Assigning the unassigned admin into a department of the admin's own
	// college is allowed; into another college's department is not.
	if !CanUpdateUser(collegeAdmin, floating, uintPtr(10), departments) {
		t.Error("should reassign into own college's department")
	}
	if CanUpdateUser(collegeAdmin, floating, uintPtr(20), departments) {
		t.Error("must not reassign into another college's department")
	}
	if CanUpdateUser(collegeAdmin, floating, uintPtr(99), departments) {
		t.Error("reassignment into an unknown department must fail closed")
	}

	// A college admin cannot touch accounts above department admin.
	if CanUpdateUser(collegeAdmin, users[0], nil, departments) {
		t.Error("college admin must not manage non-department-admin accounts")
	}
}

func TestSelfProfileAlwaysAccessible(t *testing.T) {
	departments, users := userFixtures()
	deptAdmin := Identity{UserID: 4, Role: RoleDepartmentAdmin, DepartmentID: uintPtr(20)}
	self := users[3]

	if !CanViewUser(deptAdmin, self, departments) {
		t.Error("every role should view its own profile")
	}
	if !CanUpdateUser(deptAdmin, self, nil, departments) {
		t.Error("every role should update its own profile")
	}
	if CanViewUser(deptAdmin, users[2], departments) {
		t.Error("department admin must not view other accounts")
	}
}

func TestCanDeleteUser(t *testing.T) {
	_, users := userFixtures()
	super := Identity{UserID: 1, Role: RoleSuperAdmin}

	if !CanDeleteUser(super, users[2]) {
		t.Error("superadmin should delete department admin accounts")
	}
	if CanDeleteUser(super, users[0]) {
		t.Error("superadmin accounts are not deletable")
	}
	collegeAdmin := Identity{UserID: 2, Role: RoleCollegeAdmin, CollegeID: uintPtr(1)}
	if CanDeleteUser(collegeAdmin, users[2]) {
		t.Error("college admin must not delete accounts")
	}
}

func TestCheckArea(t *testing.T) {
	super := &Identity{UserID: 1, Role: RoleSuperAdmin}
	collegeAdmin := &Identity{UserID: 2, Role: RoleCollegeAdmin, CollegeID: uintPtr(1)}

	cases := []struct {
		name string
		id   *Identity
		area Area
		want Decision
	}{
		{"no session", nil, AreaSuperAdmin, DecisionUnauthenticated},
		{"super in super area", super, AreaSuperAdmin, DecisionAllow},
		{"super in college area", super, AreaCollegeAdmin, DecisionUnauthorized},
		{"college admin in college area", collegeAdmin, AreaCollegeAdmin, DecisionAllow},
		{"college admin in super area", collegeAdmin, AreaSuperAdmin, DecisionUnauthorized},
		{"unknown area", super, Area("billing"), DecisionUnauthorized},
	}
	for _, tc := range cases {
		if got := CheckArea(tc.id, tc.area); got != tc.want {
			t.Errorf("%s: CheckArea = %v, want %v", tc.name, got, tc.want)
		}
	}
}
