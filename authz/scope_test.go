package authz

import (
	"testing"

	"github.com/campuslink/portal-api/model"
)

func uintPtr(v uint) *uint { return &v }

func testHierarchy() ([]model.College, []model.Department, []model.Partnership) {
	colleges := []model.College{
		{ID: 1, Code: "CCS", Name: "College of Computer Studies"},
		{ID: 2, Code: "CBA", Name: "College of Business Administration"},
	}
	departments := []model.Department{
		{ID: 10, CollegeID: 1, Code: "IT", Name: "Information Technology"},
		{ID: 11, CollegeID: 1, Code: "CS", Name: "Computer Science"},
		{ID: 20, CollegeID: 2, Code: "MKT", Name: "Marketing"},
	}
	partnerships := []model.Partnership{
		{ID: 100, DepartmentID: 10, Title: "Cloud Internships"},
		{ID: 101, DepartmentID: 11, Title: "Research Grant"},
		{ID: 102, DepartmentID: 20, Title: "Retail Tie-up"},
	}
	return colleges, departments, partnerships
}

func TestSuperAdminSeesEverything(t *testing.T) {
	colleges, departments, partnerships := testHierarchy()
	id := Identity{UserID: 1, Role: RoleSuperAdmin}

	if got := ResolveColleges(id, colleges); len(got.Visible) != 2 || !got.CanCreate {
		t.Errorf("superadmin colleges = %d visible, canCreate=%v; want 2, true", len(got.Visible), got.CanCreate)
	}
	if got := ResolveDepartments(id, departments); len(got.Visible) != 3 {
		t.Errorf("superadmin departments = %d visible, want 3", len(got.Visible))
	}
	if got := ResolvePartnerships(id, departments, partnerships); len(got.Visible) != 3 {
		t.Errorf("superadmin partnerships = %d visible, want 3", len(got.Visible))
	}
}

func TestSuperAdminUsersExcludeSuperadmins(t *testing.T) {
	users := []model.User{
		{ID: 1, Username: "root", Role: model.RoleSuperAdmin},
		{ID: 2, Username: "ccs-admin", Role: model.RoleCollegeAdmin, CollegeID: uintPtr(1)},
		{ID: 3, Username: "it-admin", Role: model.RoleDepartmentAdmin, DepartmentID: uintPtr(10)},
	}
	id := Identity{UserID: 1, Role: RoleSuperAdmin}
	got := ResolveUsers(id, nil, users)
	if len(got.Visible) != 2 {
		t.Fatalf("superadmin users = %d visible, want 2", len(got.Visible))
	}
	for _, u := range got.Visible {
		if u.Role == model.RoleSuperAdmin {
			t.Errorf("superadmin account %q leaked into visible set", u.Username)
		}
	}
}

func TestCollegeAdminScope(t *testing.T) {
	colleges, departments, partnerships := testHierarchy()
	id := Identity{UserID: 2, Role: RoleCollegeAdmin, CollegeID: uintPtr(1)}

	if got := ResolveColleges(id, colleges); len(got.Visible) != 0 || got.CanCreate {
		t.Errorf("college admin should have no college management surface, got %d visible canCreate=%v", len(got.Visible), got.CanCreate)
	}

	depts := ResolveDepartments(id, departments)
	if len(depts.Visible) != 2 {
		t.Fatalf("college admin departments = %d visible, want 2", len(depts.Visible))
	}
	for _, d := range depts.Visible {
		if d.CollegeID != 1 {
			t.Errorf("department %q (college %d) outside admin's college", d.Code, d.CollegeID)
		}
	}

	parts := ResolvePartnerships(id, departments, partnerships)
	if len(parts.Visible) != 2 {
		t.Fatalf("college admin partnerships = %d visible, want 2", len(parts.Visible))
	}
	for _, p := range parts.Visible {
		if p.DepartmentID != 10 && p.DepartmentID != 11 {
			t.Errorf("partnership %d (department %d) outside admin's college", p.ID, p.DepartmentID)
		}
	}
}

func TestDepartmentAdminScope(t *testing.T) {
	colleges, departments, partnerships := testHierarchy()
	id := Identity{UserID: 3, Role: RoleDepartmentAdmin, DepartmentID: uintPtr(11)}

	if got := ResolveColleges(id, colleges); len(got.Visible) != 0 {
		t.Errorf("department admin colleges = %d visible, want 0", len(got.Visible))
	}
	if got := ResolveDepartments(id, departments); len(got.Visible) != 0 {
		t.Errorf("department admin departments = %d visible, want 0", len(got.Visible))
	}

	parts := ResolvePartnerships(id, departments, partnerships)
	if len(parts.Visible) != 1 || parts.Visible[0].ID != 101 {
		t.Fatalf("department admin partnerships = %+v, want exactly partnership 101", parts.Visible)
	}
}

func TestMissingAffiliationFailsClosed(t *testing.T) {
	_, departments, partnerships := testHierarchy()

	collegeAdmin := Identity{UserID: 2, Role: RoleCollegeAdmin} // no college set
	if got := ResolveDepartments(collegeAdmin, departments); len(got.Visible) != 0 {
		t.Errorf("college admin without college saw %d departments, want 0", len(got.Visible))
	}
	if got := ResolvePartnerships(collegeAdmin, departments, partnerships); len(got.Visible) != 0 {
		t.Errorf("college admin without college saw %d partnerships, want 0", len(got.Visible))
	}

	deptAdmin := Identity{UserID: 3, Role: RoleDepartmentAdmin} // no department set
	if got := ResolvePartnerships(deptAdmin, departments, partnerships); len(got.Visible) != 0 {
		t.Errorf("department admin without department saw %d partnerships, want 0", len(got.Visible))
	}
}

func TestUnknownRoleFailsClosed(t *testing.T) {
	colleges, departments, partnerships := testHierarchy()
	id := Identity{UserID: 9, Role: Role("GUEST")}

	if got := ResolveColleges(id, colleges); len(got.Visible) != 0 {
		t.Errorf("unknown role saw %d colleges", len(got.Visible))
	}
	if got := ResolvePartnerships(id, departments, partnerships); len(got.Visible) != 0 {
		t.Errorf("unknown role saw %d partnerships", len(got.Visible))
	}
}

func TestCreationRules(t *testing.T) {
	_, departments, _ := testHierarchy()

	super := Identity{UserID: 1, Role: RoleSuperAdmin}
	collegeAdmin := Identity{UserID: 2, Role: RoleCollegeAdmin, CollegeID: uintPtr(1)}
	deptAdmin := Identity{UserID: 3, Role: RoleDepartmentAdmin, DepartmentID: uintPtr(11)}

	if !CanCreateCollege(super) {
		t.Error("superadmin should create colleges")
	}
	if CanCreateCollege(collegeAdmin) || CanCreateCollege(deptAdmin) {
		t.Error("only superadmin may create colleges")
	}

	if !CanCreateDepartment(collegeAdmin, 1) {
		t.Error("college admin should create departments in own college")
	}
	if CanCreateDepartment(collegeAdmin, 2) {
		t.Error("college admin must not create departments in another college")
	}

	if !CanCreatePartnership(collegeAdmin, 11, departments) {
		t.Error("college admin should create partnerships in own college's departments")
	}
	if CanCreatePartnership(collegeAdmin, 20, departments) {
		t.Error("college admin must not create partnerships outside own college")
	}
	if !CanCreatePartnership(deptAdmin, 11, departments) {
		t.Error("department admin should create partnerships in own department")
	}
	if CanCreatePartnership(deptAdmin, 10, departments) {
		t.Error("department admin must not create partnerships in another department")
	}
}

func TestCanModifyPartnership(t *testing.T) {
	_, departments, partnerships := testHierarchy()
	owner := &departments[2] // Marketing, college 2
	p := partnerships[2]     // Retail Tie-up, department 20

	collegeAdmin := Identity{UserID: 2, Role: RoleCollegeAdmin, CollegeID: uintPtr(1)}
	if CanModifyPartnership(collegeAdmin, p, owner) {
		t.Error("college admin modified a partnership outside their college")
	}

	otherAdmin := Identity{UserID: 4, Role: RoleCollegeAdmin, CollegeID: uintPtr(2)}
	if !CanModifyPartnership(otherAdmin, p, owner) {
		t.Error("college admin should modify partnerships in their college")
	}

	if CanModifyPartnership(otherAdmin, p, nil) {
		t.Error("missing owner department must fail closed")
	}
}

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"SUPERADMIN", "COLLEGE_ADMIN", "DEPARTMENT_ADMIN"} {
		if _, err := ParseRole(valid); err != nil {
			t.Errorf("ParseRole(%q) = %v, want nil", valid, err)
		}
	}
	for _, invalid := range []string{"", "GUEST", "superadmin", "ADMIN"} {
		if _, err := ParseRole(invalid); err == nil {
			t.Errorf("ParseRole(%q) accepted an out-of-set role", invalid)
		}
	}
}
