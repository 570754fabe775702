package stats

import (
	"testing"
	"time"

	"github.com/campuslink/portal-api/model"
)

func mkTime(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestGrowthSeriesSkipsEmptyMonths(t *testing.T) {
	partnerships := []model.Partnership{
		{ID: 1, CreatedAt: mkTime(2025, time.January, 5)},
		{ID: 2, CreatedAt: mkTime(2025, time.January, 20)},
		{ID: 3, CreatedAt: mkTime(2025, time.March, 2)},
	}

	series := GrowthSeries(partnerships, ByCreatedAt)
	want := []GrowthPoint{
		{Month: "2025-01", Count: 2},
		{Month: "2025-03", Count: 1},
	}
	if len(series) != len(want) {
		t.Fatalf("series = %+v, want %+v", series, want)
	}
	for i := range want {
		if series[i] != want[i] {
			t.Errorf("series[%d] = %+v, want %+v", i, series[i], want[i])
		}
	}
}

func TestGrowthSeriesExcludesZeroTimes(t *testing.T) {
	partnerships := []model.Partnership{
		{ID: 1, DateStarted: mkTime(2025, time.February, 1)},
		{ID: 2}, // never started, zero date
	}
	series := GrowthSeries(partnerships, ByDateStarted)
	if len(series) != 1 || series[0].Count != 1 {
		t.Fatalf("series = %+v, want one bucket of count 1", series)
	}
}

func TestRoleDistributionOmitsAbsentRoles(t *testing.T) {
	users := []model.User{
		{ID: 1, Role: model.RoleCollegeAdmin},
		{ID: 2, Role: model.RoleCollegeAdmin},
		{ID: 3, Role: model.RoleDepartmentAdmin},
	}
	dist := RoleDistribution(users)
	if len(dist) != 2 {
		t.Fatalf("distribution = %+v, want 2 roles", dist)
	}
	counts := map[string]int{}
	for _, rc := range dist {
		counts[rc.Role] = rc.Count
	}
	if counts[model.RoleCollegeAdmin] != 2 || counts[model.RoleDepartmentAdmin] != 1 {
		t.Errorf("distribution = %+v", dist)
	}
	if _, ok := counts[model.RoleSuperAdmin]; ok {
		t.Error("zero-count role must be omitted, not reported as zero")
	}
}

func TestTopDepartmentsRanking(t *testing.T) {
	// Six departments with partnership counts 5,4,3,2,1,0: output is the
	// top five, descending, and the zero-count department is absent.
	departments := make([]model.Department, 6)
	var partnerships []model.Partnership
	next := uint(1)
	for i := range departments {
		departments[i] = model.Department{ID: uint(i + 1), CollegeID: 1, Name: "Dept"}
		for j := 0; j < 5-i; j++ {
			partnerships = append(partnerships, model.Partnership{ID: next, DepartmentID: uint(i + 1)})
			next++
		}
	}

	ranked := TopDepartments(partnerships, departments)
	if len(ranked) != 5 {
		t.Fatalf("ranked = %d entries, want 5", len(ranked))
	}
	for i, gc := range ranked {
		if wantCount := 5 - i; gc.Count != wantCount {
			t.Errorf("ranked[%d] = count %d, want %d", i, gc.Count, wantCount)
		}
	}
	for _, gc := range ranked {
		if gc.ID == 6 {
			t.Error("zero-count department must not appear in the ranking")
		}
	}
}

func TestTopDepartmentsTieBreakByID(t *testing.T) {
	departments := []model.Department{
		{ID: 7, CollegeID: 1, Name: "B"},
		{ID: 3, CollegeID: 1, Name: "A"},
	}
	partnerships := []model.Partnership{
		{ID: 1, DepartmentID: 7},
		{ID: 2, DepartmentID: 3},
	}
	ranked := TopDepartments(partnerships, departments)
	if len(ranked) != 2 || ranked[0].ID != 3 || ranked[1].ID != 7 {
		t.Fatalf("tie-break: ranked = %+v, want ids [3 7]", ranked)
	}
}

func TestTopDepartmentsSkipsDanglingReferences(t *testing.T) {
	departments := []model.Department{{ID: 1, CollegeID: 1, Name: "IT"}}
	partnerships := []model.Partnership{
		{ID: 1, DepartmentID: 1},
		{ID: 2, DepartmentID: 99}, // department no longer exists
	}
	ranked := TopDepartments(partnerships, departments)
	if len(ranked) != 1 || ranked[0].Count != 1 {
		t.Fatalf("ranked = %+v, want the dangling record skipped", ranked)
	}
}

func TestTopCollegesFollowsDepartmentLookup(t *testing.T) {
	colleges := []model.College{
		{ID: 1, Code: "CCS"},
		{ID: 2, Code: "CBA"},
	}
	departments := []model.Department{
		{ID: 10, CollegeID: 1},
		{ID: 11, CollegeID: 1},
		{ID: 20, CollegeID: 2},
	}
	partnerships := []model.Partnership{
		{ID: 1, DepartmentID: 10},
		{ID: 2, DepartmentID: 11},
		{ID: 3, DepartmentID: 20},
		{ID: 4, DepartmentID: 55}, // dangling department
	}

	ranked := TopColleges(partnerships, departments, colleges)
	if len(ranked) != 2 {
		t.Fatalf("ranked = %+v, want 2 colleges", ranked)
	}
	if ranked[0].Label != "CCS" || ranked[0].Count != 2 {
		t.Errorf("ranked[0] = %+v, want CCS with 2", ranked[0])
	}
	if ranked[1].Label != "CBA" || ranked[1].Count != 1 {
		t.Errorf("ranked[1] = %+v, want CBA with 1", ranked[1])
	}
}

func TestCountByStatus(t *testing.T) {
	partnerships := []model.Partnership{
		{ID: 1, Status: model.PartnershipStatusActive},
		{ID: 2, Status: model.PartnershipStatusActive},
		{ID: 3, Status: model.PartnershipStatusInactive},
		{ID: 4, Status: "pending"}, // outside the status set, not counted
	}
	b := CountByStatus(partnerships)
	if b.Active != 2 || b.Inactive != 1 {
		t.Errorf("breakdown = %+v, want active=2 inactive=1", b)
	}
}
