// Package stats derives the read-only dashboard views from already-fetched
// entity collections. Every function here is pure and total: malformed or
// dangling records are skipped, never reported as errors, so the worst case
// is an emptier dashboard.
package stats

import (
	"sort"
	"time"

	"github.com/campuslink/portal-api/model"
)

// GrowthPoint is one calendar-month bucket of the growth series.
type GrowthPoint struct {
	Month string `json:"month"` // "2006-01"
	Count int    `json:"count"`
}

// GrowthSeries buckets partnerships by calendar month of the timestamp the
// accessor returns, ordered chronologically. Months with no records are
// absent, not zero-filled. Records for which the accessor returns a zero
// time are excluded.
func GrowthSeries(partnerships []model.Partnership, at func(model.Partnership) time.Time) []GrowthPoint {
	counts := make(map[string]int)
	for _, p := range partnerships {
		t := at(p)
		if t.IsZero() {
			continue
		}
		counts[t.Format("2006-01")]++
	}
	series := make([]GrowthPoint, 0, len(counts))
	for month, count := range counts {
		series = append(series, GrowthPoint{Month: month, Count: count})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Month < series[j].Month })
	return series
}

// ByCreatedAt is the GrowthSeries accessor for record creation time.
func ByCreatedAt(p model.Partnership) time.Time { return p.CreatedAt }

// ByDateStarted is the GrowthSeries accessor for the partnership start date,
// which is what the growth endpoint buckets on.
func ByDateStarted(p model.Partnership) time.Time { return p.DateStarted }

// RoleCount is one slice of the role-distribution chart.
type RoleCount struct {
	Role  string `json:"role"`
	Count int    `json:"count"`
}

// RoleDistribution counts users per role. Only roles present in the input
// appear; ordering is by role name so output is deterministic.
func RoleDistribution(users []model.User) []RoleCount {
	counts := make(map[string]int)
	for _, u := range users {
		counts[u.Role]++
	}
	out := make([]RoleCount, 0, len(counts))
	for role, count := range counts {
		out = append(out, RoleCount{Role: role, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Role < out[j].Role })
	return out
}

// StatusBreakdown holds the active/inactive split shown on the department
// and college dashboards.
type StatusBreakdown struct {
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}

// CountByStatus splits partnerships into active and inactive.
func CountByStatus(partnerships []model.Partnership) StatusBreakdown {
	var b StatusBreakdown
	for _, p := range partnerships {
		switch p.Status {
		case model.PartnershipStatusActive:
			b.Active++
		case model.PartnershipStatusInactive:
			b.Inactive++
		}
	}
	return b
}

// GroupCount is one row of a top-N ranking.
type GroupCount struct {
	ID    uint   `json:"id"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// topRankLimit caps the rankings at the five entries the dashboards render.
const topRankLimit = 5

// TopDepartments ranks departments by partnership count, descending, top 5.
// Ties break by department id ascending. Partnerships pointing at unknown
// departments are skipped.
func TopDepartments(partnerships []model.Partnership, departments []model.Department) []GroupCount {
	labels := make(map[uint]string, len(departments))
	for _, d := range departments {
		labels[d.ID] = d.Name
	}
	counts := make(map[uint]int)
	for _, p := range partnerships {
		if _, ok := labels[p.DepartmentID]; !ok {
			continue
		}
		counts[p.DepartmentID]++
	}
	return rank(counts, labels)
}

// TopColleges ranks colleges by partnership count through the
// department -> college lookup, descending, top 5. Ties break by college id
// ascending. Partnerships whose department or college cannot be found are
// skipped.
func TopColleges(partnerships []model.Partnership, departments []model.Department, colleges []model.College) []GroupCount {
	deptCollege := make(map[uint]uint, len(departments))
	for _, d := range departments {
		deptCollege[d.ID] = d.CollegeID
	}
	labels := make(map[uint]string, len(colleges))
	for _, c := range colleges {
		labels[c.ID] = c.Code
	}
	counts := make(map[uint]int)
	for _, p := range partnerships {
		collegeID, ok := deptCollege[p.DepartmentID]
		if !ok {
			continue
		}
		if _, ok := labels[collegeID]; !ok {
			continue
		}
		counts[collegeID]++
	}
	return rank(counts, labels)
}

func rank(counts map[uint]int, labels map[uint]string) []GroupCount {
	ranked := make([]GroupCount, 0, len(counts))
	for id, count := range counts {
		ranked = append(ranked, GroupCount{ID: id, Label: labels[id], Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].ID < ranked[j].ID
	})
	if len(ranked) > topRankLimit {
		ranked = ranked[:topRankLimit]
	}
	return ranked
}
