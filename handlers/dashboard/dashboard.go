// Package dashboard assembles the role-scoped admin dashboard: entity
// counts, growth series, rankings and expiry windows, all computed from the
// caller's visible sets so every role sees numbers for exactly the slice it
// manages.
package dashboard

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/campuslink/portal-api/authz"
	"github.com/campuslink/portal-api/model"
	"github.com/campuslink/portal-api/stats"
	"github.com/campuslink/portal-api/utils/middleware"
	"github.com/campuslink/portal-api/utils/response"
)

// DashboardHandler handles dashboard requests
type DashboardHandler struct {
	db *gorm.DB
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

// Counts summarizes the sizes of the caller's visible sets
type Counts struct {
	Colleges     int `json:"colleges"`
	Departments  int `json:"departments"`
	Partnerships int `json:"partnerships"`
	Users        int `json:"users"`
}

// DashboardResponse is the full dashboard payload. Sections that do not
// apply to the caller's role are omitted.
type DashboardResponse struct {
	Counts           Counts                `json:"counts"`
	StatusBreakdown  stats.StatusBreakdown `json:"status_breakdown"`
	Growth           []stats.GrowthPoint   `json:"growth"`
	RoleDistribution []stats.RoleCount     `json:"role_distribution,omitempty"`
	TopDepartments   []stats.GroupCount    `json:"top_departments,omitempty"`
	TopColleges      []stats.GroupCount    `json:"top_colleges,omitempty"`
	EndingSoon       []model.Partnership   `json:"ending_soon"`
	RecentlyExpired  []model.Partnership   `json:"recently_expired"`
	Latest           []model.Partnership   `json:"latest"`
}

const latestLimit = 3

// GetDashboard handles GET /api/v1/dashboard. The optional ?window= query
// switches the ending-soon section between the next-30-days default and the
// current calendar month.
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	policy := stats.WindowNext30Days
	switch c.Query("window", "30d") {
	case "30d":
	case "month":
		policy = stats.WindowCalendarMonth
	default:
		return response.BadRequest(c, "window must be 30d or month")
	}

	var colleges []model.College
	if err := h.db.Find(&colleges).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch colleges")
	}
	var departments []model.Department
	if err := h.db.Find(&departments).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch departments")
	}
	var partnerships []model.Partnership
	if err := h.db.Find(&partnerships).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch partnerships")
	}
	var users []model.User
	if err := h.db.Find(&users).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch users")
	}

	collegeScope := authz.ResolveColleges(*identity, colleges)
	departmentScope := authz.ResolveDepartments(*identity, departments)
	partnershipScope := authz.ResolvePartnerships(*identity, departments, partnerships)
	userScope := authz.ResolveUsers(*identity, departments, users)

	visible := partnershipScope.Visible
	now := time.Now()

	res := DashboardResponse{
		Counts: Counts{
			Colleges:     len(collegeScope.Visible),
			Departments:  len(departmentScope.Visible),
			Partnerships: len(visible),
			Users:        len(userScope.Visible),
		},
		StatusBreakdown: stats.CountByStatus(visible),
		Growth:          stats.GrowthSeries(visible, stats.ByCreatedAt),
		EndingSoon:      stats.EndingSoon(visible, now, policy),
		RecentlyExpired: stats.RecentlyExpired(visible, now),
		Latest:          stats.Latest(visible, latestLimit),
	}

	// Rankings and account breakdowns only make sense above the single
	// department level.
	switch identity.Role {
	case authz.RoleSuperAdmin:
		res.RoleDistribution = stats.RoleDistribution(userScope.Visible)
		res.TopDepartments = stats.TopDepartments(visible, departments)
		res.TopColleges = stats.TopColleges(visible, departments, colleges)
	case authz.RoleCollegeAdmin:
		res.RoleDistribution = stats.RoleDistribution(userScope.Visible)
		res.TopDepartments = stats.TopDepartments(visible, departmentScope.Visible)
	}

	return response.Success(c, res)
}
