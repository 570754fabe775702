package partnership

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/campuslink/portal-api/authz"
	"github.com/campuslink/portal-api/model"
	"github.com/campuslink/portal-api/stats"
	"github.com/campuslink/portal-api/utils/middleware"
	"github.com/campuslink/portal-api/utils/response"
)

// GrowthResponse is the month-bucketed partnership growth series
type GrowthResponse struct {
	Series []stats.GrowthPoint `json:"series"`
	Total  int                 `json:"total"`
}

// Growth handles GET /api/v1/partnerships/growth. The series buckets the
// caller's visible partnerships by start month, with optional ?year=,
// ?month= and ?college= filters.
func (h *PartnershipHandler) Growth(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	departments, partnerships, err := h.loadAll()
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch partnerships")
	}

	scope := authz.ResolvePartnerships(*identity, departments, partnerships)
	visible := scope.Visible

	if filter := c.Query("college"); filter != "" {
		collegeID, err := strconv.ParseUint(filter, 10, 32)
		if err != nil {
			return response.BadRequest(c, "Invalid college filter")
		}
		deptIDs := make(map[uint]struct{})
		for _, d := range departments {
			if d.CollegeID == uint(collegeID) {
				deptIDs[d.ID] = struct{}{}
			}
		}
		visible = filterPartnerships(visible, func(p model.Partnership) bool {
			_, ok := deptIDs[p.DepartmentID]
			return ok
		})
	}

	if filter := c.Query("year"); filter != "" {
		year, err := strconv.Atoi(filter)
		if err != nil {
			return response.BadRequest(c, "Invalid year filter")
		}
		visible = filterPartnerships(visible, func(p model.Partnership) bool {
			return p.DateStarted.Year() == year
		})
	}

	if filter := c.Query("month"); filter != "" {
		month, err := strconv.Atoi(filter)
		if err != nil || month < 1 || month > 12 {
			return response.BadRequest(c, "Invalid month filter")
		}
		visible = filterPartnerships(visible, func(p model.Partnership) bool {
			return p.DateStarted.Month() == time.Month(month)
		})
	}

	series := stats.GrowthSeries(visible, stats.ByDateStarted)
	return response.Success(c, GrowthResponse{
		Series: series,
		Total:  len(visible),
	})
}

func filterPartnerships(in []model.Partnership, keep func(model.Partnership) bool) []model.Partnership {
	out := []model.Partnership{}
	for _, p := range in {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
