// Package viewing serves the public read-only mirrors of the organizational
// hierarchy. No authentication is required; the payloads carry only the
// fields a visitor-facing page needs.
package viewing

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/campuslink/portal-api/model"
	"github.com/campuslink/portal-api/utils/response"
)

// ViewingHandler handles public read-only requests
type ViewingHandler struct {
	db *gorm.DB
}

// NewViewingHandler creates a new viewing handler
func NewViewingHandler(db *gorm.DB) *ViewingHandler {
	return &ViewingHandler{db: db}
}

// PublicCollege is the visitor-facing college payload
type PublicCollege struct {
	ID      uint   `json:"id"`
	Code    string `json:"code"`
	Name    string `json:"name"`
	LogoURL string `json:"logo,omitempty"`
}

// PublicDepartment is the visitor-facing department payload
type PublicDepartment struct {
	ID        uint   `json:"id"`
	CollegeID uint   `json:"college"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	LogoURL   string `json:"logo,omitempty"`
}

// PublicPartnership is the visitor-facing partnership payload. Contact
// details stay internal.
type PublicPartnership struct {
	ID           uint       `json:"id"`
	DepartmentID uint       `json:"department"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Status       string     `json:"status"`
	LogoURL      string     `json:"logo,omitempty"`
	DateStarted  time.Time  `json:"date_started"`
	DateEnded    *time.Time `json:"date_ended,omitempty"`
}

// ListColleges handles GET /api/v1/viewing/colleges
func (h *ViewingHandler) ListColleges(c *fiber.Ctx) error {
	var colleges []model.College
	if err := h.db.Order("name").Find(&colleges).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch colleges")
	}

	out := make([]PublicCollege, 0, len(colleges))
	for _, col := range colleges {
		out = append(out, PublicCollege{
			ID:      col.ID,
			Code:    col.Code,
			Name:    col.Name,
			LogoURL: col.LogoURL,
		})
	}
	return response.Success(c, out)
}

// ListDepartments handles GET /api/v1/viewing/departments
func (h *ViewingHandler) ListDepartments(c *fiber.Ctx) error {
	query := h.db.Order("name")
	if filter := c.Query("college"); filter != "" {
		collegeID, err := strconv.ParseUint(filter, 10, 32)
		if err != nil {
			return response.BadRequest(c, "Invalid college filter")
		}
		query = query.Where("college_id = ?", uint(collegeID))
	}

	var departments []model.Department
	if err := query.Find(&departments).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch departments")
	}

	out := make([]PublicDepartment, 0, len(departments))
	for _, d := range departments {
		out = append(out, PublicDepartment{
			ID:        d.ID,
			CollegeID: d.CollegeID,
			Code:      d.Code,
			Name:      d.Name,
			LogoURL:   d.LogoURL,
		})
	}
	return response.Success(c, out)
}

// ListPartnerships handles GET /api/v1/viewing/partnerships with an optional
// ?department= filter. Only active partnerships are shown to visitors.
func (h *ViewingHandler) ListPartnerships(c *fiber.Ctx) error {
	query := h.db.Where("status = ?", model.PartnershipStatusActive).
		Order("date_started DESC")

	if filter := c.Query("department"); filter != "" {
		departmentID, err := strconv.ParseUint(filter, 10, 32)
		if err != nil {
			return response.BadRequest(c, "Invalid department filter")
		}
		query = query.Where("department_id = ?", uint(departmentID))
	}

	var partnerships []model.Partnership
	if err := query.Find(&partnerships).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch partnerships")
	}

	out := make([]PublicPartnership, 0, len(partnerships))
	for _, p := range partnerships {
		out = append(out, PublicPartnership{
			ID:           p.ID,
			DepartmentID: p.DepartmentID,
			Title:        p.Title,
			Description:  p.Description,
			Status:       p.Status,
			LogoURL:      p.LogoURL,
			DateStarted:  p.DateStarted,
			DateEnded:    p.DateEnded,
		})
	}
	return response.Success(c, out)
}
