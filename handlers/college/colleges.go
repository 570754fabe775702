package college

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/campuslink/portal-api/authz"
	"github.com/campuslink/portal-api/model"
	"github.com/campuslink/portal-api/services/storage"
	"github.com/campuslink/portal-api/utils/middleware"
	"github.com/campuslink/portal-api/utils/response"
	"github.com/campuslink/portal-api/utils/validation"
)

// CollegeHandler handles college management requests
type CollegeHandler struct {
	db        *gorm.DB
	storage   *storage.Client
	validator *validation.Validator
}

// NewCollegeHandler creates a new college handler
func NewCollegeHandler(db *gorm.DB, storageClient *storage.Client) *CollegeHandler {
	return &CollegeHandler{
		db:        db,
		storage:   storageClient,
		validator: validation.NewValidator(),
	}
}

// CreateCollegeRequest represents the request body for creating a college
type CreateCollegeRequest struct {
	Code    string `json:"code" form:"code" validate:"required,min=2,max=20"`
	Name    string `json:"name" form:"name" validate:"required,min=3,max=255"`
	AdminID *uint  `json:"admin" form:"admin" validate:"omitempty"`
}

// UpdateCollegeRequest represents the request body for updating a college
type UpdateCollegeRequest struct {
	Code    string `json:"code" form:"code" validate:"omitempty,min=2,max=20"`
	Name    string `json:"name" form:"name" validate:"omitempty,min=3,max=255"`
	AdminID *uint  `json:"admin" form:"admin" validate:"omitempty"`
}

// CollegeListResponse pairs the visible set with the caller's permissions
type CollegeListResponse struct {
	Colleges []model.College `json:"colleges"`
	authz.Permissions
}

// ListColleges handles GET /api/v1/colleges
func (h *CollegeHandler) ListColleges(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	var colleges []model.College
	if err := h.db.Preload("Departments").Order("id").Find(&colleges).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch colleges")
	}

	scope := authz.ResolveColleges(*identity, colleges)
	return response.Success(c, CollegeListResponse{
		Colleges:    scope.Visible,
		Permissions: scope.Permissions,
	})
}

// GetCollege handles GET /api/v1/colleges/:id
func (h *CollegeHandler) GetCollege(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	college, err := h.findVisible(identity, c.Params("id"))
	if err != nil {
		return h.notFoundOrError(c, err)
	}

	return response.Success(c, college)
}

// CreateCollege handles POST /api/v1/colleges
func (h *CollegeHandler) CreateCollege(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}
	if !authz.CanCreateCollege(*identity) {
		return response.Forbidden(c, "Only the superadmin can create colleges")
	}

	var req CreateCollegeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		return response.ValidationError(c, err)
	}

	// Code must be unique across colleges
	var existing model.College
	if err := h.db.Where("code = ?", req.Code).First(&existing).Error; err == nil {
		return response.Conflict(c, "A college with this code already exists")
	} else if err != gorm.ErrRecordNotFound {
		return response.InternalServerError(c, "Failed to check college code")
	}

	college := model.College{
		Code:    validation.SanitizeString(req.Code),
		Name:    validation.SanitizeString(req.Name),
		AdminID: req.AdminID,
	}

	if req.AdminID != nil {
		if err := h.validateAdmin(*req.AdminID); err != nil {
			return response.BadRequest(c, err.Error())
		}
	}

	logoURL, err := h.maybeUploadLogo(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	college.LogoURL = logoURL

	if err := h.db.Create(&college).Error; err != nil {
		return response.InternalServerError(c, "Failed to create college")
	}

	if college.AdminID != nil {
		h.syncAdmin(&college)
	}

	return response.Created(c, college)
}

// UpdateCollege handles PATCH /api/v1/colleges/:id
func (h *CollegeHandler) UpdateCollege(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	college, err := h.findVisible(identity, c.Params("id"))
	if err != nil {
		return h.notFoundOrError(c, err)
	}

	var req UpdateCollegeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		return response.ValidationError(c, err)
	}

	if req.Code != "" && req.Code != college.Code {
		var existing model.College
		if err := h.db.Where("code = ? AND id <> ?", req.Code, college.ID).First(&existing).Error; err == nil {
			return response.Conflict(c, "A college with this code already exists")
		} else if err != gorm.ErrRecordNotFound {
			return response.InternalServerError(c, "Failed to check college code")
		}
		college.Code = validation.SanitizeString(req.Code)
	}
	if req.Name != "" {
		college.Name = validation.SanitizeString(req.Name)
	}
	if req.AdminID != nil {
		if err := h.validateAdmin(*req.AdminID); err != nil {
			return response.BadRequest(c, err.Error())
		}
		college.AdminID = req.AdminID
	}

	logoURL, err := h.maybeUploadLogo(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	if logoURL != "" {
		college.LogoURL = logoURL
	}

	if err := h.db.Save(college).Error; err != nil {
		return response.InternalServerError(c, "Failed to update college")
	}

	if college.AdminID != nil {
		h.syncAdmin(college)
	}

	return response.SuccessWithMessage(c, "College updated", college)
}

// DeleteCollege handles DELETE /api/v1/colleges/:id. Departments and
// partnerships under the college go with it.
func (h *CollegeHandler) DeleteCollege(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	college, err := h.findVisible(identity, c.Params("id"))
	if err != nil {
		return h.notFoundOrError(c, err)
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		var deptIDs []uint
		if err := tx.Model(&model.Department{}).
			Where("college_id = ?", college.ID).
			Pluck("id", &deptIDs).Error; err != nil {
			return err
		}
		if len(deptIDs) > 0 {
			if err := tx.Where("department_id IN ?", deptIDs).
				Delete(&model.Partnership{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", deptIDs).
				Delete(&model.Department{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(college).Error
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to delete college")
	}

	return response.SuccessWithMessage(c, "College deleted", nil)
}

// ListCollegeDepartments handles GET /api/v1/colleges/:id/departments
func (h *CollegeHandler) ListCollegeDepartments(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	college, err := h.findVisible(identity, c.Params("id"))
	if err != nil {
		return h.notFoundOrError(c, err)
	}

	var departments []model.Department
	if err := h.db.Where("college_id = ?", college.ID).
		Order("id").Find(&departments).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch departments")
	}

	return response.Success(c, departments)
}

// findVisible loads a college by path id and confirms the identity can see
// it. Outside the visible set the college reads as not found, never as
// forbidden, so existence does not leak.
func (h *CollegeHandler) findVisible(identity *authz.Identity, param string) (*model.College, error) {
	id, err := validation.ParseID(param)
	if err != nil {
		return nil, err
	}

	var college model.College
	if err := h.db.First(&college, id).Error; err != nil {
		return nil, err
	}

	scope := authz.ResolveColleges(*identity, []model.College{college})
	if len(scope.Visible) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &college, nil
}

func (h *CollegeHandler) notFoundOrError(c *fiber.Ctx, err error) error {
	switch err {
	case validation.ErrInvalidID:
		return response.BadRequest(c, "Invalid college id")
	case gorm.ErrRecordNotFound:
		return response.NotFound(c, "College not found")
	}
	return response.InternalServerError(c, "Failed to fetch college")
}

// validateAdmin confirms the referenced account exists and holds the
// college-admin role.
func (h *CollegeHandler) validateAdmin(adminID uint) error {
	var admin model.User
	if err := h.db.First(&admin, adminID).Error; err != nil {
		return errAdminNotFound
	}
	if admin.Role != model.RoleCollegeAdmin {
		return errAdminWrongRole
	}
	return nil
}

// syncAdmin points the assigned admin account back at the college so token
// claims issued later carry the affiliation.
func (h *CollegeHandler) syncAdmin(college *model.College) {
	h.db.Model(&model.User{}).
		Where("id = ?", *college.AdminID).
		Update("college_id", college.ID)
}

func (h *CollegeHandler) maybeUploadLogo(c *fiber.Ctx) (string, error) {
	fh, err := c.FormFile("logo")
	if err != nil {
		return "", nil // no logo attached
	}
	if h.storage == nil {
		return "", errStorageDisabled
	}

	data, contentType, err := storage.ReadFormFile(fh)
	if err != nil {
		return "", err
	}
	return h.storage.UploadLogo(c.Context(), "college_logos", fh.Filename, contentType, data)
}
