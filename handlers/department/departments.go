package department

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/campuslink/portal-api/authz"
	"github.com/campuslink/portal-api/model"
	"github.com/campuslink/portal-api/services/storage"
	"github.com/campuslink/portal-api/utils/middleware"
	"github.com/campuslink/portal-api/utils/response"
	"github.com/campuslink/portal-api/utils/validation"
)

var errStorageDisabled = errors.New("logo storage is not configured")

// DepartmentHandler handles department management requests
type DepartmentHandler struct {
	db        *gorm.DB
	storage   *storage.Client
	validator *validation.Validator
}

// NewDepartmentHandler creates a new department handler
func NewDepartmentHandler(db *gorm.DB, storageClient *storage.Client) *DepartmentHandler {
	return &DepartmentHandler{
		db:        db,
		storage:   storageClient,
		validator: validation.NewValidator(),
	}
}

// CreateDepartmentRequest represents the request body for creating a department
type CreateDepartmentRequest struct {
	CollegeID uint   `json:"college" form:"college" validate:"required"`
	Code      string `json:"code" form:"code" validate:"required,min=2,max=50"`
	Name      string `json:"name" form:"name" validate:"required,min=3,max=255"`
	AdminID   *uint  `json:"admin" form:"admin" validate:"omitempty"`
}

// UpdateDepartmentRequest represents the request body for updating a department
type UpdateDepartmentRequest struct {
	Code    string `json:"code" form:"code" validate:"omitempty,min=2,max=50"`
	Name    string `json:"name" form:"name" validate:"omitempty,min=3,max=255"`
	AdminID *uint  `json:"admin" form:"admin" validate:"omitempty"`
}

// DepartmentListResponse pairs the visible set with the caller's permissions
type DepartmentListResponse struct {
	Departments []model.Department `json:"departments"`
	authz.Permissions
}

// ListDepartments handles GET /api/v1/departments with an optional
// ?college= filter applied after scope resolution.
func (h *DepartmentHandler) ListDepartments(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	var departments []model.Department
	if err := h.db.Order("id").Find(&departments).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch departments")
	}

	scope := authz.ResolveDepartments(*identity, departments)
	visible := scope.Visible

	if filter := c.Query("college"); filter != "" {
		collegeID, err := strconv.ParseUint(filter, 10, 32)
		if err != nil {
			return response.BadRequest(c, "Invalid college filter")
		}
		filtered := []model.Department{}
		for _, d := range visible {
			if d.CollegeID == uint(collegeID) {
				filtered = append(filtered, d)
			}
		}
		visible = filtered
	}

	return response.Success(c, DepartmentListResponse{
		Departments: visible,
		Permissions: scope.Permissions,
	})
}

// GetDepartment handles GET /api/v1/departments/:id
func (h *DepartmentHandler) GetDepartment(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	dept, err := h.findVisible(identity, c.Params("id"))
	if err != nil {
		return h.notFoundOrError(c, err)
	}

	return response.Success(c, dept)
}

// CreateDepartment handles POST /api/v1/departments
func (h *DepartmentHandler) CreateDepartment(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	var req CreateDepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		return response.ValidationError(c, err)
	}

	if !authz.CanCreateDepartment(*identity, req.CollegeID) {
		return response.Forbidden(c, "You cannot create departments under this college")
	}

	var parent model.College
	if err := h.db.First(&parent, req.CollegeID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.BadRequest(c, "College does not exist")
		}
		return response.InternalServerError(c, "Failed to fetch college")
	}

	// Code must be unique within the college
	var existing model.Department
	if err := h.db.Where("college_id = ? AND code = ?", req.CollegeID, req.Code).
		First(&existing).Error; err == nil {
		return response.Conflict(c, "A department with this code already exists in the college")
	} else if err != gorm.ErrRecordNotFound {
		return response.InternalServerError(c, "Failed to check department code")
	}

	dept := model.Department{
		CollegeID: req.CollegeID,
		Code:      validation.SanitizeString(req.Code),
		Name:      validation.SanitizeString(req.Name),
		AdminID:   req.AdminID,
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
	dept.LogoURL = logoURL

	if err := h.db.Create(&dept).Error; err != nil {
		return response.InternalServerError(c, "Failed to create department")
	}

	if dept.AdminID != nil {
		h.syncAdmin(&dept)
	}

	return response.Created(c, dept)
}

// UpdateDepartment handles PATCH /api/v1/departments/:id
func (h *DepartmentHandler) UpdateDepartment(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	dept, err := h.findVisible(identity, c.Params("id"))
	if err != nil {
		return h.notFoundOrError(c, err)
	}
	if !authz.CanModifyDepartment(*identity, *dept) {
		return response.Forbidden(c, "You cannot modify this department")
	}

	var req UpdateDepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		return response.ValidationError(c, err)
	}

	if req.Code != "" && req.Code != dept.Code {
		var existing model.Department
		if err := h.db.Where("college_id = ? AND code = ? AND id <> ?",
			dept.CollegeID, req.Code, dept.ID).First(&existing).Error; err == nil {
			return response.Conflict(c, "A department with this code already exists in the college")
		} else if err != gorm.ErrRecordNotFound {
			return response.InternalServerError(c, "Failed to check department code")
		}
		dept.Code = validation.SanitizeString(req.Code)
	}
	if req.Name != "" {
		dept.Name = validation.SanitizeString(req.Name)
	}
	if req.AdminID != nil {
		if err := h.validateAdmin(*req.AdminID); err != nil {
			return response.BadRequest(c, err.Error())
		}
		dept.AdminID = req.AdminID
	}

	logoURL, err := h.maybeUploadLogo(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	if logoURL != "" {
		dept.LogoURL = logoURL
	}

	if err := h.db.Save(dept).Error; err != nil {
		return response.InternalServerError(c, "Failed to update department")
	}

	if dept.AdminID != nil {
		h.syncAdmin(dept)
	}

	return response.SuccessWithMessage(c, "Department updated", dept)
}

// DeleteDepartment handles DELETE /api/v1/departments/:id. Partnerships
// under the department go with it.
func (h *DepartmentHandler) DeleteDepartment(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	dept, err := h.findVisible(identity, c.Params("id"))
	if err != nil {
		return h.notFoundOrError(c, err)
	}
	if !authz.CanModifyDepartment(*identity, *dept) {
		return response.Forbidden(c, "You cannot delete this department")
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("department_id = ?", dept.ID).
			Delete(&model.Partnership{}).Error; err != nil {
			return err
		}
		return tx.Delete(dept).Error
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to delete department")
	}

	return response.SuccessWithMessage(c, "Department deleted", nil)
}

// ListDepartmentPartnerships handles GET /api/v1/departments/:id/partnerships
func (h *DepartmentHandler) ListDepartmentPartnerships(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	dept, err := h.findVisible(identity, c.Params("id"))
	if err != nil {
		return h.notFoundOrError(c, err)
	}

	var partnerships []model.Partnership
	if err := h.db.Where("department_id = ?", dept.ID).
		Order("id").Find(&partnerships).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch partnerships")
	}

	return response.Success(c, partnerships)
}

// findVisible loads a department by path id and confirms the identity can
// see it. Department admins resolve an empty department scope but still
// need to read their own department, so that case is answered directly.
func (h *DepartmentHandler) findVisible(identity *authz.Identity, param string) (*model.Department, error) {
	id, err := validation.ParseID(param)
	if err != nil {
		return nil, err
	}

	var dept model.Department
	if err := h.db.First(&dept, id).Error; err != nil {
		return nil, err
	}

	if identity.Role == authz.RoleDepartmentAdmin {
		if identity.DepartmentID != nil && *identity.DepartmentID == dept.ID {
			return &dept, nil
		}
		return nil, gorm.ErrRecordNotFound
	}

	scope := authz.ResolveDepartments(*identity, []model.Department{dept})
	if len(scope.Visible) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &dept, nil
}

func (h *DepartmentHandler) notFoundOrError(c *fiber.Ctx, err error) error {
	switch err {
	case validation.ErrInvalidID:
		return response.BadRequest(c, "Invalid department id")
	case gorm.ErrRecordNotFound:
		return response.NotFound(c, "Department not found")
	}
	return response.InternalServerError(c, "Failed to fetch department")
}

func (h *DepartmentHandler) validateAdmin(adminID uint) error {
	var admin model.User
	if err := h.db.First(&admin, adminID).Error; err != nil {
		return errors.New("admin account not found")
	}
	if admin.Role != model.RoleDepartmentAdmin {
		return errors.New("admin account must hold the department admin role")
	}
	return nil
}

func (h *DepartmentHandler) syncAdmin(dept *model.Department) {
	h.db.Model(&model.User{}).
		Where("id = ?", *dept.AdminID).
		Update("department_id", dept.ID)
}

func (h *DepartmentHandler) maybeUploadLogo(c *fiber.Ctx) (string, error) {
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
	return h.storage.UploadLogo(c.Context(), "department_logos", fh.Filename, contentType, data)
}
