package partnership

import (
	"errors"
	"time"

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

// PartnershipHandler handles partnership management requests
type PartnershipHandler struct {
	db        *gorm.DB
	storage   *storage.Client
	validator *validation.Validator
}

// NewPartnershipHandler creates a new partnership handler
func NewPartnershipHandler(db *gorm.DB, storageClient *storage.Client) *PartnershipHandler {
	return &PartnershipHandler{
		db:        db,
		storage:   storageClient,
		validator: validation.NewValidator(),
	}
}

// CreatePartnershipRequest represents the request body for creating a partnership
type CreatePartnershipRequest struct {
	DepartmentID  uint   `json:"department" form:"department" validate:"required"`
	Title         string `json:"title" form:"title" validate:"required,min=3,max=255"`
	Description   string `json:"description" form:"description" validate:"omitempty,max=5000"`
	Status        string `json:"status" form:"status" validate:"omitempty,oneof=active inactive"`
	ContactPerson string `json:"contact_person" form:"contact_person" validate:"omitempty,max=255"`
	ContactEmail  string `json:"contact_email" form:"contact_email" validate:"omitempty,email"`
	ContactPhone  string `json:"contact_phone" form:"contact_phone" validate:"omitempty"`
	PhoneType     string `json:"phone_type" form:"phone_type" validate:"omitempty,oneof=cell telephone"`
	DateStarted   string `json:"date_started" form:"date_started" validate:"required"`
	DateEnded     string `json:"date_ended" form:"date_ended" validate:"omitempty"`
}

// UpdatePartnershipRequest represents the request body for updating a partnership
type UpdatePartnershipRequest struct {
	Title         string  `json:"title" form:"title" validate:"omitempty,min=3,max=255"`
	Description   *string `json:"description" form:"description" validate:"omitempty,max=5000"`
	Status        string  `json:"status" form:"status" validate:"omitempty,oneof=active inactive"`
	ContactPerson *string `json:"contact_person" form:"contact_person" validate:"omitempty,max=255"`
	ContactEmail  *string `json:"contact_email" form:"contact_email" validate:"omitempty,email"`
	ContactPhone  *string `json:"contact_phone" form:"contact_phone" validate:"omitempty"`
	PhoneType     string  `json:"phone_type" form:"phone_type" validate:"omitempty,oneof=cell telephone"`
	DateStarted   string  `json:"date_started" form:"date_started" validate:"omitempty"`
	DateEnded     *string `json:"date_ended" form:"date_ended" validate:"omitempty"`
}

// PartnershipListResponse pairs the visible set with the caller's permissions
type PartnershipListResponse struct {
	Partnerships []model.Partnership `json:"partnerships"`
	authz.Permissions
}

const dateLayout = "2006-01-02"

// ListPartnerships handles GET /api/v1/partnerships
func (h *PartnershipHandler) ListPartnerships(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	departments, partnerships, err := h.loadAll()
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch partnerships")
	}

	scope := authz.ResolvePartnerships(*identity, departments, partnerships)
	return response.Success(c, PartnershipListResponse{
		Partnerships: scope.Visible,
		Permissions:  scope.Permissions,
	})
}

// GetPartnership handles GET /api/v1/partnerships/:id
func (h *PartnershipHandler) GetPartnership(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	p, _, err := h.findVisible(identity, c.Params("id"))
	if err != nil {
		return h.notFoundOrError(c, err)
	}

	return response.Success(c, p)
}

// CreatePartnership handles POST /api/v1/partnerships
func (h *PartnershipHandler) CreatePartnership(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	var req CreatePartnershipRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		return response.ValidationError(c, err)
	}

	var departments []model.Department
	if err := h.db.Find(&departments).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch departments")
	}
	if !authz.CanCreatePartnership(*identity, req.DepartmentID, departments) {
		return response.Forbidden(c, "You cannot create partnerships under this department")
	}

	dateStarted, err := time.Parse(dateLayout, req.DateStarted)
	if err != nil {
		return response.BadRequest(c, "date_started must be YYYY-MM-DD")
	}
	var dateEnded *time.Time
	if req.DateEnded != "" {
		parsed, err := time.Parse(dateLayout, req.DateEnded)
		if err != nil {
			return response.BadRequest(c, "date_ended must be YYYY-MM-DD")
		}
		dateEnded = &parsed
	}
	if err := validation.ValidateDateRange(dateStarted, dateEnded); err != nil {
		return response.BadRequest(c, err.Error())
	}

	if req.ContactPhone != "" {
		if err := validation.ValidateContactPhone(req.PhoneType, req.ContactPhone); err != nil {
			return response.BadRequest(c, err.Error())
		}
	}

	status := req.Status
	if status == "" {
		status = model.PartnershipStatusActive
	}

	userID := identity.UserID
	p := model.Partnership{
		DepartmentID:  req.DepartmentID,
		Title:         validation.SanitizeString(req.Title),
		Description:   req.Description,
		Status:        status,
		ContactPerson: validation.SanitizeString(req.ContactPerson),
		ContactEmail:  req.ContactEmail,
		ContactPhone:  req.ContactPhone,
		PhoneType:     req.PhoneType,
		DateStarted:   dateStarted,
		DateEnded:     dateEnded,
		CreatedByID:   &userID,
	}

	logoURL, err := h.maybeUploadLogo(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	p.LogoURL = logoURL

	if err := h.db.Create(&p).Error; err != nil {
		return response.InternalServerError(c, "Failed to create partnership")
	}

	return response.Created(c, p)
}

// UpdatePartnership handles PATCH /api/v1/partnerships/:id
func (h *PartnershipHandler) UpdatePartnership(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	p, owner, err := h.findVisible(identity, c.Params("id"))
	if err != nil {
		return h.notFoundOrError(c, err)
	}
	if !authz.CanModifyPartnership(*identity, *p, owner) {
		return response.Forbidden(c, "You cannot modify this partnership")
	}

	var req UpdatePartnershipRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		return response.ValidationError(c, err)
	}

	if req.Title != "" {
		p.Title = validation.SanitizeString(req.Title)
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Status != "" {
		p.Status = req.Status
	}
	if req.ContactPerson != nil {
		p.ContactPerson = validation.SanitizeString(*req.ContactPerson)
	}
	if req.ContactEmail != nil {
		p.ContactEmail = *req.ContactEmail
	}
	if req.PhoneType != "" {
		p.PhoneType = req.PhoneType
	}
	if req.ContactPhone != nil {
		p.ContactPhone = *req.ContactPhone
	}
	if p.ContactPhone != "" {
		if err := validation.ValidateContactPhone(p.PhoneType, p.ContactPhone); err != nil {
			return response.BadRequest(c, err.Error())
		}
	}

	if req.DateStarted != "" {
		parsed, err := time.Parse(dateLayout, req.DateStarted)
		if err != nil {
			return response.BadRequest(c, "date_started must be YYYY-MM-DD")
		}
		p.DateStarted = parsed
	}
	if req.DateEnded != nil {
		if *req.DateEnded == "" {
			p.DateEnded = nil
		} else {
			parsed, err := time.Parse(dateLayout, *req.DateEnded)
			if err != nil {
				return response.BadRequest(c, "date_ended must be YYYY-MM-DD")
			}
			p.DateEnded = &parsed
		}
	}
	if err := validation.ValidateDateRange(p.DateStarted, p.DateEnded); err != nil {
		return response.BadRequest(c, err.Error())
	}

	logoURL, err := h.maybeUploadLogo(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	if logoURL != "" {
		p.LogoURL = logoURL
	}

	if err := h.db.Save(p).Error; err != nil {
		return response.InternalServerError(c, "Failed to update partnership")
	}

	return response.SuccessWithMessage(c, "Partnership updated", p)
}

// DeletePartnership handles DELETE /api/v1/partnerships/:id
func (h *PartnershipHandler) DeletePartnership(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	p, owner, err := h.findVisible(identity, c.Params("id"))
	if err != nil {
		return h.notFoundOrError(c, err)
	}
	if !authz.CanModifyPartnership(*identity, *p, owner) {
		return response.Forbidden(c, "You cannot delete this partnership")
	}

	if err := h.db.Delete(p).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete partnership")
	}

	return response.SuccessWithMessage(c, "Partnership deleted", nil)
}

func (h *PartnershipHandler) loadAll() ([]model.Department, []model.Partnership, error) {
	var departments []model.Department
	if err := h.db.Find(&departments).Error; err != nil {
		return nil, nil, err
	}
	var partnerships []model.Partnership
	if err := h.db.Order("id").Find(&partnerships).Error; err != nil {
		return nil, nil, err
	}
	return departments, partnerships, nil
}

// findVisible loads a partnership by path id along with its owning
// department and confirms the identity can see it. Invisible rows read as
// not found so existence does not leak.
func (h *PartnershipHandler) findVisible(identity *authz.Identity, param string) (*model.Partnership, *model.Department, error) {
	id, err := validation.ParseID(param)
	if err != nil {
		return nil, nil, err
	}

	var p model.Partnership
	if err := h.db.First(&p, id).Error; err != nil {
		return nil, nil, err
	}

	var owner model.Department
	if err := h.db.First(&owner, p.DepartmentID).Error; err != nil {
		return nil, nil, err
	}

	scope := authz.ResolvePartnerships(*identity, []model.Department{owner}, []model.Partnership{p})
	if len(scope.Visible) == 0 {
		return nil, nil, gorm.ErrRecordNotFound
	}
	return &p, &owner, nil
}

func (h *PartnershipHandler) notFoundOrError(c *fiber.Ctx, err error) error {
	switch err {
	case validation.ErrInvalidID:
		return response.BadRequest(c, "Invalid partnership id")
	case gorm.ErrRecordNotFound:
		return response.NotFound(c, "Partnership not found")
	}
	return response.InternalServerError(c, "Failed to fetch partnership")
}

func (h *PartnershipHandler) maybeUploadLogo(c *fiber.Ctx) (string, error) {
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
	return h.storage.UploadLogo(c.Context(), "partnership_logos", fh.Filename, contentType, data)
}
