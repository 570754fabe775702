package user

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/campuslink/portal-api/authz"
	"github.com/campuslink/portal-api/model"
	authutil "github.com/campuslink/portal-api/utils/auth"
	"github.com/campuslink/portal-api/utils/middleware"
	"github.com/campuslink/portal-api/utils/response"
	"github.com/campuslink/portal-api/utils/validation"
)

// UserHandler handles administrator account management
type UserHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewUserHandler creates a new user handler
func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateUserRequest represents the request body for creating an account
type CreateUserRequest struct {
	Username     string `json:"username" validate:"required,min=3,max=150"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	Role         string `json:"role" validate:"required"`
	CollegeID    *uint  `json:"college" validate:"omitempty"`
	DepartmentID *uint  `json:"department" validate:"omitempty"`
}

// UpdateUserRequest represents the request body for updating an account
type UpdateUserRequest struct {
	Email        string `json:"email" validate:"omitempty,email"`
	Password     string `json:"password" validate:"omitempty,min=8"`
	DepartmentID *uint  `json:"department" validate:"omitempty"`
}

// UserResponse is the account payload returned by user management
type UserResponse struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	CollegeID    *uint     `json:"college,omitempty"`
	DepartmentID *uint     `json:"department,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserListResponse pairs the visible accounts with the caller's permissions
type UserListResponse struct {
	Users []UserResponse `json:"users"`
	authz.Permissions
}

func toUserResponse(u model.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Role:         u.Role,
		CollegeID:    u.CollegeID,
		DepartmentID: u.DepartmentID,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// ListUsers handles GET /api/v1/users
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	departments, users, err := h.loadAll()
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch users")
	}

	scope := authz.ResolveUsers(*identity, departments, users)
	visible := make([]UserResponse, 0, len(scope.Visible))
	for _, u := range scope.Visible {
		visible = append(visible, toUserResponse(u))
	}

	return response.Success(c, UserListResponse{
		Users:       visible,
		Permissions: scope.Permissions,
	})
}

// GetUser handles GET /api/v1/users/:id
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	target, departments, err := h.findUser(c.Params("id"))
	if err != nil {
		return h.notFoundOrError(c, err)
	}
	if !authz.CanViewUser(*identity, *target, departments) {
		return response.NotFound(c, "User not found")
	}

	return response.Success(c, toUserResponse(*target))
}

// CreateUser handles POST /api/v1/users. The superadmin creates college and
// department admins; college admins create department admins for their own
// college.
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		return response.ValidationError(c, err)
	}

	role, err := authz.ParseRole(req.Role)
	if err != nil {
		return response.BadRequest(c, "Unknown role")
	}
	if !authz.CanCreateUser(*identity, role) {
		return response.Forbidden(c, "You cannot create accounts with this role")
	}

	var existing model.User
	if err := h.db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		return response.Conflict(c, "Username is already taken")
	} else if err != gorm.ErrRecordNotFound {
		return response.InternalServerError(c, "Failed to check username")
	}

	collegeID := req.CollegeID
	departmentID := req.DepartmentID

	// A college admin's new department admins are bound to the admin's own
	// college regardless of what the request says.
	if identity.Role == authz.RoleCollegeAdmin {
		if identity.CollegeID == nil {
			return response.Forbidden(c, "Your account has no college affiliation")
		}
		collegeID = identity.CollegeID
		if departmentID != nil {
			if ok, err := h.departmentInCollege(*departmentID, *identity.CollegeID); err != nil {
				return response.InternalServerError(c, "Failed to check department")
			} else if !ok {
				return response.Forbidden(c, "Department belongs to another college")
			}
		}
	}

	hash, err := authutil.HashPassword(req.Password)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	user := model.User{
		Username:     validation.SanitizeString(req.Username),
		Email:        req.Email,
		PasswordHash: hash,
		Role:         string(role),
		CollegeID:    collegeID,
		DepartmentID: departmentID,
	}

	if err := h.db.Create(&user).Error; err != nil {
		return response.InternalServerError(c, "Failed to create user")
	}

	return response.Created(c, toUserResponse(user))
}

// UpdateUser handles PATCH /api/v1/users/:id
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	target, departments, err := h.findUser(c.Params("id"))
	if err != nil {
		return h.notFoundOrError(c, err)
	}

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		return response.ValidationError(c, err)
	}

	if !authz.CanUpdateUser(*identity, *target, req.DepartmentID, departments) {
		if authz.CanViewUser(*identity, *target, departments) {
			return response.Forbidden(c, "You cannot modify this account")
		}
		return response.NotFound(c, "User not found")
	}

	if req.Email != "" {
		target.Email = req.Email
	}
	if req.Password != "" {
		hash, err := authutil.HashPassword(req.Password)
		if err != nil {
			return response.BadRequest(c, err.Error())
		}
		target.PasswordHash = hash
		// A password set by an administrator invalidates the account's
		// outstanding tokens.
		target.TokenVersion++
	}
	if req.DepartmentID != nil {
		target.DepartmentID = req.DepartmentID
	}

	if err := h.db.Save(target).Error; err != nil {
		return response.InternalServerError(c, "Failed to update user")
	}

	return response.SuccessWithMessage(c, "User updated", toUserResponse(*target))
}

// DeleteUser handles DELETE /api/v1/users/:id. Only the superadmin deletes
// accounts, and never another superadmin.
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	target, departments, err := h.findUser(c.Params("id"))
	if err != nil {
		return h.notFoundOrError(c, err)
	}

	if !authz.CanDeleteUser(*identity, *target) {
		if authz.CanViewUser(*identity, *target, departments) {
			return response.Forbidden(c, "You cannot delete this account")
		}
		return response.NotFound(c, "User not found")
	}

	if err := h.db.Delete(target).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete user")
	}

	return response.SuccessWithMessage(c, "User deleted", nil)
}

func (h *UserHandler) loadAll() ([]model.Department, []model.User, error) {
	var departments []model.Department
	if err := h.db.Find(&departments).Error; err != nil {
		return nil, nil, err
	}
	var users []model.User
	if err := h.db.Order("id").Find(&users).Error; err != nil {
		return nil, nil, err
	}
	return departments, users, nil
}

func (h *UserHandler) findUser(param string) (*model.User, []model.Department, error) {
	id, err := validation.ParseID(param)
	if err != nil {
		return nil, nil, err
	}

	var user model.User
	if err := h.db.First(&user, id).Error; err != nil {
		return nil, nil, err
	}
	var departments []model.Department
	if err := h.db.Find(&departments).Error; err != nil {
		return nil, nil, err
	}
	return &user, departments, nil
}

func (h *UserHandler) departmentInCollege(departmentID, collegeID uint) (bool, error) {
	var dept model.Department
	if err := h.db.First(&dept, departmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, err
	}
	return dept.CollegeID == collegeID, nil
}

func (h *UserHandler) notFoundOrError(c *fiber.Ctx, err error) error {
	switch err {
	case validation.ErrInvalidID:
		return response.BadRequest(c, "Invalid user id")
	case gorm.ErrRecordNotFound:
		return response.NotFound(c, "User not found")
	}
	return response.InternalServerError(c, "Failed to fetch user")
}
