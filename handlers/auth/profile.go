package auth

import (
	"github.com/gofiber/fiber/v2"

	authutil "github.com/campuslink/portal-api/utils/auth"
	"github.com/campuslink/portal-api/utils/middleware"
	"github.com/campuslink/portal-api/utils/response"
)

// UpdateProfileRequest represents a profile update request
type UpdateProfileRequest struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=8"`
}

// GetProfile handles GET /api/v1/profile
func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}
	return response.Success(c, toUserResponse(user))
}

// UpdateProfile handles PUT /api/v1/profile. Administrators may change their
// own email and password; role and affiliation stay with user management.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(&req); err != nil {
		return response.ValidationError(c, err)
	}

	if req.Email != "" {
		user.Email = req.Email
	}

	if req.Password != "" {
		hash, err := authutil.HashPassword(req.Password)
		if err != nil {
			return response.BadRequest(c, err.Error())
		}
		user.PasswordHash = hash
		// Changing the password invalidates every outstanding token.
		user.TokenVersion++
	}

	if err := h.db.Save(user).Error; err != nil {
		return response.InternalServerError(c, "Failed to update profile")
	}

	return response.SuccessWithMessage(c, "Profile updated", toUserResponse(user))
}
