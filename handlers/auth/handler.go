package auth

import (
	"time"

	"gorm.io/gorm"

	"github.com/campuslink/portal-api/model"
	"github.com/campuslink/portal-api/utils/auth"
	"github.com/campuslink/portal-api/utils/middleware"
	"github.com/campuslink/portal-api/utils/validation"
)

// AuthHandler handles token issuance and profile requests
type AuthHandler struct {
	db                   *gorm.DB
	jwtManager           *auth.JWTManager
	bruteForceProtection *middleware.BruteForceProtection
	validator            *validation.Validator
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(db *gorm.DB, jwtManager *auth.JWTManager, bfp *middleware.BruteForceProtection) *AuthHandler {
	return &AuthHandler{
		db:                   db,
		jwtManager:           jwtManager,
		bruteForceProtection: bfp,
		validator:            validation.NewValidator(),
	}
}

// UserResponse is the account payload returned alongside tokens
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

func toUserResponse(u *model.User) UserResponse {
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

func tokenSubject(u *model.User) auth.TokenSubject {
	return auth.TokenSubject{
		UserID:       u.ID,
		Username:     u.Username,
		Role:         u.Role,
		CollegeID:    u.CollegeID,
		DepartmentID: u.DepartmentID,
		TokenVersion: u.TokenVersion,
	}
}
