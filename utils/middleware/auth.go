package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/campuslink/portal-api/authz"
	"github.com/campuslink/portal-api/model"
	"github.com/campuslink/portal-api/utils/auth"
	"github.com/campuslink/portal-api/utils/response"
)

// AuthMiddleware handles JWT authentication
type AuthMiddleware struct {
	jwtManager *auth.JWTManager
	db         *gorm.DB
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(jwtManager *auth.JWTManager, db *gorm.DB) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		db:         db,
	}
}

// authenticate validates the bearer token, loads the account, and returns
// the resolved claims. The user row is re-read on every request so role or
// affiliation changes take effect without waiting for token expiry.
func (m *AuthMiddleware) authenticate(c *fiber.Ctx) (*auth.Claims, *model.User, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, nil, response.Unauthorized(c, "Missing authorization token")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, nil, response.Unauthorized(c, "Invalid authorization format")
	}

	claims, err := m.jwtManager.ValidateToken(parts[1])
	if err != nil {
		if err == auth.ErrExpiredToken {
			return nil, nil, response.Unauthorized(c, "Token has expired")
		}
		return nil, nil, response.Unauthorized(c, "Invalid token")
	}

	if claims.TokenType != "access" {
		return nil, nil, response.Unauthorized(c, "Invalid token type")
	}

	var user model.User
	if err := m.db.First(&user, claims.UserID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, response.Unauthorized(c, "User not found")
		}
		return nil, nil, response.InternalServerError(c, "Failed to load user")
	}

	if user.TokenVersion != claims.TokenVersion {
		return nil, nil, response.Unauthorized(c, "Token has been invalidated")
	}

	return claims, &user, nil
}

func storeIdentity(c *fiber.Ctx, claims *auth.Claims, user *model.User) {
	identity := authz.Identity{
		UserID:       user.ID,
		Role:         authz.Role(user.Role),
		CollegeID:    user.CollegeID,
		DepartmentID: user.DepartmentID,
	}
	c.Locals("identity", &identity)
	c.Locals("user", user)
	c.Locals("token_jti", claims.ID)
}

// Required is middleware that requires a valid JWT token
func (m *AuthMiddleware) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, user, err := m.authenticate(c)
		if err != nil {
			return err
		}
		storeIdentity(c, claims, user)
		return c.Next()
	}
}

// RequireArea gates a role-prefixed route group. The area check re-runs on
// every request against the freshly loaded account, never a cached decision.
func (m *AuthMiddleware) RequireArea(area authz.Area) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, user, err := m.authenticate(c)
		if err != nil {
			return err
		}

		identity := authz.Identity{
			UserID:       user.ID,
			Role:         authz.Role(user.Role),
			CollegeID:    user.CollegeID,
			DepartmentID: user.DepartmentID,
		}
		switch authz.CheckArea(&identity, area) {
		case authz.DecisionUnauthenticated:
			return response.Unauthorized(c, "Missing authorization token")
		case authz.DecisionUnauthorized:
			return response.Forbidden(c, "Insufficient permissions for this area")
		}

		storeIdentity(c, claims, user)
		return c.Next()
	}
}

// RequireSuperAdmin gates superadmin-only routes.
func (m *AuthMiddleware) RequireSuperAdmin() fiber.Handler {
	return m.RequireArea(authz.AreaSuperAdmin)
}

// GetIdentity extracts the resolved identity from context
func GetIdentity(c *fiber.Ctx) (*authz.Identity, bool) {
	identity := c.Locals("identity")
	if identity == nil {
		return nil, false
	}
	id, ok := identity.(*authz.Identity)
	return id, ok
}

// GetUser extracts full user object from context
func GetUser(c *fiber.Ctx) (*model.User, bool) {
	user := c.Locals("user")
	if user == nil {
		return nil, false
	}
	u, ok := user.(*model.User)
	return u, ok
}
