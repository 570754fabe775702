package router

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/campuslink/portal-api/authz"
	"github.com/campuslink/portal-api/database"
	"github.com/campuslink/portal-api/handlers"
	auth_handlers "github.com/campuslink/portal-api/handlers/auth"
	college_handlers "github.com/campuslink/portal-api/handlers/college"
	dashboard_handlers "github.com/campuslink/portal-api/handlers/dashboard"
	department_handlers "github.com/campuslink/portal-api/handlers/department"
	partnership_handlers "github.com/campuslink/portal-api/handlers/partnership"
	user_handlers "github.com/campuslink/portal-api/handlers/user"
	viewing_handlers "github.com/campuslink/portal-api/handlers/viewing"
	"github.com/campuslink/portal-api/services/storage"
	"github.com/campuslink/portal-api/utils/auth"
	"github.com/campuslink/portal-api/utils/cache"
	"github.com/campuslink/portal-api/utils/middleware"
)

func SetupRoutes(app *fiber.App, store database.Storage) {
	// Get JWT secret from environment
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := os.Getenv("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "campuslink-portal-api"
	}

	// Initialize JWT manager with config
	jwtConfig := auth.JWTConfig{
		Secret:        jwtSecret,
		Expiry:        24 * time.Hour,     // Access token expires in 24 hours
		RefreshExpiry: 7 * 24 * time.Hour, // Refresh token expires in 7 days
		Issuer:        jwtIssuer,
	}
	jwtManager := auth.NewJWTManager(jwtConfig)

	// Get DB instance (type assert from interface)
	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		log.Fatal("Failed to get GORM DB instance")
	}

	// Initialize Redis cache for brute force protection
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	redisCache, err := cache.NewRedisCache(redisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Brute force protection will be disabled.", err)
	}

	var bruteForceProtection *middleware.BruteForceProtection
	if redisCache != nil {
		bruteForceProtection = middleware.NewBruteForceProtection(redisCache)
	}

	// Logo storage is optional; handlers reject uploads when it is absent
	var storageClient *storage.Client
	storageConfig := storage.Config{
		AccessKey: os.Getenv("STORAGE_ACCESS_KEY"),
		SecretKey: os.Getenv("STORAGE_SECRET_KEY"),
		Bucket:    os.Getenv("STORAGE_BUCKET"),
		Region:    os.Getenv("STORAGE_REGION"),
		Endpoint:  os.Getenv("STORAGE_ENDPOINT"),
		CDNURL:    os.Getenv("STORAGE_CDN_URL"),
	}
	if storageConfig.Enabled() {
		storageClient, err = storage.NewClient(storageConfig)
		if err != nil {
			log.Printf("Warning: Failed to initialize logo storage: %v. Uploads will be rejected.", err)
		}
	}

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, db)

	authHandler := auth_handlers.NewAuthHandler(db, jwtManager, bruteForceProtection)
	collegeHandler := college_handlers.NewCollegeHandler(db, storageClient)
	departmentHandler := department_handlers.NewDepartmentHandler(db, storageClient)
	partnershipHandler := partnership_handlers.NewPartnershipHandler(db, storageClient)
	userHandler := user_handlers.NewUserHandler(db)
	viewingHandler := viewing_handlers.NewViewingHandler(db)
	dashboardHandler := dashboard_handlers.NewDashboardHandler(db)

	// Apply security middleware
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000,http://localhost:3001"
	}

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,             // 100 requests
		RateLimitWindow:   1 * time.Minute, // per minute
	})

	// Health check endpoint (public)
	app.Get("/ping", handlers.HandleCheckHealth(store))

	// API v1 group
	api := app.Group("/api/v1")

	// Token issuance (public), with brute force protection when Redis is up
	if bruteForceProtection != nil {
		api.Post("/token", bruteForceProtection.CheckAndRecordAttempt(), authHandler.Login)
	} else {
		api.Post("/token", authHandler.Login)
	}
	api.Post("/token/refresh", authHandler.Refresh)

	// Own profile (any authenticated role)
	profile := api.Group("/profile", authMiddleware.Required())
	profile.Get("/", authHandler.GetProfile)
	profile.Put("/", authHandler.UpdateProfile)

	// Public read-only mirrors for the visitor-facing pages
	viewing := api.Group("/viewing")
	viewing.Get("/colleges", viewingHandler.ListColleges)
	viewing.Get("/departments", viewingHandler.ListDepartments)
	viewing.Get("/partnerships", viewingHandler.ListPartnerships)

	// College management
	colleges := api.Group("/colleges", authMiddleware.Required())
	colleges.Get("/", collegeHandler.ListColleges)
	colleges.Post("/", collegeHandler.CreateCollege)
	colleges.Get("/:id", collegeHandler.GetCollege)
	colleges.Patch("/:id", collegeHandler.UpdateCollege)
	colleges.Delete("/:id", collegeHandler.DeleteCollege)
	colleges.Get("/:id/departments", collegeHandler.ListCollegeDepartments)

	// Department management
	departments := api.Group("/departments", authMiddleware.Required())
	departments.Get("/", departmentHandler.ListDepartments)
	departments.Post("/", departmentHandler.CreateDepartment)
	departments.Get("/:id", departmentHandler.GetDepartment)
	departments.Patch("/:id", departmentHandler.UpdateDepartment)
	departments.Delete("/:id", departmentHandler.DeleteDepartment)
	departments.Get("/:id/partnerships", departmentHandler.ListDepartmentPartnerships)

	// Partnership management; the growth route must register before :id
	partnerships := api.Group("/partnerships", authMiddleware.Required())
	partnerships.Get("/", partnershipHandler.ListPartnerships)
	partnerships.Post("/", partnershipHandler.CreatePartnership)
	partnerships.Get("/growth", partnershipHandler.Growth)
	partnerships.Get("/:id", partnershipHandler.GetPartnership)
	partnerships.Patch("/:id", partnershipHandler.UpdatePartnership)
	partnerships.Delete("/:id", partnershipHandler.DeletePartnership)

	// Administrator account management
	users := api.Group("/users", authMiddleware.Required())
	users.Get("/", userHandler.ListUsers)
	users.Post("/", userHandler.CreateUser)
	users.Get("/:id", userHandler.GetUser)
	users.Patch("/:id", userHandler.UpdateUser)
	users.Delete("/:id", userHandler.DeleteUser)

	// Role-scoped dashboard, plus the role-prefixed area entry points the
	// admin frontends navigate into
	dashboard := api.Group("/dashboard", authMiddleware.Required())
	dashboard.Get("/", dashboardHandler.GetDashboard)
	dashboard.Get("/superadmin", authMiddleware.RequireArea(authz.AreaSuperAdmin), dashboardHandler.GetDashboard)
	dashboard.Get("/college-admin", authMiddleware.RequireArea(authz.AreaCollegeAdmin), dashboardHandler.GetDashboard)
	dashboard.Get("/department-admin", authMiddleware.RequireArea(authz.AreaDepartmentAdmin), dashboardHandler.GetDashboard)
}
