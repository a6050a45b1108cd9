package routes

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/gorm"

	"edugpt/backend/config"
	"edugpt/backend/controllers"
	"edugpt/backend/identity"
	"edugpt/backend/middleware"
	"edugpt/backend/store"
	"edugpt/backend/utils"
)

// NewApp builds the fiber application: CORS, request logging, routes, and
// the envelope-shaped error and 404 handlers.
func NewApp(db *gorm.DB, cfg *config.Config, logger *log.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) && fiberErr.Code != fiber.StatusInternalServerError {
				return utils.Fail(c, fiberErr.Code, fiberErr.Message)
			}
			logger.Printf("unhandled error on %s %s: %v", c.Method(), c.Path(), err)
			return utils.InternalServerError(c, "Internal server error")
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	SetupRoutes(app, db, cfg, logger)
	return app
}

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, logger *log.Logger) {
	users := store.NewUserStore(db)
	progress := store.NewProgressStore(db)
	chats := store.NewChatStore(db)
	provider := identity.NewProvider(db, cfg)

	app.Get("/api/health", func(c *fiber.Ctx) error {
		return utils.OK(c, fiber.Map{
			"message":   "EduGPT Backend is running!",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"database":  "PostgreSQL",
			"auth":      "JWT",
			"features":  []string{"Authentication", "AI Tutor", "User Management", "Progress Tracking"},
		})
	})

	// Auth routes
	authController := controllers.NewAuthController(users, provider, logger)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)
	app.Post("/api/auth/create-custom-token", authController.CreateCustomToken)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(provider, users, logger)

	app.Post("/api/auth/sync-user", authMiddleware, authController.SyncUser)
	app.Get("/api/auth/verify", authMiddleware, authController.Verify)

	// User routes
	userController := controllers.NewUserController(users, progress, chats, logger)
	userRoutes := app.Group("/api/users", authMiddleware)
	userRoutes.Get("/:userId", userController.GetUser)
	userRoutes.Put("/:userId", userController.UpdateUser)
	userRoutes.Get("/:userId/dashboard", userController.GetDashboard)

	// AI tutor routes; these take the user id from the request body or path
	// without a verification round-trip.
	aiController := controllers.NewAIController(users, progress, chats, logger)
	aiRoutes := app.Group("/api/ai")
	aiRoutes.Post("/chat", aiController.Chat)
	aiRoutes.Get("/chat/history/:userId", aiController.GetChatHistory)
	aiRoutes.Delete("/chat/history/:userId", aiController.ClearChatHistory)
	aiRoutes.Post("/quiz/generate", aiController.GenerateQuiz)
	aiRoutes.Post("/progress/update", aiController.UpdateProgress)
	aiRoutes.Get("/progress/:userId", aiController.GetProgress)

	app.Use(func(c *fiber.Ctx) error {
		return utils.NotFound(c, "Route not found")
	})
}
