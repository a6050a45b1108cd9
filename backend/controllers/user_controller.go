package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"edugpt/backend/models"
	"edugpt/backend/store"
	"edugpt/backend/utils"
)

type UserController struct {
	Users    *store.UserStore
	Progress *store.ProgressStore
	Chats    *store.ChatStore
	Logger   *log.Logger
}

func NewUserController(users *store.UserStore, progress *store.ProgressStore, chats *store.ChatStore, logger *log.Logger) *UserController {
	return &UserController{Users: users, Progress: progress, Chats: chats, Logger: logger}
}

// GetUser godoc
// @Summary Get user profile
// @Description Returns the user document for the given id
// @Tags users
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /users/{userId} [get]
func (uc *UserController) GetUser(c *fiber.Ctx) error {
	userID := c.Params("userId")

	user, err := uc.Users.Get(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFound(c, "User not found")
	}
	if err != nil {
		uc.Logger.Printf("get user %s failed: %v", userID, err)
		return utils.InternalServerError(c, "Internal server error")
	}

	return utils.OK(c, fiber.Map{"user": user})
}

// UpdateUser godoc
// @Summary Update user profile
// @Description Merge-writes the provided fields into the user document
// @Tags users
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /users/{userId} [put]
func (uc *UserController) UpdateUser(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var update models.UserUpdate
	if err := c.BodyParser(&update); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if err := uc.Users.ApplyUpdate(userID, update); err != nil {
		uc.Logger.Printf("update user %s failed: %v", userID, err)
		return utils.InternalServerError(c, "Internal server error")
	}

	return utils.OK(c, fiber.Map{"message": "Profile updated successfully"})
}

// GetDashboard godoc
// @Summary Get dashboard data
// @Description Aggregates the user document, progress and recent achievements
// @Tags users
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /users/{userId}/dashboard [get]
func (uc *UserController) GetDashboard(c *fiber.Ctx) error {
	userID := c.Params("userId")

	user, err := uc.Users.Get(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFound(c, "User not found")
	}
	if err != nil {
		uc.Logger.Printf("dashboard: get user %s failed: %v", userID, err)
		return utils.InternalServerError(c, "Internal server error")
	}

	// Independent, non-atomic read; a concurrent progress update may or may
	// not be visible alongside the user document.
	progress, err := uc.Progress.Get(userID)
	if err != nil {
		uc.Logger.Printf("dashboard: get progress %s failed: %v", userID, err)
		return utils.InternalServerError(c, "Internal server error")
	}

	achievements := progress.Achievements.Data()
	if achievements == nil {
		achievements = []models.Achievement{}
	}
	if len(achievements) > 4 {
		achievements = achievements[:4]
	}

	chatSessions, err := uc.Chats.Count(userID)
	if err != nil {
		uc.Logger.Printf("dashboard: count chats %s failed: %v", userID, err)
		return utils.InternalServerError(c, "Internal server error")
	}

	return utils.OK(c, fiber.Map{
		"dashboard": fiber.Map{
			"user":             user,
			"progress":         progress.Progress,
			"studyStreak":      progress.StudyStreak,
			"currentCourse":    progress.CurrentCourse,
			"achievements":     achievements,
			"totalStudyTime":   progress.TotalStudyTime,
			"completedLessons": progress.CompletedLessons,
			"chatSessions":     chatSessions,
			"lastActive":       progress.LastUpdated,
		},
	})
}
