package controllers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"edugpt/backend/models"
	"edugpt/backend/store"
	"edugpt/backend/tutor"
	"edugpt/backend/utils"
)

type AIController struct {
	Users    *store.UserStore
	Progress *store.ProgressStore
	Chats    *store.ChatStore
	Logger   *log.Logger
}

func NewAIController(users *store.UserStore, progress *store.ProgressStore, chats *store.ChatStore, logger *log.Logger) *AIController {
	return &AIController{Users: users, Progress: progress, Chats: chats, Logger: logger}
}

// Chat godoc
// @Summary AI tutor chat
// @Description Generates a scripted tutor reply and appends the exchange to the chat history
// @Tags ai
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /ai/chat [post]
func (ai *AIController) Chat(c *fiber.Ctx) error {
	type ChatInput struct {
		Message string `json:"message"`
		UserID  string `json:"userId"`
	}

	var input ChatInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Message == "" || input.UserID == "" {
		return utils.BadRequest(c, "Message and userId are required")
	}

	user, err := ai.Users.Get(input.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFound(c, "User not found")
	}
	if err != nil {
		ai.Logger.Printf("chat: get user %s failed: %v", input.UserID, err)
		return utils.InternalServerError(c, "Internal server error")
	}

	response := tutor.Reply(input.Message, tutorProfile(user))

	now := time.Now().UTC()
	err = ai.Chats.Append(input.UserID,
		models.Message{Role: models.RoleUser, Content: input.Message, Timestamp: now},
		models.Message{Role: models.RoleAssistant, Content: response, Timestamp: now},
	)
	if err != nil {
		ai.Logger.Printf("chat: append for %s failed: %v", input.UserID, err)
		return utils.InternalServerError(c, "Internal server error")
	}

	if err := ai.Users.RecordActivity(input.UserID, now); err != nil {
		ai.Logger.Printf("chat: record activity for %s failed: %v", input.UserID, err)
		return utils.InternalServerError(c, "Internal server error")
	}

	return utils.OK(c, fiber.Map{
		"response":  response,
		"timestamp": now.Format(time.RFC3339),
	})
}

// GetChatHistory godoc
// @Summary Get chat history
// @Description Returns the stored message array, empty when no chat exists
// @Tags ai
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /ai/chat/history/{userId} [get]
func (ai *AIController) GetChatHistory(c *fiber.Ctx) error {
	userID := c.Params("userId")

	messages, err := ai.Chats.History(userID)
	if err != nil {
		ai.Logger.Printf("chat history for %s failed: %v", userID, err)
		return utils.InternalServerError(c, "Internal server error")
	}

	return utils.OK(c, fiber.Map{"messages": messages})
}

// ClearChatHistory godoc
// @Summary Clear chat history
// @Description Replaces the message array with empty and stamps last-updated
// @Tags ai
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /ai/chat/history/{userId} [delete]
func (ai *AIController) ClearChatHistory(c *fiber.Ctx) error {
	userID := c.Params("userId")

	if err := ai.Chats.Clear(userID); err != nil {
		ai.Logger.Printf("clear chat for %s failed: %v", userID, err)
		return utils.InternalServerError(c, "Internal server error")
	}

	return utils.OK(c, fiber.Map{"message": "Chat history cleared successfully"})
}

// GenerateQuiz godoc
// @Summary Generate a quiz
// @Description Returns the fixed quiz template for the subject
// @Tags ai
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /ai/quiz/generate [post]
func (ai *AIController) GenerateQuiz(c *fiber.Ctx) error {
	type QuizInput struct {
		UserID     string `json:"userId"`
		Subject    string `json:"subject"`
		Difficulty string `json:"difficulty"`
	}

	var input QuizInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Difficulty == "" {
		input.Difficulty = "beginner"
	}

	quiz := tutor.GenerateQuiz(input.Subject, input.Difficulty)
	return utils.OK(c, fiber.Map{"quiz": quiz})
}

// UpdateProgress godoc
// @Summary Update user progress
// @Description Merge-writes the provided progress fields and stamps last-updated
// @Tags ai
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /ai/progress/update [post]
func (ai *AIController) UpdateProgress(c *fiber.Ctx) error {
	type ProgressInput struct {
		UserID       string                `json:"userId"`
		ProgressData models.ProgressUpdate `json:"progressData"`
	}

	var input ProgressInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.UserID == "" {
		return utils.BadRequest(c, "userId is required")
	}

	if _, err := ai.Progress.Merge(input.UserID, input.ProgressData, time.Now().UTC()); err != nil {
		ai.Logger.Printf("progress update for %s failed: %v", input.UserID, err)
		return utils.InternalServerError(c, "Internal server error")
	}

	return utils.OK(c, fiber.Map{"message": "Progress updated successfully"})
}

// GetProgress godoc
// @Summary Get user progress
// @Description Returns stored progress, or the default shape when absent
// @Tags ai
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /ai/progress/{userId} [get]
func (ai *AIController) GetProgress(c *fiber.Ctx) error {
	userID := c.Params("userId")

	progress, err := ai.Progress.Get(userID)
	if err != nil {
		ai.Logger.Printf("get progress for %s failed: %v", userID, err)
		return utils.InternalServerError(c, "Internal server error")
	}

	return utils.OK(c, fiber.Map{"progress": progress})
}

func tutorProfile(user *models.User) tutor.Profile {
	profile := user.Profile.Data()
	return tutor.Profile{
		FirstName:      user.GivenName(),
		Interests:      profile.Interests,
		EducationLevel: profile.EducationLevel,
		LearningGoals:  profile.LearningGoals,
	}
}
