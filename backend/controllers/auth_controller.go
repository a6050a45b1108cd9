package controllers

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"edugpt/backend/identity"
	"edugpt/backend/middleware"
	"edugpt/backend/models"
	"edugpt/backend/store"
	"edugpt/backend/utils"
)

type AuthController struct {
	Users    *store.UserStore
	Identity *identity.Provider
	Logger   *log.Logger
}

func NewAuthController(users *store.UserStore, provider *identity.Provider, logger *log.Logger) *AuthController {
	return &AuthController{Users: users, Identity: provider, Logger: logger}
}

// Register godoc
// @Summary Register a new user
// @Description Creates an identity account and its user profile document
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /auth/register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	type RegisterInput struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Role      string `json:"role"`
	}

	var input RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Email == "" || input.Password == "" {
		return utils.BadRequest(c, "Email and password are required")
	}

	account, err := ac.Identity.CreateUser(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, identity.ErrEmailInUse) {
			return utils.BadRequest(c, "Email already in use")
		}
		ac.Logger.Printf("register: account creation failed: %v", err)
		return utils.InternalServerError(c, "Failed to create account")
	}

	now := time.Now().UTC()
	user := models.User{
		UID:          account.UID,
		Email:        account.Email,
		DisplayName:  strings.TrimSpace(input.FirstName + " " + input.LastName),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		AuthProvider: "email",
		Role:         input.Role,
		IsActive:     true,
		LastLogin:    now,
		LastActive:   now,
	}
	if err := ac.Users.Create(&user); err != nil {
		ac.Logger.Printf("register: profile creation failed for %s: %v", account.UID, err)
		// Best-effort rollback so no orphaned identity account remains.
		if derr := ac.Identity.DeleteUser(account.UID); derr != nil {
			ac.Logger.Printf("register: compensation failed, account %s left behind: %v", account.UID, derr)
		}
		return utils.InternalServerError(c, "Failed to create user profile")
	}

	token, err := ac.Identity.IssueToken(identity.Claims{
		UID:            account.UID,
		Email:          account.Email,
		Name:           user.DisplayName,
		SignInProvider: "password",
	})
	if err != nil {
		ac.Logger.Printf("register: token issuance failed for %s: %v", account.UID, err)
		return utils.InternalServerError(c, "Could not generate token")
	}

	return utils.OK(c, fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Login godoc
// @Summary User login
// @Description Verifies credentials and returns a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var input LoginInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Email == "" || input.Password == "" {
		return utils.BadRequest(c, "Email and password are required")
	}

	account, err := ac.Identity.VerifyPassword(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) || errors.Is(err, identity.ErrAccountDisabled) {
			return utils.Unauthorized(c, "Invalid credentials")
		}
		ac.Logger.Printf("login: verification failed: %v", err)
		return utils.InternalServerError(c, "Internal server error")
	}

	claims := identity.Claims{UID: account.UID, Email: account.Email, SignInProvider: "password"}
	user, err := ac.Users.Get(account.UID)
	if err == nil {
		claims.Name = user.DisplayName
		claims.Picture = user.PhotoURL
	}

	token, err := ac.Identity.IssueToken(claims)
	if err != nil {
		ac.Logger.Printf("login: token issuance failed for %s: %v", account.UID, err)
		return utils.InternalServerError(c, "Could not generate token")
	}

	payload := fiber.Map{"token": token}
	if user != nil {
		payload["user"] = user
	} else {
		payload["user"] = fiber.Map{"uid": account.UID, "email": account.Email}
	}
	return utils.OK(c, payload)
}

// CreateCustomToken godoc
// @Summary Create a custom token
// @Description Issues a bearer token for the given subject id
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /auth/create-custom-token [post]
func (ac *AuthController) CreateCustomToken(c *fiber.Ctx) error {
	type TokenInput struct {
		UID   string `json:"uid"`
		Email string `json:"email"`
	}

	var input TokenInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.UID == "" {
		return utils.BadRequest(c, "User ID is required")
	}

	token, err := ac.Identity.IssueToken(identity.Claims{UID: input.UID, Email: input.Email})
	if err != nil {
		ac.Logger.Printf("create-custom-token failed for %s: %v", input.UID, err)
		return utils.InternalServerError(c, "Failed to create custom token")
	}
	return utils.OK(c, fiber.Map{"customToken": token})
}

// SyncUser godoc
// @Summary Sync user after client-side sign-in
// @Description Merge-writes the user document keyed by the verified subject id
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /auth/sync-user [post]
func (ac *AuthController) SyncUser(c *fiber.Ctx) error {
	type SyncInput struct {
		Email       string `json:"email"`
		DisplayName string `json:"displayName"`
		Role        string `json:"role"`
	}

	var input SyncInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	claims := c.Locals(middleware.LocalClaims).(*identity.Claims)
	user, err := ac.Users.Sync(claims.UID, input.Email, input.DisplayName, input.Role, time.Now().UTC())
	if err != nil {
		ac.Logger.Printf("sync-user failed for %s: %v", claims.UID, err)
		return utils.InternalServerError(c, "User sync failed")
	}

	return utils.OK(c, fiber.Map{
		"message": "User synced successfully",
		"user":    user,
	})
}

// Verify godoc
// @Summary Verify token
// @Description Echoes back the user record resolved by the auth bridge
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /auth/verify [get]
func (ac *AuthController) Verify(c *fiber.Ctx) error {
	user := c.Locals(middleware.LocalUser).(*models.User)
	return utils.OK(c, fiber.Map{"user": user})
}
