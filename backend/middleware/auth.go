package middleware

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"edugpt/backend/identity"
	"edugpt/backend/models"
	"edugpt/backend/store"
	"edugpt/backend/utils"
)

// Context keys for the resolved identity.
const (
	LocalUser   = "user"
	LocalClaims = "claims"
)

// AuthMiddleware verifies the bearer credential and reconciles the user
// document: create-if-absent from the verified claims, else touch lastLogin.
// The pre-update snapshot is attached to the request context.
func AuthMiddleware(provider *identity.Provider, users *store.UserStore, logger *log.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return utils.Unauthorized(c, "Access denied. No token provided.")
		}

		claims, err := provider.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			if errors.Is(err, identity.ErrTokenExpired) {
				return utils.Unauthorized(c, "Token expired. Please sign in again.")
			}
			return utils.Unauthorized(c, "Invalid authentication token.")
		}

		user, err := users.Get(claims.UID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			user = newUserFromClaims(claims)
			if err := users.Create(user); err != nil {
				logger.Printf("auth: failed to create user %s: %v", claims.UID, err)
				return utils.InternalServerError(c, "Internal server error")
			}
			logger.Printf("auth: new user created: %s", user.Email)
		case err != nil:
			logger.Printf("auth: failed to load user %s: %v", claims.UID, err)
			return utils.InternalServerError(c, "Internal server error")
		default:
			if err := users.TouchLastLogin(claims.UID, time.Now().UTC()); err != nil {
				logger.Printf("auth: failed to touch lastLogin for %s: %v", claims.UID, err)
				return utils.InternalServerError(c, "Internal server error")
			}
		}

		c.Locals(LocalUser, user)
		c.Locals(LocalClaims, claims)
		return c.Next()
	}
}

func newUserFromClaims(claims *identity.Claims) *models.User {
	provider := "email"
	if claims.SignInProvider == "google.com" {
		provider = "google"
	}
	now := time.Now().UTC()
	return &models.User{
		UID:          claims.UID,
		Email:        strings.ToLower(claims.Email),
		DisplayName:  claims.Name,
		PhotoURL:     claims.Picture,
		AuthProvider: provider,
		Role:         "student",
		IsActive:     true,
		LastLogin:    now,
		LastActive:   now,
	}
}
