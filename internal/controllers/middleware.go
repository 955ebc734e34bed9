package controllers

import (
	"strconv"
	"strings"

	"clipstream-backend/internal/apperrors"
	"clipstream-backend/internal/models"
	"clipstream-backend/internal/repository"
	"clipstream-backend/internal/token"

	"github.com/gofiber/fiber/v3"
)

const localsUserKey = "currentUser"

// RequireAuth verifies the access token from the cookie or the bearer
// header, loads the user it names and stores it in the request locals.
func RequireAuth(tokens *token.Service, users *repository.UserRepository) fiber.Handler {
	return func(c fiber.Ctx) error {
		raw := c.Cookies("accessToken")
		if raw == "" {
			header := c.Get("Authorization")
			raw = strings.TrimPrefix(header, "Bearer ")
		}
		if raw == "" {
			return apperrors.Unauthorized("Unauthenticated")
		}

		claims, err := tokens.ParseAccess(raw)
		if err != nil {
			return apperrors.Unauthorized("Invalid or expired access token")
		}
		userID, err := claims.UserID()
		if err != nil {
			return apperrors.Unauthorized("Invalid access token subject")
		}

		user, err := users.FindByID(userID)
		if err != nil {
			return apperrors.Unauthorized("User no longer exists")
		}

		c.Locals(localsUserKey, user)
		return c.Next()
	}
}

func currentUser(c fiber.Ctx) *models.User {
	user, _ := c.Locals(localsUserKey).(*models.User)
	return user
}

func parseIDParam(c fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.BadRequest("Invalid " + name)
	}
	return uint(id), nil
}
