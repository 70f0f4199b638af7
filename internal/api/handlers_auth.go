package api

import (
	"errors"

	"github.com/aricheng/vitalcheck/internal/models"
	"github.com/aricheng/vitalcheck/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) Register(c *fiber.Ctx) error {
	input := registerInput{}
	if err := handler.parseInto(c, &input); err != nil {
		return validationError(c, inputErrorDetails(err))
	}

	user, err := handler.authService.Register(input.Email, input.Username, input.Password, input.Code, handler.now())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			return apiError(c, fiber.StatusBadRequest, "email is already registered")
		case errors.Is(err, services.ErrUsernameTaken):
			return apiError(c, fiber.StatusBadRequest, "username is already taken")
		case errors.Is(err, services.ErrInvalidCode):
			return apiError(c, fiber.StatusBadRequest, "verification code is invalid or expired")
		default:
			handler.logger.Error().Err(err).Msg("registration failed")
			return apiError(c, fiber.StatusInternalServerError, "registration failed")
		}
	}

	if err := handler.setSessionCookie(c, &user); err != nil {
		handler.logger.Error().Err(err).Msg("session issue failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "registration successful",
		"user": fiber.Map{
			"id":       user.ID,
			"email":    user.Email,
			"username": user.Username,
		},
	})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	input := loginInput{}
	if err := handler.parseInto(c, &input); err != nil {
		return validationError(c, inputErrorDetails(err))
	}

	user, err := handler.authService.Authenticate(input.Username, input.Password, handler.now())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAccountDisabled):
			return apiError(c, fiber.StatusForbidden, "account is disabled, contact an administrator")
		case errors.Is(err, services.ErrInvalidCredentials):
			return apiError(c, fiber.StatusUnauthorized, "invalid username or password")
		default:
			handler.logger.Error().Err(err).Msg("login failed")
			return apiError(c, fiber.StatusInternalServerError, "login failed")
		}
	}

	// The login timestamp changed; drop any cached copy.
	handler.identities.Invalidate(user.ID)

	if err := handler.setSessionCookie(c, &user); err != nil {
		handler.logger.Error().Err(err).Msg("session issue failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}

	return c.JSON(fiber.Map{
		"message": "login successful",
		"user": fiber.Map{
			"id":       user.ID,
			"email":    user.Email,
			"username": user.Username,
		},
	})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearSessionCookie(c)
	return c.JSON(fiber.Map{"message": "logged out"})
}

func (handler *Handler) Me(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "please log in")
	}
	return c.JSON(fiber.Map{"user": userView(user)})
}

func userView(user *models.User) fiber.Map {
	view := fiber.Map{
		"id":            user.ID,
		"email":         user.Email,
		"username":      user.Username,
		"role":          user.Role,
		"isActive":      user.IsActive,
		"emailVerified": user.EmailVerified,
		"createdAt":     user.CreatedAt,
	}
	if user.Avatar != "" {
		view["avatar"] = user.Avatar
	}
	if user.LastLoginAt != nil {
		view["lastLoginAt"] = user.LastLoginAt
	}
	if user.Profile != nil {
		view["profile"] = user.Profile
	}
	return view
}
