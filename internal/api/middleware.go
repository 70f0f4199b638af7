package api

import (
	"errors"

	"github.com/aricheng/vitalcheck/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const contextUserKey = "current_user"

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}

// SessionRefresh keeps valid sessions sliding: any request carrying a
// verifiable cookie gets it re-signed with a fresh expiry. Invalid cookies
// pass through untouched and fail later at AuthRequired if it applies.
func (handler *Handler) SessionRefresh(c *fiber.Ctx) error {
	claims, err := handler.parseSessionCookie(c)
	if err != nil {
		return c.Next()
	}

	user := models.User{
		ID:       claims.UserID,
		Email:    claims.Email,
		Username: claims.Username,
		Role:     claims.Role,
	}
	if err := handler.setSessionCookie(c, &user); err != nil {
		handler.logger.Error().Err(err).Msg("session refresh failed")
	}
	return c.Next()
}

// resolveSession loads the account behind the cookie, going through the
// identity cache. Deactivated accounts do not resolve.
func (handler *Handler) resolveSession(c *fiber.Ctx) (*models.User, error) {
	claims, err := handler.parseSessionCookie(c)
	if err != nil {
		return nil, err
	}

	now := handler.now()
	if cached, ok := handler.identities.Get(claims.UserID, now); ok {
		if !cached.IsActive {
			return nil, errors.New("account disabled")
		}
		return &cached, nil
	}

	user, err := handler.authService.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("unknown account")
		}
		return nil, err
	}
	handler.identities.Put(user, now)

	if !user.IsActive {
		return nil, errors.New("account disabled")
	}
	return &user, nil
}

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.resolveSession(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "please log in")
	}
	c.Locals(contextUserKey, user)
	return c.Next()
}

// AdminRequired gates admin routes on the database role, not the token
// claim, so demotions take effect on the next request.
func (handler *Handler) AdminRequired(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "please log in")
	}
	if user.Role != models.RoleAdmin {
		return apiError(c, fiber.StatusForbidden, "admin access required")
	}
	return c.Next()
}
